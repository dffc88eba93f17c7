package middleware

import (
	"net"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/http/response"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.uber.org/zap"
)

// Throttle limits requests per client IP. A nil throttle lets everything
// through. Throttle errors are logged and the request is allowed.
func Throttle(t domain.SubmissionThrottle, log *logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("throttle")
	return func(next http.Handler) http.Handler {
		if t == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			ok, err := t.Allow(r.Context(), key)
			if err != nil {
				log.Warn("Throttle check failed, allowing request", zap.String("client", key), zap.Error(err))
			}
			if !ok {
				response.Error(w, log, domain.ErrTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys on the peer address. When the router trusts proxy headers,
// chi's RealIP has already rewritten RemoteAddr, possibly without a port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
