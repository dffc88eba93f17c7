package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/http/response"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.uber.org/zap"
)

// TokenVerifier resolves a bearer token to the admin it was issued for.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.Admin, error)
}

// RequireAdmin rejects requests without a valid admin bearer token.
func RequireAdmin(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				response.Fail(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			admin, err := verifier.VerifyToken(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrAdminGone):
				response.Fail(w, http.StatusUnauthorized, "Admin not found")
				return
			case errors.Is(err, domain.ErrUnauthorized):
				log.Debug("Token rejected", zap.Error(err))
				response.Fail(w, http.StatusUnauthorized, "Not authorized, token failed")
				return
			default:
				response.Error(w, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
