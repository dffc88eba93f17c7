// Package router assembles the HTTP API.
package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Properties   handler.PropertyService
	Enquiries    handler.EnquiryService
	Admins       handler.AdminService
	Verifier     middleware.TokenVerifier
	Throttle     domain.SubmissionThrottle
	Metrics      *metrics.MetricsManager
	ClientURL    string
	MaxFileBytes int64
	// TrustProxyHeaders rewrites RemoteAddr from X-Forwarded-For/X-Real-IP.
	// Left off, those headers cannot steer the enquiry throttle.
	TrustProxyHeaders bool
	Log               *logger.Logger
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if d.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Instrument(d.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{strings.TrimRight(d.ClientURL, "/")},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.NotFound)

	requireAdmin := middleware.RequireAdmin(d.Verifier, d.Log)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.Health)
		setupAdminRoutes(r, handler.NewAdminHandler(d.Admins, d.Log), requireAdmin)
		setupPropertyRoutes(r, handler.NewPropertyHandler(d.Properties, d.MaxFileBytes, d.Log), requireAdmin)
		setupEnquiryRoutes(r, handler.NewEnquiryHandler(d.Enquiries, d.Log), requireAdmin, middleware.Throttle(d.Throttle, d.Log))
	})
	return r
}

func setupAdminRoutes(r chi.Router, h *handler.AdminHandler, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)
		})
	})
}

func setupPropertyRoutes(r chi.Router, h *handler.PropertyHandler, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/properties", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/filter", h.Filter)
		r.Get("/cities", h.Cities)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Delete("/{id}/images/{imageIndex}", h.DeleteImage)
		})
	})
}

func setupEnquiryRoutes(r chi.Router, h *handler.EnquiryHandler, requireAdmin, throttle func(http.Handler) http.Handler) {
	r.Route("/enquiries", func(r chi.Router) {
		r.With(throttle).Post("/", h.Submit)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/", h.List)
			r.Get("/stats", h.Stats)
			r.Get("/property/{propertyId}", h.ListByProperty)
			r.Get("/{id}", h.Get)
			r.Put("/{id}/status", h.UpdateStatus)
			r.Delete("/{id}", h.Delete)
		})
	})
}
