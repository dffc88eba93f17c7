package middleware

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
)

// ContextKey is a private type for request context keys.
type ContextKey string

// AdminCtxKey holds the authenticated *domain.Admin.
const AdminCtxKey = ContextKey("admin")

// AdminFromContext returns the admin stored by RequireAdmin.
func AdminFromContext(ctx context.Context) (*domain.Admin, bool) {
	a, ok := ctx.Value(AdminCtxKey).(*domain.Admin)
	return a, ok && a != nil
}

// WithAdmin stores a in ctx.
func WithAdmin(ctx context.Context, a *domain.Admin) context.Context {
	return context.WithValue(ctx, AdminCtxKey, a)
}
