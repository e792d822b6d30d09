package middleware

import (
	"context"

	"github.com/exclusivefashions/storefront/internal/admin"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxRole      contextKey = "actor_role"
	ctxPrincipal contextKey = "admin_principal"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// PrincipalFromContext returns the signed-in admin attached by AdminGate.
func PrincipalFromContext(ctx context.Context) (admin.Principal, bool) {
	if ctx == nil {
		return admin.Principal{}, false
	}
	p, ok := ctx.Value(ctxPrincipal).(admin.Principal)
	return p, ok
}

// WithPrincipal injects the signed-in admin into the context.
func WithPrincipal(ctx context.Context, p admin.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxPrincipal, p)
	ctx = context.WithValue(ctx, ctxUserID, p.UserID.String())
	return context.WithValue(ctx, ctxRole, string(p.Role))
}
