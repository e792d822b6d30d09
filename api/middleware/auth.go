package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/exclusivefashions/storefront/api/responses"
	"github.com/exclusivefashions/storefront/internal/admin"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"github.com/exclusivefashions/storefront/pkg/logger"
)

// Admin routes.
const (
	AdminHomePath  = "/admin"
	AdminLoginPath = "/admin/login"
)

// Authenticator resolves an admin cookie value to a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*admin.Principal, error)
}

// AdminGate guards every /admin path. Visitors without a live session are sent
// to the login page; signed-in visitors asking for the login page are sent to
// the dashboard. Everything else passes with the principal in the context.
func AdminGate(auth Authenticator, cookieName string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			principal := resolvePrincipal(ctx, auth, cookieName, r, logg)
			onLogin := strings.TrimSuffix(r.URL.Path, "/") == AdminLoginPath

			switch {
			case principal == nil && onLogin:
				next.ServeHTTP(w, r)
			case principal == nil:
				responses.Redirect(w, r, AdminLoginPath)
			case onLogin:
				responses.Redirect(w, r, AdminHomePath)
			default:
				ctx = WithPrincipal(ctx, *principal)
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"user_id":    principal.UserID.String(),
						"actor_role": string(principal.Role),
					})
				}
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

func resolvePrincipal(ctx context.Context, auth Authenticator, cookieName string, r *http.Request, logg *logger.Logger) *admin.Principal {
	if auth == nil {
		return nil
	}
	cookie, err := r.Cookie(cookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return nil
	}
	principal, err := auth.Authenticate(ctx, cookie.Value)
	if err != nil {
		if logg != nil && !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
			logg.Error(ctx, "admin.gate.session_check_failed", err)
		}
		return nil
	}
	return principal
}
