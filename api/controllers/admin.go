package controllers

import (
	"net/http"
	"time"

	"github.com/exclusivefashions/storefront/api/middleware"
	"github.com/exclusivefashions/storefront/api/responses"
	"github.com/exclusivefashions/storefront/api/validators"
	"github.com/exclusivefashions/storefront/internal/admin"
	"github.com/exclusivefashions/storefront/internal/views"
	"github.com/exclusivefashions/storefront/pkg/config"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
)

const (
	adminLoginTitle     = "Admin sign in"
	msgInvalidLogin     = "invalid email or password"
	msgLoginUnavailable = "Sign in is temporarily unavailable. Please try again shortly."
	msgTooManyAttempts  = "Too many sign in attempts. Please wait a minute and try again."
	adminCookiePath     = "/admin"
	maxEchoedEmail      = 254
)

// AdminLoginForm renders the sign-in form.
func AdminLoginForm(site *Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := views.AdminLoginPage{Layout: site.Layout(r.Context(), adminLoginTitle, r.URL.Path)}
		site.render(w, r, http.StatusOK, views.PageAdminLogin, page)
	}
}

// AdminLogin verifies the credentials, sets the session cookie and redirects to
// the dashboard.
func AdminLogin(site *Site, svc admin.Service, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body admin.LoginRequest
		err := validators.DecodeForm(r, &body)
		var result *admin.LoginResult
		if err == nil {
			result, err = svc.Login(ctx, body)
		}
		if err != nil {
			page := views.AdminLoginPage{
				Layout: site.Layout(ctx, adminLoginTitle, middleware.AdminLoginPath),
				Email:  validators.SanitizeString(body.Email, maxEchoedEmail),
				Error:  msgInvalidLogin,
			}
			status := http.StatusUnauthorized
			if pkgerrors.IsCode(err, pkgerrors.CodeDependency) || pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
				responses.LogError(ctx, site.logger(), err)
				page.Error = msgLoginUnavailable
				status = http.StatusServiceUnavailable
			}
			site.render(w, r, status, views.PageAdminLogin, page)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.JWT.CookieName,
			Value:    result.Token,
			Path:     adminCookiePath,
			Expires:  result.ExpiresAt,
			MaxAge:   int(time.Until(result.ExpiresAt).Seconds()),
			HttpOnly: true,
			Secure:   cfg.HTTP.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		responses.Redirect(w, r, middleware.AdminHomePath)
	}
}

// AdminLoginBlocked is served in place of the login handler once the rate limit trips.
func AdminLoginBlocked(site *Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := views.AdminLoginPage{
			Layout: site.Layout(r.Context(), adminLoginTitle, middleware.AdminLoginPath),
			Error:  msgTooManyAttempts,
		}
		site.render(w, r, http.StatusTooManyRequests, views.PageAdminLogin, page)
	}
}

// AdminLogout revokes the session, clears the cookie and returns to the sign-in form.
func AdminLogout(site *Site, svc admin.Service, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if cookie, err := r.Cookie(cfg.JWT.CookieName); err == nil {
			if err := svc.Logout(ctx, cookie.Value); err != nil {
				site.logger().Error(ctx, "admin.logout.failed", err)
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     cfg.JWT.CookieName,
			Value:    "",
			Path:     adminCookiePath,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.HTTP.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		responses.Redirect(w, r, middleware.AdminLoginPath)
	}
}

// AdminDashboard greets the signed-in account.
func AdminDashboard(site *Site) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := middleware.PrincipalFromContext(r.Context())
		if !ok {
			responses.Redirect(w, r, middleware.AdminLoginPath)
			return
		}
		page := views.AdminDashboardPage{
			Layout:    site.Layout(r.Context(), "Dashboard", r.URL.Path),
			Principal: principal,
		}
		site.render(w, r, http.StatusOK, views.PageAdminDashboard, page)
	}
}
