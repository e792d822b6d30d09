package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/exclusivefashions/storefront/api/responses"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"github.com/exclusivefashions/storefront/pkg/logger"
)

// Recoverer turns a panic into a 500. JSON routes get the error envelope, pages a plain body.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{"panic": fmt.Sprint(rec)})
						logg.Error(ctx, "panic.recovered", err)
					}
					if strings.HasPrefix(r.URL.Path, "/api/") {
						responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
						return
					}
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
