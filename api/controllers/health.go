package controllers

import (
	"context"
	"net/http"

	"github.com/exclusivefashions/storefront/api/responses"
	"github.com/exclusivefashions/storefront/pkg/config"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"github.com/exclusivefashions/storefront/pkg/logger"
)

const envHeader = "X-Storefront-Env"

// Pinger is a dependency probed by the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck names one readiness dependency.
type HealthCheck struct {
	Name   string
	Pinger Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency and answers 503 when any of them fails.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx := r.Context()

		status := map[string]string{}
		failed := false
		for _, check := range checks {
			if check.Pinger == nil {
				continue
			}
			if err := check.Pinger.Ping(ctx); err != nil {
				failed = true
				status[check.Name] = "down"
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", check.Name), "health.ready.failed", err)
				}
				continue
			}
			status[check.Name] = "ok"
		}

		if failed {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(status)
			responses.WriteError(ctx, nil, w, err)
			return
		}
		status["status"] = "ready"
		responses.WriteSuccess(w, status)
	}
}
