package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/exclusivefashions/storefront/api/controllers"
	"github.com/exclusivefashions/storefront/api/middleware"
	"github.com/exclusivefashions/storefront/internal/admin"
	"github.com/exclusivefashions/storefront/internal/catalog"
	"github.com/exclusivefashions/storefront/internal/inquiries"
	"github.com/exclusivefashions/storefront/pkg/config"
	"github.com/exclusivefashions/storefront/pkg/logger"
	"github.com/exclusivefashions/storefront/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const compressionLevel = 5

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Deps are the collaborators the router hands to its controllers. RateLimiter
// and the pingers may be nil.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Site        *controllers.Site
	Catalog     catalog.Service
	Inquiries   inquiries.Service
	Admin       admin.Service
	Metrics     *metrics.StorefrontMetrics
	Gatherer    prometheus.Gatherer
	RateLimiter rateLimiter
	DB          controllers.Pinger
	Redis       controllers.Pinger
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		chimw.Compress(compressionLevel),
	)
	if cfg.HTTP.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.HTTP.RequestTimeout))
	}
	r.NotFound(controllers.NotFound(d.Site))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg,
			controllers.HealthCheck{Name: "db", Pinger: d.DB},
			controllers.HealthCheck{Name: "redis", Pinger: d.Redis},
		))
	})

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/", controllers.Home(d.Site, d.Catalog))
	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ProductListing(d.Site, d.Catalog, d.Metrics))
		r.Get("/more", controllers.ProductMore(d.Site, d.Catalog, d.Metrics))
		r.Get("/{slug}", controllers.ProductDetail(d.Site, d.Catalog))
	})
	r.Route("/carousel", func(r chi.Router) {
		r.Get("/hero", controllers.HeroCarousel(d.Site))
		r.Get("/announcements", controllers.AnnouncementCarousel(d.Site))
	})
	r.Get("/contact", controllers.ContactForm(d.Site))
	r.Post("/contact", controllers.ContactSubmit(d.Site, d.Inquiries))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.HTTP.CORSOrigins))
		r.Get("/products", controllers.APIListProducts(d.Catalog, logg))
		r.Get("/products/{slug}", controllers.APIGetProduct(d.Catalog, logg))
		r.Get("/categories", controllers.APIListCategories(d.Catalog))
		r.Get("/settings", controllers.APISettings(d.Site.Settings))
		r.Post("/inquiries", controllers.APICreateInquiry(d.Inquiries, logg))
	})

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"admin_login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	).WithBlockedHandler(controllers.AdminLoginBlocked(d.Site))

	r.Route(middleware.AdminHomePath, func(r chi.Router) {
		r.Use(middleware.AdminGate(d.Admin, cfg.JWT.CookieName, logg))
		r.Get("/", controllers.AdminDashboard(d.Site))
		r.Get("/dashboard", controllers.AdminDashboard(d.Site))
		r.Get("/login", controllers.AdminLoginForm(d.Site))
		r.Post("/logout", controllers.AdminLogout(d.Site, d.Admin, cfg))

		login := controllers.AdminLogin(d.Site, d.Admin, cfg)
		if d.RateLimiter != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, d.RateLimiter, logg)).Post("/login", login)
		} else {
			r.Post("/login", login)
		}
		r.NotFound(controllers.NotFound(d.Site))
	})

	return r
}
