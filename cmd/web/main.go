package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/exclusivefashions/storefront/api/controllers"
	"github.com/exclusivefashions/storefront/api/routes"
	"github.com/exclusivefashions/storefront/internal/admin"
	"github.com/exclusivefashions/storefront/internal/catalog"
	"github.com/exclusivefashions/storefront/internal/content"
	"github.com/exclusivefashions/storefront/internal/inquiries"
	"github.com/exclusivefashions/storefront/internal/rotator"
	"github.com/exclusivefashions/storefront/internal/settings"
	"github.com/exclusivefashions/storefront/internal/views"
	"github.com/exclusivefashions/storefront/pkg/auth/session"
	"github.com/exclusivefashions/storefront/pkg/config"
	"github.com/exclusivefashions/storefront/pkg/db"
	"github.com/exclusivefashions/storefront/pkg/instance"
	"github.com/exclusivefashions/storefront/pkg/logger"
	"github.com/exclusivefashions/storefront/pkg/metrics"
	"github.com/exclusivefashions/storefront/pkg/migrate"
	"github.com/exclusivefashions/storefront/pkg/redis"
	"github.com/exclusivefashions/storefront/pkg/security"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

const serviceName = "web"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "web server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, db.Options{UseSQLite: cfg.FeatureFlags.UseSQLite}, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewStorefrontMetrics(reg)

	site, err := content.Load(cfg.Content.Path)
	if err != nil {
		return err
	}

	catalogSvc, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), redisClient, recorder, logg, catalog.ServiceConfig{
		FeaturedLimit: cfg.Catalog.FeaturedLimit,
		CategoriesTTL: cfg.Cache.CategoriesTTL,
	})
	if err != nil {
		return err
	}

	inquirySvc, err := inquiries.NewService(inquiries.NewRepository(dbClient.DB()), logg)
	if err != nil {
		return err
	}

	adminSvc, err := admin.NewService(admin.ServiceParams{
		Users:     admin.NewRepository(dbClient.DB()),
		Sessions:  sessionManager,
		Hasher:    security.NewHasher(cfg.Password),
		JWTConfig: cfg.JWT,
		Logger:    logg,
	})
	if err != nil {
		return err
	}

	announcements := rotator.New(len(site.Announcements.Messages), site.Announcements.RotateInterval)
	hero := rotator.New(len(site.Hero.Slides), site.Hero.RotateInterval)
	announcements.Start(ctx)
	hero.Start(ctx)
	defer announcements.Close()
	defer hero.Close()

	markdown := content.NewRenderer()
	renderer, err := views.NewRenderer(markdown)
	if err != nil {
		return err
	}

	handler := routes.NewRouter(routes.Deps{
		Config: cfg,
		Logger: logg,
		Site: &controllers.Site{
			Settings:      settings.NewProvider(settings.NewRepository(dbClient.DB()), redisClient, cfg.Cache.SettingsTTL, recorder, logg),
			Content:       site,
			Views:         renderer,
			Markdown:      markdown,
			Announcements: announcements,
			Hero:          hero,
			Logger:        logg,
		},
		Catalog:     catalogSvc,
		Inquiries:   inquirySvc,
		Admin:       adminSvc,
		Metrics:     recorder,
		Gatherer:    reg,
		RateLimiter: redisClient,
		DB:          dbClient,
		Redis:       redisClient,
	})

	addr := ":" + cfg.App.Port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"dialect":  dbClient.Dialect(),
		"instance": instance.GetID(),
	})
	logg.Info(logCtx, "starting web server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.RequestTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
