package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/exclusivefashions/storefront/internal/admin"
	"github.com/exclusivefashions/storefront/pkg/auth/session"
	"github.com/exclusivefashions/storefront/pkg/config"
	"github.com/exclusivefashions/storefront/pkg/db"
	"github.com/exclusivefashions/storefront/pkg/enums"
	"github.com/exclusivefashions/storefront/pkg/logger"
	"github.com/exclusivefashions/storefront/pkg/redis"
	"github.com/exclusivefashions/storefront/pkg/security"
	"github.com/joho/godotenv"
)

const (
	passwordEnv        = "STOREFRONT_ADMIN_PASSWORD"
	tempPasswordLength = 20
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "create-admin"})

	_ = godotenv.Load()

	email := flag.String("email", "", "admin email address")
	role := flag.String("role", string(enums.AdminRoleOwner), "admin role: owner|staff")
	generate := flag.Bool("generate", false, "generate a temporary password and print it")
	flag.Parse()

	password := os.Getenv(passwordEnv)
	if *generate {
		var err error
		password, err = security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to generate password: %v\n", err)
			os.Exit(1)
		}
	}
	if *email == "" || password == "" {
		fmt.Fprintf(os.Stderr, "usage: %s=<password> create-admin -email <email> [-role owner|staff] [-generate]\n", passwordEnv)
		os.Exit(2)
	}
	parsedRole, err := enums.ParseAdminRole(*role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid role: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "create-admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, db.Options{UseSQLite: cfg.FeatureFlags.UseSQLite}, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer redisClient.Close()

	sessions, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(ctx, logg, "session manager", err)

	svc, err := admin.NewService(admin.ServiceParams{
		Users:     admin.NewRepository(dbClient.DB()),
		Sessions:  sessions,
		Hasher:    security.NewHasher(cfg.Password),
		JWTConfig: cfg.JWT,
		Logger:    logg,
	})
	requireResource(ctx, logg, "admin service", err)

	created, err := svc.EnsureAccount(ctx, *email, password, parsedRole)
	if err != nil {
		logg.Error(ctx, "failed to save admin account", err)
		os.Exit(1)
	}
	if created {
		fmt.Println("created admin account:", *email)
	} else {
		fmt.Println("updated admin account:", *email)
	}
	if *generate {
		fmt.Println("temporary password:", password)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
