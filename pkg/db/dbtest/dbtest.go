// Package dbtest opens throwaway sqlite databases carrying the production schema.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/exclusivefashions/storefront/pkg/migrate"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns an isolated in-memory database migrated with the sqlite migration set.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// the in-memory database lives as long as one connection stays open
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	goose.SetLogger(goose.NopLogger())
	if err := migrate.Run(context.Background(), sqlDB, migrate.DialectSQLite, "up"); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}
