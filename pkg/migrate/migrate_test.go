package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/exclusivefashions/storefront/pkg/migrate"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCatalogMigrationContainsSchemas(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("migrations", "postgres", "20250601090000_create_catalog_tables.sql"))
	require.NoError(t, err)
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS categories",
		"CREATE TABLE IF NOT EXISTS products",
		"price_ttd NUMERIC(10,2) NOT NULL",
		"CONSTRAINT products_slug_key UNIQUE (slug)",
		"CHECK (type IN ('image', 'video'))",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS product_media",
	}
	for _, sub := range checks {
		assert.Contains(t, content, sub)
	}
}

func TestSettingsMigrationSeedsDefaultRow(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("migrations", "postgres", "20250601090100_create_site_settings.sql"))
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "CHECK (id = 1)")
	assert.Contains(t, content, "'Exclusive Fashions Ltd'")
	assert.Contains(t, content, "'18681234567'")
	assert.Contains(t, content, "ON CONFLICT (id) DO NOTHING")
}

func TestValidateDir(t *testing.T) {
	require.NoError(t, migrate.ValidateDir("migrations"))
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	for _, dialect := range []string{migrate.DialectPostgres, migrate.DialectSQLite} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, dialect), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "postgres", "bad name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))

	err := migrate.ValidateDir(dir)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid migration filename"))
}

func TestCreateSQLMigrationWritesBothDialects(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 7, 1, 12, 30, 0, 0, time.UTC)

	paths, err := migrate.CreateSQLMigration(dir, "Add Product Badges!", now)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "postgres", "20250701123000_add_product_badges.sql"), paths[0])
	assert.Equal(t, filepath.Join(dir, "sqlite", "20250701123000_add_product_badges.sql"), paths[1])

	require.NoError(t, migrate.ValidateDir(dir))

	_, err = migrate.CreateSQLMigration(dir, "Add Product Badges!", now)
	assert.Error(t, err)

	_, err = migrate.CreateSQLMigration(dir, "!!!", now)
	assert.Error(t, err)
}

func TestRunSQLiteUpAndDown(t *testing.T) {
	goose.SetLogger(goose.NopLogger())

	conn, err := gorm.Open(sqlite.Open("file:migrate_run?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	require.NoError(t, migrate.Run(ctx, sqlDB, migrate.DialectSQLite, "up"))

	for _, table := range []string{"categories", "products", "product_media", "site_settings", "inquiries", "admin_users"} {
		assert.True(t, conn.Migrator().HasTable(table), "expected table %s", table)
	}

	require.NoError(t, migrate.MigrateToVersion(ctx, sqlDB, migrate.DialectSQLite, "20250601090000"))
	assert.False(t, conn.Migrator().HasTable("admin_users"))
	assert.True(t, conn.Migrator().HasTable("products"))
}

func TestRunRejectsUnknownDialect(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate_dialect?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)

	assert.Error(t, migrate.Run(context.Background(), sqlDB, "mysql", "up"))
}
