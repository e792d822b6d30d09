package catalog

import (
	"testing"
	"time"

	"github.com/exclusivefashions/storefront/pkg/db/models"
	"github.com/exclusivefashions/storefront/pkg/enums"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func mustCreateCategory(t *testing.T, db *gorm.DB, slug string, sortOrder int) models.Category {
	t.Helper()
	order := sortOrder
	category := models.Category{Name: slug, Slug: slug, SortOrder: &order, CreatedAt: baseTime}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category %s: %v", slug, err)
	}
	return category
}

type productSeed struct {
	slug     string
	category *models.Category
	price    string
	age      int
	onSale   bool
	isNew    bool
	featured bool
}

func mustCreateProduct(t *testing.T, db *gorm.DB, seed productSeed) models.Product {
	t.Helper()
	product := models.Product{
		Name:      "Product " + seed.slug,
		Slug:      seed.slug,
		PriceTTD:  decimal.RequireFromString(seed.price),
		OnSale:    seed.onSale,
		IsNew:     seed.isNew,
		Featured:  seed.featured,
		InStock:   true,
		Sizes:     pq.StringArray{"7", "8"},
		Colors:    pq.StringArray{"black"},
		CreatedAt: baseTime.Add(time.Duration(seed.age) * -time.Hour),
	}
	if seed.category != nil {
		id := seed.category.ID
		product.CategoryID = &id
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product %s: %v", seed.slug, err)
	}
	return product
}

func mustAddMedia(t *testing.T, db *gorm.DB, productID uuid.UUID, url string, kind enums.MediaType, order int) {
	t.Helper()
	media := models.ProductMedia{ProductID: productID, URL: url, Type: kind, SortOrder: order, CreatedAt: baseTime}
	if err := db.Create(&media).Error; err != nil {
		t.Fatalf("create media: %v", err)
	}
}

func slugsOf(rows []models.Product) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Slug)
	}
	return out
}
