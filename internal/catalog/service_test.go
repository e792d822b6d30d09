package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/exclusivefashions/storefront/pkg/db/models"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"github.com/exclusivefashions/storefront/pkg/logger"
	"github.com/exclusivefashions/storefront/pkg/metrics"
	"github.com/exclusivefashions/storefront/pkg/redis"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	products      []models.Product
	product       *models.Product
	categories    []models.Category
	err           error
	lastQuery     Query
	categoryCalls int
}

func (f *fakeReader) ListProducts(_ context.Context, q Query) ([]models.Product, error) {
	f.lastQuery = q
	return f.products, f.err
}

func (f *fakeReader) GetProductBySlug(_ context.Context, _ string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return f.product, nil
}

func (f *fakeReader) ListCategories(context.Context) ([]models.Category, error) {
	f.categoryCalls++
	return f.categories, f.err
}

func (f *fakeReader) ListFeatured(_ context.Context, limit int) ([]models.Product, error) {
	if len(f.products) > limit {
		return f.products[:limit], f.err
	}
	return f.products, f.err
}

type memoryCache struct {
	values map[string]string
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	return nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryCache) CacheKey(parts ...string) string {
	key := "sf:cache"
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

func newTestService(t *testing.T, repo Reader, cache *memoryCache) (Service, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	var c redis.Cache
	if cache != nil {
		c = cache
	}
	svc, err := NewService(repo, c, metrics.NewStorefrontMetrics(reg), logger.Nop(), ServiceConfig{CategoriesTTL: time.Minute})
	require.NoError(t, err)
	return svc, reg
}

func productRow(slug string) models.Product {
	return models.Product{ID: uuid.New(), Slug: slug, Name: slug, PriceTTD: decimal.NewFromInt(100)}
}

func TestServiceListProductsDegradesToEmpty(t *testing.T) {
	repo := &fakeReader{err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("connection refused"), "list products")}
	svc, reg := newTestService(t, repo, nil)

	result := svc.ListProducts(context.Background(), ListInput{Page: 2, Category: "heels"})

	assert.Empty(t, result.Products)
	assert.NotNil(t, result.Products)
	assert.False(t, result.HasMore)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, metrics.OutcomeFailed, result.Outcome)
	assert.Equal(t, 12, repo.lastQuery.Offset)

	count, err := testutil.GatherAndCount(reg, "storefront_fetch_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceListProductsHasMore(t *testing.T) {
	repo := &fakeReader{products: []models.Product{productRow("a"), productRow("b")}}
	svc, _ := newTestService(t, repo, nil)

	result := svc.ListProducts(context.Background(), ListInput{})
	assert.True(t, result.HasMore)
	assert.Equal(t, metrics.OutcomeOK, result.Outcome)
	assert.Equal(t, []string{"a", "b"}, []string{result.Products[0].Slug, result.Products[1].Slug})

	repo.products = nil
	result = svc.ListProducts(context.Background(), ListInput{Page: 3})
	assert.False(t, result.HasMore)
	assert.Equal(t, metrics.OutcomeEmpty, result.Outcome)
}

func TestServiceGetProductBySlug(t *testing.T) {
	row := productRow("stiletto")
	repo := &fakeReader{product: &row}
	svc, _ := newTestService(t, repo, nil)

	dto, err := svc.GetProductBySlug(context.Background(), "stiletto")
	require.NoError(t, err)
	assert.Equal(t, "stiletto", dto.Slug)

	repo.product = nil
	_, err = svc.GetProductBySlug(context.Background(), "missing")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.GetProductBySlug(context.Background(), "  ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	repo.err = pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("timeout"), "get product by slug")
	_, err = svc.GetProductBySlug(context.Background(), "stiletto")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestServiceListCategoriesUsesCache(t *testing.T) {
	repo := &fakeReader{categories: []models.Category{{ID: uuid.New(), Name: "Heels", Slug: "heels"}}}
	cache := &memoryCache{values: map[string]string{}}
	svc, _ := newTestService(t, repo, cache)

	first := svc.ListCategories(context.Background())
	second := svc.ListCategories(context.Background())

	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.categoryCalls)
	assert.Contains(t, cache.values, "sf:cache:categories")
}

func TestServiceListCategoriesFailureIsEmptyAndUncached(t *testing.T) {
	repo := &fakeReader{err: errors.New("down")}
	cache := &memoryCache{values: map[string]string{}}
	svc, _ := newTestService(t, repo, cache)

	assert.Empty(t, svc.ListCategories(context.Background()))
	assert.Empty(t, cache.values)
}

func TestServiceListFeaturedLimit(t *testing.T) {
	rows := make([]models.Product, 0, 10)
	for _, slug := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		rows = append(rows, productRow(slug))
	}
	svc, _ := newTestService(t, &fakeReader{products: rows}, nil)
	assert.Len(t, svc.ListFeatured(context.Background()), 8)

	failing, _ := newTestService(t, &fakeReader{err: errors.New("down")}, nil)
	assert.Empty(t, failing.ListFeatured(context.Background()))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "TT$ 450.00", FormatPrice(decimal.RequireFromString("450")))
	assert.Equal(t, "TT$ 1,250.50", FormatPrice(decimal.RequireFromString("1250.5")))
	assert.Equal(t, "TT$ 1,000,000.00", FormatPrice(decimal.NewFromInt(1000000)))
	assert.Equal(t, "TT$ 0.99", FormatPrice(decimal.RequireFromString("0.99")))
}

func TestProductDTOMediaHelpers(t *testing.T) {
	dto := NewProductDTO(&models.Product{
		Slug: "x",
		Media: []models.ProductMedia{
			{Type: "video", URL: "v.mp4", SortOrder: 0},
			{Type: "image", URL: "a.jpg", SortOrder: 1},
			{Type: "image", URL: "b.jpg", SortOrder: 2},
		},
	})
	require.NotNil(t, dto.Thumbnail())
	assert.Equal(t, "a.jpg", dto.Thumbnail().URL)
	assert.Len(t, dto.Images(), 2)
	assert.Len(t, dto.Videos(), 1)
	assert.Nil(t, NewProductDTO(&models.Product{}).Thumbnail())
}
