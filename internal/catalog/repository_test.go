package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/exclusivefashions/storefront/pkg/db/dbtest"
	"github.com/exclusivefashions/storefront/pkg/enums"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryListProductsFiltersAndSorts(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	heels := mustCreateCategory(t, conn, "heels", 1)
	bags := mustCreateCategory(t, conn, "bags", 2)

	mustCreateProduct(t, conn, productSeed{slug: "stiletto", category: &heels, price: "450.00", age: 3, onSale: true})
	mustCreateProduct(t, conn, productSeed{slug: "block-heel", category: &heels, price: "199.99", age: 1, isNew: true})
	mustCreateProduct(t, conn, productSeed{slug: "kitten-heel", category: &heels, price: "1250.00", age: 2})
	mustCreateProduct(t, conn, productSeed{slug: "tote", category: &bags, price: "89.00", age: 0, onSale: true})
	mustCreateProduct(t, conn, productSeed{slug: "uncategorised", price: "10.00", age: 5})

	t.Run("category by price ascending", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, BuildQuery(ListInput{Page: 1, Category: "heels", Sort: enums.SortPriceAsc}))
		require.NoError(t, err)
		assert.Equal(t, []string{"block-heel", "stiletto", "kitten-heel"}, slugsOf(rows))
		require.NotNil(t, rows[0].Category)
		assert.Equal(t, "heels", rows[0].Category.Slug)
	})

	t.Run("newest first by default", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, BuildQuery(ListInput{}))
		require.NoError(t, err)
		assert.Equal(t, []string{"tote", "block-heel", "kitten-heel", "stiletto", "uncategorised"}, slugsOf(rows))
	})

	t.Run("price descending", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, BuildQuery(ListInput{Sort: enums.SortPriceDesc}))
		require.NoError(t, err)
		assert.Equal(t, "kitten-heel", rows[0].Slug)
		assert.Equal(t, "uncategorised", rows[len(rows)-1].Slug)
	})

	t.Run("flags combine", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, BuildQuery(ListInput{OnSale: true}))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"tote", "stiletto"}, slugsOf(rows))

		rows, err = repo.ListProducts(ctx, BuildQuery(ListInput{OnSale: true, IsNew: true}))
		require.NoError(t, err)
		assert.Empty(t, rows)

		rows, err = repo.ListProducts(ctx, BuildQuery(ListInput{IsNew: true, Category: "heels"}))
		require.NoError(t, err)
		assert.Equal(t, []string{"block-heel"}, slugsOf(rows))
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		rows, err := repo.ListProducts(ctx, BuildQuery(ListInput{Category: "hats"}))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestRepositoryListProductsPages(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	for i := 0; i < 14; i++ {
		mustCreateProduct(t, conn, productSeed{slug: fmt.Sprintf("p-%02d", i), price: "100.00", age: i})
	}

	first, err := repo.ListProducts(ctx, BuildQuery(ListInput{Page: 1}))
	require.NoError(t, err)
	assert.Len(t, first, 12)
	assert.Equal(t, "p-00", first[0].Slug)

	second, err := repo.ListProducts(ctx, BuildQuery(ListInput{Page: 2}))
	require.NoError(t, err)
	assert.Equal(t, []string{"p-12", "p-13"}, slugsOf(second))

	third, err := repo.ListProducts(ctx, BuildQuery(ListInput{Page: 3}))
	require.NoError(t, err)
	assert.Empty(t, third)

	// equal prices fall back to id order, so pages never overlap
	byPrice1, err := repo.ListProducts(ctx, BuildQuery(ListInput{Page: 1, Sort: enums.SortPriceAsc}))
	require.NoError(t, err)
	byPrice2, err := repo.ListProducts(ctx, BuildQuery(ListInput{Page: 2, Sort: enums.SortPriceAsc}))
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, slug := range append(slugsOf(byPrice1), slugsOf(byPrice2)...) {
		assert.False(t, seen[slug], "duplicate %s across pages", slug)
		seen[slug] = true
	}
	assert.Len(t, seen, 14)
}

func TestRepositoryGetProductBySlug(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	heels := mustCreateCategory(t, conn, "heels", 1)
	product := mustCreateProduct(t, conn, productSeed{slug: "stiletto", category: &heels, price: "450.00"})
	mustAddMedia(t, conn, product.ID, "https://cdn.example.com/b.jpg", enums.MediaTypeImage, 2)
	mustAddMedia(t, conn, product.ID, "https://cdn.example.com/a.jpg", enums.MediaTypeImage, 0)
	mustAddMedia(t, conn, product.ID, "https://cdn.example.com/c.mp4", enums.MediaTypeVideo, 1)

	found, err := repo.GetProductBySlug(ctx, "stiletto")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
	assert.Equal(t, "heels", found.Category.Slug)
	require.Len(t, found.Media, 3)
	assert.Equal(t, "https://cdn.example.com/a.jpg", found.Media[0].URL)
	assert.Equal(t, "https://cdn.example.com/c.mp4", found.Media[1].URL)
	assert.Equal(t, []string{"7", "8"}, []string(found.Sizes))
	assert.True(t, found.PriceTTD.Equal(product.PriceTTD))

	_, err = repo.GetProductBySlug(ctx, "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestRepositoryListCategoriesAndFeatured(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	mustCreateCategory(t, conn, "sneakers", 3)
	mustCreateCategory(t, conn, "heels", 1)
	mustCreateCategory(t, conn, "bags", 2)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "heels", categories[0].Slug)
	assert.Equal(t, "bags", categories[1].Slug)
	assert.Equal(t, "sneakers", categories[2].Slug)

	mustCreateProduct(t, conn, productSeed{slug: "old-featured", price: "1.00", age: 10, featured: true})
	mustCreateProduct(t, conn, productSeed{slug: "new-featured", price: "1.00", age: 1, featured: true})
	mustCreateProduct(t, conn, productSeed{slug: "plain", price: "1.00", age: 0})

	featured, err := repo.ListFeatured(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"new-featured", "old-featured"}, slugsOf(featured))

	limited, err := repo.ListFeatured(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
