package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/exclusivefashions/storefront/pkg/db/models"
	"github.com/exclusivefashions/storefront/pkg/enums"
	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reader is the read surface the catalog service depends on.
type Reader interface {
	ListProducts(ctx context.Context, q Query) ([]models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Product, error)
}

// Repository reads products and categories.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func withCategoryAndMedia(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("created_at ASC")
		})
}

// ListProducts returns one page of products matching q.
func (r *Repository) ListProducts(ctx context.Context, q Query) ([]models.Product, error) {
	qb := withCategoryAndMedia(r.db.WithContext(ctx).Model(&models.Product{}))

	if q.CategorySlug != "" {
		qb = qb.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", q.CategorySlug)
	}
	if q.OnSaleOnly {
		qb = qb.Where("products.on_sale = ?", true)
	}
	if q.NewOnly {
		qb = qb.Where("products.is_new = ?", true)
	}

	var rows []models.Product
	err := qb.
		Order(orderBy(q.Order)).
		Order("products.id ASC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&rows).
		Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("list products (category=%q offset=%d)", q.CategorySlug, q.Offset),
		)
	}
	return rows, nil
}

func orderBy(order enums.SortOrder) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Table: "products", Name: order.Field},
		Desc:   order.Direction == enums.SortDescending,
	}
}

// GetProductBySlug loads a product with its category and ordered media.
func (r *Repository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := withCategoryAndMedia(r.db.WithContext(ctx)).
		Where("slug = ?", slug).
		First(&product).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get product by slug")
	}
	return &product, nil
}

// ListCategories returns all categories in display order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

// ListFeatured returns the newest featured products.
func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := withCategoryAndMedia(r.db.WithContext(ctx)).
		Where("featured = ?", true).
		Order("created_at DESC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	return rows, nil
}
