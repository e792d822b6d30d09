package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/exclusivefashions/storefront/pkg/errors"
	"github.com/exclusivefashions/storefront/pkg/logger"
	"github.com/exclusivefashions/storefront/pkg/metrics"
	"github.com/exclusivefashions/storefront/pkg/redis"
)

// Metric operation labels.
const (
	OperationListProducts   = "list_products"
	OperationGetProduct     = "get_product"
	OperationListCategories = "list_categories"
	OperationListFeatured   = "list_featured"
)

const defaultFeaturedLimit = 8

// Service is the storefront read surface. Listing reads never fail: storage errors
// are logged, counted and replaced by empty results.
type Service interface {
	ListProducts(ctx context.Context, input ListInput) ListResult
	GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	ListCategories(ctx context.Context) []CategoryDTO
	ListFeatured(ctx context.Context) []ProductDTO
}

// ListResult is one page of the listing.
type ListResult struct {
	Products []ProductDTO `json:"products"`
	Page     int          `json:"page"`
	HasMore  bool         `json:"has_more"`
	Outcome  string       `json:"-"`
}

// ServiceConfig tunes the catalog service.
type ServiceConfig struct {
	FeaturedLimit int
	CategoriesTTL time.Duration
}

type service struct {
	repo    Reader
	cache   redis.Cache
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
	cfg     ServiceConfig
	now     func() time.Time
}

// NewService constructs the catalog service. cache and recorder may be nil.
func NewService(repo Reader, cache redis.Cache, recorder *metrics.StorefrontMetrics, logg *logger.Logger, cfg ServiceConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.FeaturedLimit <= 0 {
		cfg.FeaturedLimit = defaultFeaturedLimit
	}
	return &service{
		repo:    repo,
		cache:   cache,
		metrics: recorder,
		logg:    logg,
		cfg:     cfg,
		now:     time.Now,
	}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListInput) ListResult {
	q := BuildQuery(input)
	started := s.now()

	rows, err := s.repo.ListProducts(ctx, q)
	outcome := metrics.OutcomeFor(err, len(rows))
	s.metrics.ObserveFetch(OperationListProducts, outcome, s.now().Sub(started))

	result := ListResult{Page: q.PageNumber(), Outcome: outcome, Products: []ProductDTO{}}
	if err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"category": q.CategorySlug,
			"offset":   q.Offset,
			"order":    q.Order.Field + " " + string(q.Order.Direction),
		})
		s.logg.Error(ctx, "catalog.list_products.failed", err)
		return result
	}

	result.Products = NewProductDTOs(rows)
	result.HasMore = len(rows) > 0
	return result
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	started := s.now()
	product, err := s.repo.GetProductBySlug(ctx, slug)
	outcome := metrics.OutcomeOK
	switch {
	case pkgerrors.IsCode(err, pkgerrors.CodeNotFound):
		outcome = metrics.OutcomeEmpty
	case err != nil:
		outcome = metrics.OutcomeFailed
	}
	s.metrics.ObserveFetch(OperationGetProduct, outcome, s.now().Sub(started))

	if err != nil {
		if outcome == metrics.OutcomeFailed {
			s.logg.Error(s.logg.WithField(ctx, "slug", slug), "catalog.get_product.failed", err)
		}
		return nil, err
	}
	dto := NewProductDTO(product)
	return &dto, nil
}

func (s *service) ListCategories(ctx context.Context) []CategoryDTO {
	key := s.categoriesCacheKey()
	if cached, ok := s.cachedCategories(ctx, key); ok {
		return cached
	}

	started := s.now()
	rows, err := s.repo.ListCategories(ctx)
	s.metrics.ObserveFetch(OperationListCategories, metrics.OutcomeFor(err, len(rows)), s.now().Sub(started))
	if err != nil {
		s.logg.Error(ctx, "catalog.list_categories.failed", err)
		return []CategoryDTO{}
	}

	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewCategoryDTO(&rows[i]))
	}
	s.storeCategories(ctx, key, out)
	return out
}

func (s *service) ListFeatured(ctx context.Context) []ProductDTO {
	started := s.now()
	rows, err := s.repo.ListFeatured(ctx, s.cfg.FeaturedLimit)
	s.metrics.ObserveFetch(OperationListFeatured, metrics.OutcomeFor(err, len(rows)), s.now().Sub(started))
	if err != nil {
		s.logg.Error(ctx, "catalog.list_featured.failed", err)
		return []ProductDTO{}
	}
	return NewProductDTOs(rows)
}

func (s *service) categoriesCacheKey() string {
	if s.cache == nil {
		return ""
	}
	return s.cache.CacheKey("categories")
}

func (s *service) cachedCategories(ctx context.Context, key string) ([]CategoryDTO, bool) {
	if s.cache == nil || s.cfg.CategoriesTTL <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !redis.IsMiss(err) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog.categories_cache.read_failed")
		}
		return nil, false
	}
	var out []CategoryDTO
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logg.Warn(ctx, "catalog.categories_cache.decode_failed")
		return nil, false
	}
	return out, true
}

func (s *service) storeCategories(ctx context.Context, key string, categories []CategoryDTO) {
	if s.cache == nil || s.cfg.CategoriesTTL <= 0 || len(categories) == 0 {
		return
	}
	payload, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cfg.CategoriesTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog.categories_cache.write_failed")
	}
}
