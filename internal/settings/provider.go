package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/exclusivefashions/storefront/pkg/db/models"
	"github.com/exclusivefashions/storefront/pkg/logger"
	"github.com/exclusivefashions/storefront/pkg/metrics"
	"github.com/exclusivefashions/storefront/pkg/redis"
	"gorm.io/gorm"
)

const operationGetSettings = "get_settings"

// Store loads the persisted settings row.
type Store interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
}

// Provider serves settings with a read-through cache. Get never fails.
type Provider struct {
	store   Store
	cache   redis.Cache
	ttl     time.Duration
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewProvider wires the provider. cache and recorder may be nil; a zero ttl disables caching.
func NewProvider(store Store, cache redis.Cache, ttl time.Duration, recorder *metrics.StorefrontMetrics, logg *logger.Logger) *Provider {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Provider{
		store:   store,
		cache:   cache,
		ttl:     ttl,
		metrics: recorder,
		logg:    logg,
		now:     time.Now,
	}
}

// Get returns the current settings, falling back to Default on any failure.
func (p *Provider) Get(ctx context.Context) Result {
	if cached, ok := p.fromCache(ctx); ok {
		return p.served(Result{Settings: cached, Source: SourceCache})
	}

	if p.store == nil {
		return p.served(Result{Settings: Default(), Source: SourceDefault})
	}

	started := p.now()
	row, err := p.store.Get(ctx)
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		outcome = metrics.OutcomeEmpty
	case err != nil:
		outcome = metrics.OutcomeFailed
	}
	p.metrics.ObserveFetch(operationGetSettings, outcome, p.now().Sub(started))

	if err != nil {
		if outcome == metrics.OutcomeEmpty {
			p.logg.Warn(ctx, "settings.row_missing")
		} else {
			p.logg.Error(ctx, "settings.load_failed", err)
		}
		return p.served(Result{Settings: Default(), Source: SourceDefault})
	}

	current := FromModel(row)
	p.toCache(ctx, current)
	return p.served(Result{Settings: current, Source: SourceDatabase})
}

// Invalidate drops the cached copy.
func (p *Provider) Invalidate(ctx context.Context) error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Del(ctx, p.cache.CacheKey("site_settings"))
}

func (p *Provider) served(result Result) Result {
	p.metrics.IncSettingsSource(string(result.Source))
	return result
}

func (p *Provider) fromCache(ctx context.Context) (Settings, bool) {
	if p.cache == nil || p.ttl <= 0 {
		return Settings{}, false
	}
	raw, err := p.cache.Get(ctx, p.cache.CacheKey("site_settings"))
	if err != nil {
		if !redis.IsMiss(err) {
			p.logg.Warn(p.logg.WithField(ctx, "error", err.Error()), "settings.cache_read_failed")
		}
		return Settings{}, false
	}
	var out Settings
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Settings{}, false
	}
	return out, true
}

func (p *Provider) toCache(ctx context.Context, current Settings) {
	if p.cache == nil || p.ttl <= 0 {
		return
	}
	payload, err := json.Marshal(current)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, p.cache.CacheKey("site_settings"), payload, p.ttl); err != nil {
		p.logg.Warn(p.logg.WithField(ctx, "error", err.Error()), "settings.cache_write_failed")
	}
}
