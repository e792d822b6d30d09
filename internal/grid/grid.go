// Package grid accumulates catalog pages for one filter signature.
//
// A Grid moves Idle -> InitialLoading -> Ready <-> LoadingMore. Every fetch
// carries the generation it was issued under; completions from an older
// generation, or arriving after Close, are dropped.
package grid

import (
	"context"
	"sync"

	"github.com/exclusivefashions/storefront/internal/catalog"
	"github.com/exclusivefashions/storefront/internal/filters"
	"github.com/exclusivefashions/storefront/pkg/metrics"
	"github.com/exclusivefashions/storefront/pkg/pagination"
)

// Terminal messages rendered under the grid.
const (
	EmptyMessage     = "No products found matching your criteria."
	ExhaustedMessage = "You've reached the end of the collection."
)

// Phase is the grid lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitialLoading
	PhaseReady
	PhaseLoadingMore
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialLoading:
		return "initial_loading"
	case PhaseReady:
		return "ready"
	case PhaseLoadingMore:
		return "loading_more"
	default:
		return "idle"
	}
}

// Fetcher loads one catalog page. It must not fail; failures surface as empty pages.
type Fetcher interface {
	ListProducts(ctx context.Context, input catalog.ListInput) catalog.ListResult
}

// Grid is the pagination state for a single listing view. Safe for concurrent use.
type Grid struct {
	fetcher Fetcher
	metrics *metrics.StorefrontMetrics

	mu         sync.Mutex
	state      filters.State
	signature  filters.Signature
	applied    bool
	resumed    bool
	items      []catalog.ProductDTO
	page       int
	hasMore    bool
	phase      Phase
	generation uint64
	inflight   bool
	done       chan struct{}
	cancel     context.CancelFunc
	outcome    string
	closed     bool
}

// New builds an idle grid. recorder may be nil.
func New(fetcher Fetcher, recorder *metrics.StorefrontMetrics) *Grid {
	return &Grid{
		fetcher: fetcher,
		metrics: recorder,
		page:    pagination.FirstPage,
		hasMore: true,
	}
}

// Apply starts over for state when its signature differs from the current one,
// or on the first call. It reports whether a page-1 fetch was issued.
func (g *Grid) Apply(ctx context.Context, state filters.State) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	sig := state.Signature()
	if g.closed || (g.applied && sig == g.signature) {
		return false
	}

	g.supersedeLocked()
	g.state = state
	g.signature = sig
	g.applied = true
	g.resumed = false
	g.items = nil
	g.page = pagination.FirstPage
	g.hasMore = true
	g.phase = PhaseInitialLoading
	g.startLocked(ctx, pagination.FirstPage, false)
	return true
}

// Resume positions the grid as Ready at page for state, holding no items.
// The next SentinelVisible fetches page+1.
func (g *Grid) Resume(state filters.State, page int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	g.supersedeLocked()
	g.state = state
	g.signature = state.Signature()
	g.applied = true
	g.resumed = true
	g.items = nil
	g.page = pagination.NormalizePage(page)
	g.hasMore = true
	g.phase = PhaseReady
}

// SentinelVisible requests the next page. Nothing happens unless the grid is
// Ready with more pages and no fetch is outstanding. At pagination.MaxPage the
// grid ends as exhausted instead of fetching.
func (g *Grid) SentinelVisible(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || g.phase != PhaseReady || !g.hasMore || g.inflight {
		return false
	}
	if pagination.NewPage(g.page).IsLast() {
		g.hasMore = false
		return false
	}
	g.phase = PhaseLoadingMore
	g.startLocked(ctx, g.page+1, true)
	return true
}

// Wait blocks until the outstanding fetch, if any, has been applied.
func (g *Grid) Wait(ctx context.Context) error {
	g.mu.Lock()
	done := g.done
	inflight := g.inflight
	g.mu.Unlock()

	if !inflight || done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any outstanding fetch and freezes the grid.
func (g *Grid) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	g.closed = true
	g.supersedeLocked()
}

// Snapshot copies the current state.
func (g *Grid) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	items := make([]catalog.ProductDTO, len(g.items))
	copy(items, g.items)
	return Snapshot{
		Items:   items,
		Page:    g.page,
		HasMore: g.hasMore,
		Phase:   g.phase,
		State:   g.state,
		Resumed: g.resumed,
		Outcome: g.outcome,
	}
}

// supersedeLocked invalidates the outstanding fetch so its completion is dropped.
func (g *Grid) supersedeLocked() {
	g.generation++
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	if g.inflight {
		g.inflight = false
		close(g.done)
	}
	g.done = nil
}

func (g *Grid) startLocked(ctx context.Context, page int, incremental bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.inflight = true
	g.done = make(chan struct{})

	gen := g.generation
	input := catalog.ListInput{
		Page:     page,
		Category: g.state.Category,
		OnSale:   g.state.OnSale,
		IsNew:    g.state.IsNew,
		Sort:     g.signature.Sort,
	}
	go func() {
		result := g.fetcher.ListProducts(fetchCtx, input)
		g.complete(gen, incremental, result)
	}()
}

func (g *Grid) complete(gen uint64, incremental bool, result catalog.ListResult) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || gen != g.generation {
		g.metrics.IncStaleResult()
		return
	}

	if incremental {
		g.items = append(g.items, result.Products...)
		g.page++
	} else {
		g.items = append([]catalog.ProductDTO(nil), result.Products...)
		g.page = pagination.FirstPage
	}
	g.hasMore = len(result.Products) > 0
	g.outcome = result.Outcome
	g.phase = PhaseReady

	g.inflight = false
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	close(g.done)
	g.done = nil
}
