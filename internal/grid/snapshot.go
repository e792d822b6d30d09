package grid

import (
	"github.com/exclusivefashions/storefront/internal/catalog"
	"github.com/exclusivefashions/storefront/internal/filters"
)

// Snapshot is a point-in-time copy of a grid.
type Snapshot struct {
	Items   []catalog.ProductDTO
	Page    int
	HasMore bool
	Phase   Phase
	State   filters.State
	// Resumed is set when the grid continued from a page rendered elsewhere.
	Resumed bool
	Outcome string
}

// Loading reports an outstanding fetch.
func (s Snapshot) Loading() bool {
	return s.Phase == PhaseInitialLoading || s.Phase == PhaseLoadingMore
}

// Empty is the terminal state of a filter combination with no products at all.
func (s Snapshot) Empty() bool {
	return s.Phase == PhaseReady && !s.HasMore && len(s.Items) == 0 && !s.Resumed
}

// Exhausted is the terminal state after the last page was reached.
func (s Snapshot) Exhausted() bool {
	return s.Phase == PhaseReady && !s.HasMore && (len(s.Items) > 0 || s.Resumed)
}

// Message is the terminal text to show under the grid, if any.
func (s Snapshot) Message() string {
	switch {
	case s.Empty():
		return EmptyMessage
	case s.Exhausted():
		return ExhaustedMessage
	default:
		return ""
	}
}
