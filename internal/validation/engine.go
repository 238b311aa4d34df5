package validation

import (
	"time"

	"govledger/internal/budget"
)

// Engine runs the checks that depend on shared configuration: the moment
// orders, the open statuses and the registration window of a budget.Catalog.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	catalog *budget.Catalog
	expense budget.Sequence
	revenue budget.Sequence
	now     func() time.Time
}

type Option func(e *Engine)

// WithClock sets the source of "today" for the asset registration deadline.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine builds an Engine over catalog. A nil catalog selects the
// built-in one.
func NewEngine(catalog *budget.Catalog, opts ...Option) *Engine {
	if catalog == nil {
		catalog = budget.DefaultCatalog()
	}
	e := &Engine{
		catalog: catalog,
		expense: catalog.Expense(),
		revenue: catalog.Revenue(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine was built from.
func (e *Engine) Catalog() *budget.Catalog {
	return e.catalog
}

// Now returns the engine's notion of the current time.
func (e *Engine) Now() time.Time {
	return e.now()
}
