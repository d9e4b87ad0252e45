/*
engine.go - Engine construction and shared plumbing

PURPOSE:
  The Engine bundles the store with a clock and an ID generator so every
  operation shares the same time source. Tests inject a fixed clock to pin
  due dates and scheduled dates.

USAGE:
  store, _ := sqlite.New("./hris.db")
  eng := onboarding.New(store)
  res, err := eng.Initialize(ctx, onboarding.InitializeInput{...})
*/
package onboarding

import (
	"time"

	"github.com/google/uuid"
)

// Engine drives the phased onboarding workflow over a TxStore.
type Engine struct {
	store TxStore
	now   func() time.Time
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source; used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides entity ID generation; used by tests.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// New creates an Engine over the given store.
func New(store TxStore, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the underlying store for read-only route plumbing
// (document listings, workflow admin reads).
func (e *Engine) Store() TxStore { return e.store }
