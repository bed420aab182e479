// Package serial provides the single-writer gate that gives every public
// store operation one-transaction-at-a-time semantics over the shared world
// state. Cross-store operations (credential issuance checks proofs before
// writing) run entirely inside one gate acquisition, so no caller ever
// observes a half-applied operation.
package serial

import (
	"context"
	"sync"
)

// Gate serializes operations across all stores that share it.
type Gate struct {
	mu sync.Mutex
}

// New creates a gate. All three stores must share a single instance.
func New() *Gate {
	return &Gate{}
}

// Do runs fn while holding the gate. The context is checked before entering
// so an already-cancelled request does not take the lock.
func (g *Gate) Do(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn()
}
