// Package blockclock provides the block-height clock used for issuance,
// expiry, and enrollment windows. All operations within a single request use
// the same height, and expiry is always computed lazily from the height read
// at query time - validity can flip from true to false purely because the
// chain advanced, without any record mutation.
package blockclock

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"haven/pkg/domain"
)

// Source reports the current block height.
type Source interface {
	Height() domain.BlockHeight
}

type contextKeyHeight struct{}

// Middleware captures the height at the start of the request and stores it in
// the context so every check within the request sees a consistent height.
func Middleware(src Source) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithHeight(r.Context(), src.Height())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// At retrieves the request-scoped height from context, falling back to the
// source for non-HTTP contexts like seeding, CLI tools, and tests.
func At(ctx context.Context, src Source) domain.BlockHeight {
	if h, ok := ctx.Value(contextKeyHeight{}).(domain.BlockHeight); ok {
		return h
	}
	return src.Height()
}

// WithHeight injects a specific height into a context.
func WithHeight(ctx context.Context, h domain.BlockHeight) context.Context {
	return context.WithValue(ctx, contextKeyHeight{}, h)
}

// Epoch derives the height from wall-clock time: one block per interval since
// genesis. It needs no background task; the height is a pure function of
// "now", matching how expiry is defined.
type Epoch struct {
	Genesis  time.Time
	Interval time.Duration
}

// NewEpoch creates a wall-clock height source starting at height 0.
func NewEpoch(genesis time.Time, interval time.Duration) *Epoch {
	return &Epoch{Genesis: genesis, Interval: interval}
}

func (e *Epoch) Height() domain.BlockHeight {
	elapsed := time.Since(e.Genesis)
	if elapsed < 0 || e.Interval <= 0 {
		return 0
	}
	return domain.BlockHeight(elapsed / e.Interval)
}

// Counter is a manually advanced height source for tests and local dev.
type Counter struct {
	height atomic.Uint64
}

// NewCounter creates a counter at the given starting height.
func NewCounter(start domain.BlockHeight) *Counter {
	c := &Counter{}
	c.height.Store(uint64(start))
	return c
}

func (c *Counter) Height() domain.BlockHeight {
	return domain.BlockHeight(c.height.Load())
}

// Advance moves the height forward by n blocks and returns the new height.
func (c *Counter) Advance(n uint64) domain.BlockHeight {
	return domain.BlockHeight(c.height.Add(n))
}

// Set jumps to an absolute height. Heights never move backward in
// production; Set exists for test setup only.
func (c *Counter) Set(h domain.BlockHeight) {
	c.height.Store(uint64(h))
}
