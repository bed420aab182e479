package blockclock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haven/pkg/domain"
)

func TestCounter(t *testing.T) {
	c := NewCounter(10)
	assert.Equal(t, domain.BlockHeight(10), c.Height())

	c.Advance(5)
	assert.Equal(t, domain.BlockHeight(15), c.Height())

	c.Set(100)
	assert.Equal(t, domain.BlockHeight(100), c.Height())
}

func TestEpoch(t *testing.T) {
	t.Run("height grows with elapsed time", func(t *testing.T) {
		e := NewEpoch(time.Now().Add(-10*time.Second), time.Second)
		h := e.Height()
		assert.GreaterOrEqual(t, uint64(h), uint64(9))
	})

	t.Run("pre-genesis clamps to zero", func(t *testing.T) {
		e := NewEpoch(time.Now().Add(time.Hour), time.Second)
		assert.Equal(t, domain.BlockHeight(0), e.Height())
	})
}

func TestContextOverride(t *testing.T) {
	src := NewCounter(7)

	t.Run("falls back to source", func(t *testing.T) {
		assert.Equal(t, domain.BlockHeight(7), At(context.Background(), src))
	})

	t.Run("context value wins", func(t *testing.T) {
		ctx := WithHeight(context.Background(), 42)
		assert.Equal(t, domain.BlockHeight(42), At(ctx, src))
	})
}

func TestMiddleware(t *testing.T) {
	src := NewCounter(33)
	var seen domain.BlockHeight

	handler := Middleware(src)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Advance mid-request; the captured height must not move.
		src.Advance(1)
		seen = At(r.Context(), src)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, domain.BlockHeight(33), seen)
}
