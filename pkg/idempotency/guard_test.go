package idempotency

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuard(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	g := NewMemoryGuard(time.Minute)
	g.now = func() time.Time { return clock }

	ok, err := g.Claim(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = g.Claim(ctx, "k1")
	assert.False(t, ok, "second claim within ttl")

	ok, _ = g.Claim(ctx, "k2")
	assert.True(t, ok, "keys are independent")

	require.NoError(t, g.Release(ctx, "k1"))
	ok, _ = g.Claim(ctx, "k1")
	assert.True(t, ok, "released keys can be claimed again")

	clock = clock.Add(time.Minute)
	ok, _ = g.Claim(ctx, "k2")
	assert.True(t, ok, "expired keys can be claimed again")
}

func TestMemoryGuardConcurrentClaims(t *testing.T) {
	g := NewMemoryGuard(time.Minute)
	var wins atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := g.Claim(context.Background(), "same"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}
