package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlimitedNeverBlocks(t *testing.T) {
	l := Unlimited()
	for i := 0; i < 100; i++ {
		require.True(t, l.Allow())
	}
	require.NoError(t, l.Wait(context.Background()))
}

func TestRequestCeilingAllowsOneBurst(t *testing.T) {
	l := NewRequestCeiling(60)

	assert.True(t, l.Allow(), "first request should pass")
	assert.False(t, l.Allow(), "second immediate request should be throttled")
}

func TestRequestCeilingWaitRespectsContext(t *testing.T) {
	l := NewRequestCeiling(1)
	require.True(t, l.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.Error(t, err)
}

func TestRequestCeilingWaitSucceeds(t *testing.T) {
	// 6000 per minute is one token every 10ms
	l := NewRequestCeiling(6000)
	require.True(t, l.Allow())

	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}
