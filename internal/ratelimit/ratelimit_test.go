package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowsUpToMax(t *testing.T) {
	l := New(time.Minute, 3)

	for i := 0; i < 3; i++ {
		res := l.Allow("client")
		require.True(t, res.Allowed, "call %d should be allowed", i+1)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res := l.Allow("client")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
}

func TestFreshWindowAfterBoundary(t *testing.T) {
	l := New(time.Minute, 1)
	cur := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return cur }

	require.True(t, l.Allow("client").Allowed)
	assert.False(t, l.Allow("client").Allowed)

	cur = cur.Add(time.Minute + time.Second)
	res := l.Allow("client")
	assert.True(t, res.Allowed, "call after window boundary gets a fresh bucket")
	assert.Equal(t, cur.Add(time.Minute), res.ResetAt)
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(time.Minute, 1)
	require.True(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
	assert.False(t, l.Allow("a").Allowed)
}
