package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClock(start time.Time) (func() time.Time, func(time.Duration)) {
	cur := start
	return func() time.Time { return cur }, func(d time.Duration) { cur = cur.Add(d) }
}

func TestSetThenGet(t *testing.T) {
	c := New[string](time.Minute, 10)
	c.Set("k", "v")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestMissingKey(t *testing.T) {
	c := New[string](time.Minute, 10)
	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New[int](time.Minute, 10)
	now, advance := newClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c.now = now

	c.Set("k", 7)
	advance(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	advance(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be evicted on read")
}

func TestReplaceRefreshesExpiry(t *testing.T) {
	c := New[int](time.Minute, 10)
	now, advance := newClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c.now = now

	c.Set("k", 1)
	advance(50 * time.Second)
	c.Set("k", 2)
	advance(50 * time.Second)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestLRUEviction(t *testing.T) {
	c := New[int](time.Minute, 2)
	c.Set("a", 1)
	c.Set("b", 2)

	// touch "a" so "b" becomes least recently used
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", 3)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently touched entry should be evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}
