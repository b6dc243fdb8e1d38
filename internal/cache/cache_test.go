package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New(time.Minute, 10)

	c.Set("k", "value")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestCache_Miss(t *testing.T) {
	c := New(time.Minute, 10)

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := New(time.Minute, 10)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("k", 1)
	_, ok := c.Get("k")
	require.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_EvictsLRU(t *testing.T) {
	c := New(time.Minute, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a") // a is now most recently used
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestCache_UpdateRefreshesEntry(t *testing.T) {
	c := New(time.Minute, 2)

	c.Set("k", 1)
	c.Set("k", 2)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, c.Len())
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("user-1", "job description", "resume")
	b := Key("user-1", "job description", "resume")
	other := Key("user-1", "job description", "cover")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
}
