package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	_, ok := c.Get("a") // a is now most recent
	require.True(t, ok)
	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok, "b was least recently used")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_UpdateKeepsSingleEntry(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Set("a", 1)
	c.Set("a", 10)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c := NewLRU[string, int](3)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Remove("a")
	c.Remove("missing")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestLRU_ZeroCapacityHoldsOne(t *testing.T) {
	c := NewLRU[string, int](0)
	c.Set("a", 1)
	c.Set("b", 2)

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("b")
	assert.True(t, ok)
}

func TestLRU_EntriesExpire(t *testing.T) {
	clock := newClock()
	c := NewLRUWithClock[string, string](4, clock.now)

	c.SetUntil("oslo", "cloudy", clock.t.Add(time.Minute))
	c.Set("bergen", "rain")

	clock.advance(59 * time.Second)
	v, ok := c.Get("oslo")
	require.True(t, ok)
	assert.Equal(t, "cloudy", v)

	clock.advance(time.Second)
	_, ok = c.Get("oslo")
	assert.False(t, ok, "expiry instant is exclusive")
	assert.Equal(t, 1, c.Len(), "expired entry is dropped on read")

	_, ok = c.Get("bergen")
	assert.True(t, ok, "Set never expires")
}

func TestLRU_SetUntilPastRemovesKey(t *testing.T) {
	clock := newClock()
	c := NewLRUWithClock[string, int](2, clock.now)
	c.Set("a", 1)

	c.SetUntil("a", 2, clock.t.Add(-time.Second))

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestLRU_EvictsExpiredBeforeRecent(t *testing.T) {
	clock := newClock()
	c := NewLRUWithClock[string, int](2, clock.now)
	c.Set("old", 1)
	c.SetUntil("fresh", 2, clock.t.Add(time.Second))
	_, _ = c.Get("old")

	clock.advance(2 * time.Second)
	c.Set("new", 3)

	_, ok := c.Get("old")
	assert.True(t, ok, "the expired entry made room")
	_, ok = c.Get("new")
	assert.True(t, ok)
}

func TestLRU_Prune(t *testing.T) {
	clock := newClock()
	c := NewLRUWithClock[string, int](8, clock.now)
	for i := range 4 {
		c.SetUntil(strconv.Itoa(i), i, clock.t.Add(time.Duration(i+1)*time.Minute))
	}
	c.Set("forever", 99)

	clock.advance(2 * time.Minute)
	assert.Equal(t, 2, c.Prune())
	assert.Equal(t, 3, c.Len())
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := NewLRU[int, int](16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := (g*200 + i) % 32
				c.Set(key, i)
				_, _ = c.Get(key)
				if i%10 == 0 {
					c.Remove(key)
				}
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 16)
}
