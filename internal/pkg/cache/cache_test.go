package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monthKey struct {
	employeeID string
	start      string
}

func newTestCache(ttl time.Duration) (*Cache[monthKey, string], *time.Time) {
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	c := New[monthKey, string](ttl)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	key := monthKey{employeeID: "EMP001", start: "2024-02-01"}

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, "first")
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "first", got)

	// Set replaces the previous value
	c.Set(key, "second")
	got, _ = c.Get(key)
	assert.Equal(t, "second", got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Expiry(t *testing.T) {
	c, now := newTestCache(time.Minute)
	key := monthKey{employeeID: "EMP001", start: "2024-02-01"}
	c.Set(key, "value")

	*now = now.Add(59 * time.Second)
	_, ok := c.Get(key)
	assert.True(t, ok)

	*now = now.Add(time.Second)
	_, ok = c.Get(key)
	assert.False(t, ok, "entry must expire at its deadline")

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 0, c.Len())
}

func TestCache_DeleteFunc(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set(monthKey{"EMP001", "2024-01-01"}, "a")
	c.Set(monthKey{"EMP001", "2024-02-01"}, "b")
	c.Set(monthKey{"EMP002", "2024-02-01"}, "c")

	removed := c.DeleteFunc(func(k monthKey) bool { return k.employeeID == "EMP001" })

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(monthKey{"EMP002", "2024-02-01"})
	assert.True(t, ok)
}

func TestCache_DisabledWithZeroTTL(t *testing.T) {
	c, _ := newTestCache(0)
	c.Set(monthKey{"EMP001", "2024-02-01"}, "value")

	_, ok := c.Get(monthKey{"EMP001", "2024-02-01"})
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[monthKey, int](time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := monthKey{employeeID: fmt.Sprintf("EMP%03d", i%5)}
			c.Set(key, i)
			c.Get(key)
			if i%10 == 0 {
				c.DeleteFunc(func(k monthKey) bool { return k == key })
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 5)
}
