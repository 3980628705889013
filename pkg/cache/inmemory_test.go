package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetAfterSet(t *testing.T) {
	c := NewCache(time.Minute, -1)

	c.Set("quote_AAPL", 190.5, DefaultExpiration)

	got, ok := GetFromCache[float64](c, "quote_AAPL")
	require.True(t, ok)
	assert.Equal(t, 190.5, got)
}

func TestCache_Absent(t *testing.T) {
	c := NewCache(time.Minute, -1)

	_, ok := c.Get("quote_MSFT")
	assert.False(t, ok)
}

func TestCache_StaleAfterTTL(t *testing.T) {
	c := NewCache(30*time.Millisecond, -1)

	c.Set("market_news", []string{"a"}, DefaultExpiration)
	time.Sleep(60 * time.Millisecond)

	_, ok := c.Get("market_news")
	assert.False(t, ok, "entry older than the TTL must be treated as absent")

	c.Set("market_news", []string{"b"}, DefaultExpiration)
	got, ok := GetFromCache[[]string](c, "market_news")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, got)
}

func TestCache_OverwriteRestartsTTL(t *testing.T) {
	c := NewCache(80*time.Millisecond, -1)

	c.Set("k", 1, DefaultExpiration)
	time.Sleep(50 * time.Millisecond)
	c.Set("k", 2, DefaultExpiration)
	time.Sleep(50 * time.Millisecond)

	got, ok := GetFromCache[int](c, "k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestGetFromCache_TypeMismatch(t *testing.T) {
	c := NewCache(time.Minute, -1)
	c.Set("k", "not a number", DefaultExpiration)

	got, ok := GetFromCache[int](c, "k")
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestCache_DeleteAndFlush(t *testing.T) {
	c := NewCache(time.Minute, -1)
	c.Set("a", 1, DefaultExpiration)
	c.Set("b", 2, DefaultExpiration)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Flush()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache(time.Minute, -1)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("quote_%d", i%5)
			c.Set(key, i, DefaultExpiration)
			_, _ = c.Get(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		_, ok := c.Get(fmt.Sprintf("quote_%d", i))
		assert.True(t, ok)
	}
}
