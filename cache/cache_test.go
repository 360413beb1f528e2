package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/cache"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/config"
)

func TestCache_PutGetRoundTrip(t *testing.T) {
	c, err := cache.New(4)
	require.NoError(t, err)

	key := cache.Key("SELECT 1", config.Default())
	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Put(key, cache.Entry{Dax: "EVALUATE ROW(\"Value\", 0)", IR: &ir.Query{}})
	entry, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "EVALUATE ROW(\"Value\", 0)", entry.Dax)
	assert.Equal(t, 1, c.Len())
}

func TestCache_KeyDiffersOnConfigChange(t *testing.T) {
	src := "SELECT {[Measures].[Sales Amount]} ON 0 FROM [Adventure Works]"
	a := config.Default()
	b := config.Default()
	b.Dax.IndentSize = 2

	assert.NotEqual(t, cache.Key(src, a), cache.Key(src, b))
	assert.Equal(t, cache.Key(src, a), cache.Key(src, a))
}

func TestCache_NilCacheIsAlwaysMiss(t *testing.T) {
	var c *cache.Cache
	_, ok := c.Get("anything")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	c.Put("anything", cache.Entry{}) // must not panic
}

func TestNew_DefaultSizeUsedWhenNonPositive(t *testing.T) {
	c, err := cache.New(0)
	require.NoError(t, err)
	require.NotNil(t, c)
}
