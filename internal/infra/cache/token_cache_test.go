package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey_HidesToken(t *testing.T) {
	k := cacheKey("secret-token")

	assert.True(t, strings.HasPrefix(k, tokenCachePrefix))
	assert.NotContains(t, k, "secret-token")
	assert.Equal(t, k, cacheKey("secret-token"))
	assert.NotEqual(t, k, cacheKey("other"))
}

func TestNopTokenCache(t *testing.T) {
	var c TokenCache = NopTokenCache{}
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", 1))
	_, found, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Delete(ctx, "k"))
}
