package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	_, ok, err := c.Get(ctx, "aB3x9")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "aB3x9", "https://example.com"))
	v, ok, err := c.Get(ctx, "aB3x9")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", v)
}

func TestNew_FallsBackToMemory(t *testing.T) {
	c := New(nil, time.Minute)
	_, isMemory := c.(*MemoryCache)
	assert.True(t, isMemory)
}
