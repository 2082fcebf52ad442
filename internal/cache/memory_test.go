package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliciae/discovery-core/internal/config"
)

type view struct {
	Names []string `json:"names"`
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	var got view
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "k", view{Names: []string{"appam"}}, time.Minute))
	hit, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"appam"}, got.Names)

	require.NoError(t, c.Delete(ctx, "k", "missing"))
	hit, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", view{}, time.Minute))

	now = now.Add(59 * time.Second)
	hit, err := c.Get(ctx, "k", &view{})
	require.NoError(t, err)
	assert.True(t, hit)

	now = now.Add(time.Second)
	hit, err = c.Get(ctx, "k", &view{})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNewFallsBackToMemory(t *testing.T) {
	c, err := New(config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)
	assert.NoError(t, c.Close())
}
