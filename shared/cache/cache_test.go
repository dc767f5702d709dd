package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/laiba166-shaikh/AI-400-task-manager/infras/otel/mocks"
	"github.com/laiba166-shaikh/AI-400-task-manager/shared/cache"
)

func TestNewRedisCache_NilClientNeverHits(t *testing.T) {
	c := cache.NewRedisCache(nil, mocks.NewOtel())
	ctx := context.Background()

	assert.NoError(t, c.Save(ctx, "task:1", map[string]any{"id": 1}, 60))

	var out map[string]any
	err := c.Get(ctx, "task:1", &out)
	assert.True(t, errors.Is(err, cache.Nil))
	assert.Nil(t, out)

	assert.NoError(t, c.Delete(ctx, "task:1"))
	assert.NoError(t, c.Clear(ctx, "task:"))
}
