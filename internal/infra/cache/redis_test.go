package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type cachedPackage struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, url)
	require.NoError(t, err)
	defer client.Close()

	c := NewRedisCache(client, "test:"+uuid.NewString()+":", logger.Nop(), WithOperationTimeout(time.Second))

	var got []cachedPackage
	assert.ErrorIs(t, c.Get(ctx, "catalog", &got), ErrCacheMiss)

	want := []cachedPackage{{ID: 1, Name: "Mini", Price: 20000}}
	require.NoError(t, c.Save(ctx, "catalog", want, time.Minute))
	require.NoError(t, c.Get(ctx, "catalog", &got))
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, "catalog"))
	assert.ErrorIs(t, c.Get(ctx, "catalog", &got), ErrCacheMiss)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "not-a-url")
	assert.ErrorIs(t, err, ErrConnect)
}
