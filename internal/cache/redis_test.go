package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogKey(t *testing.T) {
	assert.Equal(t, "catalog:2024.06.1:heroes", CatalogKey("2024.06.1", "heroes"))
	assert.Equal(t, "catalog:2024.06.1:", CatalogPrefix("2024.06.1"))
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-redis-url")
	assert.ErrorContains(t, err, "invalid redis url")
}
