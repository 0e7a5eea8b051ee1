package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"us-two/internal/config"
)

func testStore(t *testing.T) *BlobStore {
	t.Helper()
	store, err := NewBlobStore(context.Background(), config.StorageConfig{
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		Bucket:    "memories",
		AccessKey: "test",
		SecretKey: "test",
		PublicURL: "http://localhost:9000/memories/",
	})
	require.NoError(t, err)
	return store
}

func TestObjectKeyIsTimeDerivedAndKeepsExtension(t *testing.T) {
	now := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

	key := ObjectKey(now, "Holiday Photo.JPG")

	assert.True(t, strings.HasPrefix(key, "2025/03/"), "key %q", key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), "key %q", key)
	// The same keys serve memories and backgrounds alike
	assert.Regexp(t, `^2025/03/\d+_[0-9a-f]{8}\.jpg$`, key)
}

func TestObjectKeyWithoutExtension(t *testing.T) {
	key := ObjectKey(time.Now(), "noext")
	assert.NotContains(t, key, ".")
}

func TestObjectKeysAreUnique(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		key := ObjectKey(now, "a.png")
		assert.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}

func TestPublicURLJoin(t *testing.T) {
	store := testStore(t)
	assert.Equal(t, "http://localhost:9000/memories/2025/03/x.png", store.PublicURL("2025/03/x.png"))
}

func TestKeyFromURL(t *testing.T) {
	store := testStore(t)

	key, ok := store.KeyFromURL("http://localhost:9000/memories/2025/03/x.png")
	assert.True(t, ok)
	assert.Equal(t, "2025/03/x.png", key)

	_, ok = store.KeyFromURL("https://images.unsplash.com/photo-123")
	assert.False(t, ok, "external URLs are not ours to delete")
}
