package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "property/images/H000001_12.webp", PropertyImageKey("H000001", 12, "webp"))

	k := ProfilePictureKey(3, "webp")
	assert.True(t, strings.HasPrefix(k, "profile_pics/images/3_"))
	assert.True(t, strings.HasSuffix(k, ".webp"))
	assert.NotEqual(t, k, ProfilePictureKey(3, "webp"))
}

func TestValidKey(t *testing.T) {
	assert.True(t, validKey("property/images/a.webp"))
	for _, k := range []string{"", "/abs", "a/../b", "a//b", "./a"} {
		assert.False(t, validKey(k), k)
	}
}

func TestLocalStorage(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root, "/media/")
	ctx := context.Background()
	key := PropertyImageKey("A000001", 1, "webp")

	require.NoError(t, s.Put(ctx, key, "image/webp", []byte("blob")))

	data, err := os.ReadFile(filepath.Join(root, "property", "images", "A000001_1.webp"))
	require.NoError(t, err)
	assert.Equal(t, "blob", string(data))

	url, err := s.URL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "/media/property/images/A000001_1.webp", url)

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(root, "property", "images", "A000001_1.webp"))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, s.Put(ctx, "../escape", "", nil), ErrInvalidKey)
}

func TestS3Storage_PresignedURL(t *testing.T) {
	s := NewS3Storage(S3Config{
		Bucket:    "realty",
		Region:    "us-east-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	})

	url, err := s.URL(context.Background(), "property/images/H000001_1.webp")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://127.0.0.1:9000/realty/property/images/H000001_1.webp?"), url)
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestS3Storage_PutAndDelete(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
		body  []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			body, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewS3Storage(S3Config{
		Bucket: "realty", Region: "us-east-1", Endpoint: srv.URL,
		AccessKey: "minio", SecretKey: "minio-secret",
	})
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "property/images/L000002_5.webp", "image/webp", []byte("payload")))
	require.NoError(t, s.Delete(ctx, "property/images/L000002_5.webp"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"PUT /realty/property/images/L000002_5.webp",
		"DELETE /realty/property/images/L000002_5.webp",
	}, calls)
	assert.Contains(t, string(body), "payload")
}
