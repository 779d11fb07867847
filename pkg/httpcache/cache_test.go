package httpcache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyKeepsPathReadable(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products/3/comments?x=1", nil)
	key := GenerateKey(req)

	assert.True(t, strings.HasPrefix(key, "cache:/products/3/comments:"))
}

func TestGenerateKeyVariesWithQueryAndAuth(t *testing.T) {
	base := httptest.NewRequest(http.MethodGet, "/products?ids=1,2", nil)
	otherQuery := httptest.NewRequest(http.MethodGet, "/products?ids=3", nil)
	withAuth := httptest.NewRequest(http.MethodGet, "/products?ids=1,2", nil)
	withAuth.Header.Set("Authorization", "Bearer abc")

	assert.NotEqual(t, GenerateKey(base), GenerateKey(otherQuery))
	assert.NotEqual(t, GenerateKey(base), GenerateKey(withAuth))
	assert.Equal(t, GenerateKey(base), GenerateKey(httptest.NewRequest(http.MethodGet, "/products?ids=1,2", nil)))
}

func TestMiddlewarePassesThroughWithoutRedis(t *testing.T) {
	cache := New(nil, DefaultConfig())
	require.False(t, cache.Enabled())

	calls := 0
	handler := cache.Middleware(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[]`))
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodGet, "/products", nil))
		assert.Equal(t, "[]", w.Body.String())
		assert.Empty(t, w.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, cache.Invalidate(context.Background(), "/products"))
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, DefaultConfig()), srv
}

func TestMiddlewareMissThenHit(t *testing.T) {
	cache, _ := newTestCache(t)
	require.True(t, cache.Enabled())

	calls := 0
	handler := cache.Middleware(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1}]`))
	})

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, `[{"id":1}]`, second.Body.String())
	assert.Equal(t, 1, calls)
}

func TestMiddlewareKeepsStatusOnHit(t *testing.T) {
	cache, _ := newTestCache(t)

	handler := cache.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Product not found"}`))
	})

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodGet, "/products/999", nil))
	require.Equal(t, http.StatusNotFound, first.Code)

	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodGet, "/products/999", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, http.StatusNotFound, second.Code)
	assert.JSONEq(t, `{"message":"Product not found"}`, second.Body.String())
}

func TestMiddlewareSkipsUncacheableStatus(t *testing.T) {
	cache, srv := newTestCache(t)

	handler := cache.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Empty(t, srv.Keys())
}

func TestMiddlewareTreatsMalformedEntryAsMiss(t *testing.T) {
	cache, srv := newTestCache(t)
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	require.NoError(t, srv.Set(GenerateKey(req), `[]`))

	calls := 0
	handler := cache.Middleware(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"id":2}]`))
	})

	w := httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)
}

func TestInvalidateRemovesMatchingKeys(t *testing.T) {
	cache, srv := newTestCache(t)

	handler := cache.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	for _, path := range []string{"/products/3/comments", "/products/3/comments?page=2", "/products/4/comments", "/products"} {
		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	require.Len(t, srv.Keys(), 4)

	require.NoError(t, cache.Invalidate(context.Background(), "/products/3/comments"))

	keys := srv.Keys()
	assert.Len(t, keys, 2)
	for _, key := range keys {
		assert.False(t, strings.HasPrefix(key, "cache:/products/3/comments"))
	}
}
