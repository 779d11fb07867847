package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/ai-goat-store/internal/ml"
	"github.com/tair/ai-goat-store/internal/product/domain"
	"github.com/tair/ai-goat-store/internal/product/repository"
	"github.com/tair/ai-goat-store/internal/product/usecase/command"
	"github.com/tair/ai-goat-store/internal/product/usecase/query"
	"github.com/tair/ai-goat-store/internal/storage"
	"github.com/tair/ai-goat-store/kafka"
	"github.com/tair/ai-goat-store/pkg/httpcache"
)

type memoryUploads struct {
	saved map[string][]byte
	now   time.Time
}

func (m *memoryUploads) SaveUpload(_ context.Context, filename string, data []byte) string {
	key := m.now.Format("20060102_150405") + "_" + filename
	m.saved[key] = data
	return key
}

func (m *memoryUploads) UploadsBucket() string { return "uploads-bucket" }

func (m *memoryUploads) PresignedURL(_ context.Context, bucket, key string, _ time.Duration) string {
	if _, ok := m.saved[key]; !ok {
		return ""
	}
	return "http://minio:9000/" + bucket + "/" + key + "?X-Amz-Signature=abc"
}

func (m *memoryUploads) BucketInfo() storage.BucketInfo {
	return storage.BucketInfo{Endpoint: "http://minio:9000", Buckets: map[string]string{"uploads": "uploads-bucket"}}
}

type testEnv struct {
	router  *mux.Router
	db      *gorm.DB
	uploads *memoryUploads
}

func setupRouter(t *testing.T, backend ml.Backend) *testEnv {
	t.Helper()
	return setupRouterWithCache(t, backend, nil)
}

func setupRouterWithCache(t *testing.T, backend ml.Backend, cache *httpcache.Cache) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	products := repository.NewGormProductRepositoryWithTracing(db)
	require.NoError(t, products.AutoMigrate())

	toys := domain.Category{ID: 1, Name: "Toys", Slug: "toys"}
	require.NoError(t, db.Create(&toys).Error)
	require.NoError(t, db.Create(&domain.Category{ID: 2, Name: "Empty", Slug: "empty"}).Error)
	for _, p := range []domain.Product{
		{ID: 1, Name: "Teddy Bear", Price: decimal.RequireFromString("12.99"), Categories: []domain.Category{toys}},
		{ID: 2, Name: "Robot Toy", Price: decimal.RequireFromString("24.50"), Categories: []domain.Category{toys}},
		{ID: 3, Name: "Puzzle", Price: decimal.RequireFromString("9.00")},
		{ID: 25, Name: "Orca Doll", Price: decimal.RequireFromString("19.99")},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	categories := repository.NewGormCategoryRepository(db)
	comments := repository.NewGormCommentRepository(db)
	models := ml.NewService(backend)
	uploads := &memoryUploads{saved: map[string][]byte{}, now: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)}

	handler := NewProductHandler(
		command.NewAddCommentHandler(models, products, comments, kafka.NopPublisher{}),
		command.NewAnalyzePhotoHandler(uploads, models, products, kafka.NopPublisher{}),
		query.NewListProductsHandler(products),
		query.NewGetProductHandler(products),
		query.NewListCategoriesHandler(categories),
		query.NewCategoryProductsHandler(categories, products),
		query.NewListCommentsHandler(products, comments),
		uploads,
		cache,
		1<<20,
	)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return &testEnv{router: router, db: db, uploads: uploads}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeProducts(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var products []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	return products
}

func TestListProductsFilteredByIDs(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/products?ids=1,2", nil))
	require.Equal(t, http.StatusOK, w.Code)

	products := decodeProducts(t, w)
	require.Len(t, products, 2)
	assert.Equal(t, float64(1), products[0]["id"])
	assert.Equal(t, float64(2), products[1]["id"])
	assert.Equal(t, 12.99, products[0]["price"])
}

func TestListProductsAll(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeProducts(t, w), 4)
}

func TestListProductsMalformedIDs(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/products?ids=1,abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProduct(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/products/25", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Orca Doll")

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, w.Body.String())
}

func TestCategories(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/products/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeProducts(t, w), 2)

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/categories/1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeProducts(t, w), 2)

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/categories/2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/categories/77", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func postComment(env *testEnv, productID, content string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"content": content})
	req := httptest.NewRequest(http.MethodPost, "/products/"+productID+"/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return env.do(req)
}

func TestAddCommentBlockedByFallbackFilter(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := postComment(env, "1", "You got PWNED!")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Comment blocked by content filter"}`, w.Body.String())

	var count int64
	require.NoError(t, env.db.Model(&domain.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddCommentAndList(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := postComment(env, "1", "Great toy for kids!")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string         `json:"message"`
		Comment domain.Comment `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Comment added successfully", resp.Message)
	assert.Equal(t, uint(1), resp.Comment.ProductID)

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/1/comments", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Great toy for kids!")
}

func TestAddCommentInvalidatesCachedComments(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	env := setupRouterWithCache(t, ml.UnavailableBackend{}, httpcache.New(client, httpcache.DefaultConfig()))

	w := env.do(httptest.NewRequest(http.MethodGet, "/products/1/comments", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/1/comments", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/999", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(httptest.NewRequest(http.MethodGet, "/products/999", nil))
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusOK, postComment(env, "1", "Fresh review").Code)

	w = env.do(httptest.NewRequest(http.MethodGet, "/products/1/comments", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Contains(t, w.Body.String(), "Fresh review")
}

func TestCommentsOnUnknownProduct(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	assert.Equal(t, http.StatusNotFound, postComment(env, "999", "hello").Code)
	assert.Equal(t, http.StatusNotFound, env.do(httptest.NewRequest(http.MethodGet, "/products/999/comments", nil)).Code)
}

func TestAddCommentModelDecision(t *testing.T) {
	env := setupRouter(t, blockingBackend{})

	w := postComment(env, "1", "perfectly nice")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type blockingBackend struct{}

func (blockingBackend) Name() string { return "blocking" }

func (blockingBackend) Complete(context.Context, ml.Prompt) (string, error) { return "BLOCK", nil }

func uploadRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyzePhoto(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(uploadRequest(t, "image", "orca.png", []byte("\x89PNG")))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		MatchedProducts []map[string]any `json:"matched_products"`
		UploadFilename  string           `json:"upload_filename"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, regexp.MustCompile(`^\d{8}_\d{6}_orca\.png$`), resp.UploadFilename)
	assert.NotNil(t, resp.MatchedProducts)
	assert.Contains(t, env.uploads.saved, resp.UploadFilename)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/uploads/"+resp.UploadFilename, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "X-Amz-Signature")
}

func TestAnalyzePhotoKeepsClientFilename(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(uploadRequest(t, "image", "../../etc/evil.png", []byte("\x89PNG")))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UploadFilename string `json:"upload_filename"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "20240501_093000_../../etc/evil.png", resp.UploadFilename)
	assert.Contains(t, env.uploads.saved, "20240501_093000_../../etc/evil.png")
}

func TestAnalyzePhotoRejections(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(uploadRequest(t, "image", "payload.exe", []byte("MZ")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid file type"}`, w.Body.String())

	w = env.do(uploadRequest(t, "photo", "orca.png", []byte("x")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No image file provided"}`, w.Body.String())

	w = env.do(httptest.NewRequest(http.MethodPost, "/api/analyze-photo", strings.NewReader("{}")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(uploadRequest(t, "image", "huge.jpg", bytes.Repeat([]byte("a"), 2<<20)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestPhotoPreflight(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(httptest.NewRequest(http.MethodOptions, "/api/analyze-photo", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUploadURLUnknown(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/uploads/nope.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaticRoutes(t *testing.T) {
	env := setupRouter(t, ml.UnavailableBackend{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Welcome to the AI Goat Store!", w.Body.String())

	w = env.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	w = env.do(httptest.NewRequest(http.MethodGet, "/hints/challenge2/3", nil))
	assert.JSONEq(t, `{"hint":"Look for the Orca Doll in the recommendation dataset"}`, w.Body.String())

	w = env.do(httptest.NewRequest(http.MethodGet, "/hints/challenge4/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/storage/buckets", nil))
	assert.Contains(t, w.Body.String(), "uploads-bucket")
}
