package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tair/ai-goat-store/internal/product/domain"
	"github.com/tair/ai-goat-store/internal/product/usecase/command"
	"github.com/tair/ai-goat-store/internal/product/usecase/query"
	"github.com/tair/ai-goat-store/pkg/httpcache"
	"github.com/tair/ai-goat-store/pkg/logger"
	"github.com/tair/ai-goat-store/pkg/middleware"
)

var catalogSize = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "store_catalog_products",
	Help: "Number of products returned by the last unfiltered catalog listing",
})

// ProductHandler serves the catalog, comments and photo lookup
type ProductHandler struct {
	// Command handlers
	addCommentHandler   *command.AddCommentHandler
	analyzePhotoHandler *command.AnalyzePhotoHandler

	// Query handlers
	listHandler             *query.ListProductsHandler
	getProductHandler       *query.GetProductHandler
	listCategoriesHandler   *query.ListCategoriesHandler
	categoryProductsHandler *query.CategoryProductsHandler
	listCommentsHandler     *query.ListCommentsHandler

	uploads        UploadLinks
	cache          *httpcache.Cache
	maxUploadBytes int64
}

// NewProductHandler wires the product handler; used by Wire
func NewProductHandler(
	addCommentHandler *command.AddCommentHandler,
	analyzePhotoHandler *command.AnalyzePhotoHandler,
	listHandler *query.ListProductsHandler,
	getProductHandler *query.GetProductHandler,
	listCategoriesHandler *query.ListCategoriesHandler,
	categoryProductsHandler *query.CategoryProductsHandler,
	listCommentsHandler *query.ListCommentsHandler,
	uploads UploadLinks,
	cache *httpcache.Cache,
	maxUploadBytes MaxUploadBytes,
) *ProductHandler {
	if cache == nil {
		cache = httpcache.New(nil, httpcache.DefaultConfig())
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &ProductHandler{
		addCommentHandler:       addCommentHandler,
		analyzePhotoHandler:     analyzePhotoHandler,
		listHandler:             listHandler,
		getProductHandler:       getProductHandler,
		listCategoriesHandler:   listCategoriesHandler,
		categoryProductsHandler: categoryProductsHandler,
		listCommentsHandler:     listCommentsHandler,
		uploads:                 uploads,
		cache:                   cache,
		maxUploadBytes:          int64(maxUploadBytes),
	}
}

// ErrorResponse is the body of every failed catalog request
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", middleware.Metrics("/", Home)).Methods("GET")
	router.HandleFunc("/health", middleware.Metrics("/health", Health)).Methods("GET")
	router.HandleFunc("/hints/challenge{challenge:[0-9]+}/{hint:[0-9]+}", middleware.Metrics("/hints", Hint)).Methods("GET")

	// Catalog reads are cacheable
	router.HandleFunc("/products", middleware.Metrics("/products", h.cache.Middleware(h.ListProducts))).Methods("GET")
	router.HandleFunc("/products/categories", middleware.Metrics("/products/categories", h.cache.Middleware(h.ListCategories))).Methods("GET")
	router.HandleFunc("/products/categories/{id:[0-9]+}", middleware.Metrics("/products/categories/{id}", h.cache.Middleware(h.CategoryProducts))).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", middleware.Metrics("/products/{id}", h.cache.Middleware(h.GetProduct))).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}/comments", middleware.Metrics("/products/{id}/comments", h.cache.Middleware(h.ListComments))).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}/comments", middleware.Metrics("/products/{id}/comments", h.AddComment)).Methods("POST")

	router.HandleFunc("/api/analyze-photo", middleware.Metrics("/api/analyze-photo", h.AnalyzePhoto)).Methods("POST")
	router.HandleFunc("/api/analyze-photo", PhotoPreflight).Methods("OPTIONS")
	router.HandleFunc("/api/storage/buckets", middleware.Metrics("/api/storage/buckets", h.BucketInfo)).Methods("GET")
	router.HandleFunc("/api/uploads/{name}", middleware.Metrics("/api/uploads/{name}", h.UploadURL)).Methods("GET")
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDs(r.URL.Query().Get("ids"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ids parameter")
		return
	}

	products, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{IDs: ids})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	if ids == nil {
		catalogSize.Set(float64(len(products)))
	}

	respondJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// ListCategories handles GET /products/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategoriesHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		respondError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

// CategoryProducts handles GET /products/categories/{id}
func (h *ProductHandler) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	products, err := h.categoryProductsHandler.Handle(r.Context(), query.CategoryProductsQuery{CategoryID: id})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to list category products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// ListComments handles GET /products/{id}/comments
func (h *ProductHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	comments, err := h.listCommentsHandler.Handle(r.Context(), query.ListCommentsQuery{ProductID: id})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to fetch comments")
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /products/{id}/comments
func (h *ProductHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.addCommentHandler.Handle(r.Context(), command.AddCommentCommand{
		ProductID: id,
		Content:   req.Content,
	})
	switch {
	case errors.Is(err, command.ErrCommentBlocked):
		respondError(w, http.StatusBadRequest, "Comment blocked by content filter")
		return
	case err != nil:
		h.respondDomainError(w, r, err, "Failed to add comment")
		return
	}

	if err := h.cache.Invalidate(r.Context(), fmt.Sprintf("/products/%d/comments", id)); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to invalidate comment cache")
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// respondDomainError maps not-found sentinels to 404 and everything else to 500
func (h *ProductHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		respondError(w, http.StatusNotFound, "Category not found")
	default:
		logger.Error(r.Context()).Err(err).Msg(action)
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", action, err))
	}
}

// parseIDs reads "1,2,3". An empty value means no filter.
func parseIDs(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
