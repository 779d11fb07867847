package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListProducts godoc
// @Summary List products
// @Description Full catalog, or only the given ids
// @Tags Products
// @Produce json
// @Param ids query string false "Comma separated product ids"
// @Success 200 {array} domain.Product
// @Failure 400 {object} ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProductDoc() {}

// ListCategories godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /products/categories [get]
func (h *ProductHandler) ListCategoriesDoc() {}

// CategoryProducts godoc
// @Summary Products of a category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {array} domain.Product
// @Failure 404 {object} ErrorResponse
// @Router /products/categories/{id} [get]
func (h *ProductHandler) CategoryProductsDoc() {}

// ListComments godoc
// @Summary List comments of a product
// @Tags Comments
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} domain.Comment
// @Failure 404 {object} ErrorResponse
// @Router /products/{id}/comments [get]
func (h *ProductHandler) ListCommentsDoc() {}

// AddComment godoc
// @Summary Comment on a product
// @Description The comment passes through the content filter first
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{content=string} true "Comment"
// @Success 200 {object} object{message=string,comment=domain.Comment}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id}/comments [post]
func (h *ProductHandler) AddCommentDoc() {}

// AnalyzePhoto godoc
// @Summary Find products similar to a photo
// @Tags Photos
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "jpg, jpeg or png image"
// @Success 200 {object} command.AnalyzePhotoResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/analyze-photo [post]
func (h *ProductHandler) AnalyzePhotoDoc() {}

// UploadURL godoc
// @Summary Presigned link to an uploaded photo
// @Tags Photos
// @Produce json
// @Param name path string true "Stored upload name"
// @Success 200 {object} object{url=string}
// @Failure 404 {object} ErrorResponse
// @Router /api/uploads/{name} [get]
func (h *ProductHandler) UploadURLDoc() {}

// BucketInfo godoc
// @Summary Storage endpoint and bucket names
// @Tags Photos
// @Produce json
// @Success 200 {object} storage.BucketInfo
// @Router /api/storage/buckets [get]
func (h *ProductHandler) BucketInfoDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string}
// @Router /health [get]
func (h *ProductHandler) HealthCheckDoc() {}
