package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/ai-goat-store/internal/ml"
	"github.com/tair/ai-goat-store/internal/product/delivery/http"
	"github.com/tair/ai-goat-store/internal/product/domain"
	"github.com/tair/ai-goat-store/internal/product/repository"
	"github.com/tair/ai-goat-store/internal/product/usecase/command"
	"github.com/tair/ai-goat-store/internal/product/usecase/query"
	"github.com/tair/ai-goat-store/internal/storage"
	"github.com/tair/ai-goat-store/kafka"
)

// ProvideProductRepository provides the traced product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepositoryWithTracing(db)
}

func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

func ProvideCommentRepository(db *gorm.DB) domain.CommentRepository {
	return repository.NewGormCommentRepository(db)
}

// Command Handlers Providers
func ProvideAddCommentHandler(models *ml.Service, products domain.ProductRepository, comments domain.CommentRepository, events kafka.EventPublisher) *command.AddCommentHandler {
	return command.NewAddCommentHandler(models, products, comments, events)
}

func ProvideAnalyzePhotoHandler(store *storage.Storage, models *ml.Service, products domain.ProductRepository, events kafka.EventPublisher) *command.AnalyzePhotoHandler {
	return command.NewAnalyzePhotoHandler(store, models, products, events)
}

// ProvideUploadLinks exposes the object store to the photo endpoints
func ProvideUploadLinks(store *storage.Storage) http.UploadLinks {
	return store
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideCategoryRepository,
	ProvideCommentRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddCommentHandler,
	ProvideAnalyzePhotoHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewListProductsHandler,
	query.NewGetProductHandler,
	query.NewListCategoriesHandler,
	query.NewCategoryProductsHandler,
	query.NewListCommentsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	ProvideUploadLinks,
)
