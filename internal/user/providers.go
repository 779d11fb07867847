package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/ai-goat-store/internal/ml"
	productrepo "github.com/tair/ai-goat-store/internal/product/repository"
	"github.com/tair/ai-goat-store/internal/user/domain"
	"github.com/tair/ai-goat-store/internal/user/repository"
	"github.com/tair/ai-goat-store/internal/user/usecase/command"
	"github.com/tair/ai-goat-store/internal/user/usecase/query"
	"github.com/tair/ai-goat-store/kafka"
	"github.com/tair/ai-goat-store/pkg/auth"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepositoryWithTracing(db)
}

// ProvideProductCatalog lets carts and recommendations read the shared catalog
func ProvideProductCatalog(db *gorm.DB) domain.ProductCatalog {
	return productrepo.NewGormProductRepositoryWithTracing(db)
}

// Command Handlers Providers
func ProvideLoginUserHandler(credentials auth.CredentialStore, tokens *auth.TokenManager) *command.LoginUserHandler {
	return command.NewLoginUserHandler(credentials, tokens)
}

func ProvideRefreshRecommendationsHandler(users domain.UserRepository, catalog domain.ProductCatalog, models *ml.Service, events kafka.EventPublisher) *command.RefreshRecommendationsHandler {
	return command.NewRefreshRecommendationsHandler(users, catalog, models, events)
}

// Query Handlers Providers
func ProvideGetCartHandler(users domain.UserRepository, catalog domain.ProductCatalog) *query.GetCartHandler {
	return query.NewGetCartHandler(users, catalog)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideProductCatalog,
)

var CommandHandlerSet = wire.NewSet(
	ProvideLoginUserHandler,
	ProvideRefreshRecommendationsHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetCartHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)
