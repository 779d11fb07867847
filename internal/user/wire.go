//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/ai-goat-store/internal/ml"
	"github.com/tair/ai-goat-store/internal/user/delivery/http"
	"github.com/tair/ai-goat-store/kafka"
	"github.com/tair/ai-goat-store/pkg/auth"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	models *ml.Service,
	credentials auth.CredentialStore,
	tokens *auth.TokenManager,
	events kafka.EventPublisher,
) (*http.UserHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewUserHandler,
	)
	return nil, nil
}
