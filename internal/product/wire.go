//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/ai-goat-store/internal/ml"
	"github.com/tair/ai-goat-store/internal/product/delivery/http"
	"github.com/tair/ai-goat-store/internal/storage"
	"github.com/tair/ai-goat-store/kafka"
	"github.com/tair/ai-goat-store/pkg/httpcache"
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	models *ml.Service,
	store *storage.Storage,
	events kafka.EventPublisher,
	cache *httpcache.Cache,
	maxUploadBytes http.MaxUploadBytes,
) (*http.ProductHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewProductHandler,
	)
	return nil, nil
}
