package command

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/tair/ai-goat-store/internal/ml"
	"github.com/tair/ai-goat-store/internal/product/domain"
	"github.com/tair/ai-goat-store/kafka"
	"github.com/tair/ai-goat-store/pkg/logger"
)

var (
	ErrNoFile      = errors.New("no file selected")
	ErrInvalidFile = errors.New("invalid file type")
)

var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// AllowedFile checks the extension only; content is never inspected
func AllowedFile(filename string) bool {
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	return allowedExtensions[strings.ToLower(ext[1:])]
}

// UploadStore persists raw uploads and returns the stored name, "" on failure
type UploadStore interface {
	SaveUpload(ctx context.Context, filename string, data []byte) string
}

// SimilarityFinder maps an image to catalog matches
type SimilarityFinder interface {
	FindSimilarProducts(ctx context.Context, image []byte) []ml.SimilarProduct
}

// AnalyzePhotoCommand carries one uploaded file
type AnalyzePhotoCommand struct {
	Filename string
	Data     []byte
}

// AnalyzePhotoResult is the photo lookup answer
type AnalyzePhotoResult struct {
	MatchedProducts []domain.Product `json:"matched_products"`
	UploadFilename  *string          `json:"upload_filename"`
}

// AnalyzePhotoHandler stores an upload and looks up similar products
type AnalyzePhotoHandler struct {
	uploads  UploadStore
	finder   SimilarityFinder
	products domain.ProductRepository
	events   kafka.EventPublisher
}

// NewAnalyzePhotoHandler creates a new photo lookup handler
func NewAnalyzePhotoHandler(uploads UploadStore, finder SimilarityFinder, products domain.ProductRepository, events kafka.EventPublisher) *AnalyzePhotoHandler {
	if events == nil {
		events = kafka.NopPublisher{}
	}
	return &AnalyzePhotoHandler{uploads: uploads, finder: finder, products: products, events: events}
}

// Handle validates the name, saves the upload and resolves similar products.
// A failed upload still returns matches with a null upload name.
func (h *AnalyzePhotoHandler) Handle(ctx context.Context, cmd AnalyzePhotoCommand) (*AnalyzePhotoResult, error) {
	if cmd.Filename == "" {
		return nil, ErrNoFile
	}
	if !AllowedFile(cmd.Filename) {
		return nil, ErrInvalidFile
	}

	logger.Info(ctx).Str("filename", cmd.Filename).Int("size", len(cmd.Data)).Msg("Processing image upload for product similarity")

	result := &AnalyzePhotoResult{}
	if stored := h.uploads.SaveUpload(ctx, cmd.Filename, cmd.Data); stored != "" {
		result.UploadFilename = &stored
	}

	similar := h.finder.FindSimilarProducts(ctx, cmd.Data)
	ids := make([]uint, 0, len(similar))
	for _, s := range similar {
		ids = append(ids, s.ProductID)
	}

	products, err := h.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	result.MatchedProducts = products

	event := kafka.StoreEvent{EventType: kafka.EventTypePhotoUploaded, ProductIDs: ids}
	if result.UploadFilename != nil {
		event.Filename = *result.UploadFilename
	}
	if err := h.events.Publish(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to publish photo event")
	}

	return result, nil
}
