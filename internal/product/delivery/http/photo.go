package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/ai-goat-store/internal/product/usecase/command"
	"github.com/tair/ai-goat-store/internal/storage"
	"github.com/tair/ai-goat-store/pkg/logger"
)

// DefaultMaxUploadBytes caps request bodies on the photo endpoint
const DefaultMaxUploadBytes = 16 << 20

// MaxUploadBytes is the configured body limit for uploads
type MaxUploadBytes int64

// UploadLinks exposes stored uploads
type UploadLinks interface {
	UploadsBucket() string
	PresignedURL(ctx context.Context, bucket, key string, expiry time.Duration) string
	BucketInfo() storage.BucketInfo
}

// AnalyzePhoto handles POST /api/analyze-photo
func (h *ProductHandler) AnalyzePhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			logger.Warn(r.Context()).Err(err).Msg("Failed to parse upload form")
		}
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Error in product lookup")
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing image: %v", err))
		return
	}

	result, err := h.analyzePhotoHandler.Handle(r.Context(), command.AnalyzePhotoCommand{
		Filename: uploadFilename(header),
		Data:     data,
	})
	switch {
	case errors.Is(err, command.ErrNoFile):
		respondError(w, http.StatusBadRequest, "No file selected")
	case errors.Is(err, command.ErrInvalidFile):
		respondError(w, http.StatusBadRequest, "Invalid file type")
	case err != nil:
		logger.Error(r.Context()).Err(err).Msg("Error in product lookup")
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error processing image: %v", err))
	default:
		respondJSON(w, http.StatusOK, result)
	}
}

// uploadFilename returns the client-supplied filename as sent, directory
// components included. multipart.FileHeader.Filename strips them.
func uploadFilename(header *multipart.FileHeader) string {
	_, params, err := mime.ParseMediaType(header.Header.Get("Content-Disposition"))
	if err == nil && params["filename"] != "" {
		return params["filename"]
	}
	return header.Filename
}

// PhotoPreflight answers OPTIONS /api/analyze-photo
func PhotoPreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// BucketInfo handles GET /api/storage/buckets
func (h *ProductHandler) BucketInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.uploads.BucketInfo())
}

// UploadURL handles GET /api/uploads/{name}
func (h *ProductHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	url := h.uploads.PresignedURL(r.Context(), h.uploads.UploadsBucket(), name, storage.DefaultPresignExpiry)
	if url == "" {
		respondError(w, http.StatusNotFound, "Upload not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
