package storage

import (
	"context"
	"encoding/json"

	"github.com/tair/ai-goat-store/pkg/logger"
)

// InitializeBuckets creates missing buckets and seeds the freshly created ones.
// Existing buckets are left untouched.
func (s *Storage) InitializeBuckets(ctx context.Context) {
	if !s.ready(ctx) {
		return
	}

	for _, bucket := range []string{
		s.config.SupplyChainBucket,
		s.config.DataPoisoningBucket,
		s.config.UploadsBucket,
	} {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			logger.Error(ctx).Err(err).Str("bucket", bucket).Msg("Error checking bucket")
			continue
		}
		if exists {
			logger.Info(ctx).Str("bucket", bucket).Msg("Bucket already exists")
			continue
		}

		if err := s.client.MakeBucket(ctx, bucket, s.config.Region); err != nil {
			logger.Error(ctx).Err(err).Str("bucket", bucket).Msg("Failed to create bucket")
			continue
		}
		logger.Info(ctx).Str("bucket", bucket).Msg("Created bucket")

		s.seedBucket(ctx, bucket)
	}
}

func (s *Storage) seedBucket(ctx context.Context, bucket string) {
	var objects map[string]any

	switch bucket {
	case s.config.SupplyChainBucket:
		objects = map[string]any{
			"product_features.json": map[string]any{
				"product_images": map[string]any{
					"1":  map[string]any{"name": "teddy_bear.jpg", "features": []float64{0.1, 0.2, 0.3, 0.4, 0.5}},
					"2":  map[string]any{"name": "robot_toy.jpg", "features": []float64{0.6, 0.7, 0.8, 0.9, 1.0}},
					"25": map[string]any{"name": "orca_doll.jpg", "features": []float64{0.2, 0.4, 0.6, 0.8, 1.0}},
				},
			},
		}
	case s.config.DataPoisoningBucket:
		objects = map[string]any{
			"training_data.json": map[string]any{
				"user_preferences": map[string]any{
					"1": map[string]any{"liked_products": []int{1, 5, 12}, "categories": []string{"toys", "educational"}},
					"2": map[string]any{"liked_products": []int{25, 18, 33}, "categories": []string{"dolls", "animals"}},
				},
				"recommendation_model": "trained_model_v1.pkl",
			},
			"sensitive_data.txt": map[string]any{
				"user_recommendations_dataset": bucket,
				"model_poisoning_possible":     true,
				"hidden_products":              []int{25},
			},
		}
	default:
		return
	}

	for key, body := range objects {
		data, err := json.Marshal(body)
		if err != nil {
			logger.Error(ctx).Err(err).Str("key", key).Msg("Failed to encode seed object")
			return
		}
		if err := s.client.PutObject(ctx, bucket, key, data, "application/json"); err != nil {
			logger.Error(ctx).Err(err).Str("bucket", bucket).Str("key", key).Msg("Failed to initialize bucket data")
			return
		}
	}
	logger.Info(ctx).Str("bucket", bucket).Msg("Initialized sample data for bucket")
}
