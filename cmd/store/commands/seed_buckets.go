package commands

import (
	"github.com/spf13/cobra"

	"github.com/tair/ai-goat-store/internal/storage"
)

var seedBucketsCmd = &cobra.Command{
	Use:   "seed-buckets",
	Short: "Create the object storage buckets and their demo content",
	Run: func(cmd *cobra.Command, args []string) {
		storage.New(cfg.Storage).InitializeBuckets(cmd.Context())
	},
}
