package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tair/ai-goat-store/internal/config"
	"github.com/tair/ai-goat-store/pkg/logger"
)

var (
	// Global flags
	envFiles []string

	cfg *config.Config
)

// rootCmd serves the store when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "store",
	Short: "AI Goat Store - a deliberately vulnerable AI-powered toy shop",
	Long: `AI Goat Store is a small e-commerce API for practising attacks on AI
features: photo upload abuse, recommendation poisoning and content filter
bypass. Run without a subcommand to bootstrap and serve.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load(envFiles...)
		logger.Init(cfg.ServiceName, cfg.IsDevelopment())
		logger.SetLevel(cfg.LogLevel)
	},
	RunE: runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Env files to load before the environment (default .env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedBucketsCmd)
	rootCmd.AddCommand(eventsCmd)
}
