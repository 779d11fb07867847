package commands

import (
	"github.com/spf13/cobra"

	"github.com/tair/ai-goat-store/internal/migration"
	"github.com/tair/ai-goat-store/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and load the bundled fixtures",
	Long: `Creates every table and loads categories, products, users and sample
comments. Entity types that already have rows are skipped, so the command is
safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer initTracing()()

		db, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		report, err := migration.New(db).Run(cmd.Context())
		if err != nil {
			return err
		}

		logger.Logger.Info().
			Int("categories", report.Categories).
			Int("products", report.Products).
			Int("users", report.Users).
			Int("comments", report.Comments).
			Msg("Migration finished")
		return nil
	},
}
