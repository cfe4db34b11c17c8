package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "init-db-migrate",
	Short: "Initialize tables and run database migrations",
	Long:  `This job ensures the audit tables exist by running the goose migrations.`,
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		auditDB, err := newAuditDB()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize AuditDB")
		}
		defer auditDB.Close()

		// Run the migrations
		log.Info().Msgf("Running migrations...")
		if err := auditDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		log.Info().Msg("Migrations complete")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
