package cmd

import (
	"context"
	"slices"

	"github.com/EO-DataHub/eodhp-admin-console/internal/events"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var reconcileLimit int

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Republish audit events from the database to the audit topic",
	Long: `Reads the most recent audit events from the database and publishes them,
oldest first, to the Pulsar audit topic. Used to backfill the topic after
switching the audit sink or after an outage of the broker.`,
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and set up logging
		commonSetUp()

		if appCfg.Audit.Pulsar.URL == "" || appCfg.Audit.Pulsar.Topic == "" {
			log.Fatal().Msg("audit.pulsar.url and audit.pulsar.topic are required")
		}

		auditDB, err := newAuditDB()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open audit database")
		}
		defer auditDB.Close()

		// Initialize event publisher
		publisher, err := events.NewAuditPublisher(appCfg.Audit.Pulsar.URL, appCfg.Audit.Pulsar.Topic)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize audit publisher")
		}
		defer publisher.Close()

		ctx := context.Background()
		recent, err := auditDB.ListRecent(ctx, reconcileLimit)
		if err != nil {
			log.Fatal().Err(err).Msg("Error fetching audit events")
		}
		slices.Reverse(recent)

		log.Info().Int("events", len(recent)).Msg("Starting reconciliation process...")

		failed := 0
		for _, event := range recent {
			if err := publisher.Record(ctx, event); err != nil {
				failed++
				log.Error().Err(err).Str("id", event.ID.String()).Msg("Failed to publish audit event")
				continue
			}
			log.Debug().Str("id", event.ID.String()).Msg("Published audit event")
		}

		log.Info().Int("published", len(recent)-failed).Int("failed", failed).Msg("Audit publishing process completed.")
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileCmd.Flags().IntVar(&reconcileLimit, "limit", 1000, "number of recent events to republish")
}
