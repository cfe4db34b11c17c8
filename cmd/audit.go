package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EO-DataHub/eodhp-admin-console/internal/events"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	auditLimit   int
	subscription string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect recorded admin actions",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the most recent actions from the audit database",
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		auditDB, err := newAuditDB()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open audit database")
		}
		defer auditDB.Close()

		recent, err := auditDB.ListRecent(context.Background(), auditLimit)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list audit events")
		}
		for _, event := range recent {
			printAuditEvent(os.Stdout, event)
		}
	},
}

var auditTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow actions published to the audit topic",
	Run: func(cmd *cobra.Command, args []string) {
		commonSetUp()

		consumer, err := events.NewAuditConsumer(appCfg.Audit.Pulsar.URL, appCfg.Audit.Pulsar.Topic, subscription)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize audit consumer")
		}
		defer consumer.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		for {
			event, err := consumer.Receive(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				log.Error().Err(err).Msg("Error receiving audit event")
				continue
			}
			printAuditEvent(os.Stdout, event)
		}
	},
}

func printAuditEvent(w io.Writer, e models.AuditEvent) {
	outcome := color.GreenString(e.Outcome)
	if e.Outcome == models.OutcomeFailure {
		outcome = color.RedString(e.Outcome)
	}
	fmt.Fprintf(w, "%s  %-14s %-20s %s  %s", e.CreatedAt.Local().Format(time.DateTime), e.Action, e.RecordID, outcome, e.Actor)
	if e.Message != "" {
		fmt.Fprintf(w, "  %s", e.Message)
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditTailCmd)
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 50, "number of events to print")
	auditTailCmd.Flags().StringVar(&subscription, "subscription", "admin-console-tail", "Pulsar subscription name")
}
