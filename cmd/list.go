package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:       "list {users|groups|projects}",
	Short:     "Print one of the record lists",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"users", "groups", "projects"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseListKind(args[0])
		if err != nil {
			return err
		}

		commonSetUp()
		ctx := context.Background()

		c, err := newBackendClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create backend client")
		}

		t, err := dashboard.FetchTable(ctx, c, render.NewRenderer(appCfg.Render.MaxDescription), kind)
		if err != nil {
			newConsoleView(os.Stderr).ShowListError(kind, "Load failed: "+err.Error())
			return errReported
		}
		newConsoleView(os.Stdout).ShowTable(t)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the number of users, groups and projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		commonSetUp()
		ctx := context.Background()

		c, err := newBackendClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create backend client")
		}

		stats, err := dashboard.CountRecords(ctx, c)
		if err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}
		newConsoleView(os.Stdout).SetStats(stats)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
}
