package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/EO-DataHub/eodhp-admin-console/internal/tui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var logFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the terminal dashboard",
	Long: `Run the terminal dashboard. The screen is taken over while it runs, so logs
are discarded unless --log-file is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		commonSetUp()

		var out io.Writer = io.Discard
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				log.Fatal().Err(err).Str("path", logFile).Msg("Failed to open log file")
			}
			defer f.Close()
			out = f
		}
		log.Logger = zerolog.New(out).With().Timestamp().Logger()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		backend, err := newBackendClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create backend client")
		}

		recorder, closeRecorder, err := newRecorder()
		if err != nil {
			return fmt.Errorf("failed to open %s audit sink: %w", appCfg.Audit.Sink, err)
		}
		defer closeRecorder()

		bridge := tui.NewBridge()
		ctrl := dashboard.NewController(backend, bridge, bridge, controllerOptions(recorder, localActor()))

		if err := tui.Run(ctx, ctrl, bridge); err != nil {
			log.Error().Err(err).Msg("Terminal dashboard exited with an error")
			return errReported
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
}
