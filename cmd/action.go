package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var assumeYes bool

var actionCmd = &cobra.Command{
	Use:   "action <tag> <id>",
	Short: "Run a destructive admin action after confirmation",
	Long: `Run one of del_user, reset_password, del_group or del_projects against a record.
The action's prompt is shown and must be answered with y unless --yes is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		commonSetUp()
		ctx := context.Background()

		c, err := newBackendClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create backend client")
		}

		recorder, closeRecorder, err := newRecorder()
		if err != nil {
			return fmt.Errorf("failed to open %s audit sink: %w", appCfg.Audit.Sink, err)
		}
		defer closeRecorder()

		view := newConsoleView(os.Stdout)
		ctrl := dashboard.NewController(c, view, view, controllerOptions(recorder, localActor()))

		if !ctrl.Dispatch(args[0], args[1]) {
			return fmt.Errorf("unknown action %q", args[0])
		}
		if !assumeYes && !askYesNo(os.Stdin, os.Stdout) {
			ctrl.Cancel()
			fmt.Println("Cancelled")
			return nil
		}

		if err := ctrl.Confirm(ctx); err != nil {
			// Already reported by the controller.
			return errReported
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(actionCmd)
	actionCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
}
