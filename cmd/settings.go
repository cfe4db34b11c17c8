package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/EO-DataHub/eodhp-admin-console/internal/client"
	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or toggle the backend's settings flags",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the settings flags",
	Run: func(cmd *cobra.Command, args []string) {
		ctrl, view, _ := settingsController()
		ctrl.LoadSettings(context.Background())

		for _, flag := range ctrl.Flags() {
			fmt.Printf("%s: %s\n", flag, flagState(view.FlagEnabled(flag)))
		}
	},
}

var settingsToggleCmd = &cobra.Command{
	Use:   "toggle <flag>",
	Short: "Flip a settings flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, view, c := settingsController()
		if !ctrl.Manages(args[0]) {
			return fmt.Errorf("unknown settings flag %q", args[0])
		}

		// Toggling flips the displayed state, so it must reflect the backend.
		ctx := context.Background()
		current, err := c.GetSettings(ctx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		view.SetFlag(args[0], current.Enabled(args[0]))

		if !ctrl.Toggle(ctx, args[0]) {
			// The controller has printed why.
			return errReported
		}
		fmt.Printf("%s: %s\n", args[0], flagState(view.FlagEnabled(args[0])))
		return nil
	},
}

func settingsController() (*dashboard.Controller, *consoleView, *client.Client) {
	commonSetUp()

	c, err := newBackendClient(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create backend client")
	}

	view := newConsoleView(os.Stdout)
	return dashboard.NewController(c, view, view, controllerOptions(nil, localActor())), view, c
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsToggleCmd)
}
