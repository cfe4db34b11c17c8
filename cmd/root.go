package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/EO-DataHub/eodhp-admin-console/internal/appconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	appCfg     *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "admin-console",
	Short: "Admin Console",
	Long: `Admin Console manages the users, groups and projects of the showcase backend.
It can run as a terminal dashboard, as a web console or as one-shot commands.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// errReported fails a command whose error has already been shown to the
// operator.
var errReported = errors.New("reported")

func Execute() {
	err := rootCmd.Execute()
	closeTunnel()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func closeTunnel() {
	if backendTunnel == nil {
		return
	}
	if err := backendTunnel.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close backend tunnel")
	}
	backendTunnel = nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"),
		"path to the config file (defaults to $CONFIG_PATH)")
}

func setUp() {
	setLogging(logLevel)
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
