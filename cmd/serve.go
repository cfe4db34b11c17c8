package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EO-DataHub/eodhp-admin-console/api/handlers"
	"github.com/EO-DataHub/eodhp-admin-console/api/services"
	"github.com/EO-DataHub/eodhp-admin-console/db"
	"github.com/EO-DataHub/eodhp-admin-console/internal/actions"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	host string
	port int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for the web console",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and set up logging
		commonSetUp()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		backend, err := newBackendClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create backend client")
		}

		// Initialize the audit sink
		recorder, closeRecorder, err := newRecorder()
		if err != nil {
			log.Fatal().Err(err).Str("sink", appCfg.Audit.Sink).Msg("Failed to open audit sink")
		}
		defer closeRecorder()

		service := &services.ConsoleService{
			Fetcher:    backend,
			Dispatcher: actions.NewDispatcher(appCfg.Endpoints),
			Renderer:   render.NewRenderer(appCfg.Render.MaxDescription),
			Recorder:   recorder,
			Flags:      appCfg.Settings.Flags,
			BasePath:   appCfg.Server.BasePath,
		}
		// Only the database sink can be read back.
		if auditDB, ok := recorder.(*db.AuditDB); ok {
			service.Audit = auditDB
		}

		// Create routes
		r := mux.NewRouter()
		handlers.RegisterRoutes(r, service, appCfg.Server.RequiredRole)

		addr := fmt.Sprintf("%s:%d", host, port)
		server := &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("could not shut down server")
			}
		}()

		log.Info().Msg(fmt.Sprintf("Server started at %s", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}
