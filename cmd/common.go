package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/EO-DataHub/eodhp-admin-console/db"
	"github.com/EO-DataHub/eodhp-admin-console/internal/actions"
	"github.com/EO-DataHub/eodhp-admin-console/internal/appconfig"
	awsclient "github.com/EO-DataHub/eodhp-admin-console/internal/aws"
	"github.com/EO-DataHub/eodhp-admin-console/internal/client"
	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/EO-DataHub/eodhp-admin-console/internal/events"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/rs/zerolog/log"
)

// backendTunnel is open for the rest of the process once a command has
// created a backend client behind a bastion.
var backendTunnel *client.Tunnel

// commonSetUp sets up logging and loads the config file. It exits the
// process when the config cannot be used.
func commonSetUp() {
	setUp()

	cfg, err := appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}
	appCfg = cfg
}

// newBackendClient creates the backend client. Session values stored in AWS
// Secrets Manager replace the ones from the config file, and the dashboard
// page is scanned for its token and endpoints when discovery is enabled.
func newBackendClient(ctx context.Context) (*client.Client, error) {
	backend := appCfg.Backend

	if secret := appCfg.AWS.CredentialsSecret; secret != "" {
		awsCfg, err := awsclient.LoadAWSConfig(ctx, appCfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		creds, err := awsclient.FetchBackendCredentials(ctx, awsclient.NewSecretsManagerClient(awsCfg), secret)
		if err != nil {
			return nil, err
		}
		if creds.Session != "" {
			backend.Session = creds.Session
		}
		if creds.CSRFToken != "" {
			backend.CSRFToken = creds.CSRFToken
		}
		log.Info().Str("secret", secret).Msg("Loaded backend credentials from Secrets Manager")
	}

	c, err := client.NewClient(backend, appCfg.Endpoints)
	if err != nil {
		return nil, err
	}

	if backend.Tunnel.Host != "" {
		tunnel, err := client.OpenTunnel(backend.Tunnel)
		if err != nil {
			return nil, err
		}
		backendTunnel = tunnel
		c.UseTunnel(tunnel)
	}

	if backend.DiscoverMarkup {
		markup, err := c.ScanDashboard(ctx)
		if err != nil {
			// The configured endpoints still work without the page.
			log.Warn().Err(err).Msg("Failed to scan backend dashboard")
		} else {
			c.ApplyMarkup(markup)
		}
	}
	return c, nil
}

// newRecorder opens the configured audit sink. The returned func releases it
// and is safe to call when no sink is configured.
func newRecorder() (dashboard.Recorder, func(), error) {
	switch appCfg.Audit.Sink {
	case appconfig.AuditSinkPulsar:
		publisher, err := events.NewAuditPublisher(appCfg.Audit.Pulsar.URL, appCfg.Audit.Pulsar.Topic)
		if err != nil {
			return nil, nil, err
		}
		return publisher, publisher.Close, nil

	case appconfig.AuditSinkPostgres:
		auditDB, err := newAuditDB()
		if err != nil {
			return nil, nil, err
		}
		return auditDB, func() { _ = auditDB.Close() }, nil
	}
	return nil, func() {}, nil
}

func newAuditDB() (*db.AuditDB, error) {
	return db.NewAuditDB(appCfg.Audit.Database.Driver, appCfg.Audit.Database.Source)
}

func controllerOptions(recorder dashboard.Recorder, actor string) dashboard.Options {
	return dashboard.Options{
		Dispatcher: actions.NewDispatcher(appCfg.Endpoints),
		Renderer:   render.NewRenderer(appCfg.Render.MaxDescription),
		Recorder:   recorder,
		Flags:      appCfg.Settings.Flags,
		Actor:      actor,
	}
}

// localActor names the operator of a terminal session in audit events.
func localActor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

func parseListKind(arg string) (models.ListKind, error) {
	for _, kind := range models.ListKinds() {
		if string(kind) == arg {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown list %q: expected users, groups or projects", arg)
}
