package appconfig

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// Config holds all configuration details
type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Endpoints EndpointsConfig `yaml:"endpoints"`
	Render    RenderConfig    `yaml:"render"`
	Settings  SettingsConfig  `yaml:"settings"`
	Server    ServerConfig    `yaml:"server"`
	Audit     AuditConfig     `yaml:"audit"`
	AWS       AWSConfig       `yaml:"aws"`
}

// BackendConfig defines how the console reaches and authenticates to the backend
type BackendConfig struct {
	URL            string        `yaml:"url"`
	SessionCookie  string        `yaml:"sessionCookie"`
	Session        string        `yaml:"session"`
	CSRFToken      string        `yaml:"csrfToken"`
	DiscoverMarkup bool          `yaml:"discoverMarkup"`
	Timeout        time.Duration `yaml:"timeout"`
	Tunnel         TunnelConfig  `yaml:"tunnel"`
}

// TunnelConfig routes backend requests through an SSH bastion when Host is set
type TunnelConfig struct {
	User           string `yaml:"user"`
	Host           string `yaml:"host"`
	Port           string `yaml:"port"`
	PrivateKeyPath string `yaml:"privateKeyPath"`
	// HostKey is the bastion's public key in authorized_keys format.
	HostKey string `yaml:"hostKey"`
}

// EndpointsConfig holds the backend paths. Action templates use {id} as the
// record identifier placeholder.
type EndpointsConfig struct {
	Users         string `yaml:"users"`
	Groups        string `yaml:"groups"`
	Projects      string `yaml:"projects"`
	Settings      string `yaml:"settings"`
	Dashboard     string `yaml:"dashboard"`
	DeleteUser    string `yaml:"deleteUser"`
	ResetPassword string `yaml:"resetPassword"`
	DeleteGroup   string `yaml:"deleteGroup"`
	DeleteProject string `yaml:"deleteProject"`
}

type RenderConfig struct {
	MaxDescription int `yaml:"maxDescription"`
}

// SettingsConfig lists the boolean flags the console exposes as toggles
type SettingsConfig struct {
	Flags []string `yaml:"flags"`
}

// ServerConfig defines the web console served by the serve command
type ServerConfig struct {
	BasePath     string `yaml:"basePath"`
	RequiredRole string `yaml:"requiredRole"`
}

// AuditConfig selects where completed admin actions are recorded
type AuditConfig struct {
	Sink     string         `yaml:"sink"`
	Pulsar   PulsarConfig   `yaml:"pulsar"`
	Database DatabaseConfig `yaml:"database"`
}

// PulsarConfig defines the messaging system connection details
type PulsarConfig struct {
	URL   string `yaml:"url"`
	Topic string `yaml:"topic"`
}

// DatabaseConfig defines the database connection details
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Source string `yaml:"source"`
}

type AWSConfig struct {
	Region            string `yaml:"region"`
	CredentialsSecret string `yaml:"credentialsSecret"`
}

const (
	AuditSinkNone     = "none"
	AuditSinkPulsar   = "pulsar"
	AuditSinkPostgres = "postgres"
)

// Default returns the configuration used when a value is not set in the file.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:           "http://localhost:5000",
			SessionCookie: "session",
			Tunnel: TunnelConfig{
				Port: "22",
			},
		},
		Endpoints: EndpointsConfig{
			Users:         "/api/users",
			Groups:        "/api/groups",
			Projects:      "/api/projects",
			Settings:      "/admin/settings",
			Dashboard:     "/admin/dashboard",
			DeleteUser:    "/admin/del_user/{id}",
			ResetPassword: "/admin/reset_password/{id}",
			DeleteGroup:   "/admin/del_group/{id}",
			DeleteProject: "/admin/del_projects/{id}",
		},
		Render: RenderConfig{
			MaxDescription: 50,
		},
		Settings: SettingsConfig{
			Flags: []string{models.TeacherOnlyComment},
		},
		Server: ServerConfig{
			BasePath:     "/console",
			RequiredRole: "admin",
		},
		Audit: AuditConfig{
			Sink: AuditSinkNone,
			Database: DatabaseConfig{
				Driver: "postgres",
			},
		},
	}
}

// LoadConfig loads and parses the configuration from a given file path.
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	// Parse the template file
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	// Create a map of environment variables
	envVars := loadEnvVars()

	// Execute the template with environment variables
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, envVars)
	if err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, err
	}

	return Parse(buf.Bytes())
}

// Parse unmarshals rendered YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the values that cannot fall back to a default.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("backend.url is required")
	}
	if t := c.Backend.Tunnel; t.Host != "" && (t.User == "" || t.PrivateKeyPath == "") {
		return errors.New("backend.tunnel.user and backend.tunnel.privateKeyPath are required when backend.tunnel.host is set")
	}
	if c.Render.MaxDescription <= 0 {
		return errors.New("render.maxDescription must be positive")
	}
	if !strings.HasPrefix(c.Server.BasePath, "/") || strings.HasSuffix(c.Server.BasePath, "/") {
		return errors.New("server.basePath must start with / and must not end with /")
	}
	switch c.Audit.Sink {
	case "", AuditSinkNone:
	case AuditSinkPulsar:
		if c.Audit.Pulsar.URL == "" || c.Audit.Pulsar.Topic == "" {
			return errors.New("audit.pulsar.url and audit.pulsar.topic are required for the pulsar sink")
		}
	case AuditSinkPostgres:
		if c.Audit.Database.Source == "" {
			return errors.New("audit.database.source is required for the postgres sink")
		}
	default:
		return errors.New("audit.sink must be one of none, pulsar, postgres")
	}
	return nil
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
