package client

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/EO-DataHub/eodhp-admin-console/internal/appconfig"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
)

// Tunnel carries backend connections over an SSH session to a bastion host.
type Tunnel struct {
	ssh *ssh.Client
}

// sshClientConfig builds the client configuration for the bastion.
func sshClientConfig(cfg appconfig.TunnelConfig) (*ssh.ClientConfig, error) {
	key, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read private key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key: %w", err)
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if cfg.HostKey != "" {
		pub, _, _, _, err := ssh.ParseAuthorizedKey([]byte(cfg.HostKey))
		if err != nil {
			return nil, fmt.Errorf("unable to parse host key: %w", err)
		}
		hostKeyCallback = ssh.FixedHostKey(pub)
	} else {
		log.Warn().Str("host", cfg.Host).Msg("No host key configured for the SSH tunnel, the bastion is not verified")
	}

	return &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         5 * time.Second,
	}, nil
}

// OpenTunnel connects to the bastion.
func OpenTunnel(cfg appconfig.TunnelConfig) (*Tunnel, error) {
	sshConfig, err := sshClientConfig(cfg)
	if err != nil {
		return nil, err
	}

	client, err := ssh.Dial("tcp", net.JoinHostPort(cfg.Host, cfg.Port), sshConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Host, err)
	}

	log.Info().Str("host", cfg.Host).Msg("SSH tunnel to backend opened")
	return &Tunnel{ssh: client}, nil
}

// DialContext opens a connection to addr from the bastion's side.
func (t *Tunnel) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	return t.ssh.DialContext(ctx, network, addr)
}

func (t *Tunnel) Close() error {
	return t.ssh.Close()
}

// UseTunnel sends every backend request through t.
func (c *Client) UseTunnel(t *Tunnel) {
	c.HTTPClient.Transport = &http.Transport{
		DialContext:         t.DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
}
