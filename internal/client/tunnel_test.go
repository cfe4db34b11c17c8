package client

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/EO-DataHub/eodhp-admin-console/internal/appconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func writeKey(t *testing.T) (string, ssh.PublicKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	block, err := ssh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))

	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)
	return path, sshPub
}

func TestSSHClientConfig(t *testing.T) {
	keyPath, pub := writeKey(t)

	cfg, err := sshClientConfig(appconfig.TunnelConfig{
		User:           "ops",
		Host:           "bastion",
		Port:           "22",
		PrivateKeyPath: keyPath,
		HostKey:        string(ssh.MarshalAuthorizedKey(pub)),
	})
	require.NoError(t, err)

	assert.Equal(t, "ops", cfg.User)
	assert.Len(t, cfg.Auth, 1)
	assert.NoError(t, cfg.HostKeyCallback("bastion:22", nil, pub))
}

func TestSSHClientConfig_Errors(t *testing.T) {
	keyPath, _ := writeKey(t)
	garbage := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(garbage, []byte("not a key"), 0o600))

	tests := []struct {
		name string
		cfg  appconfig.TunnelConfig
	}{
		{"missing key file", appconfig.TunnelConfig{PrivateKeyPath: filepath.Join(t.TempDir(), "nope")}},
		{"invalid key", appconfig.TunnelConfig{PrivateKeyPath: garbage}},
		{"invalid host key", appconfig.TunnelConfig{PrivateKeyPath: keyPath, HostKey: "ssh-ed25519 ???"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sshClientConfig(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestUseTunnel(t *testing.T) {
	c, err := NewClient(appconfig.Default().Backend, appconfig.Default().Endpoints)
	require.NoError(t, err)

	c.UseTunnel(&Tunnel{})

	transport, ok := c.HTTPClient.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.DialContext)
	assert.NotNil(t, c.HTTPClient.Jar)
}
