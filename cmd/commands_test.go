package cmd

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useBackend points the commands at a config whose backend is srv.
func useBackend(t *testing.T, srv *httptest.Server) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  url: "+srv.URL+"\n"), 0o600))

	prevPath, prevCfg := configPath, appCfg
	configPath = path
	t.Cleanup(func() {
		configPath, appCfg = prevPath, prevCfg
	})
}

func TestActionCmd_FailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/del_user/42", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"database unavailable"}`))
	}))
	defer srv.Close()
	useBackend(t, srv)

	assumeYes = true
	defer func() { assumeYes = false }()

	err := actionCmd.RunE(actionCmd, []string{"del_user", "42"})
	assert.ErrorIs(t, err, errReported)
}

func TestActionCmd_UnknownAction(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	useBackend(t, srv)

	err := actionCmd.RunE(actionCmd, []string{"drop_table", "1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
	assert.Contains(t, err.Error(), "drop_table")
}

func TestListCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/groups":
			_, _ = w.Write([]byte(`[{"gid":1,"gname":"g1","users":[]}]`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()
	useBackend(t, srv)

	assert.NoError(t, listCmd.RunE(listCmd, []string{"groups"}))
	assert.ErrorIs(t, listCmd.RunE(listCmd, []string{"users"}), errReported)
}

func TestCloseTunnel_WithoutTunnel(t *testing.T) {
	backendTunnel = nil
	assert.NotPanics(t, closeTunnel)
	assert.Nil(t, backendTunnel)
}
