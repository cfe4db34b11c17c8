package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EO-DataHub/eodhp-admin-console/internal/authn"
	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bearer(t *testing.T, username string, roles ...string) string {
	t.Helper()
	claims := authn.Claims{Username: username}
	claims.RealmAccess.Roles = roles
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestJWTMiddleware_PopulatesClaims(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "alice", claims.Username)
		assert.NotEmpty(t, r.Context().Value(TokenKey))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/console", nil)
	req.Header.Add("Authorization", bearer(t, "alice", "admin"))

	w := httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTMiddleware_Rejects(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	for name, header := range map[string]string{
		"missing":       "",
		"not bearer":    "Basic dXNlcjpwYXNz",
		"invalid token": "Bearer invalid-token",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/console", nil)
			if header != "" {
				req.Header.Add("Authorization", header)
			}
			w := httptest.NewRecorder()
			JWTMiddleware(next).ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := JWTMiddleware(RequireRole("admin")(ok))

	tests := []struct {
		name   string
		roles  []string
		status int
	}{
		{"admin", []string{"user", "admin"}, http.StatusNoContent},
		{"not admin", []string{"user"}, http.StatusForbidden},
		{"no roles", nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/console/actions", nil)
			req.Header.Add("Authorization", bearer(t, "bob", tt.roles...))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/console", nil)
	w := httptest.NewRecorder()
	RequireRole("admin")(http.NotFoundHandler()).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWithLogger(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())
		assert.NotEqual(t, zerolog.Disabled, logger.GetLevel())
	})
	req := httptest.NewRequest(http.MethodGet, "/console", nil).WithContext(context.Background())
	WithLogger(next).ServeHTTP(httptest.NewRecorder(), req)
}
