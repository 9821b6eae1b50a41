package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prepareServe isolates the environment and flags without running the command.
func prepareServe(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("RULES_PATH", "")
	t.Setenv("LOG_LEVEL", "error")
	resetFlags(rootCmd)
}

func TestNewServer_Defaults(t *testing.T) {
	prepareServe(t)
	servePort = 9123

	srv, err := newServer()
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rules", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewServer_InvalidPort(t *testing.T) {
	prepareServe(t)
	servePort = 70000

	_, err := newServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestNewServer_MissingRulesFile(t *testing.T) {
	prepareServe(t)
	rulesPath = "missing-rules.json"

	_, err := newServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load rules")
}
