package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yieldcli.log")
	log, err := New(Options{Path: path, Level: "info"})
	require.NoError(t, err)

	log.Info("vault refreshed")
	log.Debug("hidden at info level")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"vault refreshed"`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestNewEmptyPathIsNop(t *testing.T) {
	log, err := New(Options{})
	require.NoError(t, err)
	log.Info("goes nowhere")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	assert.Error(t, err)
}
