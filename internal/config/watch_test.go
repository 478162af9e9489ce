package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcherRequiresPath(t *testing.T) {
	w, err := NewWatcher("  ")
	assert.Nil(t, w)
	assert.ErrorContains(t, err, "requires path")
}

func TestNewWatcherRejectsMissingFile(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Nil(t, w)
	assert.ErrorContains(t, err, "read config failed")
}

func TestNewWatcherStartsOnValidFile(t *testing.T) {
	path := writeConfig(t, `
accounts:
  - name: acct1
    api_key: k
    api_secret: s
`)
	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, path, w.path)
}
