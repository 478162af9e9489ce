package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaultsAndExpandsEnv(t *testing.T) {
	t.Setenv("TEST_ACCT_KEY", "k-123")
	t.Setenv("TEST_ACCT_SECRET", "s-456")

	path := writeConfig(t, `
accounts:
  - name: acct1
    api_key: ${TEST_ACCT_KEY}
    api_secret: ${TEST_ACCT_SECRET}
    initial_balance: 1818.521
    format_decimals: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, ":3001", cfg.App.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.Poll.Interval())
	assert.Equal(t, "https://fapi.binance.com", cfg.Binance.RESTBaseURL)
	assert.Equal(t, "USDT", cfg.Binance.QuoteAsset)

	require.Len(t, cfg.Accounts, 1)
	acct := cfg.Accounts[0]
	assert.Equal(t, "k-123", acct.APIKey)
	assert.Equal(t, "s-456", acct.APISecret)
	assert.Equal(t, 1818.521, acct.InitialBalance)
	assert.Equal(t, "sdk", acct.Transport)
	assert.True(t, acct.FormatDecimals)
}

func TestLoadCustomPollInterval(t *testing.T) {
	path := writeConfig(t, `
poll:
  interval_ms: 1500
accounts:
  - name: acct1
    api_key: k
    api_secret: s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Poll.Interval())
}

func TestLoadRejectsEmptyRoster(t *testing.T) {
	path := writeConfig(t, `
app:
  log_level: debug
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one")
}

func TestLoadRejectsDuplicateAccountNames(t *testing.T) {
	path := writeConfig(t, `
accounts:
  - name: acct1
    api_key: k
    api_secret: s
  - name: acct1
    api_key: k2
    api_secret: s2
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	path := writeConfig(t, `
accounts:
  - name: acct1
    api_key: k
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_secret")
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	path := writeConfig(t, `
accounts:
  - name: acct1
    api_key: k
    api_secret: s
    transport: carrier-pigeon
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transport")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
