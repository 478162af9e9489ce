package config

import "time"

// Config is the top-level configuration carrier.
type Config struct {
	App      AppConfig       `toml:"app"`
	Poll     PollConfig      `toml:"poll"`
	Binance  BinanceConfig   `toml:"binance"`
	Accounts []AccountConfig `toml:"accounts"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
	HTTPAddr string `toml:"http_addr"`
}

// PollConfig controls the push cadence of the broadcast loop.
type PollConfig struct {
	IntervalMs int `toml:"interval_ms"`
}

func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// BinanceConfig holds exchange-wide settings shared by every account.
type BinanceConfig struct {
	RESTBaseURL string `toml:"rest_base_url"`
	QuoteAsset  string `toml:"quote_asset"`
	HTTPTimeout int    `toml:"http_timeout_seconds"`
}

func (b BinanceConfig) Timeout() time.Duration {
	return time.Duration(b.HTTPTimeout) * time.Second
}

// AccountConfig describes one credential set. Credentials may reference
// environment variables ("${ACCT1_KEY}"), expanded at load time.
type AccountConfig struct {
	Name           string  `toml:"name"`
	APIKey         string  `toml:"api_key"`
	APISecret      string  `toml:"api_secret"`
	InitialBalance float64 `toml:"initial_balance"`
	// Transport selects the exchange client: "sdk" (go-binance) or
	// "signed" (hand-signed REST, matching the legacy per-account clients).
	Transport string `toml:"transport"`
	// FormatDecimals renders monetary fields as 2-decimal strings. Off, the
	// provider's raw strings pass through unchanged.
	FormatDecimals bool `toml:"format_decimals"`
	// IncludeOrders cross-references open orders to derive TP/SL levels.
	IncludeOrders bool `toml:"include_orders"`
}
