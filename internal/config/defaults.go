package config

import "strings"

const (
	defaultAppEnv          = "dev"
	defaultAppLogLevel     = "info"
	defaultAppHTTPAddr     = ":3001"
	defaultPollIntervalMs  = 5000
	defaultBinanceREST     = "https://fapi.binance.com"
	defaultQuoteAsset      = "USDT"
	defaultHTTPTimeoutSecs = 10
	defaultTransport       = "sdk"
)

func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Poll.applyDefaults()
	c.Binance.applyDefaults()
	for i := range c.Accounts {
		c.Accounts[i].applyDefaults()
	}
}

func (a *AppConfig) applyDefaults() {
	if strings.TrimSpace(a.Env) == "" {
		a.Env = defaultAppEnv
	}
	if strings.TrimSpace(a.LogLevel) == "" {
		a.LogLevel = defaultAppLogLevel
	}
	if strings.TrimSpace(a.HTTPAddr) == "" {
		a.HTTPAddr = defaultAppHTTPAddr
	}
}

func (p *PollConfig) applyDefaults() {
	if p.IntervalMs <= 0 {
		p.IntervalMs = defaultPollIntervalMs
	}
}

func (b *BinanceConfig) applyDefaults() {
	if strings.TrimSpace(b.RESTBaseURL) == "" {
		b.RESTBaseURL = defaultBinanceREST
	}
	if strings.TrimSpace(b.QuoteAsset) == "" {
		b.QuoteAsset = defaultQuoteAsset
	}
	if b.HTTPTimeout <= 0 {
		b.HTTPTimeout = defaultHTTPTimeoutSecs
	}
}

func (a *AccountConfig) applyDefaults() {
	if strings.TrimSpace(a.Transport) == "" {
		a.Transport = defaultTransport
	}
}
