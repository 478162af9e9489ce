package account

import (
	"context"
	"time"
)

// Config describes one credential set and its per-account behavior. One
// Fetcher is built per Config at startup; nothing here mutates afterwards.
type Config struct {
	Name           string
	APIKey         string
	APISecret      string
	BaseURL        string
	QuoteAsset     string
	InitialBalance float64
	FormatDecimals bool
	IncludeOrders  bool
	Transport      string
	HTTPTimeout    time.Duration
}

// BalanceSnapshot is the wallet view pushed to dashboard clients. Monetary
// fields are strings: either fixed to 2 decimals or the provider's raw value,
// depending on the account's format_decimals setting.
type BalanceSnapshot struct {
	Available          string `json:"available"`
	MarginalBalance    string `json:"marginalBalance"`
	TotalWalletBalance string `json:"totalWalletBalance"`
	TotalUnrealizedPnL string `json:"totalUnrealizedPnL"`
	ReturnValue        string `json:"returnValue"`
}

// PositionRecord is one open position. TakeProfit and StopLoss are derived
// from open orders and stay null when no qualifying order exists.
type PositionRecord struct {
	Symbol            string   `json:"symbol"`
	PositionAmt       float64  `json:"positionAmt"`
	PositionValueUSDT string   `json:"positionValueUSDT"`
	EntryPrice        float64  `json:"entryPrice"`
	MarkPrice         float64  `json:"markPrice"`
	PnL               float64  `json:"pnl"`
	Leverage          float64  `json:"leverage"`
	ROIPercentage     string   `json:"roiPercentage"`
	PositionSide      string   `json:"positionSide"`
	PositionType      string   `json:"positionType"`
	TakeProfit        *float64 `json:"takeProfit"`
	StopLoss          *float64 `json:"stopLoss"`
}

// Client is the exchange transport behind a Fetcher. Two implementations
// exist: the go-binance SDK client and the hand-signed REST client.
type Client interface {
	AccountSummary(ctx context.Context) (*AccountSummary, error)
	PositionRisk(ctx context.Context) ([]PositionRisk, error)
	OpenOrders(ctx context.Context) ([]OpenOrder, error)
}

// AccountSummary mirrors the futures account endpoint. Values stay strings,
// as the exchange reports them.
type AccountSummary struct {
	Assets                []AssetBalance
	TotalWalletBalance    string
	TotalUnrealizedProfit string
}

type AssetBalance struct {
	Asset            string
	AvailableBalance string
	MarginBalance    string
}

// PositionRisk mirrors one entry of the position-risk endpoint.
type PositionRisk struct {
	Symbol           string
	PositionAmt      string
	EntryPrice       string
	MarkPrice        string
	UnRealizedProfit string
	Leverage         string
	PositionSide     string
}

// OpenOrder mirrors one entry of the open-orders endpoint.
type OpenOrder struct {
	Symbol    string
	Side      string
	Type      string
	Price     string
	StopPrice string
}
