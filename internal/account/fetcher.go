package account

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/logger"

	"github.com/shopspring/decimal"
)

// Fetcher wraps one account's exchange client and normalizes its payloads
// into BalanceSnapshot / PositionRecord values. Safe for concurrent use.
type Fetcher struct {
	cfg    Config
	client Client
}

// New builds a Fetcher for the configured transport.
func New(cfg Config) (*Fetcher, error) {
	cfg = cfg.withDefaults()
	var client Client
	switch cfg.Transport {
	case "", "sdk":
		client = newSDKClient(cfg)
	case "signed":
		client = NewSignedClient(cfg)
	default:
		return nil, fmt.Errorf("account %s: unknown transport %q", cfg.Name, cfg.Transport)
	}
	return &Fetcher{cfg: cfg, client: client}, nil
}

// NewWithClient builds a Fetcher over an explicit client.
func NewWithClient(cfg Config, client Client) *Fetcher {
	return &Fetcher{cfg: cfg.withDefaults(), client: client}
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.QuoteAsset) == "" {
		c.QuoteAsset = "USDT"
	}
	return c
}

func (f *Fetcher) Name() string {
	return f.cfg.Name
}

// FetchBalance returns the quote-asset wallet view. A missing quote-asset
// entry degrades to zero balances, never to an error.
func (f *Fetcher) FetchBalance(ctx context.Context) (BalanceSnapshot, error) {
	sum, err := f.client.AccountSummary(ctx)
	if err != nil {
		return BalanceSnapshot{}, fmt.Errorf("fetching account details for %s: %w", f.cfg.Name, err)
	}

	available, marginal := "0", "0"
	quoteFound := false
	for _, asset := range sum.Assets {
		if asset.Asset == f.cfg.QuoteAsset {
			available = asset.AvailableBalance
			marginal = asset.MarginBalance
			quoteFound = true
			break
		}
	}
	if !quoteFound {
		logger.Warnf("account %s: no %s entry in assets, reporting zero balance", f.cfg.Name, f.cfg.QuoteAsset)
	}

	snap := BalanceSnapshot{
		Available:          available,
		MarginalBalance:    marginal,
		TotalWalletBalance: sum.TotalWalletBalance,
		TotalUnrealizedPnL: sum.TotalUnrealizedProfit,
		ReturnValue:        f.returnValue(marginal, quoteFound),
	}
	if f.cfg.FormatDecimals {
		snap.Available = fixed2(snap.Available)
		snap.MarginalBalance = fixed2(snap.MarginalBalance)
		snap.TotalWalletBalance = fixed2(snap.TotalWalletBalance)
		snap.TotalUnrealizedPnL = fixed2(snap.TotalUnrealizedPnL)
	}
	return snap, nil
}

// returnValue is the percentage gain of the margin balance over the account's
// configured baseline, as a 2-decimal string.
func (f *Fetcher) returnValue(marginBalance string, quoteFound bool) string {
	initial := decimal.NewFromFloat(f.cfg.InitialBalance)
	if !quoteFound || !initial.IsPositive() {
		return "0.00"
	}
	margin, err := decimal.NewFromString(strings.TrimSpace(marginBalance))
	if err != nil {
		return "0.00"
	}
	return margin.Sub(initial).Div(initial).Mul(decimal.NewFromInt(100)).StringFixed(2)
}

// FetchPositions returns one record per non-zero open position. The result is
// never nil on success, so an empty book serializes as [] rather than null.
func (f *Fetcher) FetchPositions(ctx context.Context) ([]PositionRecord, error) {
	risks, err := f.client.PositionRisk(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching positions for %s: %w", f.cfg.Name, err)
	}
	var orders []OpenOrder
	if f.cfg.IncludeOrders {
		orders, err = f.client.OpenOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching open orders for %s: %w", f.cfg.Name, err)
		}
	}

	records := make([]PositionRecord, 0, len(risks))
	for _, p := range risks {
		amt := parseFloat(p.PositionAmt)
		if amt == 0 {
			continue
		}
		records = append(records, f.buildRecord(p, amt, orders))
	}
	return records, nil
}

func (f *Fetcher) buildRecord(p PositionRisk, amt float64, orders []OpenOrder) PositionRecord {
	entry := parseFloat(p.EntryPrice)
	mark := parseFloat(p.MarkPrice)
	pnl := parseFloat(p.UnRealizedProfit)
	leverage := parseFloat(p.Leverage)

	positionType := "long"
	if amt < 0 {
		positionType = "short"
	}

	entryRounded := round2(entry)
	rec := PositionRecord{
		Symbol:            p.Symbol,
		PositionAmt:       amt,
		PositionValueUSDT: decimal.NewFromFloat(amt * mark).StringFixed(2),
		EntryPrice:        entryRounded,
		MarkPrice:         round2(mark),
		PnL:               round2(pnl),
		Leverage:          leverage,
		ROIPercentage:     roiPercentage(pnl, entry, amt),
		PositionSide:      p.PositionSide,
		PositionType:      positionType,
	}
	if f.cfg.IncludeOrders {
		if tp := matchTakeProfit(orders, p.Symbol, positionType, mark); tp != nil {
			v := round2((*tp - entryRounded) * amt)
			rec.TakeProfit = &v
		}
		if sl := matchStopLoss(orders, p.Symbol, positionType); sl != nil {
			v := round2((entryRounded - *sl) * amt)
			rec.StopLoss = &v
		}
	}
	return rec
}

// roiPercentage is unrealized PnL over the entry notional, as a 2-decimal
// percentage string. Zero entry price or amount yields "0.00".
func roiPercentage(pnl, entryPrice, amt float64) string {
	if entryPrice == 0 || amt == 0 {
		return "0.00"
	}
	notional := decimal.NewFromFloat(entryPrice).Mul(decimal.NewFromFloat(amt).Abs())
	return decimal.NewFromFloat(pnl).Div(notional).Mul(decimal.NewFromInt(100)).StringFixed(2)
}

// matchTakeProfit returns the price of the first opposing-side order sitting
// on the profitable side of the mark price. Stop orders report price "0" and
// never qualify.
func matchTakeProfit(orders []OpenOrder, symbol, positionType string, markPrice float64) *float64 {
	for _, o := range orders {
		if o.Symbol != symbol {
			continue
		}
		price := parseFloat(o.Price)
		if price == 0 {
			continue
		}
		if positionType == "long" && o.Side == "SELL" && price > markPrice {
			return &price
		}
		if positionType == "short" && o.Side == "BUY" && price < markPrice {
			return &price
		}
	}
	return nil
}

// matchStopLoss returns the stop price of the first opposing-side stop order.
func matchStopLoss(orders []OpenOrder, symbol, positionType string) *float64 {
	for _, o := range orders {
		if o.Symbol != symbol {
			continue
		}
		if !strings.Contains(o.Type, "STOP") {
			continue
		}
		if (positionType == "long" && o.Side == "SELL") || (positionType == "short" && o.Side == "BUY") {
			stop := parseFloat(o.StopPrice)
			if stop == 0 {
				continue
			}
			return &stop
		}
	}
	return nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// fixed2 renders a decimal string with exactly 2 fraction digits.
// Unparseable input degrades to "0.00".
func fixed2(s string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}
