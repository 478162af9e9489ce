package account

import (
	"context"
	"net/http"
	"strings"

	"github.com/adshao/go-binance/v2/futures"
)

// sdkClient adapts the go-binance futures SDK to the Client interface.
type sdkClient struct {
	client *futures.Client
}

func newSDKClient(cfg Config) *sdkClient {
	client := futures.NewClient(cfg.APIKey, cfg.APISecret)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		client.BaseURL = base
	}
	if cfg.HTTPTimeout > 0 {
		client.HTTPClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	return &sdkClient{client: client}
}

func (c *sdkClient) AccountSummary(ctx context.Context) (*AccountSummary, error) {
	acc, err := c.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, err
	}
	sum := &AccountSummary{
		TotalWalletBalance:    acc.TotalWalletBalance,
		TotalUnrealizedProfit: acc.TotalUnrealizedProfit,
		Assets:                make([]AssetBalance, 0, len(acc.Assets)),
	}
	for _, a := range acc.Assets {
		if a == nil {
			continue
		}
		sum.Assets = append(sum.Assets, AssetBalance{
			Asset:            a.Asset,
			AvailableBalance: a.AvailableBalance,
			MarginBalance:    a.MarginBalance,
		})
	}
	return sum, nil
}

func (c *sdkClient) PositionRisk(ctx context.Context) ([]PositionRisk, error) {
	risks, err := c.client.NewGetPositionRiskService().Do(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PositionRisk, 0, len(risks))
	for _, p := range risks {
		if p == nil {
			continue
		}
		out = append(out, PositionRisk{
			Symbol:           p.Symbol,
			PositionAmt:      p.PositionAmt,
			EntryPrice:       p.EntryPrice,
			MarkPrice:        p.MarkPrice,
			UnRealizedProfit: p.UnRealizedProfit,
			Leverage:         p.Leverage,
			PositionSide:     p.PositionSide,
		})
	}
	return out, nil
}

func (c *sdkClient) OpenOrders(ctx context.Context) ([]OpenOrder, error) {
	orders, err := c.client.NewListOpenOrdersService().Do(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]OpenOrder, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			continue
		}
		out = append(out, OpenOrder{
			Symbol:    o.Symbol,
			Side:      string(o.Side),
			Type:      string(o.Type),
			Price:     o.Price,
			StopPrice: o.StopPrice,
		})
	}
	return out, nil
}
