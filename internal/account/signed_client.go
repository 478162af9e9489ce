package account

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	pathAccount      = "/fapi/v2/account"
	pathPositionRisk = "/fapi/v2/positionRisk"
	pathOpenOrders   = "/fapi/v1/openOrders"

	apiKeyHeader = "X-MBX-APIKEY"
)

// SignedClient talks to the futures REST API directly, signing each query
// string with HMAC-SHA256 the way the legacy per-account clients did.
type SignedClient struct {
	cfg        Config
	httpClient *http.Client
	nowFn      func() time.Time
}

func NewSignedClient(cfg Config) *SignedClient {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SignedClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		nowFn:      time.Now,
	}
}

func (c *SignedClient) AccountSummary(ctx context.Context) (*AccountSummary, error) {
	body, err := c.get(ctx, pathAccount, url.Values{})
	if err != nil {
		return nil, err
	}
	root := gjson.ParseBytes(body)
	sum := &AccountSummary{
		TotalWalletBalance:    root.Get("totalWalletBalance").String(),
		TotalUnrealizedProfit: root.Get("totalUnrealizedProfit").String(),
	}
	for _, a := range root.Get("assets").Array() {
		sum.Assets = append(sum.Assets, AssetBalance{
			Asset:            a.Get("asset").String(),
			AvailableBalance: a.Get("availableBalance").String(),
			MarginBalance:    a.Get("marginBalance").String(),
		})
	}
	return sum, nil
}

func (c *SignedClient) PositionRisk(ctx context.Context) ([]PositionRisk, error) {
	body, err := c.get(ctx, pathPositionRisk, url.Values{})
	if err != nil {
		return nil, err
	}
	entries := gjson.ParseBytes(body).Array()
	out := make([]PositionRisk, 0, len(entries))
	for _, p := range entries {
		out = append(out, PositionRisk{
			Symbol:           p.Get("symbol").String(),
			PositionAmt:      p.Get("positionAmt").String(),
			EntryPrice:       p.Get("entryPrice").String(),
			MarkPrice:        p.Get("markPrice").String(),
			UnRealizedProfit: p.Get("unRealizedProfit").String(),
			Leverage:         p.Get("leverage").String(),
			PositionSide:     p.Get("positionSide").String(),
		})
	}
	return out, nil
}

func (c *SignedClient) OpenOrders(ctx context.Context) ([]OpenOrder, error) {
	body, err := c.get(ctx, pathOpenOrders, url.Values{})
	if err != nil {
		return nil, err
	}
	entries := gjson.ParseBytes(body).Array()
	out := make([]OpenOrder, 0, len(entries))
	for _, o := range entries {
		out = append(out, OpenOrder{
			Symbol:    o.Get("symbol").String(),
			Side:      o.Get("side").String(),
			Type:      o.Get("type").String(),
			Price:     o.Get("price").String(),
			StopPrice: o.Get("stopPrice").String(),
		})
	}
	return out, nil
}

// get issues a signed GET request. The signature covers the exact encoded
// query string, millisecond timestamp included.
func (c *SignedClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("timestamp", strconv.FormatInt(c.nowFn().UnixMilli(), 10))
	query := params.Encode()
	signature := c.sign(query)

	base := strings.TrimSpace(c.cfg.BaseURL)
	if base == "" {
		base = "https://fapi.binance.com"
	}
	endpoint := base + path + "?" + query + "&signature=" + signature

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, truncate(body, 256))
	}
	return body, nil
}

func (c *SignedClient) sign(query string) string {
	mac := hmac.New(sha256.New, []byte(c.cfg.APISecret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
