package broadcast

import (
	"encoding/json"
	"testing"

	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceMessageRoundTrip(t *testing.T) {
	in := balanceMessage{
		Account: "acct1",
		BalanceSnapshot: account.BalanceSnapshot{
			Available:          "1234.50",
			MarginalBalance:    "1900.00",
			TotalWalletBalance: "1850.12",
			TotalUnrealizedPnL: "49.88",
			ReturnValue:        "4.48",
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out balanceMessage
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestPositionsMessageShape(t *testing.T) {
	tp := 20.0
	msg := positionsMessage{
		Account: "acct4",
		Type:    messageTypePositions,
		Positions: []account.PositionRecord{{
			Symbol:            "ETHUSDT",
			PositionAmt:       2,
			PositionValueUSDT: "211.00",
			EntryPrice:        100,
			MarkPrice:         105.5,
			PnL:               11,
			Leverage:          20,
			ROIPercentage:     "5.50",
			PositionSide:      "BOTH",
			PositionType:      "long",
			TakeProfit:        &tp,
		}},
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var frame map[string]any
	require.NoError(t, json.Unmarshal(data, &frame))
	assert.Equal(t, "positions", frame["type"])
	positions, ok := frame["positions"].([]any)
	require.True(t, ok)
	require.Len(t, positions, 1)
	rec := positions[0].(map[string]any)
	assert.Equal(t, "long", rec["positionType"])
	assert.Equal(t, 20.0, rec["takeProfit"])
	assert.Nil(t, rec["stopLoss"])
}
