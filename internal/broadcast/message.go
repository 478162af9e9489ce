package broadcast

import "github.com/Navi0405/Binance-Futures-LiveTrade/internal/account"

// balanceMessage is the balance push frame: {"account": ..., <snapshot fields>}.
type balanceMessage struct {
	Account string `json:"account"`
	account.BalanceSnapshot
}

// positionsMessage is the positions push frame.
type positionsMessage struct {
	Account   string                   `json:"account"`
	Type      string                   `json:"type"`
	Positions []account.PositionRecord `json:"positions"`
}

// errorMessage replaces the data fields for the account/kind that failed.
type errorMessage struct {
	Account string `json:"account"`
	Error   string `json:"error"`
}

const messageTypePositions = "positions"
