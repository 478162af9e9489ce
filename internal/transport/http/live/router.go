package livehttp

import (
	"context"
	"net/http"

	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/account"

	"github.com/gin-gonic/gin"
)

// AccountService is one account's synchronous fetch surface.
type AccountService interface {
	Name() string
	FetchBalance(ctx context.Context) (account.BalanceSnapshot, error)
	FetchPositions(ctx context.Context) ([]account.PositionRecord, error)
}

// Router registers one balances and one positions route per account,
// mirroring the /api/<name>_balances and /api/<name>_positions layout.
type Router struct {
	accounts []AccountService
}

func NewRouter(accounts []AccountService) *Router {
	return &Router{accounts: accounts}
}

// Register mounts the per-account routes under the given group.
func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	for _, svc := range r.accounts {
		group.GET("/"+svc.Name()+"_balances", r.balancesHandler(svc))
		group.GET("/"+svc.Name()+"_positions", r.positionsHandler(svc))
	}
}

func (r *Router) balancesHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := svc.FetchBalance(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func (r *Router) positionsHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		positions, err := svc.FetchPositions(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if positions == nil {
			positions = []account.PositionRecord{}
		}
		c.JSON(http.StatusOK, positions)
	}
}
