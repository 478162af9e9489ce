package app

import (
	"context"
	"fmt"

	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/account"
	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/broadcast"
	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/config"
	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/logger"
	livehttp "github.com/Navi0405/Binance-Futures-LiveTrade/internal/transport/http/live"

	"golang.org/x/sync/errgroup"
)

// App wires the account fetchers, the broadcast hub and the HTTP server.
type App struct {
	cfg      *config.Config
	hub      *broadcast.Hub
	liveHTTP *livehttp.Server
}

// NewApp builds the application from config (not started).
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	fetchers, err := buildFetchers(cfg)
	if err != nil {
		return nil, err
	}

	sources := make([]broadcast.Source, 0, len(fetchers))
	services := make([]livehttp.AccountService, 0, len(fetchers))
	for _, f := range fetchers {
		sources = append(sources, f)
		services = append(services, f)
	}

	sched := broadcast.NewScheduler(cfg.Poll.Interval())
	hub := broadcast.NewHub(sched, sources)

	srv, err := livehttp.NewServer(livehttp.ServerConfig{
		Addr:     cfg.App.HTTPAddr,
		Accounts: services,
		Hub:      hub,
	})
	if err != nil {
		return nil, fmt.Errorf("building live http server: %w", err)
	}

	return &App{cfg: cfg, hub: hub, liveHTTP: srv}, nil
}

func buildFetchers(cfg *config.Config) ([]*account.Fetcher, error) {
	fetchers := make([]*account.Fetcher, 0, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		f, err := account.New(account.Config{
			Name:           a.Name,
			APIKey:         a.APIKey,
			APISecret:      a.APISecret,
			BaseURL:        cfg.Binance.RESTBaseURL,
			QuoteAsset:     cfg.Binance.QuoteAsset,
			InitialBalance: a.InitialBalance,
			FormatDecimals: a.FormatDecimals,
			IncludeOrders:  a.IncludeOrders,
			Transport:      a.Transport,
			HTTPTimeout:    cfg.Binance.Timeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("building fetcher for %s: %w", a.Name, err)
		}
		fetchers = append(fetchers, f)
	}
	return fetchers, nil
}

// Run serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	logger.Infof("starting with %d accounts, poll interval %s",
		len(a.cfg.Accounts), a.cfg.Poll.Interval())

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer a.hub.Shutdown()
		if err := a.liveHTTP.Start(ctx); err != nil {
			return fmt.Errorf("live http server error: %w", err)
		}
		return nil
	})
	return group.Wait()
}
