package livehttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/logger"

	"github.com/gin-gonic/gin"
)

// Server exposes the REST facade and the /ws broadcast endpoint.
type Server struct {
	addr   string
	router *gin.Engine
}

// WebsocketHandler accepts a live connection (the broadcast hub).
type WebsocketHandler interface {
	HandleConnection(w http.ResponseWriter, r *http.Request)
}

// ServerConfig describes the HTTP server dependencies.
type ServerConfig struct {
	Addr     string
	Accounts []AccountService
	Hub      WebsocketHandler
}

// NewServer builds the HTTP server (not started).
func NewServer(cfg ServerConfig) (*Server, error) {
	if len(cfg.Accounts) == 0 {
		return nil, errors.New("live http server requires at least one account")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":3001"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	NewRouter(cfg.Accounts).Register(router.Group("/api"))
	if cfg.Hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			cfg.Hub.HandleConnection(c.Writer, c.Request)
		})
	}

	return &Server{addr: cfg.Addr, router: router}, nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Handler exposes the router (for httptest).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Infof("live http server listening on %s", s.addr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		c.Next()
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s",
			method, path, c.Writer.Status(), c.ClientIP(), time.Since(start))
	}
}
