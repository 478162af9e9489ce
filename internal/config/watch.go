package config

import (
	"fmt"
	"strings"

	"github.com/Navi0405/Binance-Futures-LiveTrade/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watcher reloads the config file on FS events. Only runtime-adjustable
// settings (log level) are re-applied; roster or credential changes still
// require a restart.
type Watcher struct {
	path string
	v    *viper.Viper
}

// NewWatcher starts watching the config file at path.
func NewWatcher(path string) (*Watcher, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("config watcher requires path")
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}
	w := &Watcher{path: path, v: v}
	v.OnConfigChange(func(evt fsnotify.Event) {
		cfg, err := Load(w.path)
		if err != nil {
			logger.Errorf("config reload failed (%s): %v", evt.Name, err)
			return
		}
		logger.SetLevel(cfg.App.LogLevel)
		logger.Infof("config reloaded, log_level=%s", cfg.App.LogLevel)
	})
	v.WatchConfig()
	return w, nil
}
