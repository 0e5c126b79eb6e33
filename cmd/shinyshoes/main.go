package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shinyshoes/internal/cache"
	"shinyshoes/internal/config"
	apphttp "shinyshoes/internal/http"
	"shinyshoes/internal/http/handlers"
	applog "shinyshoes/internal/log"
	"shinyshoes/internal/repos"
	"shinyshoes/internal/services"
	"shinyshoes/internal/stylist"
)

func main() {
	cfg := config.Load()
	applog.SetLevel(cfg.LogLevel)

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Warn(nil, "log.file.open", err, map[string]any{"path": cfg.LogFile})
		} else {
			defer f.Close()
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}
	cfg.Log()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		applog.Error(nil, "db.open", err, map[string]any{"dsn": cfg.DBDSN})
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	deps := handlers.NewDeps(db, cfg, cartStore(ctx, cfg), newStylist(ctx, cfg))
	app := apphttp.NewApp(cfg, deps)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		applog.Info(nil, "server.shutdown", nil)
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})
	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.Error(nil, "server.listen", err, nil)
		os.Exit(1)
	}
}

// cartStore picks the cart backend. Redis that cannot be reached at startup
// falls back to the sqlite table.
func cartStore(ctx context.Context, cfg config.Config) services.CartStore {
	if cfg.CartStore != "redis" {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	client, err := cache.Connect(cctx, cfg.RedisURL)
	if err != nil {
		applog.Warn(nil, "cart.store.redis.unavailable", err, map[string]any{"fallback": "sqlite"})
		return nil
	}
	applog.Info(nil, "cart.store.redis", map[string]any{"ttl": cfg.CartTTL.String()})
	return cache.NewRedisCartStore(client, cfg.CartTTL)
}

func newStylist(ctx context.Context, cfg config.Config) *stylist.Stylist {
	opts := stylist.Options{Timeout: cfg.GenAITimeout, RPS: cfg.GenAIRPS}
	if cfg.GenAIKey == "" {
		applog.Warn(nil, "stylist.disabled", nil, map[string]any{"reason": "no api key"})
		return stylist.New(nil, opts)
	}
	gen, err := stylist.NewGeminiGenerator(ctx, cfg.GenAIKey, cfg.GenAIModel)
	if err != nil {
		applog.Warn(nil, "stylist.client.fail", err, nil)
		return stylist.New(nil, opts)
	}
	return stylist.New(gen, opts)
}
