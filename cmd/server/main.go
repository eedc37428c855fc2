package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"StockWatch/internal/collector"
	"StockWatch/internal/config"
	"StockWatch/internal/directory"
	"StockWatch/internal/httpclient"
	"StockWatch/internal/logger"
	"StockWatch/internal/model"
	"StockWatch/internal/orchestrator"
	"StockWatch/internal/scheduler"
	"StockWatch/internal/server"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic("load config: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("config validation: " + err.Error())
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, OutputFile: cfg.Log.File})
	if err != nil {
		panic("create logger: " + err.Error())
	}
	defer log.Sync()
	log.Info("StockWatch starting")

	// Ticker directory: a missing data file is fatal, never an empty directory.
	dir, err := directory.Load(cfg.Directory.File)
	if err != nil {
		if errors.Is(err, directory.ErrDataFileMissing) {
			log.Fatal("ticker data file is missing; place the NYSE CSV at the configured path",
				zap.String("path", cfg.Directory.File))
		}
		log.Fatal("load ticker directory", zap.Error(err))
	}
	log.Info("ticker directory loaded", zap.Int("tickers", dir.Len()))

	// Init fetcher
	rateLimit := httpclient.RateLimitConfig{
		RequestsPerSecond: cfg.DataSource.RequestsPerSecond,
		Burst:             cfg.DataSource.Burst,
	}
	retryCfg := httpclient.RetryConfig{
		MaxRetries: cfg.DataSource.MaxRetries,
		BaseDelay:  cfg.DataSource.RetryBaseDelay.Std(),
		MaxDelay:   cfg.DataSource.RetryMaxDelay.Std(),
	}
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, rateLimit, retryCfg)
	} else {
		fetcher = collector.NewYahooFetcher(collector.YahooConfig{
			Proxy:     cfg.Proxy,
			RateLimit: rateLimit,
			Retry:     retryCfg,
		})
	}
	log.Info("data source ready", zap.String("source", fetcher.Name()))

	orch := orchestrator.New(fetcher, cfg.Fetch.Workers, orchestrator.Windows{
		SMA: cfg.Fetch.SMAWindow,
		EMA: cfg.Fetch.EMAWindow,
		RSI: cfg.Fetch.RSIWindow,
	}, log)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defaultPeriod := model.Period(cfg.Fetch.DefaultPeriod)

	// Watchlist scheduler (optional)
	var sched *scheduler.Scheduler
	if len(cfg.Watchlist.Symbols) > 0 {
		sched = scheduler.New(ctx, orch, cfg.Watchlist.Symbols, defaultPeriod, log)
		if err := sched.Register(cfg.Watchlist.Cron); err != nil {
			log.Fatal("register watchlist refresh", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
		go sched.RefreshNow()
	}

	srv := server.New(server.Options{
		Listen:        cfg.Server.Listen,
		Directory:     dir,
		Orchestrator:  orch,
		Scheduler:     sched,
		DefaultPeriod: defaultPeriod,
		Log:           log,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal("http server failed", zap.Error(err))
	case sig := <-sigCh:
		log.Info("shutdown signal received, stopping", zap.String("signal", sig.String()))
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http server shutdown", zap.Error(err))
	}
	log.Info("StockWatch stopped")
}
