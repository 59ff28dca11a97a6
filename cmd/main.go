package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/seolab/kwscout/internal/adapters/http/api"
	"github.com/seolab/kwscout/internal/app"
	"github.com/seolab/kwscout/internal/config"
	"github.com/seolab/kwscout/internal/provider"
	"github.com/seolab/kwscout/internal/provider/ratelimit"
	"github.com/seolab/kwscout/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 3 * time.Minute // research runs can take a while
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Provider credentials usually live in a .env file during development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		os.Stderr.WriteString("failed to load .env: " + err.Error() + "\n")
	}

	logger.Init()
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	limiter := ratelimit.New(
		ratelimit.WithDelay(provider.NameDataForSEO, cfg.ProviderDelay(provider.NameDataForSEO)),
		ratelimit.WithDelay(provider.NameSerpAPI, cfg.ProviderDelay(provider.NameSerpAPI)),
		ratelimit.WithDelay(provider.NameSEMrush, cfg.ProviderDelay(provider.NameSEMrush)),
	)

	registry := provider.NewRegistry(provider.Credentials{
		DataForSEOLogin:    cfg.DataForSEOLogin,
		DataForSEOPassword: cfg.DataForSEOPassword,
		SerpAPIKey:         cfg.SerpAPIKey,
		SEMrushKey:         cfg.SEMrushKey,
	}, limiter,
		provider.WithFetchTimeout(cfg.FetchTimeout()),
		provider.WithWorkers(cfg.FetchWorkers),
		provider.WithRetries(cfg.FetchRetries, cfg.FetchBackoff()),
	)

	names := make([]string, 0, len(registry.Clients()))
	for _, c := range registry.Clients() {
		names = append(names, c.Name())
	}
	log.Info(ctx, "provider set assembled",
		logger.Any("providers", names),
		logger.Int("network", registry.NetworkCount()),
	)

	svc := app.New(registry,
		app.WithResearchDeadline(cfg.ResearchDeadline()),
		app.WithMaxResults(cfg.MaxResults),
		app.WithLogger(log.Named("research")),
	)

	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}
}
