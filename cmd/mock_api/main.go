package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/goliatone/go-tourneyform/cmd/mock_api/routes"
	"github.com/goliatone/go-tourneyform/internal/config"
	"github.com/goliatone/go-tourneyform/internal/logger"
)

func run(ctx context.Context) error {
	cfg, err := config.LoadMockAPI(os.Getenv("MOCKAPI_CONFIG"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(slog.Level(cfg.Logging.Level))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	e := routes.BuildEcho(logger.Logger)

	server := routes.NewServer(routes.NewStore(), registry, logger.Logger)
	server.Register(e, cfg.Path)

	errCh := make(chan error, 1)
	go func() {
		logger.Logger.Info("mock api listening", "address", cfg.ListenAddress, "path", cfg.Path)
		if err := e.Start(cfg.ListenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.GracefulShutdownSecs)*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		stop()
		os.Exit(1)
	}
}
