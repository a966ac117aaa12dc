// Package app wires the server process together: logger, world, tick loop,
// TCP listener, and the WebSocket gateway.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Bash-the-Kernel/Lan-Lords/internal/game"
	"github.com/Bash-the-Kernel/Lan-Lords/internal/logging"
	srvnet "github.com/Bash-the-Kernel/Lan-Lords/internal/net"
)

// Config carries the process-level settings. Gameplay constants live in
// game.Config; these are only the endpoints and the log destination.
type Config struct {
	TCPAddr  string
	HTTPAddr string
	LogFile  string
}

// DefaultConfig listens on all interfaces, TCP for game clients and HTTP for
// the WebSocket gateway plus diagnostics.
func DefaultConfig() Config {
	return Config{
		TCPAddr:  ":60001",
		HTTPAddr: ":60002",
		LogFile:  "lanlords.log",
	}
}

// configFromEnv applies LANLORDS_* overrides on top of the defaults.
func configFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LANLORDS_TCP_ADDR"); v != "" {
		cfg.TCPAddr = v
	}
	if v := os.Getenv("LANLORDS_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("LANLORDS_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

// Run starts the server and blocks until the context is cancelled or a
// listener fails.
func Run(ctx context.Context) error {
	cfg := configFromEnv()

	log, err := logging.New(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	world := game.NewWorld(game.DefaultConfig(), log)

	stop := make(chan struct{})
	go world.Run(stop)
	defer close(stop)

	listener, err := srvnet.Listen(cfg.TCPAddr, world, log)
	if err != nil {
		return fmt.Errorf("listen tcp: %w", err)
	}

	startedAt := time.Now()
	gateway := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srvnet.NewGatewayHandler(world, log, startedAt),
	}

	errCh := make(chan error, 2)
	go func() {
		if err := listener.Serve(); err != nil {
			errCh <- fmt.Errorf("tcp listener: %w", err)
		}
	}()
	go func() {
		if err := gateway.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("gateway: %w", err)
		}
	}()

	log.Infof("LAN Lords server listening on tcp %s, http %s", cfg.TCPAddr, cfg.HTTPAddr)

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	log.Info("shutting down")
	_ = listener.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = gateway.Shutdown(shutdownCtx)

	return runErr
}
