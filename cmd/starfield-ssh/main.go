// Package main serves the terminal starfield over SSH.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"

	"github.com/Faultbox/starfield/internal/config"
	"github.com/Faultbox/starfield/internal/logger"
	"github.com/Faultbox/starfield/internal/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.SSH.HostKey != "" {
		if err := server.EnsureHostKey(cfg.SSH.HostKey); err != nil {
			logger.Error("host key error", zap.Error(err))
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg)
	if err != nil {
		logger.Error("failed to create server", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down", zap.Int("sessions", srv.Active()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown incomplete", zap.Error(err))
		}
	}
}
