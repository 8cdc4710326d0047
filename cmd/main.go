// Package main provides the entry point for the nutrition calculator.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nutrition-calculator/internal/calculator"
	"nutrition-calculator/internal/config"
	"nutrition-calculator/internal/docs"
	"nutrition-calculator/internal/handler"
	"nutrition-calculator/internal/logger"
	"nutrition-calculator/internal/middleware"
	"nutrition-calculator/internal/reporter"
)

// Run is the testable entrypoint for the HTTP server. It blocks until ctx is
// cancelled and the server has shut down.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("Starting Nutrition Calculator", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))

	calc, err := calculator.New(validator.New())
	if err != nil {
		return err
	}
	page, err := docs.NewRenderer()
	if err != nil {
		return err
	}
	report := reporter.New(cfg, log)
	h := handler.New(log, calc, report)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(cfg, log, h, page, middleware.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go report.Start()
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			report.Stop()
			log.Error("server error", zap.Error(err))
			return fmt.Errorf("serve %s: %w", cfg.Addr, err)
		}
	}

	log.Info("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Warn("server shutdown incomplete", zap.Error(err))
	}
	report.Stop()
	return nil
}

func main() {
	// a missing .env file is fine
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
