package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	webAdapter "curtain-pos/internal/adapters/web"
	"curtain-pos/internal/app"
	"curtain-pos/internal/backend"
	"curtain-pos/internal/config"
	"curtain-pos/internal/core"
	"curtain-pos/internal/logger"
	"curtain-pos/internal/printer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(logger.Options{Service: "curtain-pos"})
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(logger.Options{
		Service: "curtain-pos",
		Level:   logger.ParseLevel(cfg.LogLevel),
		Format:  cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var p printer.Printer = printer.Noop{}
	if cfg.PrintingEnabled() {
		p = printer.NewServicePrinter(cfg.PrintServiceURL, log)
	} else {
		log.Warn().Msg("print service not configured; receipts will not be printed")
	}
	mode := core.DiscountPercent
	if cfg.DiscountMode == "absolute" {
		mode = core.DiscountAbsolute
	}

	svc := app.NewAppService(backend.New(cfg.BackendURL, cfg.BackendTimeout, log), p, log, app.Options{
		PaymentType:  core.PaymentType(cfg.PaymentType),
		DiscountMode: mode,
	})
	handler := webAdapter.NewHandler(ctx, svc, webAdapter.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		SessionTTL:     cfg.SessionTTL,
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", srv.Addr).Str("backend", cfg.BackendURL).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server")
	}
	log.Info().Msg("server stopped")
}
