package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"curtain-pos/internal/adapters/cli"
	"curtain-pos/internal/app"
	"curtain-pos/internal/backend"
	"curtain-pos/internal/config"
	"curtain-pos/internal/core"
	"curtain-pos/internal/logger"
	"curtain-pos/internal/printer"

	ucli "github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build := func(*ucli.Context) (app.ApplicationService, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		// The terminal owns stdout, so logs stay on stderr in readable form.
		log := logger.New(logger.Options{
			Service: "curtain-pos",
			Level:   logger.ParseLevel(cfg.LogLevel),
			Format:  "console",
			Output:  os.Stderr,
		})

		var p printer.Printer = printer.Noop{}
		if cfg.PrintingEnabled() {
			p = printer.NewServicePrinter(cfg.PrintServiceURL, log)
		}
		mode := core.DiscountPercent
		if cfg.DiscountMode == "absolute" {
			mode = core.DiscountAbsolute
		}
		return app.NewAppService(backend.New(cfg.BackendURL, cfg.BackendTimeout, log), p, log, app.Options{
			PaymentType:  core.PaymentType(cfg.PaymentType),
			DiscountMode: mode,
		}), nil
	}

	if err := cli.NewApp(build, os.Stdin, os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
