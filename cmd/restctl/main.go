package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/restutils/internal/cli"
	"github.com/samvad-hq/restutils/internal/config"
	"github.com/samvad-hq/restutils/internal/logger"
	"github.com/samvad-hq/restutils/pkg/httpclient"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "restctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("restctl starting", "config", cfg)

	httpclient.SetDefault(httpclient.NewRestyTransport(httpclient.Options{
		Timeout:  cfg.HTTPTimeout,
		LogLevel: httpclient.ParseLogLevel(cfg.HTTPLogLevel),
		Logger:   log,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCommand(cfg, log).ExecuteContext(ctx)
}
