package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sumeetk/foliox/internal/app"
	"github.com/sumeetk/foliox/internal/common"
	"github.com/sumeetk/foliox/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file (default: FOLIOX_CONFIG or config/foliox.toml)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	application, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(application.Config)

	srv := server.NewServer(application)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			application.Logger.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-sigCh:
		application.Logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			application.Logger.Error().Err(err).Msg("Graceful shutdown failed")
			os.Exit(1)
		}
	}

	application.Logger.Info().Msg("FolioX stopped")
}
