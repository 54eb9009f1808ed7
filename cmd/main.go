package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/hbui/cinecli/internal/services"
	"github.com/hbui/cinecli/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	timeout := time.Duration(config.API.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	cinemaService := services.NewCinemaService(config.API.BaseURL, httpClient, config.API.RateLimit)
	locator := services.NewLocator(config.Location.ProviderURL, httpClient)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Service:    cinemaService,
		Locator:    locator,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "cinecli",
		Usage:    "Browse movies and book cinema tickets from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
