package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hbui/cinecli/internal/repositories"
	"github.com/hbui/cinecli/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup initializes the configuration file and the ticket history database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing ticket history database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if _, err := repositories.NewTicketRepository(db); err != nil {
		return fmt.Errorf("failed to prepare ticket schema: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("✓ Configuration ready at %s\n", configPath)
	r.writePlain("✓ Ticket history database ready at %s\n", config.Database.Path)
	r.writePlain("Next: cinecli movies --tui to pick a movie, then cinecli book --showtime <id>\n")
	return nil
}
