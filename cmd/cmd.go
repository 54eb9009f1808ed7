// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// moviesCommand lists the movie catalog
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "List now-showing or coming-soon movies",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "coming-soon",
				Usage: "List coming-soon movies instead of now-showing",
			},
			&cli.StringFlag{
				Name:  "cinema",
				Usage: "Restrict the listing to one theater's schedule",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Zero-based page to fetch",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Movies per page",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Browse interactively",
			},
		},
		Action: r.Movies,
	}
}

// searchCommand performs a free-text title search
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search movies by title",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.SearchMovies,
	}
}

// theatersCommand lists theaters, optionally filtered to the user's vicinity
func theatersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "theaters",
		Aliases: []string{"cinemas", "t"},
		Usage:   "List theaters",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "nearby",
				Usage: "Only show theaters near your location",
			},
			&cli.FloatFlag{
				Name:  "lat",
				Usage: "Latitude override (skips the geolocation lookup)",
			},
			&cli.FloatFlag{
				Name:  "lng",
				Usage: "Longitude override (skips the geolocation lookup)",
			},
			&cli.FloatFlag{
				Name:  "radius",
				Usage: "Search radius in kilometers",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Zero-based page to fetch",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Theaters per page",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Browse interactively",
			},
		},
		Action: r.Theaters,
	}
}

// scheduleCommand shows what plays at a theater
func scheduleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Show the now-showing and coming-soon schedule for a theater",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "cinema",
				Usage: "Theater ID",
			},
			&cli.StringFlag{
				Name:  "city",
				Usage: "Show schedules for every theater in a city",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Schedule,
	}
}

// bookCommand launches the interactive booking flow
func bookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Book tickets for a showtime (interactive)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "showtime",
				Usage:    "Showtime ID to book",
				Required: true,
			},
		},
		Action: r.Book,
	}
}

// checkoutCommand resumes a booking at the checkout step
func checkoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "Resume a booking at checkout from held seats",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "showtime",
				Usage:    "Showtime ID of the held seats",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "seats",
				Usage:    "Comma-separated held seat IDs",
				Required: true,
			},
		},
		Action: r.Checkout,
	}
}

// historyCommand manages locally saved tickets
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List and inspect saved tickets",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.History,
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Re-fetch full ticket detail by confirmation code",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "code",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Write the ticket to disk",
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Directory for saved tickets",
						Value: ".",
					},
					&cli.StringSliceFlag{
						Name:  "format",
						Usage: "Saved ticket format (txt, md)",
						Value: []string{"txt"},
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.HistoryShow,
			},
		},
	}
}

// setupCommand handles configuration and local database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the ticket history database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
