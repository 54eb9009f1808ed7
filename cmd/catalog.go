package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hbui/cinecli/internal/catalog"
	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/services"
	"github.com/hbui/cinecli/internal/shared"
	"github.com/hbui/cinecli/internal/ui"
	"github.com/urfave/cli/v3"
)

// Movies lists one page of the now-showing or coming-soon catalog.
func (r *Runner) Movies(ctx context.Context, cmd *cli.Command) error {
	comingSoon := cmd.Bool("coming-soon")
	cinemaID := cmd.String("cinema")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.service == nil {
		return fmt.Errorf("%w: ticketing service not initialized", shared.ErrServiceUnavailable)
	}

	if cmd.Bool("tui") {
		kind := ui.BrowseNowShowing
		if comingSoon {
			kind = ui.BrowseComingSoon
		}
		return r.browse(ctx, kind, cinemaID, "movie")
	}

	q := services.PageQuery{
		Page:     int(cmd.Int("page")),
		Size:     int(cmd.Int("limit")),
		CinemaID: cinemaID,
	}

	fetch := r.service.NowShowing
	label := "Now showing"
	if comingSoon {
		fetch = r.service.ComingSoon
		label = "Coming soon"
	}

	r.logger.Info("listing movies", "comingSoon", comingSoon, "page", q.Page)

	page, err := fetch(ctx, q)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(page, pretty)
	}

	r.writePlain("%s, page %d of %d:\n\n", label, q.Page+1, page.TotalPages)
	r.writeMovies(page.Content)
	return nil
}

// SearchMovies performs a free-text title search.
func (r *Runner) SearchMovies(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if query == "" {
		return fmt.Errorf("%w: a search query is required", shared.ErrMissingArgument)
	}
	if r.service == nil {
		return fmt.Errorf("%w: ticketing service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("searching movies for %q", query)

	movies, err := r.service.SearchMovies(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(movies, pretty)
	}

	if len(movies) == 0 {
		r.writePlain("No movies matched %q\n", query)
		return nil
	}

	r.writePlain("Found %d movies:\n\n", len(movies))
	r.writeMovies(movies)
	return nil
}

// Theaters lists theaters, either one catalog page or those near a location.
func (r *Runner) Theaters(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.service == nil {
		return fmt.Errorf("%w: ticketing service not initialized", shared.ErrServiceUnavailable)
	}

	if cmd.Bool("tui") {
		return r.browse(ctx, ui.BrowseTheaters, "", "theater")
	}

	if cmd.Bool("nearby") {
		return r.nearbyTheaters(ctx, cmd)
	}

	q := services.PageQuery{
		Page: int(cmd.Int("page")),
		Size: int(cmd.Int("limit")),
	}

	page, err := r.service.Theaters(ctx, q)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(page, pretty)
	}

	r.writePlain("Theaters, page %d of %d:\n\n", q.Page+1, page.TotalPages)
	for i, t := range page.Content {
		r.writeTheater(i+1, t, -1)
	}
	return nil
}

// nearbyTheaters resolves a position (flags first, geolocation lookup
// otherwise) and lists theaters within the radius, closest first.
func (r *Runner) nearbyTheaters(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	lat, lng := cmd.Float("lat"), cmd.Float("lng")
	if lat == 0 && lng == 0 {
		if r.locator == nil {
			return fmt.Errorf("%w: no coordinates given and no locator configured", shared.ErrLocationUnavailable)
		}
		r.writePlain("→ Looking up your location...\n")
		pos, err := r.locator.Locate(ctx)
		if err != nil {
			return err
		}
		lat, lng = pos.Lat, pos.Lng
		r.logger.Info("position resolved", "lat", lat, "lng", lng)
	}

	radius := cmd.Float("radius")
	if radius <= 0 {
		radius = r.config.Location.RadiusKm
	}

	theaters, err := r.service.NearbyTheaters(ctx, lat, lng, radius)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	ranked := catalog.Nearby(theaters, lat, lng, radius)

	if useJSON {
		return r.writeJSON(ranked, pretty)
	}

	if len(ranked) == 0 {
		r.writePlain("No theaters within %s of your location.\n", shared.FormatKm(radius))
		return nil
	}

	r.writePlain("Theaters within %s:\n\n", shared.FormatKm(radius))
	for i, td := range ranked {
		r.writeTheater(i+1, td.Theater, td.Km)
	}
	return nil
}

// Schedule prints the now-showing and coming-soon slates for a theater, or
// for every theater in a city.
func (r *Runner) Schedule(ctx context.Context, cmd *cli.Command) error {
	cinemaID := cmd.String("cinema")
	city := cmd.String("city")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if cinemaID == "" && city == "" {
		return fmt.Errorf("%w: either --cinema or --city is required", shared.ErrMissingArgument)
	}
	if r.service == nil {
		return fmt.Errorf("%w: ticketing service not initialized", shared.ErrServiceUnavailable)
	}

	var theaters []models.Theater
	if cinemaID != "" {
		theater, err := r.service.Theater(ctx, cinemaID)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		theaters = []models.Theater{*theater}
	} else {
		all, err := catalog.NewPager(r.service.Theaters, 0, 0).All(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		for _, t := range all {
			if strings.EqualFold(t.City, city) {
				theaters = append(theaters, t)
			}
		}
		if len(theaters) == 0 {
			r.writePlain("No theaters found in %q\n", city)
			return nil
		}
	}

	type slate struct {
		Theater    models.Theater `json:"theater"`
		NowShowing []models.Movie `json:"nowShowing"`
		ComingSoon []models.Movie `json:"comingSoon"`
	}

	var slates []slate
	for _, theater := range theaters {
		now, err := catalog.NewPager(atCinema(r.service.NowShowing, theater.ID), 0, 0).All(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		soon, err := catalog.NewPager(atCinema(r.service.ComingSoon, theater.ID), 0, 0).All(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		slates = append(slates, slate{Theater: theater, NowShowing: now, ComingSoon: soon})
	}

	if useJSON {
		return r.writeJSON(slates, pretty)
	}

	for _, s := range slates {
		r.writePlainHeader(fmt.Sprintf("%s (%s)", s.Theater.Name, s.Theater.City))
		r.writePlain("\nNow showing:\n")
		r.writeMovies(s.NowShowing)
		r.writePlain("Coming soon:\n")
		r.writeMovies(s.ComingSoon)
	}
	return nil
}

// atCinema narrows a movie listing fetch to one theater's schedule.
func atCinema(fetch catalog.FetchFunc[models.Movie], cinemaID string) catalog.FetchFunc[models.Movie] {
	return func(ctx context.Context, q services.PageQuery) (*models.Page[models.Movie], error) {
		q.CinemaID = cinemaID
		return fetch(ctx, q)
	}
}

// browse runs the interactive catalog browser and prints the selection.
func (r *Runner) browse(ctx context.Context, kind ui.BrowseKind, cinemaID, noun string) error {
	model := ui.NewBrowseModel(ctx, r.service, kind, cinemaID)
	p := tea.NewProgram(model)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	browsed, ok := final.(*ui.BrowseModel)
	if !ok {
		return nil
	}
	if err := browsed.Err(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if id := browsed.SelectedID(); id != "" {
		r.writePlain("Selected %s: %s\n", noun, id)
	}
	return nil
}

func (r *Runner) writeMovies(movies []models.Movie) {
	if len(movies) == 0 {
		r.writePlain("  (none)\n\n")
		return
	}
	for i, m := range movies {
		r.writePlain("%d. %s\n", i+1, m.Title)
		r.writePlain("   ID: %s\n", m.ID)
		if m.Duration > 0 {
			r.writePlain("   Duration: %d min\n", m.Duration)
		}
		if m.AgeRating != "" {
			r.writePlain("   Rating: %s\n", m.AgeRating)
		}
		r.writePlain("\n")
	}
}

func (r *Runner) writeTheater(n int, t models.Theater, km float64) {
	r.writePlain("%d. %s\n", n, t.Name)
	r.writePlain("   ID: %s\n", t.ID)
	if t.Address != "" {
		r.writePlain("   Address: %s, %s\n", t.Address, t.City)
	}
	if t.RoomCount > 0 {
		r.writePlain("   Rooms: %d\n", t.RoomCount)
	}
	if km >= 0 {
		r.writePlain("   Distance: %s\n", shared.FormatKm(km))
	}
	r.writePlain("\n")
}
