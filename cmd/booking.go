package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/hbui/cinecli/internal/booking"
	"github.com/hbui/cinecli/internal/formatter"
	"github.com/hbui/cinecli/internal/repositories"
	"github.com/hbui/cinecli/internal/shared"
	"github.com/hbui/cinecli/internal/ui"
	"github.com/urfave/cli/v3"
)

// Book launches the interactive booking flow for a showtime.
func (r *Runner) Book(ctx context.Context, cmd *cli.Command) error {
	showtimeID := cmd.String("showtime")
	if r.service == nil {
		return fmt.Errorf("%w: ticketing service not initialized", shared.ErrServiceUnavailable)
	}

	flow := booking.NewFlow(r.service, showtimeID, r.logger)
	return r.runBookingTUI(ctx, flow)
}

// Checkout resumes a booking at the checkout step from already-held seats.
func (r *Runner) Checkout(ctx context.Context, cmd *cli.Command) error {
	showtimeID := cmd.String("showtime")
	seatIDs := splitSeats(cmd.String("seats"))

	if len(seatIDs) == 0 {
		return fmt.Errorf("%w: --seats must list at least one seat id", shared.ErrInvalidArgument)
	}
	if r.service == nil {
		return fmt.Errorf("%w: ticketing service not initialized", shared.ErrServiceUnavailable)
	}

	flow := booking.ResumeFlow(r.service, showtimeID, seatIDs, r.logger)
	return r.runBookingTUI(ctx, flow)
}

// runBookingTUI drives a booking flow to completion in the terminal and
// prints the outcome once the program exits.
func (r *Runner) runBookingTUI(ctx context.Context, flow *booking.Flow) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/cinecli-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	flow.SetLogger(fileLogger)

	tickets := r.openTickets(fileLogger)

	model := ui.NewModel(ctx, flow, r.config, fileLogger, tickets)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	switch flow.State() {
	case booking.StateConfirmed:
		if confirmed := flow.Confirmed(); confirmed != nil {
			r.writePlainln("✓ Booking confirmed")
			r.writePlain("Confirmation code: %s\n", confirmed.ConfirmationCode)
			r.writePlain("View it anytime with: cinecli history show %s\n", confirmed.ConfirmationCode)
		}
	case booking.StateFailed:
		if err := flow.Err(); err != nil {
			return fmt.Errorf("booking failed: %w", err)
		}
	}
	return nil
}

// openTickets opens the local ticket history repository. A failure only
// disables history recording, it never blocks a booking.
func (r *Runner) openTickets(logger *log.Logger) *repositories.TicketRepository {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		logger.Warn("ticket history unavailable", "error", err)
		return nil
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	tickets, err := repositories.NewTicketRepository(db)
	if err != nil {
		logger.Warn("ticket history unavailable", "error", err)
		return nil
	}
	return tickets
}

// History lists locally saved tickets, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	tickets := r.openTickets(r.logger)
	if tickets == nil {
		return fmt.Errorf("%w: ticket history database could not be opened", shared.ErrServiceUnavailable)
	}

	saved, err := tickets.List()
	if err != nil {
		return fmt.Errorf("failed to list tickets: %w", err)
	}

	if useJSON {
		return r.writeJSON(saved, pretty)
	}

	if len(saved) == 0 {
		r.writePlain("No saved tickets yet. Complete a booking first.\n")
		return nil
	}

	r.writePlain("Saved tickets:\n\n")
	for i, t := range saved {
		r.writePlain("%d. %s\n", i+1, t.MovieTitle)
		r.writePlain("   Code: %s\n", t.ConfirmationCode)
		r.writePlain("   %s, %s\n", t.CinemaName, t.RoomName)
		r.writePlain("   %s\n", t.ShowDateTime.Format("Mon 02 Jan 2006 15:04"))
		r.writePlain("   Seats: %s\n", strings.Join(t.Seats, ", "))
		r.writePlain("   Total: %s\n", shared.FormatVND(t.TotalPrice))
		r.writePlain("\n")
	}
	return nil
}

// HistoryShow re-fetches full ticket detail by confirmation code and
// optionally writes it to disk.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	code := cmd.StringArg("code")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if code == "" {
		return fmt.Errorf("%w: a confirmation code is required", shared.ErrMissingArgument)
	}
	if r.service == nil {
		return fmt.Errorf("%w: ticketing service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("fetching booking detail for %v", code)

	detail, err := r.service.BookingByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("save") {
		written, err := formatter.WriteTicketFiles(detail, cmd.String("dir"), cmd.StringSlice("format"))
		if err != nil {
			return err
		}
		for _, path := range written {
			r.writePlain("✓ Ticket written to %s\n", path)
		}
	}

	if useJSON {
		return r.writeJSON(detail, pretty)
	}

	r.writePlainHeader(detail.MovieTitle)
	r.writePlain("\nCode: %s\n", detail.ConfirmationCode)
	r.writePlain("%s, %s\n", detail.CinemaName, detail.RoomName)
	r.writePlain("%s\n", detail.ShowDateTime.Format("Mon 02 Jan 2006 15:04"))
	r.writePlain("Seats: %s\n", strings.Join(detail.Seats, ", "))
	for _, c := range detail.Concessions {
		r.writePlain("%dx %s (%s)\n", c.Quantity, c.Name, shared.FormatVND(c.Price))
	}
	r.writePlain("Total: %s\n", shared.FormatVND(detail.TotalPrice))
	r.writePlain("Customer: %s\n", detail.CustomerInfo.FullName)
	return nil
}

func splitSeats(raw string) []string {
	var seats []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			seats = append(seats, part)
		}
	}
	return seats
}
