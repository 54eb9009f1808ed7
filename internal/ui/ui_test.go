package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/hbui/cinecli/internal/booking"
	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/shared"
	th "github.com/hbui/cinecli/internal/testing"
)

func gridSeats() []models.Seat {
	return []models.Seat{
		{ID: "a1", Row: "A", Number: 1, Type: models.SeatStandard, Price: 80000, Status: models.SeatAvailable},
		{ID: "a2", Row: "A", Number: 2, Type: models.SeatVIP, Price: 120000, Status: models.SeatAvailable},
		{ID: "b1", Row: "B", Number: 1, Type: models.SeatStandard, Price: 80000, Status: models.SeatHeld},
	}
}

func seatModel(t *testing.T) *Model {
	t.Helper()
	svc := &th.MockService{
		ShowtimeFn: func(ctx context.Context, id string) (*models.Showtime, error) {
			return &models.Showtime{ID: id, MovieID: "m1", CinemaID: "c1", RoomID: "r1", Price: 90000}, nil
		},
		SeatsFn: func(ctx context.Context, showtimeID string) ([]models.Seat, error) {
			return gridSeats(), nil
		},
	}
	flow := booking.NewFlow(svc, "st1", log.New(io.Discard))
	m := NewModel(context.Background(), flow, shared.DefaultConfig(), log.New(io.Discard), nil)

	bundle, err := flow.FetchShowtime(context.Background())
	if err != nil {
		t.Fatalf("FetchShowtime: %v", err)
	}
	updated, _ := m.Update(showtimeLoadedMsg{bundle: bundle})
	return updated.(*Model)
}

func press(m *Model, k string) *Model {
	var msg tea.KeyMsg
	switch k {
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, _ := m.Update(msg)
	return updated.(*Model)
}

func TestSeatSelectionView(t *testing.T) {
	t.Run("space toggles the seat under the cursor", func(t *testing.T) {
		m := seatModel(t)
		m = press(m, "space")

		if !m.flow.SeatMap().IsSelected("a1") {
			t.Error("expected a1 selected after space")
		}
	})

	t.Run("enter without a selection reports a problem", func(t *testing.T) {
		m := seatModel(t)
		m = press(m, "enter")

		if len(m.problems) == 0 {
			t.Error("expected a validation problem")
		}
		if m.flow.State() != booking.StateSeatSelection {
			t.Errorf("expected state unchanged, got %v", m.flow.State())
		}
	})

	t.Run("cursor stays inside the grid", func(t *testing.T) {
		m := seatModel(t)
		for range 5 {
			m = press(m, "l")
		}
		for range 5 {
			m = press(m, "j")
		}
		rows := m.flow.SeatMap().Rows()
		if m.cursorRow >= len(rows) {
			t.Errorf("cursor row %d outside %d rows", m.cursorRow, len(rows))
		}
		if m.cursorCol >= len(rows[m.cursorRow].Seats) {
			t.Errorf("cursor col %d outside row", m.cursorCol)
		}
	})

	t.Run("view renders the grid with legend", func(t *testing.T) {
		m := seatModel(t)
		out := m.View()
		for _, want := range []string{"SCREEN", "A", "B", "Selected: none"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected view to contain %q", want)
			}
		}
	})
}

func TestCheckoutTransitions(t *testing.T) {
	resume := func(t *testing.T) *Model {
		t.Helper()
		svc := &th.MockService{
			ShowtimeFn: func(ctx context.Context, id string) (*models.Showtime, error) {
				return &models.Showtime{ID: id, MovieID: "m1", CinemaID: "c1", RoomID: "r1", Price: 90000}, nil
			},
		}
		flow := booking.ResumeFlow(svc, "st1", []string{"a1", "a2"}, log.New(io.Discard))
		m := NewModel(context.Background(), flow, shared.DefaultConfig(), log.New(io.Discard), nil)

		bundle, err := flow.FetchCheckout(context.Background())
		if err != nil {
			t.Fatalf("FetchCheckout: %v", err)
		}
		updated, cmd := m.Update(checkoutLoadedMsg{bundle: bundle})
		if cmd == nil {
			t.Fatal("expected a tick command after entering checkout")
		}
		return updated.(*Model)
	}

	t.Run("checkout load starts the countdown", func(t *testing.T) {
		m := resume(t)
		if m.flow.State() != booking.StateCheckout {
			t.Fatalf("expected checkout, got %v", m.flow.State())
		}
		if m.flow.Remaining() != booking.CheckoutSeconds {
			t.Errorf("expected full countdown, got %d", m.flow.Remaining())
		}
	})

	t.Run("tick message advances the countdown", func(t *testing.T) {
		m := resume(t)
		updated, cmd := m.Update(tickMsg{})
		m = updated.(*Model)

		if m.flow.Remaining() != booking.CheckoutSeconds-1 {
			t.Errorf("expected countdown to advance, got %d", m.flow.Remaining())
		}
		if cmd == nil {
			t.Error("expected the tick chain to continue")
		}
	})

	t.Run("failed load shows the failure view", func(t *testing.T) {
		svc := &th.MockService{}
		flow := booking.ResumeFlow(svc, "st1", []string{"a1"}, log.New(io.Discard))
		m := NewModel(context.Background(), flow, shared.DefaultConfig(), log.New(io.Discard), nil)

		updated, _ := m.Update(checkoutLoadedMsg{err: errors.New("backend down")})
		m = updated.(*Model)

		if m.flow.State() != booking.StateFailed {
			t.Fatalf("expected failed, got %v", m.flow.State())
		}
		if !strings.Contains(m.View(), "Booking failed") {
			t.Error("expected the failure view")
		}
	})
}

