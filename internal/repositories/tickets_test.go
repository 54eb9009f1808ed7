package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/shared"
)

func testRepo(t *testing.T) *TicketRepository {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewTicketRepository(db)
	if err != nil {
		t.Fatalf("creating repository: %v", err)
	}
	return repo
}

func detailFixture(code string) *models.BookingDetail {
	return &models.BookingDetail{
		ConfirmationCode: code,
		CustomerInfo:     models.CustomerInfo{FullName: "Nguyen Van A"},
		MovieTitle:       "Dune: Part Two",
		CinemaName:       "Galaxy Nguyen Du",
		RoomName:         "Room 2",
		ShowDateTime:     time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC),
		Seats:            []string{"A1", "A2"},
		TotalPrice:       250000,
		PaymentStatus:    "paid",
	}
}

func TestTicketRepository(t *testing.T) {
	t.Run("save and fetch by code", func(t *testing.T) {
		repo := testRepo(t)
		if err := repo.Save(detailFixture("CODE1")); err != nil {
			t.Fatalf("Save: %v", err)
		}

		got, err := repo.ByCode("CODE1")
		if err != nil {
			t.Fatalf("ByCode: %v", err)
		}
		if got.MovieTitle != "Dune: Part Two" || got.TotalPrice != 250000 {
			t.Errorf("unexpected ticket %+v", got)
		}
		if len(got.Seats) != 2 || got.Seats[0] != "A1" {
			t.Errorf("unexpected seats %v", got.Seats)
		}
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		repo := testRepo(t)
		if _, err := repo.ByCode("NOPE"); !errors.Is(err, shared.ErrBookingNotFound) {
			t.Errorf("expected ErrBookingNotFound, got %v", err)
		}
	})

	t.Run("saving twice replaces the row", func(t *testing.T) {
		repo := testRepo(t)
		if err := repo.Save(detailFixture("CODE1")); err != nil {
			t.Fatalf("Save: %v", err)
		}
		updated := detailFixture("CODE1")
		updated.TotalPrice = 300000
		if err := repo.Save(updated); err != nil {
			t.Fatalf("second Save: %v", err)
		}

		tickets, err := repo.List()
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(tickets) != 1 {
			t.Fatalf("expected 1 ticket, got %d", len(tickets))
		}
		if tickets[0].TotalPrice != 300000 {
			t.Errorf("expected replaced price, got %d", tickets[0].TotalPrice)
		}
	})

	t.Run("missing confirmation code is rejected", func(t *testing.T) {
		repo := testRepo(t)
		if err := repo.Save(detailFixture("")); err == nil {
			t.Error("expected an error for an empty confirmation code")
		}
	})

	t.Run("list orders newest first", func(t *testing.T) {
		repo := testRepo(t)
		for _, code := range []string{"OLD", "NEW"} {
			if err := repo.Save(detailFixture(code)); err != nil {
				t.Fatalf("Save %s: %v", code, err)
			}
			time.Sleep(5 * time.Millisecond)
		}

		tickets, err := repo.List()
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(tickets) != 2 || tickets[0].ConfirmationCode != "NEW" {
			t.Errorf("expected NEW first, got %+v", tickets)
		}
	})
}
