package booking

import (
	"testing"

	"github.com/hbui/cinecli/internal/models"
)

func sampleSeats() []models.Seat {
	return []models.Seat{
		{ID: "b1", Row: "B", Number: 1, Type: models.SeatStandard, Price: 80000, Status: models.SeatAvailable},
		{ID: "a2", Row: "A", Number: 2, Type: models.SeatVIP, Price: 120000, Status: models.SeatAvailable},
		{ID: "a10", Row: "A", Number: 10, Type: models.SeatStandard, Price: 80000, Status: models.SeatAvailable},
		{ID: "a1", Row: "A", Number: 1, Type: models.SeatStandard, Price: 80000, Status: models.SeatHeld},
		{ID: "b2", Row: "B", Number: 2, Type: models.SeatCouple, Price: 150000, Status: models.SeatBooked},
	}
}

func TestSeatMap(t *testing.T) {
	t.Run("groups rows and orders seats numerically", func(t *testing.T) {
		m := NewSeatMap(sampleSeats())
		rows := m.Rows()

		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0].Label != "A" || rows[1].Label != "B" {
			t.Errorf("unexpected row order: %q, %q", rows[0].Label, rows[1].Label)
		}

		got := []int{rows[0].Seats[0].Number, rows[0].Seats[1].Number, rows[0].Seats[2].Number}
		want := []int{1, 2, 10}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("row A seat %d: expected number %d, got %d", i, want[i], got[i])
			}
		}
	})

	t.Run("toggle selects and deselects available seats", func(t *testing.T) {
		m := NewSeatMap(sampleSeats())

		if !m.Toggle("a2") {
			t.Fatal("expected toggle of available seat to change state")
		}
		if !m.IsSelected("a2") {
			t.Error("expected a2 selected")
		}
		if !m.Toggle("a2") {
			t.Fatal("expected second toggle to change state")
		}
		if m.IsSelected("a2") {
			t.Error("expected a2 deselected after second toggle")
		}
	})

	t.Run("toggle ignores unavailable and unknown seats", func(t *testing.T) {
		m := NewSeatMap(sampleSeats())

		if m.Toggle("a1") {
			t.Error("expected held seat to ignore toggle")
		}
		if m.Toggle("b2") {
			t.Error("expected booked seat to ignore toggle")
		}
		if m.Toggle("zz") {
			t.Error("expected unknown seat id to ignore toggle")
		}
		if len(m.Selected()) != 0 {
			t.Errorf("expected empty selection, got %v", m.Selected())
		}
	})

	t.Run("selection keeps insertion order", func(t *testing.T) {
		m := NewSeatMap(sampleSeats())
		m.Toggle("b1")
		m.Toggle("a2")

		got := m.Selected()
		if len(got) != 2 || got[0] != "b1" || got[1] != "a2" {
			t.Errorf("expected [b1 a2], got %v", got)
		}
	})

	t.Run("total price tracks the selection", func(t *testing.T) {
		m := NewSeatMap(sampleSeats())
		m.Toggle("b1")
		m.Toggle("a2")

		if total := m.TotalPrice(); total != 200000 {
			t.Errorf("expected total 200000, got %d", total)
		}

		m.Toggle("a2")
		if total := m.TotalPrice(); total != 80000 {
			t.Errorf("expected total 80000 after deselect, got %d", total)
		}
	})

	t.Run("class prefers unavailable over selected over type", func(t *testing.T) {
		seats := sampleSeats()
		m := NewSeatMap(seats)
		m.Toggle("a2")

		cases := []struct {
			id   string
			want SeatClass
		}{
			{"a1", ClassUnavailable},
			{"b2", ClassUnavailable},
			{"a2", ClassSelected},
			{"b1", ClassStandard},
			{"a10", ClassStandard},
		}
		for _, c := range cases {
			var seat models.Seat
			for _, s := range seats {
				if s.ID == c.id {
					seat = s
				}
			}
			if got := m.Class(seat); got != c.want {
				t.Errorf("seat %s: expected class %v, got %v", c.id, c.want, got)
			}
		}
	})

	t.Run("refresh keeps present selections even when taken", func(t *testing.T) {
		m := NewSeatMap(sampleSeats())
		m.Toggle("b1")
		m.Toggle("a2")

		fresh := sampleSeats()
		for i := range fresh {
			if fresh[i].ID == "a2" {
				fresh[i].Status = models.SeatHeld
			}
		}
		m.Refresh(fresh)

		if !m.IsSelected("a2") {
			t.Error("expected taken seat to stay selected after refresh")
		}
		if !m.IsSelected("b1") {
			t.Error("expected untouched seat to stay selected after refresh")
		}

		// A refresh pinned it, but the toggle still cannot release a seat
		// that is no longer available.
		if m.Toggle("a2") {
			t.Error("expected toggle of taken seat to be ignored")
		}
	})

	t.Run("refresh drops selections missing from the snapshot", func(t *testing.T) {
		m := NewSeatMap(sampleSeats())
		m.Toggle("b1")
		m.Toggle("a2")

		var fresh []models.Seat
		for _, s := range sampleSeats() {
			if s.ID != "b1" {
				fresh = append(fresh, s)
			}
		}
		m.Refresh(fresh)

		if m.IsSelected("b1") {
			t.Error("expected vanished seat to be dropped from selection")
		}
		if !m.IsSelected("a2") {
			t.Error("expected surviving seat to stay selected")
		}
	})
}
