package booking

import (
	"sort"

	"github.com/hbui/cinecli/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SeatClass is the rendering class of a single seat, derived from its
// status and type. Unavailable wins over selected, selected wins over type.
type SeatClass int

const (
	ClassUnavailable SeatClass = iota
	ClassSelected
	ClassVIP
	ClassCouple
	ClassStandard
)

func (c SeatClass) String() string {
	switch c {
	case ClassUnavailable:
		return "unavailable"
	case ClassSelected:
		return "selected"
	case ClassVIP:
		return "vip"
	case ClassCouple:
		return "couple"
	default:
		return "standard"
	}
}

// Row is one rendered row of the seat grid.
type Row struct {
	Label string
	Seats []models.Seat
}

// SeatMap tracks the current seat snapshot for a showtime together with the
// user's selection. The selection is an ordered set of seat ids; ordering is
// insertion order so held seats are submitted in the order they were picked.
type SeatMap struct {
	seats    []models.Seat
	selected []string
}

var rowCollator = collate.New(language.Und)

// NewSeatMap builds a seat map from a freshly fetched snapshot with an
// empty selection.
func NewSeatMap(seats []models.Seat) *SeatMap {
	return &SeatMap{seats: seats}
}

// Seats returns the current snapshot.
func (m *SeatMap) Seats() []models.Seat { return m.seats }

// Refresh replaces the snapshot with a newer one, typically after a hold
// conflict. Selected ids that still exist in the new snapshot stay selected
// even when they are no longer available, so the user can see exactly which
// of their picks were taken. Ids that vanished from the snapshot are dropped.
func (m *SeatMap) Refresh(seats []models.Seat) {
	m.seats = seats
	present := make(map[string]bool, len(seats))
	for _, s := range seats {
		present[s.ID] = true
	}

	kept := m.selected[:0]
	for _, id := range m.selected {
		if present[id] {
			kept = append(kept, id)
		}
	}
	m.selected = kept
}

func (m *SeatMap) find(id string) *models.Seat {
	for i := range m.seats {
		if m.seats[i].ID == id {
			return &m.seats[i]
		}
	}
	return nil
}

// IsSelected reports whether the seat id is part of the selection.
func (m *SeatMap) IsSelected(id string) bool {
	for _, s := range m.selected {
		if s == id {
			return true
		}
	}
	return false
}

// Toggle flips the selection state of a seat and reports whether anything
// changed. Seats that are not currently available ignore the toggle, even
// when they are selected; a seat lost to a conflicting hold stays pinned in
// the selection until a refresh removes it or the hold lapses.
func (m *SeatMap) Toggle(id string) bool {
	seat := m.find(id)
	if seat == nil || !seat.Available() {
		return false
	}

	for i, s := range m.selected {
		if s == id {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
			return true
		}
	}
	m.selected = append(m.selected, id)
	return true
}

// Selected returns the selected seat ids in insertion order.
func (m *SeatMap) Selected() []string {
	out := make([]string, len(m.selected))
	copy(out, m.selected)
	return out
}

// SelectedSeats resolves the selection against the current snapshot.
func (m *SeatMap) SelectedSeats() []models.Seat {
	out := make([]models.Seat, 0, len(m.selected))
	for _, id := range m.selected {
		if seat := m.find(id); seat != nil {
			out = append(out, *seat)
		}
	}
	return out
}

// TotalPrice recomputes the selection total from the current snapshot.
// Selected ids missing from the snapshot contribute nothing.
func (m *SeatMap) TotalPrice() int64 {
	var total int64
	for _, seat := range m.SelectedSeats() {
		total += seat.Price
	}
	return total
}

// Class derives the rendering class for a seat.
func (m *SeatMap) Class(seat models.Seat) SeatClass {
	switch {
	case !seat.Available():
		return ClassUnavailable
	case m.IsSelected(seat.ID):
		return ClassSelected
	case seat.Type == models.SeatVIP:
		return ClassVIP
	case seat.Type == models.SeatCouple:
		return ClassCouple
	default:
		return ClassStandard
	}
}

// Rows groups the snapshot by row label. Rows are ordered by collated label
// comparison and seats within a row by seat number.
func (m *SeatMap) Rows() []Row {
	byRow := make(map[string][]models.Seat)
	var labels []string
	for _, s := range m.seats {
		if _, ok := byRow[s.Row]; !ok {
			labels = append(labels, s.Row)
		}
		byRow[s.Row] = append(byRow[s.Row], s)
	}

	sort.Slice(labels, func(i, j int) bool {
		return rowCollator.CompareString(labels[i], labels[j]) < 0
	})

	rows := make([]Row, 0, len(labels))
	for _, label := range labels {
		seats := byRow[label]
		sort.SliceStable(seats, func(i, j int) bool {
			return seats[i].Number < seats[j].Number
		})
		rows = append(rows, Row{Label: label, Seats: seats})
	}
	return rows
}
