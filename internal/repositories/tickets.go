// package repositories provides the local persistence layer.
//
// The only thing worth keeping on disk is the finalized ticket: once a
// booking is paid and confirmed, its confirmation code and summary land in
// SQLite so tickets survive across sessions and can be re-fetched or
// re-exported later. Nothing about an in-progress purchase is ever stored.
package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/shared"
)

const ticketSchema = `
	CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		confirmation_code TEXT NOT NULL UNIQUE,
		movie_title TEXT NOT NULL,
		cinema_name TEXT NOT NULL,
		room_name TEXT NOT NULL,
		show_datetime TIMESTAMP NOT NULL,
		seats TEXT NOT NULL,
		total_price INTEGER NOT NULL,
		customer_name TEXT NOT NULL,
		saved_at TIMESTAMP NOT NULL
	)
`

// TicketRepository persists finalized booking details in SQLite.
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a [TicketRepository] and ensures its schema.
func NewTicketRepository(db *sql.DB) (*TicketRepository, error) {
	if _, err := db.Exec(ticketSchema); err != nil {
		return nil, fmt.Errorf("failed to create tickets table: %w", err)
	}
	return &TicketRepository{db: db}, nil
}

// Save stores a finalized ticket. Saving the same confirmation code again
// replaces the stored row, so re-running a confirmation is harmless.
func (r *TicketRepository) Save(detail *models.BookingDetail) error {
	if detail.ConfirmationCode == "" {
		return fmt.Errorf("refusing to save a ticket without a confirmation code")
	}

	seats, err := json.Marshal(detail.Seats)
	if err != nil {
		return fmt.Errorf("failed to encode seats: %w", err)
	}

	query := `
		INSERT INTO tickets (id, confirmation_code, movie_title, cinema_name, room_name, show_datetime, seats, total_price, customer_name, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(confirmation_code) DO UPDATE SET
			movie_title = excluded.movie_title,
			cinema_name = excluded.cinema_name,
			room_name = excluded.room_name,
			show_datetime = excluded.show_datetime,
			seats = excluded.seats,
			total_price = excluded.total_price,
			customer_name = excluded.customer_name,
			saved_at = excluded.saved_at
	`

	_, err = r.db.Exec(query,
		shared.GenerateID(),
		detail.ConfirmationCode,
		detail.MovieTitle,
		detail.CinemaName,
		detail.RoomName,
		detail.ShowDateTime,
		string(seats),
		detail.TotalPrice,
		detail.CustomerInfo.FullName,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

// Ticket is one stored ticket row.
type Ticket struct {
	ConfirmationCode string
	MovieTitle       string
	CinemaName       string
	RoomName         string
	ShowDateTime     time.Time
	Seats            []string
	TotalPrice       int64
	CustomerName     string
	SavedAt          time.Time
}

func scanTicket(row interface{ Scan(...any) error }) (*Ticket, error) {
	var (
		t     Ticket
		seats string
	)
	err := row.Scan(&t.ConfirmationCode, &t.MovieTitle, &t.CinemaName, &t.RoomName,
		&t.ShowDateTime, &seats, &t.TotalPrice, &t.CustomerName, &t.SavedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(seats), &t.Seats); err != nil {
		return nil, fmt.Errorf("failed to decode seats: %w", err)
	}
	return &t, nil
}

const ticketColumns = `confirmation_code, movie_title, cinema_name, room_name, show_datetime, seats, total_price, customer_name, saved_at`

// ByCode retrieves a stored ticket by confirmation code.
func (r *TicketRepository) ByCode(code string) (*Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE confirmation_code = ?`

	t, err := scanTicket(r.db.QueryRow(query, code))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrBookingNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket: %w", err)
	}
	return t, nil
}

// List returns every stored ticket, most recently saved first.
func (r *TicketRepository) List() ([]Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY saved_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}
