package models

import "time"

// Seat status values as reported by the backend.
const (
	SeatAvailable = "available"
	SeatHeld      = "held"
	SeatBooked    = "booked"
)

// Seat type values as reported by the backend.
const (
	SeatStandard = "standard"
	SeatVIP      = "vip"
	SeatCouple   = "couple"
)

// Movie represents a film in the catalog.
type Movie struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Poster    string `json:"poster"`
	AgeRating string `json:"ageRating"`
	Duration  int    `json:"duration"` // minutes
	Status    string `json:"status"`   // now-showing or coming-soon
}

// Location is a GeoJSON-style point: coordinates are [longitude, latitude].
type Location struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Theater represents a cinema location.
type Theater struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Image     string    `json:"image"`
	RoomCount int       `json:"roomCount"`
	Location  *Location `json:"location,omitempty"`
}

// Lat returns the theater's latitude, or false when no coordinates are present.
func (t Theater) Lat() (float64, bool) {
	if t.Location == nil || len(t.Location.Coordinates) < 2 {
		return 0, false
	}
	return t.Location.Coordinates[1], true
}

// Lng returns the theater's longitude, or false when no coordinates are present.
func (t Theater) Lng() (float64, bool) {
	if t.Location == nil || len(t.Location.Coordinates) < 2 {
		return 0, false
	}
	return t.Location.Coordinates[0], true
}

// Room represents a screening room inside a theater.
type Room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CinemaID string `json:"cinemaId"`
}

// Showtime represents a scheduled screening. Immutable once created.
type Showtime struct {
	ID           string    `json:"id"`
	MovieID      string    `json:"movieId"`
	CinemaID     string    `json:"cinemaId"`
	RoomID       string    `json:"roomId"`
	ShowDateTime time.Time `json:"showDateTime"`
	Price        int64     `json:"price"` // base ticket price in VND
}

// Seat is a snapshot of a seat's server-side state for one showtime.
//
// Status is mutated server-side by hold/release/finalize calls; a client-held
// seat list must be treated as stale after any failed hold attempt.
type Seat struct {
	ID     string `json:"id"`
	Row    string `json:"row"`
	Number int    `json:"number"`
	Type   string `json:"type"`
	Price  int64  `json:"price"`
	Status string `json:"status"`
}

// Available reports whether the seat's last-known status permits selection.
func (s Seat) Available() bool { return s.Status == SeatAvailable }

// Concession is a purchasable food/beverage add-on.
type Concession struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}

// CustomerInfo is the contact information collected at checkout.
type CustomerInfo struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// TicketType is one line of the ticket breakdown sent with a booking.
type TicketType struct {
	Type           string `json:"type"`
	Quantity       int    `json:"quantity"`
	PricePerTicket int64  `json:"pricePerTicket"`
}

// ConcessionOrderItem is a concession line attached to a booking.
type ConcessionOrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// BookingRequest is the payload for the create-booking operation.
type BookingRequest struct {
	ShowtimeID   string                `json:"showTimeId"`
	CustomerInfo CustomerInfo          `json:"customerInfo"`
	Seats        []string              `json:"seats"`
	TicketTypes  []TicketType          `json:"ticketTypes"`
	Concessions  []ConcessionOrderItem `json:"concessions"`
}

// BookingCreated is the backend's answer to a create-booking call.
type BookingCreated struct {
	ID string `json:"id"`
}

// PaymentURL carries the external gateway redirect URL for a booking.
type PaymentURL struct {
	PaymentURL string `json:"paymentUrl"`
}

// ConfirmedBooking is returned by the confirm-payment operation.
type ConfirmedBooking struct {
	ID               string `json:"id"`
	ConfirmationCode string `json:"confirmationCode"`
}

// DetailConcession is a concession line inside a finalized booking detail.
type DetailConcession struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// BookingDetail is the full ticket/customer/pricing record fetched by
// confirmation code after payment.
type BookingDetail struct {
	ConfirmationCode string             `json:"confirmationCode"`
	CustomerInfo     CustomerInfo       `json:"customerInfo"`
	MovieTitle       string             `json:"movieTitle"`
	CinemaName       string             `json:"cinemaName"`
	RoomName         string             `json:"roomName"`
	ShowDateTime     time.Time          `json:"showDateTime"`
	Seats            []string           `json:"seats"`
	Concessions      []DetailConcession `json:"concessions"`
	TotalPrice       int64              `json:"totalPrice"`
	PaymentStatus    string             `json:"paymentStatus"`
}

// Page wraps the backend's paged collection responses.
type Page[T any] struct {
	Content    []T `json:"content"`
	TotalPages int `json:"totalPages"`
}
