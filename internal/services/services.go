package services

import (
	"context"
	"net/url"

	"github.com/hbui/cinecli/internal/models"
)

// PageQuery selects one page of a server-side paged collection. CinemaID
// optionally narrows movie listings to a single theater's schedule.
type PageQuery struct {
	Page     int
	Size     int
	CinemaID string
}

// Service defines the operations of the cinema ticketing API.
type Service interface {
	// Catalog fetches by id.
	Movie(ctx context.Context, id string) (*models.Movie, error)
	Showtime(ctx context.Context, id string) (*models.Showtime, error)
	Theater(ctx context.Context, id string) (*models.Theater, error)
	Room(ctx context.Context, id string) (*models.Room, error)
	Seats(ctx context.Context, showtimeID string) ([]models.Seat, error)

	// Paged catalog collections. Each response carries a content list and a
	// total page count.
	NowShowing(ctx context.Context, q PageQuery) (*models.Page[models.Movie], error)
	ComingSoon(ctx context.Context, q PageQuery) (*models.Page[models.Movie], error)
	Movies(ctx context.Context, q PageQuery) (*models.Page[models.Movie], error)
	Theaters(ctx context.Context, q PageQuery) (*models.Page[models.Theater], error)

	// NearbyTheaters returns theaters within radiusKm of the coordinate.
	NearbyTheaters(ctx context.Context, lat, lng, radiusKm float64) ([]models.Theater, error)

	// SearchMovies performs a free-text title search.
	SearchMovies(ctx context.Context, query string) ([]models.Movie, error)

	// Concessions lists the food and beverage catalog for a theater.
	Concessions(ctx context.Context, cinemaID string) ([]models.Concession, error)

	// HoldSeats places a time-limited server-side reservation on the listed
	// seats. A seat-conflict failure is reported as an [*APIError] for which
	// [APIError.IsConflict] is true.
	HoldSeats(ctx context.Context, showtimeID string, seatIDs []string, customerToken string) error

	// ReleaseSeats frees previously held seats.
	ReleaseSeats(ctx context.Context, showtimeID string, seatIDs []string) error

	// CreateBooking creates the booking record and returns its id.
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingCreated, error)

	// CreatePaymentURL requests the external gateway redirect URL for a booking.
	CreatePaymentURL(ctx context.Context, bookingID string) (*models.PaymentURL, error)

	// ConfirmPayment forwards the gateway's full return query-parameter set to
	// the backend for verification and returns the confirmation code.
	ConfirmPayment(ctx context.Context, params url.Values) (*models.ConfirmedBooking, error)

	// BookingByCode fetches the finalized ticket detail by confirmation code.
	BookingByCode(ctx context.Context, code string) (*models.BookingDetail, error)

	// Name returns the service name for logging.
	Name() string
}
