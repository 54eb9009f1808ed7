// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"testing"

	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/services"
)

// MockService is a test double for [services.Service]. Zero-value methods
// return empty results; set the matching func field to script a behavior.
type MockService struct {
	MovieFn            func(ctx context.Context, id string) (*models.Movie, error)
	ShowtimeFn         func(ctx context.Context, id string) (*models.Showtime, error)
	TheaterFn          func(ctx context.Context, id string) (*models.Theater, error)
	RoomFn             func(ctx context.Context, id string) (*models.Room, error)
	SeatsFn            func(ctx context.Context, showtimeID string) ([]models.Seat, error)
	NowShowingFn       func(ctx context.Context, q services.PageQuery) (*models.Page[models.Movie], error)
	ComingSoonFn       func(ctx context.Context, q services.PageQuery) (*models.Page[models.Movie], error)
	MoviesFn           func(ctx context.Context, q services.PageQuery) (*models.Page[models.Movie], error)
	TheatersFn         func(ctx context.Context, q services.PageQuery) (*models.Page[models.Theater], error)
	NearbyTheatersFn   func(ctx context.Context, lat, lng, radiusKm float64) ([]models.Theater, error)
	SearchMoviesFn     func(ctx context.Context, query string) ([]models.Movie, error)
	ConcessionsFn      func(ctx context.Context, cinemaID string) ([]models.Concession, error)
	HoldSeatsFn        func(ctx context.Context, showtimeID string, seatIDs []string, customerToken string) error
	ReleaseSeatsFn     func(ctx context.Context, showtimeID string, seatIDs []string) error
	CreateBookingFn    func(ctx context.Context, req models.BookingRequest) (*models.BookingCreated, error)
	CreatePaymentURLFn func(ctx context.Context, bookingID string) (*models.PaymentURL, error)
	ConfirmPaymentFn   func(ctx context.Context, params url.Values) (*models.ConfirmedBooking, error)
	BookingByCodeFn    func(ctx context.Context, code string) (*models.BookingDetail, error)
}

func (m *MockService) Movie(ctx context.Context, id string) (*models.Movie, error) {
	if m.MovieFn != nil {
		return m.MovieFn(ctx, id)
	}
	return &models.Movie{ID: id}, nil
}

func (m *MockService) Showtime(ctx context.Context, id string) (*models.Showtime, error) {
	if m.ShowtimeFn != nil {
		return m.ShowtimeFn(ctx, id)
	}
	return &models.Showtime{ID: id}, nil
}

func (m *MockService) Theater(ctx context.Context, id string) (*models.Theater, error) {
	if m.TheaterFn != nil {
		return m.TheaterFn(ctx, id)
	}
	return &models.Theater{ID: id}, nil
}

func (m *MockService) Room(ctx context.Context, id string) (*models.Room, error) {
	if m.RoomFn != nil {
		return m.RoomFn(ctx, id)
	}
	return &models.Room{ID: id}, nil
}

func (m *MockService) Seats(ctx context.Context, showtimeID string) ([]models.Seat, error) {
	if m.SeatsFn != nil {
		return m.SeatsFn(ctx, showtimeID)
	}
	return []models.Seat{}, nil
}

func (m *MockService) NowShowing(ctx context.Context, q services.PageQuery) (*models.Page[models.Movie], error) {
	if m.NowShowingFn != nil {
		return m.NowShowingFn(ctx, q)
	}
	return &models.Page[models.Movie]{}, nil
}

func (m *MockService) ComingSoon(ctx context.Context, q services.PageQuery) (*models.Page[models.Movie], error) {
	if m.ComingSoonFn != nil {
		return m.ComingSoonFn(ctx, q)
	}
	return &models.Page[models.Movie]{}, nil
}

func (m *MockService) Movies(ctx context.Context, q services.PageQuery) (*models.Page[models.Movie], error) {
	if m.MoviesFn != nil {
		return m.MoviesFn(ctx, q)
	}
	return &models.Page[models.Movie]{}, nil
}

func (m *MockService) Theaters(ctx context.Context, q services.PageQuery) (*models.Page[models.Theater], error) {
	if m.TheatersFn != nil {
		return m.TheatersFn(ctx, q)
	}
	return &models.Page[models.Theater]{}, nil
}

func (m *MockService) NearbyTheaters(ctx context.Context, lat, lng, radiusKm float64) ([]models.Theater, error) {
	if m.NearbyTheatersFn != nil {
		return m.NearbyTheatersFn(ctx, lat, lng, radiusKm)
	}
	return []models.Theater{}, nil
}

func (m *MockService) SearchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	if m.SearchMoviesFn != nil {
		return m.SearchMoviesFn(ctx, query)
	}
	return []models.Movie{}, nil
}

func (m *MockService) Concessions(ctx context.Context, cinemaID string) ([]models.Concession, error) {
	if m.ConcessionsFn != nil {
		return m.ConcessionsFn(ctx, cinemaID)
	}
	return []models.Concession{}, nil
}

func (m *MockService) HoldSeats(ctx context.Context, showtimeID string, seatIDs []string, customerToken string) error {
	if m.HoldSeatsFn != nil {
		return m.HoldSeatsFn(ctx, showtimeID, seatIDs, customerToken)
	}
	return nil
}

func (m *MockService) ReleaseSeats(ctx context.Context, showtimeID string, seatIDs []string) error {
	if m.ReleaseSeatsFn != nil {
		return m.ReleaseSeatsFn(ctx, showtimeID, seatIDs)
	}
	return nil
}

func (m *MockService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingCreated, error) {
	if m.CreateBookingFn != nil {
		return m.CreateBookingFn(ctx, req)
	}
	return &models.BookingCreated{ID: "booking-1"}, nil
}

func (m *MockService) CreatePaymentURL(ctx context.Context, bookingID string) (*models.PaymentURL, error) {
	if m.CreatePaymentURLFn != nil {
		return m.CreatePaymentURLFn(ctx, bookingID)
	}
	return &models.PaymentURL{PaymentURL: "https://gateway.example/pay"}, nil
}

func (m *MockService) ConfirmPayment(ctx context.Context, params url.Values) (*models.ConfirmedBooking, error) {
	if m.ConfirmPaymentFn != nil {
		return m.ConfirmPaymentFn(ctx, params)
	}
	return &models.ConfirmedBooking{ID: "booking-1", ConfirmationCode: "CODE123"}, nil
}

func (m *MockService) BookingByCode(ctx context.Context, code string) (*models.BookingDetail, error) {
	if m.BookingByCodeFn != nil {
		return m.BookingByCodeFn(ctx, code)
	}
	return &models.BookingDetail{ConfirmationCode: code}, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
