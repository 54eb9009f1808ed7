// Cinema ticketing API implementation of [Service]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hbui/cinecli/internal/models"
	"golang.org/x/time/rate"
)

// APIError is a normalized non-2xx response from the ticketing backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// IsConflict reports whether the error signals a seat-state conflict
// (another customer holds or booked one of the requested seats).
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// CinemaService implements [Service] over the ticketing REST API.
type CinemaService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewCinemaService creates a CinemaService for the given base URL.
//
// A nil client falls back to one with a 15 second timeout. ratePerSec caps
// outbound requests; values <= 0 disable the limiter.
func NewCinemaService(baseURL string, client *http.Client, ratePerSec float64) *CinemaService {
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	var limiter *rate.Limiter
	if ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}

	return &CinemaService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    limiter,
	}
}

func (s *CinemaService) Name() string { return "Cinema API" }

// doRequest performs one API call, marshalling body (if any) as JSON and
// decoding the response into result (if non-nil). Non-2xx responses are
// returned as [*APIError] with the backend's message field when present.
func (s *CinemaService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	apiURL := s.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func pageQuery(q PageQuery) string {
	v := url.Values{}
	v.Set("page", fmt.Sprintf("%d", q.Page))
	if q.Size > 0 {
		v.Set("size", fmt.Sprintf("%d", q.Size))
	}
	if q.CinemaID != "" {
		v.Set("cinemaId", q.CinemaID)
	}
	return v.Encode()
}

// Movie retrieves a single movie by ID.
func (s *CinemaService) Movie(ctx context.Context, id string) (*models.Movie, error) {
	var movie models.Movie
	if err := s.doRequest(ctx, http.MethodGet, "/movies/"+url.PathEscape(id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Showtime retrieves a single showtime by ID.
func (s *CinemaService) Showtime(ctx context.Context, id string) (*models.Showtime, error) {
	var showtime models.Showtime
	if err := s.doRequest(ctx, http.MethodGet, "/showtimes/"+url.PathEscape(id), nil, &showtime); err != nil {
		return nil, err
	}
	return &showtime, nil
}

// Theater retrieves a single theater by ID.
func (s *CinemaService) Theater(ctx context.Context, id string) (*models.Theater, error) {
	var theater models.Theater
	if err := s.doRequest(ctx, http.MethodGet, "/cinemas/"+url.PathEscape(id), nil, &theater); err != nil {
		return nil, err
	}
	return &theater, nil
}

// Room retrieves a single screening room by ID.
func (s *CinemaService) Room(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := s.doRequest(ctx, http.MethodGet, "/rooms/"+url.PathEscape(id), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Seats retrieves the seat snapshot for a showtime.
func (s *CinemaService) Seats(ctx context.Context, showtimeID string) ([]models.Seat, error) {
	var seats []models.Seat
	endpoint := fmt.Sprintf("/showtimes/%s/seats", url.PathEscape(showtimeID))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// NowShowing retrieves one page of now-showing movies.
func (s *CinemaService) NowShowing(ctx context.Context, q PageQuery) (*models.Page[models.Movie], error) {
	var page models.Page[models.Movie]
	if err := s.doRequest(ctx, http.MethodGet, "/movies/now-showing?"+pageQuery(q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ComingSoon retrieves one page of coming-soon movies.
func (s *CinemaService) ComingSoon(ctx context.Context, q PageQuery) (*models.Page[models.Movie], error) {
	var page models.Page[models.Movie]
	if err := s.doRequest(ctx, http.MethodGet, "/movies/coming-soon?"+pageQuery(q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Movies retrieves one page of the full movie catalog.
func (s *CinemaService) Movies(ctx context.Context, q PageQuery) (*models.Page[models.Movie], error) {
	var page models.Page[models.Movie]
	if err := s.doRequest(ctx, http.MethodGet, "/movies?"+pageQuery(q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Theaters retrieves one page of theaters.
func (s *CinemaService) Theaters(ctx context.Context, q PageQuery) (*models.Page[models.Theater], error) {
	var page models.Page[models.Theater]
	if err := s.doRequest(ctx, http.MethodGet, "/cinemas?"+pageQuery(q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// NearbyTheaters retrieves theaters within radiusKm of the coordinate.
func (s *CinemaService) NearbyTheaters(ctx context.Context, lat, lng, radiusKm float64) ([]models.Theater, error) {
	v := url.Values{}
	v.Set("lat", fmt.Sprintf("%g", lat))
	v.Set("lng", fmt.Sprintf("%g", lng))
	v.Set("radius", fmt.Sprintf("%g", radiusKm))

	var theaters []models.Theater
	if err := s.doRequest(ctx, http.MethodGet, "/cinemas/nearby?"+v.Encode(), nil, &theaters); err != nil {
		return nil, err
	}
	return theaters, nil
}

// SearchMovies performs a free-text title search.
func (s *CinemaService) SearchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	v := url.Values{}
	v.Set("q", query)

	var movies []models.Movie
	if err := s.doRequest(ctx, http.MethodGet, "/movies/search?"+v.Encode(), nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Concessions lists the concession catalog for a theater.
func (s *CinemaService) Concessions(ctx context.Context, cinemaID string) ([]models.Concession, error) {
	var items []models.Concession
	endpoint := fmt.Sprintf("/cinemas/%s/concessions", url.PathEscape(cinemaID))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// HoldSeats places a server-side hold on the listed seats.
func (s *CinemaService) HoldSeats(ctx context.Context, showtimeID string, seatIDs []string, customerToken string) error {
	body := struct {
		ShowtimeID    string   `json:"showTimeId"`
		Seats         []string `json:"seats"`
		CustomerToken string   `json:"customerToken"`
	}{showtimeID, seatIDs, customerToken}

	return s.doRequest(ctx, http.MethodPost, "/seats/hold", body, nil)
}

// ReleaseSeats frees previously held seats.
func (s *CinemaService) ReleaseSeats(ctx context.Context, showtimeID string, seatIDs []string) error {
	body := struct {
		ShowtimeID string   `json:"showTimeId"`
		Seats      []string `json:"seats"`
	}{showtimeID, seatIDs}

	return s.doRequest(ctx, http.MethodPost, "/seats/release", body, nil)
}

// CreateBooking creates the booking record.
func (s *CinemaService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingCreated, error) {
	var created models.BookingCreated
	if err := s.doRequest(ctx, http.MethodPost, "/bookings", req, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, fmt.Errorf("no booking id returned after create")
	}
	return &created, nil
}

// CreatePaymentURL requests the gateway redirect URL for a booking.
func (s *CinemaService) CreatePaymentURL(ctx context.Context, bookingID string) (*models.PaymentURL, error) {
	body := struct {
		BookingID string `json:"bookingId"`
	}{bookingID}

	var result models.PaymentURL
	if err := s.doRequest(ctx, http.MethodPost, "/payments/vnpay/url", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ConfirmPayment forwards the gateway's return parameters for verification.
func (s *CinemaService) ConfirmPayment(ctx context.Context, params url.Values) (*models.ConfirmedBooking, error) {
	var confirmed models.ConfirmedBooking
	endpoint := "/payments/vnpay/confirm?" + params.Encode()
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &confirmed); err != nil {
		return nil, err
	}
	return &confirmed, nil
}

// BookingByCode fetches finalized ticket detail by confirmation code.
func (s *CinemaService) BookingByCode(ctx context.Context, code string) (*models.BookingDetail, error) {
	var detail models.BookingDetail
	endpoint := "/bookings/confirmation/" + url.PathEscape(code)
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
