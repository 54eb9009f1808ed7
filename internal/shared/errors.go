package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrSeatConflict       = fmt.Errorf("one or more seats are no longer available")
	ErrShowtimeNotFound   = fmt.Errorf("showtime not found")
	ErrBookingNotFound    = fmt.Errorf("booking not found")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Geolocation errors, one per failure cause so the UI can explain
	ErrLocationDenied      = fmt.Errorf("location access denied")
	ErrLocationUnavailable = fmt.Errorf("location could not be determined")

	// Booking flow errors
	ErrHoldExpired     = fmt.Errorf("seat hold time expired")
	ErrPaymentRejected = fmt.Errorf("payment was rejected or cancelled")
	ErrNoPaymentURL    = fmt.Errorf("payment URL could not be created")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
