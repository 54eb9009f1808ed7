package booking

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/services"
	"github.com/hbui/cinecli/internal/shared"
)

const (
	// HoldCustomerToken is the placeholder customer identity sent with hold
	// and release calls. The backend keys anonymous holds on this value.
	HoldCustomerToken = "0000000000"

	// CheckoutSeconds is the advisory countdown shown while a hold is live.
	CheckoutSeconds = 300

	// AdultTicketType is the single ticket tier sold through this client.
	AdultTicketType = "Adult"
)

// ErrSeatsReleased marks a submission failure that happened after the hold
// was already given up. The flow cannot be resumed past it.
var ErrSeatsReleased = errors.New("held seats were already released; the booking must be restarted")

// State is a step of the purchase flow.
type State int

const (
	StateLoading State = iota
	StateSeatSelection
	StateHolding
	StateCheckout
	StateSubmitting
	StateRedirected
	StateConfirming
	StateConfirmed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSeatSelection:
		return "seat-selection"
	case StateHolding:
		return "holding"
	case StateCheckout:
		return "checkout"
	case StateSubmitting:
		return "submitting"
	case StateRedirected:
		return "redirected"
	case StateConfirming:
		return "confirming"
	case StateConfirmed:
		return "confirmed"
	default:
		return "failed"
	}
}

// TickOutcome is the result of advancing the checkout countdown by one second.
type TickOutcome int

const (
	// TickStop means the countdown is not running in the current state.
	TickStop TickOutcome = iota
	// TickContinue means the countdown advanced and should keep running.
	TickContinue
	// TickAbandon means the hold lapsed and the flow was abandoned.
	TickAbandon
)

// GatewayApproved reports whether the gateway's return parameters signal an
// approved transaction. Both the response code and the transaction status
// must read "00"; anything else, including their absence, is a rejection.
func GatewayApproved(params url.Values) bool {
	return params.Get("vnp_ResponseCode") == "00" &&
		params.Get("vnp_TransactionStatus") == "00"
}

// ShowtimeBundle is everything the seat selection step needs, fetched fresh.
type ShowtimeBundle struct {
	Showtime *models.Showtime
	Movie    *models.Movie
	Theater  *models.Theater
	Room     *models.Room
	Seats    []models.Seat
}

// CheckoutBundle is everything the checkout step needs, re-derived from the
// continuation token rather than carried over from seat selection.
type CheckoutBundle struct {
	Showtime    *models.Showtime
	Movie       *models.Movie
	Theater     *models.Theater
	Room        *models.Room
	Concessions []models.Concession
}

// Flow drives one ticket purchase from seat selection through payment
// confirmation. It is not safe for concurrent use: I/O methods may run off
// the event loop, but every mutating method must be called from the single
// goroutine that owns the Flow.
type Flow struct {
	svc    services.Service
	logger *log.Logger

	state      State
	showtimeID string
	seatIDs    []string

	showtime    *models.Showtime
	movie       *models.Movie
	theater     *models.Theater
	room        *models.Room
	seatMap     *SeatMap
	concessions []models.Concession
	order       *ConcessionOrder

	customer   models.CustomerInfo
	remaining  int
	abandoned  bool
	conflict   string
	err        error
	paymentURL string
	confirmed  *models.ConfirmedBooking
	detail     *models.BookingDetail
}

// NewFlow starts a purchase at seat selection for the given showtime.
func NewFlow(svc services.Service, showtimeID string, logger *log.Logger) *Flow {
	return &Flow{
		svc:        svc,
		logger:     logger,
		state:      StateLoading,
		showtimeID: showtimeID,
		order:      NewConcessionOrder(),
	}
}

// ResumeFlow starts a purchase directly at checkout from a continuation
// token: a showtime id plus the seat ids held in an earlier session. The
// seats must already be held server-side; checkout re-fetches everything
// else.
func ResumeFlow(svc services.Service, showtimeID string, seatIDs []string, logger *log.Logger) *Flow {
	f := NewFlow(svc, showtimeID, logger)
	f.seatIDs = append([]string(nil), seatIDs...)
	return f
}

func (f *Flow) State() State                        { return f.state }
func (f *Flow) ShowtimeID() string                  { return f.showtimeID }
func (f *Flow) Showtime() *models.Showtime          { return f.showtime }
func (f *Flow) Movie() *models.Movie                { return f.movie }
func (f *Flow) Theater() *models.Theater            { return f.theater }
func (f *Flow) Room() *models.Room                  { return f.room }
func (f *Flow) SeatMap() *SeatMap                   { return f.seatMap }
func (f *Flow) Concessions() []models.Concession    { return f.concessions }
func (f *Flow) Order() *ConcessionOrder             { return f.order }
func (f *Flow) HeldSeats() []string                 { return f.seatIDs }
func (f *Flow) Customer() models.CustomerInfo       { return f.customer }
func (f *Flow) PaymentRedirectURL() string          { return f.paymentURL }
func (f *Flow) Confirmed() *models.ConfirmedBooking { return f.confirmed }
func (f *Flow) Detail() *models.BookingDetail       { return f.detail }
func (f *Flow) Err() error                          { return f.err }

// SetLogger swaps the flow's logger, used to redirect logs to a file while a
// TUI owns the terminal.
func (f *Flow) SetLogger(l *log.Logger) { f.logger = l }

// Remaining returns the countdown in seconds.
func (f *Flow) Remaining() int { return f.remaining }

// Clock renders the countdown as MM:SS.
func (f *Flow) Clock() string { return shared.FormatClock(f.remaining) }

// Conflict returns the current seat-conflict notice, empty when there is none.
func (f *Flow) Conflict() string { return f.conflict }

// TicketTotal prices the held seats at the showtime's base rate.
func (f *Flow) TicketTotal() int64 {
	if f.showtime == nil {
		return 0
	}
	return f.showtime.Price * int64(len(f.seatIDs))
}

// ConcessionTotal prices the concession order against the fetched catalog.
func (f *Flow) ConcessionTotal() int64 { return f.order.Total(f.concessions) }

// GrandTotal is the amount the gateway will be asked to collect.
func (f *Flow) GrandTotal() int64 { return f.TicketTotal() + f.ConcessionTotal() }

// FetchShowtime loads the seat selection bundle. I/O only; pair with
// [Flow.ApplyLoad].
func (f *Flow) FetchShowtime(ctx context.Context) (*ShowtimeBundle, error) {
	st, err := f.svc.Showtime(ctx, f.showtimeID)
	if err != nil {
		return nil, fmt.Errorf("fetching showtime: %w", err)
	}

	b := &ShowtimeBundle{Showtime: st}
	if b.Movie, err = f.svc.Movie(ctx, st.MovieID); err != nil {
		return nil, fmt.Errorf("fetching movie: %w", err)
	}
	if b.Theater, err = f.svc.Theater(ctx, st.CinemaID); err != nil {
		return nil, fmt.Errorf("fetching cinema: %w", err)
	}
	if b.Room, err = f.svc.Room(ctx, st.RoomID); err != nil {
		return nil, fmt.Errorf("fetching room: %w", err)
	}
	if b.Seats, err = f.svc.Seats(ctx, f.showtimeID); err != nil {
		return nil, fmt.Errorf("fetching seats: %w", err)
	}
	return b, nil
}

// ApplyLoad installs the seat selection bundle, or fails the flow.
func (f *Flow) ApplyLoad(b *ShowtimeBundle, err error) {
	if err != nil {
		f.fail(err)
		return
	}
	f.showtime = b.Showtime
	f.movie = b.Movie
	f.theater = b.Theater
	f.room = b.Room
	f.seatMap = NewSeatMap(b.Seats)
	f.state = StateSeatSelection
}

// ToggleSeat flips a seat selection during seat selection. Any change clears
// the current conflict notice.
func (f *Flow) ToggleSeat(id string) {
	if f.state != StateSeatSelection || f.seatMap == nil {
		return
	}
	if f.seatMap.Toggle(id) {
		f.conflict = ""
	}
}

// BeginHold moves the flow into the holding state. At least one seat must be
// selected; nothing is submitted here, the caller runs [Flow.HoldSelected]
// next.
func (f *Flow) BeginHold() error {
	if f.state != StateSeatSelection {
		return fmt.Errorf("%w: cannot hold seats while %s", shared.ErrInvalidInput, f.state)
	}
	if len(f.seatMap.Selected()) == 0 {
		return fmt.Errorf("%w: select at least one seat", shared.ErrInvalidInput)
	}
	f.state = StateHolding
	f.err = nil
	return nil
}

// HoldSelected asks the server to hold the selected seats. On a seat
// conflict it also re-fetches the seat snapshot so the caller can show which
// picks were lost; the fresh snapshot is returned alongside the conflict
// error. I/O only; pair with [Flow.ApplyHold].
func (f *Flow) HoldSelected(ctx context.Context) ([]models.Seat, error) {
	ids := f.seatMap.Selected()
	err := f.svc.HoldSeats(ctx, f.showtimeID, ids, HoldCustomerToken)
	if err == nil {
		return nil, nil
	}

	var apiErr *services.APIError
	if errors.As(err, &apiErr) && apiErr.IsConflict() {
		fresh, fetchErr := f.svc.Seats(ctx, f.showtimeID)
		if fetchErr != nil {
			f.logger.Warn("refreshing seats after conflict failed", "error", fetchErr)
			fresh = nil
		}
		return fresh, fmt.Errorf("%w: %v", shared.ErrSeatConflict, apiErr.Message)
	}
	return nil, fmt.Errorf("holding seats: %w", err)
}

// ApplyHold consumes the result of [Flow.HoldSelected]. A successful hold
// freezes the selection as the continuation token and sends the flow back to
// loading for the checkout fetch. A conflict refreshes the map and returns
// to seat selection with the surviving picks still marked, so the user sees
// exactly which seats were taken. Any other failure also returns to seat
// selection, with the selection untouched.
func (f *Flow) ApplyHold(fresh []models.Seat, err error) {
	if err == nil {
		f.seatIDs = f.seatMap.Selected()
		f.conflict = ""
		f.state = StateLoading
		return
	}

	f.state = StateSeatSelection
	if errors.Is(err, shared.ErrSeatConflict) {
		if fresh != nil {
			f.seatMap.Refresh(fresh)
		}
		f.conflict = "some of the selected seats were just taken; adjust your selection"
		f.logger.Info("seat hold conflict", "showtime", f.showtimeID)
		return
	}
	f.err = err
}

// FetchCheckout loads the checkout bundle from the continuation token.
// I/O only; pair with [Flow.ApplyCheckout].
func (f *Flow) FetchCheckout(ctx context.Context) (*CheckoutBundle, error) {
	st, err := f.svc.Showtime(ctx, f.showtimeID)
	if err != nil {
		return nil, fmt.Errorf("fetching showtime: %w", err)
	}

	b := &CheckoutBundle{Showtime: st}
	if b.Movie, err = f.svc.Movie(ctx, st.MovieID); err != nil {
		return nil, fmt.Errorf("fetching movie: %w", err)
	}
	if b.Theater, err = f.svc.Theater(ctx, st.CinemaID); err != nil {
		return nil, fmt.Errorf("fetching cinema: %w", err)
	}
	if b.Room, err = f.svc.Room(ctx, st.RoomID); err != nil {
		return nil, fmt.Errorf("fetching room: %w", err)
	}
	if b.Concessions, err = f.svc.Concessions(ctx, st.CinemaID); err != nil {
		return nil, fmt.Errorf("fetching concessions: %w", err)
	}
	return b, nil
}

// ApplyCheckout installs the checkout bundle and starts the countdown, or
// fails the flow.
func (f *Flow) ApplyCheckout(b *CheckoutBundle, err error) {
	if err != nil {
		f.fail(err)
		return
	}
	if len(f.seatIDs) == 0 {
		f.fail(fmt.Errorf("%w: no held seats to check out", shared.ErrInvalidInput))
		return
	}
	f.showtime = b.Showtime
	f.movie = b.Movie
	f.theater = b.Theater
	f.room = b.Room
	f.concessions = b.Concessions
	f.remaining = CheckoutSeconds
	f.abandoned = false
	f.state = StateCheckout
}

// SetConcession records a concession quantity during checkout.
func (f *Flow) SetConcession(id string, qty int) {
	if f.state != StateCheckout {
		return
	}
	f.order.SetQuantity(id, qty)
}

// Tick advances the countdown by one second. The countdown runs through
// checkout and submission, but the hold only lapses while the form is idle:
// an in-flight submission suppresses abandonment, and abandonment fires at
// most once.
func (f *Flow) Tick() TickOutcome {
	if f.state != StateCheckout && f.state != StateSubmitting {
		return TickStop
	}
	if f.remaining > 0 {
		f.remaining--
	}
	if f.remaining > 0 {
		return TickContinue
	}
	if f.state == StateSubmitting || f.abandoned {
		return TickContinue
	}
	f.abandoned = true
	f.fail(shared.ErrHoldExpired)
	f.logger.Info("checkout abandoned, hold lapsed", "showtime", f.showtimeID)
	return TickAbandon
}

// BeginSubmit validates the form and moves the flow into submission. A
// non-nil return lists every validation failure and leaves the state
// untouched.
func (f *Flow) BeginSubmit(info models.CustomerInfo, agreements Agreements) []string {
	if f.state != StateCheckout {
		return []string{"checkout is not ready"}
	}
	if problems := ValidateCustomer(info, agreements); problems != nil {
		return problems
	}
	f.customer = info
	f.state = StateSubmitting
	return nil
}

// BookingRequest assembles the create-booking payload from the flow state.
// The seat count is billed as a single ticket line at the showtime's base
// rate.
func (f *Flow) BookingRequest() models.BookingRequest {
	return models.BookingRequest{
		ShowtimeID:   f.showtimeID,
		CustomerInfo: f.customer,
		Seats:        f.seatIDs,
		TicketTypes: []models.TicketType{{
			Type:           AdultTicketType,
			Quantity:       len(f.seatIDs),
			PricePerTicket: f.showtime.Price,
		}},
		Concessions: f.order.Items(f.concessions),
	}
}

// SubmitBooking runs the three-call submission sequence: release the hold,
// create the booking, request the gateway URL. The ordering matches the
// backend's contract, which re-validates seat availability inside the
// create call. Failures after the release are wrapped with
// [ErrSeatsReleased] because the flow cannot recover from them. I/O only;
// pair with [Flow.ApplySubmit].
func (f *Flow) SubmitBooking(ctx context.Context) (*models.PaymentURL, error) {
	if err := f.svc.ReleaseSeats(ctx, f.showtimeID, f.seatIDs); err != nil {
		return nil, fmt.Errorf("releasing held seats: %w", err)
	}

	created, err := f.svc.CreateBooking(ctx, f.BookingRequest())
	if err != nil {
		return nil, fmt.Errorf("%w: creating booking: %v", ErrSeatsReleased, err)
	}

	pay, err := f.svc.CreatePaymentURL(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: requesting payment url for booking %s: %v", ErrSeatsReleased, created.ID, err)
	}
	if pay.PaymentURL == "" {
		return nil, fmt.Errorf("%w: booking %s", shared.ErrNoPaymentURL, created.ID)
	}
	return pay, nil
}

// ApplySubmit consumes the result of [Flow.SubmitBooking]. Success moves to
// the redirected state with the gateway URL in hand. A failure before the
// release went through returns to checkout so the user can retry; a failure
// after it fails the flow outright.
func (f *Flow) ApplySubmit(pay *models.PaymentURL, err error) {
	if err != nil {
		if errors.Is(err, ErrSeatsReleased) || errors.Is(err, shared.ErrNoPaymentURL) {
			f.fail(err)
			return
		}
		f.state = StateCheckout
		f.err = err
		return
	}
	f.paymentURL = pay.PaymentURL
	f.err = nil
	f.state = StateRedirected
}

// BeginConfirm inspects the gateway's return parameters. An approved
// transaction moves the flow to confirming and returns true; anything else
// fails the flow immediately without calling the backend.
func (f *Flow) BeginConfirm(params url.Values) bool {
	if f.state != StateRedirected {
		return false
	}
	if !GatewayApproved(params) {
		f.fail(fmt.Errorf("%w: gateway response %q status %q",
			shared.ErrPaymentRejected,
			params.Get("vnp_ResponseCode"),
			params.Get("vnp_TransactionStatus")))
		return false
	}
	f.state = StateConfirming
	return true
}

// ConfirmReturn forwards the gateway parameters to the backend and fetches
// the finalized ticket detail. I/O only; pair with [Flow.ApplyConfirm].
func (f *Flow) ConfirmReturn(ctx context.Context, params url.Values) (*models.ConfirmedBooking, *models.BookingDetail, error) {
	confirmed, err := f.svc.ConfirmPayment(ctx, params)
	if err != nil {
		return nil, nil, fmt.Errorf("confirming payment: %w", err)
	}

	detail, err := f.svc.BookingByCode(ctx, confirmed.ConfirmationCode)
	if err != nil {
		return confirmed, nil, fmt.Errorf("fetching ticket %s: %w", confirmed.ConfirmationCode, err)
	}
	return confirmed, detail, nil
}

// ApplyConfirm consumes the result of [Flow.ConfirmReturn]. A confirmation
// without a ticket detail still counts as confirmed; the code alone is
// enough to retrieve the ticket later.
func (f *Flow) ApplyConfirm(confirmed *models.ConfirmedBooking, detail *models.BookingDetail, err error) {
	if confirmed == nil && err != nil {
		f.fail(err)
		return
	}
	f.confirmed = confirmed
	f.detail = detail
	f.err = err
	f.state = StateConfirmed
}

// Fail aborts the flow. For failures that happen outside the flow's own
// calls, like a gateway return that never arrives.
func (f *Flow) Fail(err error) { f.fail(err) }

func (f *Flow) fail(err error) {
	f.err = err
	f.state = StateFailed
}
