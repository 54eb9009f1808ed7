package ui

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/hbui/cinecli/internal/booking"
	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/repositories"
	"github.com/hbui/cinecli/internal/server"
	"github.com/hbui/cinecli/internal/shared"
)

// Checkout focus sections, cycled with tab.
const (
	focusName = iota
	focusPhone
	focusEmail
	focusTerms
	focusPolicy
	focusConcessions
	focusCount
)

// Model represents the booking TUI application state.
type Model struct {
	ctx     context.Context
	flow    *booking.Flow
	cfg     *shared.Config
	logger  *log.Logger
	tickets *repositories.TicketRepository

	width  int
	height int

	cursorRow int
	cursorCol int

	inputs        []textinput.Model
	focus         int
	agree         booking.Agreements
	concessionIdx int
	problems      []string

	handler      *server.PaymentHandler
	cancelServer context.CancelFunc
	savedTicket  bool

	spin spinner.Model
	help help.Model
	keys keyMap
}

type showtimeLoadedMsg struct {
	bundle *booking.ShowtimeBundle
	err    error
}

type holdResultMsg struct {
	fresh []models.Seat
	err   error
}

type checkoutLoadedMsg struct {
	bundle *booking.CheckoutBundle
	err    error
}

type tickMsg time.Time

type submitResultMsg struct {
	pay *models.PaymentURL
	err error
}

type gatewayReturnMsg struct {
	params url.Values
	err    error
}

type confirmResultMsg struct {
	confirmed *models.ConfirmedBooking
	detail    *models.BookingDetail
	err       error
}

type ticketSavedMsg struct {
	err error
}

// NewModel creates a booking TUI model. The ticket repository may be nil, in
// which case confirmed tickets are not recorded locally.
func NewModel(ctx context.Context, flow *booking.Flow, cfg *shared.Config, logger *log.Logger, tickets *repositories.TicketRepository) *Model {
	return &Model{
		ctx:     ctx,
		flow:    flow,
		cfg:     cfg,
		logger:  logger,
		tickets: tickets,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.title)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init kicks off the first fetch: the checkout bundle when resuming from a
// continuation token, the seat selection bundle otherwise.
func (m *Model) Init() tea.Cmd {
	if len(m.flow.HeldSeats()) > 0 {
		return tea.Batch(m.spin.Tick, m.fetchCheckout())
	}
	return tea.Batch(m.spin.Tick, m.fetchShowtime())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if !m.waiting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case showtimeLoadedMsg:
		m.flow.ApplyLoad(msg.bundle, msg.err)
		return m, nil

	case holdResultMsg:
		m.flow.ApplyHold(msg.fresh, msg.err)
		if m.flow.State() == booking.StateLoading {
			return m, tea.Batch(m.spin.Tick, m.fetchCheckout())
		}
		if err := m.flow.Err(); err != nil {
			m.problems = []string{err.Error()}
		}
		return m, nil

	case checkoutLoadedMsg:
		m.flow.ApplyCheckout(msg.bundle, msg.err)
		if m.flow.State() != booking.StateCheckout {
			return m, nil
		}
		m.setupCheckoutForm()
		return m, tickCmd()

	case tickMsg:
		switch m.flow.Tick() {
		case booking.TickContinue:
			return m, tickCmd()
		default:
			return m, nil
		}

	case submitResultMsg:
		m.flow.ApplySubmit(msg.pay, msg.err)
		switch m.flow.State() {
		case booking.StateRedirected:
			return m, m.startPaymentWait()
		case booking.StateCheckout:
			m.problems = []string{msg.err.Error()}
		}
		return m, nil

	case gatewayReturnMsg:
		if m.cancelServer != nil {
			m.cancelServer()
			m.cancelServer = nil
		}
		if msg.err != nil {
			m.flow.Fail(fmt.Errorf("payment return failed: %w", msg.err))
			return m, nil
		}
		if !m.flow.BeginConfirm(msg.params) {
			return m, nil
		}
		return m, tea.Batch(m.spin.Tick, m.confirmPayment(msg.params))

	case confirmResultMsg:
		m.flow.ApplyConfirm(msg.confirmed, msg.detail, msg.err)
		if m.flow.State() == booking.StateConfirmed && m.tickets != nil && m.flow.Detail() != nil {
			return m, m.saveTicket()
		}
		return m, nil

	case ticketSavedMsg:
		if msg.err != nil {
			m.logger.Warn("could not save ticket to history", "error", msg.err)
		} else {
			m.savedTicket = true
		}
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the flow state.
func (m *Model) View() string {
	switch m.flow.State() {
	case booking.StateLoading:
		return m.spin.View() + " Loading...\n"
	case booking.StateSeatSelection:
		return m.renderSeatSelection()
	case booking.StateHolding:
		return m.spin.View() + " Holding seats...\n"
	case booking.StateCheckout:
		return m.renderCheckout()
	case booking.StateSubmitting:
		return m.renderCheckout()
	case booking.StateRedirected:
		return m.renderRedirected()
	case booking.StateConfirming:
		return m.spin.View() + " Confirming payment...\n"
	case booking.StateConfirmed:
		return m.renderConfirmed()
	default:
		return m.renderFailed()
	}
}

// waiting reports whether a spinner view is on screen.
func (m *Model) waiting() bool {
	switch m.flow.State() {
	case booking.StateLoading, booking.StateHolding, booking.StateConfirming:
		return true
	}
	return false
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.flow.State() {
	case booking.StateSeatSelection:
		return m.handleSeatKeys(msg)
	case booking.StateCheckout:
		return m.handleCheckoutKeys(msg)
	case booking.StateConfirmed, booking.StateFailed:
		if msg.String() == "q" || msg.String() == "enter" {
			return m, tea.Quit
		}
	default:
		if msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) handleSeatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.flow.SeatMap().Rows()
	if len(rows) == 0 {
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.cursorRow--
	case key.Matches(msg, m.keys.down):
		m.cursorRow++
	case key.Matches(msg, m.keys.left):
		m.cursorCol--
	case key.Matches(msg, m.keys.right):
		m.cursorCol++
	case key.Matches(msg, m.keys.toggle):
		m.flow.ToggleSeat(m.cursorSeat(rows).ID)
		m.problems = nil
	case key.Matches(msg, m.keys.enter):
		if err := m.flow.BeginHold(); err != nil {
			m.problems = []string{err.Error()}
			return m, nil
		}
		m.problems = nil
		return m, tea.Batch(m.spin.Tick, m.holdSeats())
	}

	m.clampCursor(rows)
	return m, nil
}

func (m *Model) clampCursor(rows []booking.Row) {
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	if m.cursorRow >= len(rows) {
		m.cursorRow = len(rows) - 1
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if max := len(rows[m.cursorRow].Seats) - 1; m.cursorCol > max {
		m.cursorCol = max
	}
}

func (m *Model) cursorSeat(rows []booking.Row) models.Seat {
	m.clampCursor(rows)
	return rows[m.cursorRow].Seats[m.cursorCol]
}

func (m *Model) setupCheckoutForm() {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.Focus()

	phone := textinput.New()
	phone.Placeholder = "Phone (10 digits)"

	email := textinput.New()
	email.Placeholder = "Email"

	m.inputs = []textinput.Model{name, phone, email}
	m.focus = focusName
	m.problems = nil
}

func (m *Model) handleCheckoutKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.submit):
		return m.submit()
	case key.Matches(msg, m.keys.tab):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case msg.String() == "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	switch m.focus {
	case focusName, focusPhone, focusEmail:
		if msg.String() == "enter" {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd

	case focusTerms, focusPolicy:
		switch msg.String() {
		case " ", "enter":
			if m.focus == focusTerms {
				m.agree.Terms = !m.agree.Terms
			} else {
				m.agree.Policy = !m.agree.Policy
			}
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case focusConcessions:
		groups := booking.GroupByCategory(m.flow.Concessions())
		items := flattenConcessions(groups)
		switch {
		case key.Matches(msg, m.keys.up):
			if m.concessionIdx > 0 {
				m.concessionIdx--
			}
		case key.Matches(msg, m.keys.down):
			if m.concessionIdx < len(items)-1 {
				m.concessionIdx++
			}
		case key.Matches(msg, m.keys.inc), key.Matches(msg, m.keys.right):
			if len(items) > 0 {
				m.flow.Order().Adjust(items[m.concessionIdx].ID, 1)
			}
		case key.Matches(msg, m.keys.dec), key.Matches(msg, m.keys.left):
			if len(items) > 0 {
				m.flow.Order().Adjust(items[m.concessionIdx].ID, -1)
			}
		case msg.String() == "enter":
			return m.submit()
		case msg.String() == "q":
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) setFocus(focus int) {
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	info := models.CustomerInfo{
		FullName: m.inputs[focusName].Value(),
		Phone:    m.inputs[focusPhone].Value(),
		Email:    m.inputs[focusEmail].Value(),
	}
	if problems := m.flow.BeginSubmit(info, m.agree); problems != nil {
		m.problems = problems
		return m, nil
	}
	m.problems = nil
	return m, m.submitBooking()
}

func flattenConcessions(groups []booking.CategoryGroup) []models.Concession {
	var items []models.Concession
	for _, g := range groups {
		items = append(items, g.Items...)
	}
	return items
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) fetchShowtime() tea.Cmd {
	return func() tea.Msg {
		bundle, err := m.flow.FetchShowtime(m.ctx)
		return showtimeLoadedMsg{bundle: bundle, err: err}
	}
}

func (m *Model) fetchCheckout() tea.Cmd {
	return func() tea.Msg {
		bundle, err := m.flow.FetchCheckout(m.ctx)
		return checkoutLoadedMsg{bundle: bundle, err: err}
	}
}

func (m *Model) holdSeats() tea.Cmd {
	return func() tea.Msg {
		fresh, err := m.flow.HoldSelected(m.ctx)
		return holdResultMsg{fresh: fresh, err: err}
	}
}

func (m *Model) submitBooking() tea.Cmd {
	return func() tea.Msg {
		pay, err := m.flow.SubmitBooking(m.ctx)
		return submitResultMsg{pay: pay, err: err}
	}
}

// startPaymentWait boots the localhost callback server, opens the gateway
// page in the system browser, and waits for the return redirect.
func (m *Model) startPaymentWait() tea.Cmd {
	m.handler = server.NewPaymentHandler()
	router := server.NewBasicRouter()
	router.Use(server.LogRequests(m.logger))
	router.Handler(m.handler)

	srvCtx, cancel := context.WithCancel(m.ctx)
	m.cancelServer = cancel
	addr := m.cfg.Server.Addr()
	go func() {
		if err := server.Serve(srvCtx, addr, router, m.logger); err != nil {
			m.logger.Error("payment callback server failed", "error", err)
		}
	}()

	if err := shared.OpenBrowser(m.flow.PaymentRedirectURL()); err != nil {
		m.logger.Warn("could not open browser, open the payment URL manually", "error", err)
	}
	return m.waitForGateway()
}

func (m *Model) waitForGateway() tea.Cmd {
	handler := m.handler
	return func() tea.Msg {
		result, ok := <-handler.Result()
		if !ok {
			return gatewayReturnMsg{err: fmt.Errorf("payment return channel closed")}
		}
		return gatewayReturnMsg{params: result.Params, err: result.Error()}
	}
}

func (m *Model) confirmPayment(params url.Values) tea.Cmd {
	return func() tea.Msg {
		confirmed, detail, err := m.flow.ConfirmReturn(m.ctx, params)
		return confirmResultMsg{confirmed: confirmed, detail: detail, err: err}
	}
}

func (m *Model) saveTicket() tea.Cmd {
	detail := m.flow.Detail()
	return func() tea.Msg {
		return ticketSavedMsg{err: m.tickets.Save(detail)}
	}
}

func (m *Model) renderSeatSelection() string {
	var b strings.Builder

	title := "Select your seats"
	if movie := m.flow.Movie(); movie != nil {
		title = movie.Title
	}
	b.WriteString(styles.title.Render(title) + "\n")

	if theater, room := m.flow.Theater(), m.flow.Room(); theater != nil && room != nil {
		b.WriteString(fmt.Sprintf("%s / %s", theater.Name, room.Name))
		if st := m.flow.Showtime(); st != nil {
			b.WriteString(" / " + st.ShowDateTime.Format("Mon 02 Jan 15:04"))
		}
		b.WriteString("\n\n")
	}

	rows := m.flow.SeatMap().Rows()
	if len(rows) == 0 {
		b.WriteString("No seats available for this showtime.\n\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.quit}))
		return b.String()
	}

	b.WriteString(styles.screen.Render("---------- SCREEN ----------") + "\n\n")

	for ri, row := range rows {
		b.WriteString(fmt.Sprintf("%3s  ", row.Label))
		for ci, seat := range row.Seats {
			token := fmt.Sprintf("[%2d]", seat.Number)
			style := m.seatStyle(seat)
			if ri == m.cursorRow && ci == m.cursorCol {
				token = ">" + token[1:len(token)-1] + "<"
			}
			b.WriteString(style.Render(token) + " ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("standard") + " " + styles.seatVIP.Render("vip") + " " +
		styles.seatCouple.Render("couple") + " " + styles.seatTaken.Render("taken") + "\n\n")

	selected := m.flow.SeatMap().SelectedSeats()
	if len(selected) > 0 {
		var names []string
		for _, s := range selected {
			names = append(names, fmt.Sprintf("%s%d", s.Row, s.Number))
		}
		b.WriteString(fmt.Sprintf("Selected: %s  |  Total: %s\n",
			strings.Join(names, ", "), shared.FormatVND(m.flow.SeatMap().TotalPrice())))
	} else {
		b.WriteString("Selected: none\n")
	}

	if conflict := m.flow.Conflict(); conflict != "" {
		b.WriteString(styles.warn.Render(conflict) + "\n")
	}
	for _, p := range m.problems {
		b.WriteString(styles.err.Render(p) + "\n")
	}

	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.toggle, m.keys.enter, m.keys.quit}))
	return b.String()
}

func (m *Model) seatStyle(seat models.Seat) lipgloss.Style {
	switch m.flow.SeatMap().Class(seat) {
	case booking.ClassUnavailable:
		return styles.seatTaken
	case booking.ClassSelected:
		return styles.seatSelected
	case booking.ClassVIP:
		return styles.seatVIP
	case booking.ClassCouple:
		return styles.seatCouple
	default:
		return styles.seatStandard
	}
}

func (m *Model) renderCheckout() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Checkout") + "\n")

	clock := m.flow.Clock()
	if m.flow.Remaining() <= 60 {
		clock = styles.err.Render(clock)
	} else {
		clock = styles.warn.Render(clock)
	}
	b.WriteString(fmt.Sprintf("Seats held for %s\n\n", clock))

	if movie, theater := m.flow.Movie(), m.flow.Theater(); movie != nil && theater != nil {
		b.WriteString(fmt.Sprintf("%s at %s", movie.Title, theater.Name))
		if st := m.flow.Showtime(); st != nil {
			b.WriteString(", " + st.ShowDateTime.Format("Mon 02 Jan 15:04"))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Seats: %s\n\n", strings.Join(m.flow.HeldSeats(), ", ")))

	labels := []string{"Name ", "Phone", "Email"}
	for i, input := range m.inputs {
		marker := "  "
		if m.focus == i {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, labels[i], input.View()))
	}
	b.WriteString("\n")

	b.WriteString(renderCheckbox(m.focus == focusTerms, m.agree.Terms, "I agree to the terms of service"))
	b.WriteString(renderCheckbox(m.focus == focusPolicy, m.agree.Policy, "I agree to the ticketing policy"))
	b.WriteString("\n")

	b.WriteString(m.renderConcessions())

	b.WriteString(fmt.Sprintf("\nTickets: %s  Concessions: %s  Total: %s\n",
		shared.FormatVND(m.flow.TicketTotal()),
		shared.FormatVND(m.flow.ConcessionTotal()),
		styles.ok.Render(shared.FormatVND(m.flow.GrandTotal()))))

	for _, p := range m.problems {
		b.WriteString(styles.err.Render(p) + "\n")
	}

	if m.flow.State() == booking.StateSubmitting {
		b.WriteString("\nSubmitting booking...\n")
	} else {
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.tab, m.keys.inc, m.keys.submit, m.keys.quit}))
	}
	return b.String()
}

func renderCheckbox(focused, checked bool, label string) string {
	marker := "  "
	if focused {
		marker = "> "
	}
	box := "[ ]"
	if checked {
		box = styles.ok.Render("[x]")
	}
	return fmt.Sprintf("%s%s %s\n", marker, box, label)
}

func (m *Model) renderConcessions() string {
	groups := booking.GroupByCategory(m.flow.Concessions())
	if len(groups) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Concessions:\n")
	idx := 0
	for _, g := range groups {
		b.WriteString(styles.help.Render(g.Name) + "\n")
		for _, item := range g.Items {
			marker := "  "
			if m.focus == focusConcessions && idx == m.concessionIdx {
				marker = "> "
			}
			qty := m.flow.Order().Quantity(item.ID)
			line := fmt.Sprintf("%s%dx %-24s %s", marker, qty, item.Name, shared.FormatVND(item.Price))
			if qty > 0 {
				line = styles.ok.Render(line)
			}
			b.WriteString(line + "\n")
			idx++
		}
	}
	return b.String()
}

func (m *Model) renderRedirected() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Complete your payment") + "\n")
	b.WriteString("The payment page was opened in your browser. If it did not open, visit:\n\n")
	b.WriteString("  " + m.flow.PaymentRedirectURL() + "\n\n")
	b.WriteString(fmt.Sprintf("Waiting for the gateway to redirect to %s ...\n\n", m.cfg.CallbackURL()))
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.quit}))
	return b.String()
}

func (m *Model) renderConfirmed() string {
	var b strings.Builder
	b.WriteString(styles.ok.Render("Payment confirmed!") + "\n\n")

	if detail := m.flow.Detail(); detail != nil {
		b.WriteString(fmt.Sprintf("%s\n%s, %s\n%s\nSeats: %s\nTotal: %s\n",
			detail.MovieTitle, detail.CinemaName, detail.RoomName,
			detail.ShowDateTime.Format("Mon 02 Jan 15:04"),
			strings.Join(detail.Seats, ", "),
			shared.FormatVND(detail.TotalPrice)))
	}
	if confirmed := m.flow.Confirmed(); confirmed != nil {
		b.WriteString(fmt.Sprintf("\nConfirmation code: %s\n", styles.title.Render(confirmed.ConfirmationCode)))
	}
	if m.savedTicket {
		b.WriteString(styles.help.Render("Saved to ticket history.") + "\n")
	}
	if err := m.flow.Err(); err != nil {
		b.WriteString(styles.warn.Render(fmt.Sprintf("Ticket detail unavailable: %v", err)) + "\n")
	}

	b.WriteString("\nPress q to quit.\n")
	return b.String()
}

func (m *Model) renderFailed() string {
	err := m.flow.Err()
	if err == nil {
		err = fmt.Errorf("the booking could not be completed")
	}
	return styles.err.Render(fmt.Sprintf("Booking failed: %v", err)) +
		"\n\nYour seats are no longer held. Start again from the catalog.\n\nPress q to quit.\n"
}
