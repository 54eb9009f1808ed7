// Package ui implements the interactive booking flow using bubbletea's Elm architecture.
//
// The TUI walks the purchase steps:
//  1. Seat selection : navigate the seat grid, toggle seats, confirm the hold
//  2. Checkout : contact form, agreements, concession quantities, countdown
//  3. Payment : the gateway page opens in the system browser while a
//     localhost callback server waits for the return redirect
//  4. Confirmation : the finalized ticket, saved to local history
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// All state transitions go through [booking.Flow]; network calls run as
// tea.Cmds and deliver their results as messages, so flow mutation happens
// only on the Update goroutine. The checkout countdown is a tea.Tick chain
// feeding [booking.Flow.Tick].
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, space, enter, tab,
// esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
