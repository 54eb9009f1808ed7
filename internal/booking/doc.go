// Package booking implements the multi-step ticket purchase flow.
//
// The flow is an explicit state machine:
//
//	Loading → SeatSelection → Holding → Checkout → Submitting → Redirected → Confirming → {Confirmed, Failed}
//
// [Flow] owns all step-local state: the [SeatMap] selection, the checkout
// [ConcessionOrder], the hold countdown, and the submission guard. Network
// I/O and state mutation are kept apart so a single-threaded event loop can
// drive the flow: Fetch*/Hold*/Submit*/Confirm* methods only perform I/O and
// return results, while Apply*/Begin*/Toggle*/Tick methods only mutate state
// and are meant to be called from the loop that owns the Flow.
//
// The client never holds authoritative booking state between steps. Entering
// checkout re-derives everything from the continuation token (showtime id +
// seat id list) with fresh fetches; the server is the sole source of truth
// for seat status, and the local countdown is advisory: real hold expiry is
// enforced by the server's hold TTL.
package booking
