package server

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// PaymentResult carries the gateway's return parameters back to the flow.
type PaymentResult struct {
	Params url.Values
	err    error
}

func (p *PaymentResult) Error() error {
	return p.err
}

// PaymentHandler handles the payment gateway's browser return. Implements
// the [Handler] interface for registration with a [Router].
//
// The gateway encodes the transaction outcome in vnp_* query parameters and
// signs them; the parameter set is captured whole and forwarded untouched so
// the backend can verify the signature. The handler judges nothing itself.
type PaymentHandler struct {
	resultChan chan PaymentResult
	once       sync.Once
	returned   bool
	mu         sync.Mutex
}

// NewPaymentHandler creates a handler for a single gateway return.
func NewPaymentHandler() *PaymentHandler {
	return &PaymentHandler{resultChan: make(chan PaymentResult, 1)}
}

// Routes returns the HTTP routes this handler serves.
func (h *PaymentHandler) Routes() []string {
	return []string{"/payment/return"}
}

// ServeHTTP captures the gateway return.
//
// The first request wins; repeats get a 400 without touching the channel.
func (h *PaymentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.returned {
		h.mu.Unlock()
		http.Error(w, "Payment return already processed", http.StatusBadRequest)
		return
	}
	h.returned = true
	h.mu.Unlock()

	params := r.URL.Query()
	if len(params) == 0 {
		err := fmt.Errorf("gateway return carried no parameters")
		h.Send(PaymentResult{err: err})
		http.Error(w, "Missing gateway parameters", http.StatusBadRequest)
		return
	}

	h.Send(PaymentResult{Params: params})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Payment Received</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #e71a0f; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Payment Response Received</h1>
        <p>You can close this window and return to the terminal for your ticket.</p>
    </div>
</body>
</html>
`)
}

// Send delivers the result through the channel (only once).
func (h *PaymentHandler) Send(result PaymentResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving the gateway return.
//
// Channel will receive exactly one result and then be closed.
func (h *PaymentHandler) Result() <-chan PaymentResult {
	return h.resultChan
}
