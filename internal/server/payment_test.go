package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestPaymentHandler(t *testing.T) {
	t.Run("captures the full parameter set", func(t *testing.T) {
		h := NewPaymentHandler()
		req := httptest.NewRequest(http.MethodGet,
			"/payment/return?vnp_ResponseCode=00&vnp_TransactionStatus=00&vnp_TxnRef=abc&vnp_SecureHash=deadbeef", nil)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := <-h.Result()
		if err := result.Error(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Params.Get("vnp_TxnRef") != "abc" || result.Params.Get("vnp_SecureHash") != "deadbeef" {
			t.Errorf("expected untouched parameters, got %v", result.Params)
		}
		if !strings.Contains(rec.Body.String(), "return to the terminal") {
			t.Error("expected the close-this-window page")
		}
	})

	t.Run("second return is rejected", func(t *testing.T) {
		h := NewPaymentHandler()
		first := httptest.NewRequest(http.MethodGet, "/payment/return?vnp_ResponseCode=00", nil)
		h.ServeHTTP(httptest.NewRecorder(), first)
		<-h.Result()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment/return?vnp_ResponseCode=00", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 on replay, got %d", rec.Code)
		}
	})

	t.Run("empty query is an error result", func(t *testing.T) {
		h := NewPaymentHandler()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment/return", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		result := <-h.Result()
		if result.Error() == nil {
			t.Error("expected an error result")
		}
	})

	t.Run("channel closes after the single result", func(t *testing.T) {
		h := NewPaymentHandler()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/payment/return?x=1", nil))

		<-h.Result()
		if _, open := <-h.Result(); open {
			t.Error("expected result channel to be closed")
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("routes handler paths", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(NewPaymentHandler())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payment/return?vnp_ResponseCode=00", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("method patterns reject other methods", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("middleware wraps in registration order", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mw("outer"), mw("inner"))
		router.Use(LogRequests(log.New(io.Discard)))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
		if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
			t.Errorf("expected [outer inner], got %v", order)
		}
	})
}
