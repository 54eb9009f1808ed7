package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/services"
	"github.com/hbui/cinecli/internal/shared"
	tu "github.com/hbui/cinecli/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			svc := &tu.MockService{}
			locator := services.NewLocator("", nil)

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Service:    svc,
				Locator:    locator,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.service != svc {
				t.Error("expected service to be set")
			}
			if runner.locator != locator {
				t.Error("expected locator to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestCommands(t *testing.T) {
	// run executes one CLI invocation against a service backed by a canned
	// HTTP response.
	run := func(t *testing.T, resp *http.Response, args ...string) (string, error) {
		t.Helper()
		client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}
		svc := services.NewCinemaService("http://api.test", client, 0)

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Service: svc,
			Output:  output,
			Logger:  shared.NewLogger(io.Discard),
		})

		app := &cli.Command{Name: "cinecli", Commands: runner.register()}
		err := app.Run(context.Background(), append([]string{"cinecli"}, args...))
		return output.String(), err
	}

	t.Run("search prints matching movies", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`[{"id":"m1","title":"Dune: Part Two","duration":166}]`)),
		}

		out, err := run(t, resp, "search", "dune")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Dune: Part Two") {
			t.Errorf("expected the movie title in output, got:\n%s", out)
		}
		if !strings.Contains(out, "166 min") {
			t.Errorf("expected the duration in output, got:\n%s", out)
		}
	})

	t.Run("search without a query fails", func(t *testing.T) {
		_, err := run(t, &http.Response{StatusCode: http.StatusOK}, "search")
		if err == nil {
			t.Fatal("expected an error for a missing query")
		}
	})

	t.Run("movies lists one catalog page", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"content":[{"id":"m1","title":"Dune"}],"totalPages":4}`)),
		}

		out, err := run(t, resp, "movies", "--page", "1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "page 2 of 4") {
			t.Errorf("expected the page position in output, got:\n%s", out)
		}
	})

	t.Run("unreadable response body surfaces as a decode error", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Body:       &tu.FCloser{},
		}

		_, err := run(t, resp, "search", "dune")
		if err == nil {
			t.Fatal("expected an error from the unreadable body")
		}
		if !strings.Contains(err.Error(), "failed to decode response") {
			t.Errorf("expected a decode error, got %v", err)
		}
	})
}

func TestSplitSeats(t *testing.T) {
	t.Run("splits a comma list", func(t *testing.T) {
		seats := splitSeats("a1,b2,c3")
		if len(seats) != 3 || seats[0] != "a1" || seats[2] != "c3" {
			t.Errorf("unexpected split: %v", seats)
		}
	})

	t.Run("trims whitespace and drops empty entries", func(t *testing.T) {
		seats := splitSeats(" a1 , ,b2,")
		if len(seats) != 2 || seats[0] != "a1" || seats[1] != "b2" {
			t.Errorf("unexpected split: %v", seats)
		}
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		if seats := splitSeats(""); len(seats) != 0 {
			t.Errorf("expected no seats, got %v", seats)
		}
	})
}

func TestAtCinema(t *testing.T) {
	var gotQuery services.PageQuery
	fetch := func(ctx context.Context, q services.PageQuery) (*models.Page[models.Movie], error) {
		gotQuery = q
		return &models.Page[models.Movie]{TotalPages: 1}, nil
	}

	narrowed := atCinema(fetch, "cinema-9")
	if _, err := narrowed(context.Background(), services.PageQuery{Page: 2, Size: 10}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotQuery.CinemaID != "cinema-9" {
		t.Errorf("expected cinema id to be injected, got %q", gotQuery.CinemaID)
	}
	if gotQuery.Page != 2 || gotQuery.Size != 10 {
		t.Errorf("expected page query preserved, got %+v", gotQuery)
	}
}
