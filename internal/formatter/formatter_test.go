package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hbui/cinecli/internal/models"
	tu "github.com/hbui/cinecli/internal/testing"
)

func ticketFixture() *models.BookingDetail {
	return &models.BookingDetail{
		ConfirmationCode: "ABC123",
		CustomerInfo:     models.CustomerInfo{FullName: "Nguyen Van A"},
		MovieTitle:       "Dune: Part Two",
		CinemaName:       "Galaxy Nguyen Du",
		RoomName:         "Room 2",
		ShowDateTime:     time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC),
		Seats:            []string{"A1", "A2"},
		Concessions: []models.DetailConcession{
			{ItemID: "c1", Name: "Popcorn L", Price: 65000, Quantity: 2},
		},
		TotalPrice: 310000,
	}
}

func TestTicketToText(t *testing.T) {
	out := string(TicketToText(ticketFixture()))

	for _, want := range []string{"ABC123", "Dune: Part Two", "A1, A2", "2x Popcorn L", "310.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected text ticket to contain %q:\n%s", want, out)
		}
	}
}

func TestTicketToMarkdown(t *testing.T) {
	out := string(TicketToMarkdown(ticketFixture()))

	if !strings.HasPrefix(out, "# Dune: Part Two") {
		t.Errorf("expected a title heading, got:\n%s", out)
	}
	if !strings.Contains(out, "`ABC123`") {
		t.Error("expected the confirmation code in a code span")
	}
	if !strings.Contains(out, "- 2x Popcorn L") {
		t.Error("expected a concession bullet")
	}
}

func TestWriteTicketFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("writes each requested format", func(t *testing.T) {
		paths, err := WriteTicketFiles(ticketFixture(), dir, []string{"txt", "md"})
		if err != nil {
			t.Fatalf("WriteTicketFiles: %v", err)
		}
		if len(paths) != 2 {
			t.Fatalf("expected 2 files, got %v", paths)
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("expected %s to exist: %v", p, err)
			}
		}
		if filepath.Base(paths[0]) != "ticket_ABC123.txt" {
			t.Errorf("unexpected filename %s", paths[0])
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		if _, err := WriteTicketFiles(ticketFixture(), dir, []string{"pdf"}); err == nil {
			t.Error("expected an error for unknown format")
		}
	})

	t.Run("writes into the working directory by default", func(t *testing.T) {
		wd := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, wd)

		if _, err := WriteTicketFiles(ticketFixture(), ".", []string{"md"}); err != nil {
			t.Fatalf("WriteTicketFiles: %v", err)
		}
		tu.AssertFileExists(t, "ticket_ABC123.md")
	})
}
