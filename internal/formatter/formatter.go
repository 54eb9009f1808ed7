// package formatter provides functions to export finalized tickets to
// various formats (plain text, Markdown)
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/shared"
)

const showTimeLayout = "Mon, 02 Jan 2006 15:04"

// TicketToText renders a finalized booking as a plain text ticket stub.
func TicketToText(detail *models.BookingDetail) []byte {
	var buf bytes.Buffer

	line := strings.Repeat("=", 44)
	buf.WriteString(line + "\n")
	buf.WriteString(fmt.Sprintf("  %s\n", detail.MovieTitle))
	buf.WriteString(line + "\n")
	buf.WriteString(fmt.Sprintf("Confirmation: %s\n", detail.ConfirmationCode))
	buf.WriteString(fmt.Sprintf("Cinema:       %s\n", detail.CinemaName))
	buf.WriteString(fmt.Sprintf("Room:         %s\n", detail.RoomName))
	buf.WriteString(fmt.Sprintf("Showtime:     %s\n", detail.ShowDateTime.Format(showTimeLayout)))
	buf.WriteString(fmt.Sprintf("Seats:        %s\n", strings.Join(detail.Seats, ", ")))

	if len(detail.Concessions) > 0 {
		buf.WriteString("Concessions:\n")
		for _, c := range detail.Concessions {
			buf.WriteString(fmt.Sprintf("  %dx %s (%s)\n", c.Quantity, c.Name, shared.FormatVND(c.Price*int64(c.Quantity))))
		}
	}

	buf.WriteString(line + "\n")
	buf.WriteString(fmt.Sprintf("Total:        %s\n", shared.FormatVND(detail.TotalPrice)))
	buf.WriteString(fmt.Sprintf("Booked by:    %s\n", detail.CustomerInfo.FullName))
	buf.WriteString(line + "\n")

	return buf.Bytes()
}

// TicketToMarkdown renders a finalized booking as Markdown.
func TicketToMarkdown(detail *models.BookingDetail) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", detail.MovieTitle))
	buf.WriteString(fmt.Sprintf("**Confirmation**: `%s`\n\n", detail.ConfirmationCode))
	buf.WriteString(fmt.Sprintf("**Cinema**: %s, %s\n", detail.CinemaName, detail.RoomName))
	buf.WriteString(fmt.Sprintf("**Showtime**: %s\n", detail.ShowDateTime.Format(showTimeLayout)))
	buf.WriteString(fmt.Sprintf("**Seats**: %s\n\n", strings.Join(detail.Seats, ", ")))

	if len(detail.Concessions) > 0 {
		buf.WriteString("## Concessions\n\n")
		for _, c := range detail.Concessions {
			buf.WriteString(fmt.Sprintf("- %dx %s [%s]\n", c.Quantity, c.Name, shared.FormatVND(c.Price*int64(c.Quantity))))
		}
		buf.WriteString("\n")
	}

	buf.WriteString(fmt.Sprintf("**Total**: %s\n", shared.FormatVND(detail.TotalPrice)))
	buf.WriteString(fmt.Sprintf("**Booked by**: %s\n", detail.CustomerInfo.FullName))

	return buf.Bytes()
}

// WriteTicketFiles writes the ticket in the requested formats to dir, named
// by confirmation code. Returns the written paths.
func WriteTicketFiles(detail *models.BookingDetail, dir string, formats []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var paths []string
	for _, format := range formats {
		var (
			data []byte
			ext  string
		)
		switch strings.ToLower(format) {
		case "txt", "text":
			data, ext = TicketToText(detail), "txt"
		case "md", "markdown":
			data, ext = TicketToMarkdown(detail), "md"
		default:
			return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
		}

		path := filepath.Join(dir, fmt.Sprintf("ticket_%s.%s", detail.ConfirmationCode, ext))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
