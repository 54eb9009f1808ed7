package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/shared"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = theaterItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := fmt.Sprintf("%d min", i.movie.Duration)
	if i.movie.AgeRating != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.AgeRating)
	}
	return desc
}

// theaterItem wraps [models.Theater] to implement [list.Item].
type theaterItem struct {
	theater models.Theater
	km      float64
}

func (i theaterItem) FilterValue() string { return i.theater.Name }
func (i theaterItem) Title() string       { return i.theater.Name }
func (i theaterItem) Description() string {
	desc := i.theater.Address
	if i.theater.City != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.theater.City)
	}
	if i.km > 0 {
		desc = fmt.Sprintf("%s • %s away", desc, shared.FormatKm(i.km))
	}
	return desc
}
