package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hbui/cinecli/internal/catalog"
	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/services"
)

// BrowseKind selects which catalog a [BrowseModel] shows.
type BrowseKind int

const (
	BrowseNowShowing BrowseKind = iota
	BrowseComingSoon
	BrowseTheaters
)

// BrowseModel is a read-only catalog browser. Selecting an entry quits and
// leaves the selection readable through [BrowseModel.SelectedID], so the
// calling command can print the id to feed into book or schedule.
type BrowseModel struct {
	ctx      context.Context
	svc      services.Service
	kind     BrowseKind
	cinemaID string

	width    int
	height   int
	spin     spinner.Model
	lst      list.Model
	loaded   bool
	selected string
	err      error
}

type catalogLoadedMsg struct {
	items []list.Item
	title string
	err   error
}

// NewBrowseModel creates a catalog browser. cinemaID optionally narrows
// movie kinds to one theater's schedule.
func NewBrowseModel(ctx context.Context, svc services.Service, kind BrowseKind, cinemaID string) *BrowseModel {
	spin := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.title))
	return &BrowseModel{ctx: ctx, svc: svc, kind: kind, cinemaID: cinemaID, spin: spin}
}

// SelectedID returns the id of the entry chosen with enter, or empty.
func (m *BrowseModel) SelectedID() string { return m.selected }

// Err returns the fetch error that ended the browser, if any.
func (m *BrowseModel) Err() error { return m.err }

func (m *BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCatalog())
}

func (m *BrowseModel) fetchCatalog() tea.Cmd {
	return func() tea.Msg {
		switch m.kind {
		case BrowseTheaters:
			pager := catalog.NewPager(m.svc.Theaters, 0, 0)
			theaters, err := pager.All(m.ctx)
			if err != nil {
				return catalogLoadedMsg{err: err}
			}
			items := make([]list.Item, len(theaters))
			for i, t := range theaters {
				items[i] = theaterItem{theater: t}
			}
			return catalogLoadedMsg{items: items, title: "Theaters"}

		default:
			return m.movieCatalog()
		}
	}
}

func (m *BrowseModel) movieCatalog() catalogLoadedMsg {
	fetchFn, title := m.svc.NowShowing, "Now Showing"
	if m.kind == BrowseComingSoon {
		fetchFn, title = m.svc.ComingSoon, "Coming Soon"
	}

	pager := catalog.NewPager(func(ctx context.Context, q services.PageQuery) (*models.Page[models.Movie], error) {
		q.CinemaID = m.cinemaID
		return fetchFn(ctx, q)
	}, 0, 0)

	movies, err := pager.All(m.ctx)
	if err != nil {
		return catalogLoadedMsg{err: err}
	}
	items := make([]list.Item, len(movies))
	for i, mv := range movies {
		items[i] = movieItem{movie: mv}
	}
	return catalogLoadedMsg{items: items, title: title}
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.loaded {
			m.lst.SetSize(msg.Width-4, msg.Height-4)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.loaded {
				switch item := m.lst.SelectedItem().(type) {
				case movieItem:
					m.selected = item.movie.ID
				case theaterItem:
					m.selected = item.theater.ID
				}
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.lst = list.New(msg.items, list.NewDefaultDelegate(), 0, 0)
		m.lst.Title = msg.title
		if m.width > 0 {
			m.lst.SetSize(m.width-4, m.height-4)
		}
		m.loaded = true
		return m, nil
	}

	if m.loaded {
		var cmd tea.Cmd
		m.lst, cmd = m.lst.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BrowseModel) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}
	if !m.loaded {
		return m.spin.View() + " Loading...\n"
	}
	return m.lst.View() + "\n" + styles.help.Render("enter pick • q quit")
}
