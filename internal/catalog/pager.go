package catalog

import (
	"context"
	"fmt"

	"github.com/hbui/cinecli/internal/models"
	"github.com/hbui/cinecli/internal/services"
)

const (
	// DefaultWindowSize is how many items one display page shows.
	DefaultWindowSize = 4
	// DefaultBatchSize is how many items each backend fetch requests.
	DefaultBatchSize = 150
)

// FetchFunc loads one backend page of a collection.
type FetchFunc[T any] func(ctx context.Context, q services.PageQuery) (*models.Page[T], error)

// Pager slices a server-paged collection into small display windows,
// buffering backend batches and fetching the next batch only when the
// window cursor walks past what is buffered. Backend pages are never
// re-fetched; the buffer only grows.
type Pager[T any] struct {
	fetch      FetchFunc[T]
	windowSize int
	batchSize  int

	buffer     []T
	nextBatch  int
	totalPages int // -1 until the first fetch reports it
	window     int
}

// NewPager builds a pager over fetch. Non-positive sizes fall back to the
// defaults.
func NewPager[T any](fetch FetchFunc[T], windowSize, batchSize int) *Pager[T] {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Pager[T]{
		fetch:      fetch,
		windowSize: windowSize,
		batchSize:  batchSize,
		totalPages: -1,
	}
}

// Window returns the current zero-based window index.
func (p *Pager[T]) Window() int { return p.window }

// Buffered returns how many items have been fetched so far.
func (p *Pager[T]) Buffered() int { return len(p.buffer) }

// exhausted reports whether every backend page has been consumed.
func (p *Pager[T]) exhausted() bool {
	return p.totalPages >= 0 && p.nextBatch >= p.totalPages
}

// ensure fetches backend batches until the buffer covers the item index, or
// the backend runs out of pages.
func (p *Pager[T]) ensure(ctx context.Context, index int) error {
	for len(p.buffer) <= index && !p.exhausted() {
		page, err := p.fetch(ctx, services.PageQuery{Page: p.nextBatch, Size: p.batchSize})
		if err != nil {
			return fmt.Errorf("fetching page %d: %w", p.nextBatch, err)
		}
		p.buffer = append(p.buffer, page.Content...)
		p.totalPages = page.TotalPages
		p.nextBatch++
		if len(page.Content) == 0 {
			break
		}
	}
	return nil
}

func (p *Pager[T]) slice() []T {
	start := p.window * p.windowSize
	if start >= len(p.buffer) {
		return nil
	}
	end := start + p.windowSize
	if end > len(p.buffer) {
		end = len(p.buffer)
	}
	return p.buffer[start:end]
}

// Current returns the items of the current window, fetching whatever batches
// are needed to cover it. A window spanning two backend batches fetches both.
func (p *Pager[T]) Current(ctx context.Context) ([]T, error) {
	if err := p.ensure(ctx, (p.window+1)*p.windowSize-1); err != nil {
		return nil, err
	}
	return p.slice(), nil
}

// HasNext reports whether another window exists, either in the buffer or
// still unfetched on the backend.
func (p *Pager[T]) HasNext() bool {
	if (p.window+1)*p.windowSize < len(p.buffer) {
		return true
	}
	return !p.exhausted()
}

// HasPrev reports whether the cursor can move back.
func (p *Pager[T]) HasPrev() bool { return p.window > 0 }

// Next advances the window, fetching the next backend batch when the cursor
// walks past the buffer. At the end of the collection the window stays put.
func (p *Pager[T]) Next(ctx context.Context) ([]T, error) {
	if !p.HasNext() {
		return p.Current(ctx)
	}
	p.window++
	items, err := p.Current(ctx)
	if err != nil {
		p.window--
		return nil, err
	}
	if len(items) == 0 {
		// the backend promised more pages than it delivered
		p.window--
		return p.Current(ctx)
	}
	return items, nil
}

// Prev moves the window back. At the start it stays put.
func (p *Pager[T]) Prev(ctx context.Context) ([]T, error) {
	if p.window > 0 {
		p.window--
	}
	return p.Current(ctx)
}

// All drains the entire collection. Intended for one-shot listings where
// windowing is not wanted.
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	for !p.exhausted() {
		before := len(p.buffer)
		if err := p.ensure(ctx, len(p.buffer)); err != nil {
			return nil, err
		}
		if len(p.buffer) == before {
			break
		}
	}
	return p.buffer, nil
}
