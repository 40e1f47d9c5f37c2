// Package pager implements the paginated-collection state machine shared by
// every listing store: fetch a page, append on load-more, infer whether more
// pages exist from the returned page size, and roll the cursor back when a
// fetch fails.
package pager

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// FetchFunc fetches one page of items. pageIndex starts at 1.
type FetchFunc[T any] func(ctx context.Context, pageIndex, pageSize int) ([]T, error)

// List is a paginated collection of T backed by a remote listing endpoint.
//
// hasMore is inferred from the page size: a page shorter than pageSize is
// taken to be the last one. That assumes the server only returns a short
// page at the true end of the collection.
type List[T any] struct {
	mu       sync.Mutex
	fetch    FetchFunc[T]
	pageSize int
	logger   zerolog.Logger
	onChange func()

	items       []T
	page        int
	hasMore     bool
	loading     bool
	loadingMore bool
	lastErr     error

	// gen invalidates in-flight fetches: a response whose generation no
	// longer matches is discarded instead of overwriting newer state.
	gen uint64
}

// ListOption configures a List.
type ListOption[T any] func(*List[T])

// WithObserver registers a callback invoked after every state change.
func WithObserver[T any](fn func()) ListOption[T] {
	return func(l *List[T]) {
		l.onChange = fn
	}
}

// NewList creates a paginated list over the given fetch function.
func NewList[T any](pageSize int, fetch FetchFunc[T], logger zerolog.Logger, opts ...ListOption[T]) *List[T] {
	l := &List[T]{
		fetch:    fetch,
		pageSize: pageSize,
		logger:   logger,
		page:     1,
		hasMore:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFirst replaces the collection with page 1. Previous contents are
// dropped before the fetch starts, so a failure leaves the list empty with
// the error recorded.
func (l *List[T]) LoadFirst(ctx context.Context) error {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.loading = true
	l.page = 1
	l.items = nil
	l.hasMore = true
	l.lastErr = nil
	l.mu.Unlock()
	l.notify()

	items, err := l.fetch(ctx, 1, l.pageSize)

	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		l.logger.Debug().Msg("Discarding stale first-page response")
		return nil
	}
	l.loading = false
	if err != nil {
		l.lastErr = err
		l.mu.Unlock()
		l.notify()
		l.logger.Debug().Err(err).Msg("Failed to load first page")
		return err
	}
	l.items = items
	l.hasMore = len(items) == l.pageSize
	l.mu.Unlock()
	l.notify()
	return nil
}

// LoadMore appends the next page. It is a no-op while another load is in
// flight or when the last page has already been seen. The page cursor is
// advanced optimistically and rolled back if the fetch fails, leaving items
// exactly as they were.
func (l *List[T]) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if !l.hasMore || l.loading || l.loadingMore {
		l.mu.Unlock()
		return nil
	}
	l.loadingMore = true
	l.page++
	page := l.page
	gen := l.gen
	l.mu.Unlock()
	l.notify()

	items, err := l.fetch(ctx, page, l.pageSize)

	l.mu.Lock()
	// This goroutine owns loadingMore, so release it even when superseded;
	// only the state writes below are skipped on a stale generation.
	l.loadingMore = false
	if gen != l.gen {
		l.mu.Unlock()
		l.notify()
		l.logger.Debug().Int("page", page).Msg("Discarding stale load-more response")
		return nil
	}
	if err != nil {
		l.page--
		l.lastErr = err
		l.mu.Unlock()
		l.notify()
		l.logger.Debug().Err(err).Int("page", page).Msg("Failed to load more, cursor rolled back")
		return err
	}
	l.items = append(l.items, items...)
	l.hasMore = len(items) == l.pageSize
	l.mu.Unlock()
	l.notify()
	return nil
}

// Reset returns the list to its initial unloaded state and invalidates any
// fetch still in flight.
func (l *List[T]) Reset() {
	l.mu.Lock()
	l.gen++
	l.items = nil
	l.page = 1
	l.hasMore = true
	l.loading = false
	l.loadingMore = false
	l.lastErr = nil
	l.mu.Unlock()
	l.notify()
}

// Items returns a copy of the loaded items.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of loaded items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Page returns the current page cursor.
func (l *List[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// HasMore reports whether another page is believed to exist.
func (l *List[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// Loading reports whether a first-page load is in flight.
func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// LoadingMore reports whether a load-more fetch is in flight.
func (l *List[T]) LoadingMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadingMore
}

// Err returns the most recent load error, if any.
func (l *List[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

func (l *List[T]) notify() {
	if l.onChange != nil {
		l.onChange()
	}
}
