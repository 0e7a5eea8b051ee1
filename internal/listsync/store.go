// Package listsync implements the list pattern every feature screen
// shares: load all rows, mutate optimistically, reconcile with the remote
// result, and merge change-feed events by row id.
package listsync

import (
	"context"
	"errors"
	"sync"
)

// Row is a remotely persisted record with a server-assigned id. A zero id
// marks a row that has not been written yet.
type Row interface {
	RowID() int
}

// Backend is the remote store for one table. Implementations are expected
// to honor ctx cancellation so a torn-down view cannot mutate state late.
type Backend[T Row] interface {
	Load(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id int) error
}

var ErrValidation = errors.New("required field is empty")

// Options tune per-feature behavior of a Store.
type Options[T Row] struct {
	// PrependOnCreate puts new rows at the front (newest-first lists).
	// Chat-style lists leave it false and append.
	PrependOnCreate bool

	// Validate rejects a create locally before any remote call. Nil means
	// every item is acceptable.
	Validate func(T) error
}

// Store keeps a local, invalidatable cache of one table's rows. The
// remote store is always the source of truth; local mutations are
// tentative until the remote call's result is known and are reverted on
// failure.
type Store[T Row] struct {
	mu      sync.Mutex
	backend Backend[T]
	opts    Options[T]
	items   []T
	index   map[int]int // row id -> position in items
}

func NewStore[T Row](backend Backend[T], opts Options[T]) *Store[T] {
	return &Store[T]{
		backend: backend,
		opts:    opts,
		index:   make(map[int]int),
	}
}

// Load replaces the collection wholesale with the remote rows, in the
// fetch's order. On error the collection keeps its previous contents.
func (s *Store[T]) Load(ctx context.Context) error {
	rows, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = rows
	s.reindex()
	return nil
}

// Items returns a snapshot of the collection in display order.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]T, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// Len reports the current collection size.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the row with the given id if present.
func (s *Store[T]) Get(id int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	pos, ok := s.index[id]
	if !ok {
		return zero, false
	}
	return s.items[pos], true
}

// Create validates locally, then inserts remotely and merges the returned
// row (carrying the server-assigned id) into the collection. Nothing
// changes locally until the remote insert succeeds, so a failed create
// leaves the form populated and the list untouched.
func (s *Store[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if s.opts.Validate != nil {
		if err := s.opts.Validate(item); err != nil {
			return zero, err
		}
	}

	created, err := s.backend.Create(ctx, item)
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(created)
	return created, nil
}

// Update applies the mutation locally first, then issues the remote
// update. If the remote write fails, the previous row is restored.
func (s *Store[T]) Update(ctx context.Context, item T) error {
	s.mu.Lock()
	pos, ok := s.index[item.RowID()]
	if !ok {
		s.mu.Unlock()
		return errors.New("row not in collection")
	}
	previous := s.items[pos]
	s.items[pos] = item
	s.mu.Unlock()

	updated, err := s.backend.Update(ctx, item)
	if err != nil {
		s.mu.Lock()
		if pos, ok := s.index[item.RowID()]; ok {
			s.items[pos] = previous
		}
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if pos, ok := s.index[updated.RowID()]; ok {
		s.items[pos] = updated
	}
	s.mu.Unlock()
	return nil
}

// Delete removes the row locally before the remote delete is issued, so
// the target id is gone from the collection regardless of whether the
// remote call has completed. If the remote delete fails the row is put
// back at its old position.
func (s *Store[T]) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	removed := s.items[pos]
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	s.reindex()
	s.mu.Unlock()

	if err := s.backend.Delete(ctx, id); err != nil {
		s.mu.Lock()
		if pos > len(s.items) {
			pos = len(s.items)
		}
		s.items = append(s.items[:pos], append([]T{removed}, s.items[pos:]...)...)
		s.reindex()
		s.mu.Unlock()
		return err
	}
	return nil
}

// insertLocked merges a row into the collection, deduplicating by id: an
// echoed change-feed event and our own write can both deliver the same
// logical row.
func (s *Store[T]) insertLocked(item T) {
	if pos, ok := s.index[item.RowID()]; ok {
		s.items[pos] = item
		return
	}
	if s.opts.PrependOnCreate {
		s.items = append([]T{item}, s.items...)
	} else {
		s.items = append(s.items, item)
	}
	s.reindex()
}

func (s *Store[T]) reindex() {
	s.index = make(map[int]int, len(s.items))
	for i, item := range s.items {
		s.index[item.RowID()] = i
	}
}
