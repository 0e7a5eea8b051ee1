package listsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   int
	Text string
	Done bool
}

func (n note) RowID() int { return n.ID }

type fakeBackend struct {
	mu          sync.Mutex
	rows        []note
	nextID      int
	createCalls int
	failCreate  bool
	failUpdate  bool
	failDelete  bool
	deleteGate  chan struct{}
}

func newFakeBackend(rows ...note) *fakeBackend {
	nextID := 1
	for _, r := range rows {
		if r.ID >= nextID {
			nextID = r.ID + 1
		}
	}
	return &fakeBackend{rows: rows, nextID: nextID}
}

func (b *fakeBackend) Load(ctx context.Context) ([]note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]note, len(b.rows))
	copy(out, b.rows)
	return out, nil
}

func (b *fakeBackend) Create(ctx context.Context, item note) (note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.createCalls++
	if b.failCreate {
		return note{}, errors.New("insert failed")
	}
	item.ID = b.nextID
	b.nextID++
	b.rows = append(b.rows, item)
	return item, nil
}

func (b *fakeBackend) Update(ctx context.Context, item note) (note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failUpdate {
		return note{}, errors.New("update failed")
	}
	for i, r := range b.rows {
		if r.ID == item.ID {
			b.rows[i] = item
		}
	}
	return item, nil
}

func (b *fakeBackend) Delete(ctx context.Context, id int) error {
	if b.deleteGate != nil {
		<-b.deleteGate
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failDelete {
		return errors.New("delete failed")
	}
	for i, r := range b.rows {
		if r.ID == id {
			b.rows = append(b.rows[:i], b.rows[i+1:]...)
			break
		}
	}
	return nil
}

func requireText(item note) error {
	if item.Text == "" {
		return ErrValidation
	}
	return nil
}

func TestLoadReplacesCollectionInFetchOrder(t *testing.T) {
	backend := newFakeBackend(
		note{ID: 3, Text: "third"},
		note{ID: 1, Text: "first"},
		note{ID: 2, Text: "second"},
	)
	store := NewStore[note](backend, Options[note]{})

	require.NoError(t, store.Load(context.Background()))

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{items[0].ID, items[1].ID, items[2].ID})
}

func TestCreateEmptyRequiredFieldIsLocalNoop(t *testing.T) {
	backend := newFakeBackend(note{ID: 1, Text: "existing"})
	store := NewStore[note](backend, Options[note]{Validate: requireText})
	require.NoError(t, store.Load(context.Background()))

	_, err := store.Create(context.Background(), note{Text: ""})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, backend.createCalls, "no write call must be issued")
	assert.Equal(t, 1, store.Len(), "collection must not change")
}

func TestCreateCarriesServerAssignedID(t *testing.T) {
	backend := newFakeBackend(note{ID: 5, Text: "old"})
	store := NewStore[note](backend, Options[note]{PrependOnCreate: true, Validate: requireText})
	require.NoError(t, store.Load(context.Background()))

	created, err := store.Create(context.Background(), note{Text: "new"})

	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)
	assert.Equal(t, 2, store.Len())
	items := store.Items()
	assert.Equal(t, "new", items[0].Text, "new row is prepended")
}

func TestCreateFailureLeavesCollectionUntouched(t *testing.T) {
	backend := newFakeBackend(note{ID: 1, Text: "existing"})
	backend.failCreate = true
	store := NewStore[note](backend, Options[note]{Validate: requireText})
	require.NoError(t, store.Load(context.Background()))

	_, err := store.Create(context.Background(), note{Text: "doomed"})

	assert.Error(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestDeleteRemovesBeforeRemoteCompletes(t *testing.T) {
	backend := newFakeBackend(note{ID: 1, Text: "keep"}, note{ID: 2, Text: "drop"})
	backend.deleteGate = make(chan struct{})
	store := NewStore[note](backend, Options[note]{})
	require.NoError(t, store.Load(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- store.Delete(context.Background(), 2)
	}()

	assert.Eventually(t, func() bool {
		_, ok := store.Get(2)
		return !ok
	}, time.Second, 5*time.Millisecond, "row must vanish before the remote delete returns")

	close(backend.deleteGate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, store.Len())
}

func TestDeleteFailureRestoresRowAtPosition(t *testing.T) {
	backend := newFakeBackend(
		note{ID: 1, Text: "a"},
		note{ID: 2, Text: "b"},
		note{ID: 3, Text: "c"},
	)
	backend.failDelete = true
	store := NewStore[note](backend, Options[note]{})
	require.NoError(t, store.Load(context.Background()))

	err := store.Delete(context.Background(), 2)

	assert.Error(t, err)
	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 2, items[1].ID, "rolled-back row returns to its old position")
}

func TestToggleTwiceRestoresOriginalFlag(t *testing.T) {
	backend := newFakeBackend(
		note{ID: 1, Text: "a", Done: false},
		note{ID: 2, Text: "b", Done: true},
	)
	store := NewStore[note](backend, Options[note]{})
	require.NoError(t, store.Load(context.Background()))

	item, _ := store.Get(1)
	item.Done = !item.Done
	require.NoError(t, store.Update(context.Background(), item))

	item, _ = store.Get(1)
	item.Done = !item.Done
	require.NoError(t, store.Update(context.Background(), item))

	first, _ := store.Get(1)
	second, _ := store.Get(2)
	assert.False(t, first.Done, "double toggle returns to original value")
	assert.True(t, second.Done, "no other item's flag changes")
}

func TestUpdateFailureRevertsTentativeMutation(t *testing.T) {
	backend := newFakeBackend(note{ID: 1, Text: "a", Done: false})
	backend.failUpdate = true
	store := NewStore[note](backend, Options[note]{})
	require.NoError(t, store.Load(context.Background()))

	item, _ := store.Get(1)
	item.Done = true
	err := store.Update(context.Background(), item)

	assert.Error(t, err)
	reverted, _ := store.Get(1)
	assert.False(t, reverted.Done)
}

func TestApplyEventDeduplicatesEchoedInsert(t *testing.T) {
	backend := newFakeBackend()
	store := NewStore[note](backend, Options[note]{Validate: requireText})

	created, err := store.Create(context.Background(), note{Text: "hi"})
	require.NoError(t, err)

	// The change feed echoes our own insert back at us
	store.ApplyEvent(Event[note]{Kind: EventInsert, Row: created})

	assert.Equal(t, 1, store.Len(), "echoed insert must not duplicate the row")
}

func TestApplyEventInsertAppendsInArrivalOrder(t *testing.T) {
	store := NewStore[note](newFakeBackend(), Options[note]{})

	store.ApplyEvent(Event[note]{Kind: EventInsert, Row: note{ID: 1, Text: "first"}})
	store.ApplyEvent(Event[note]{Kind: EventInsert, Row: note{ID: 2, Text: "second"}})

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Text)
	assert.Equal(t, "second", items[1].Text)
}

func TestApplyEventDeleteRemovesRow(t *testing.T) {
	backend := newFakeBackend(note{ID: 1}, note{ID: 2})
	store := NewStore[note](backend, Options[note]{})
	require.NoError(t, store.Load(context.Background()))

	store.ApplyEvent(Event[note]{Kind: EventDelete, Row: note{ID: 1}})

	assert.Equal(t, 1, store.Len())
	_, ok := store.Get(1)
	assert.False(t, ok)
}
