package listsync

// Change feed event kinds, matching the wire values the hub broadcasts.
const (
	EventInsert = "row_insert"
	EventUpdate = "row_update"
	EventDelete = "row_delete"
)

// Event is one row-change notification from the table's change feed.
type Event[T Row] struct {
	Kind string
	Row  T
}

// ApplyEvent merges a change-feed event into the collection. Inserts and
// updates are keyed by row id, so an event echoing our own optimistic
// write replaces the existing entry instead of duplicating it. Unknown
// kinds are ignored; a missed event is never recovered here, the next
// Load resynchronizes.
func (s *Store[T]) ApplyEvent(event Event[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event.Kind {
	case EventInsert, EventUpdate:
		s.insertLocked(event.Row)
	case EventDelete:
		pos, ok := s.index[event.Row.RowID()]
		if !ok {
			return
		}
		s.items = append(s.items[:pos], s.items[pos+1:]...)
		s.reindex()
	}
}
