package publish

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// placeholderPrefix marks ids generated for staged creates.
const placeholderPrefix = "new-"

// Queue holds at most one pending change per (id, type).
type Queue struct {
	mu      sync.Mutex
	changes []Change
	now     func() time.Time
}

// NewQueue returns a queue seeded with changes, deduplicated in order.
func NewQueue(changes ...Change) *Queue {
	q := &Queue{now: time.Now}
	for _, change := range changes {
		q.Add(change)
	}
	return q
}

// Add stages a change. An existing change for the same entity is dropped and
// the new one is appended at the end. A create without an id gets a
// placeholder id so that separate creates never replace each other.
func (q *Queue) Add(change Change) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if change.Timestamp.IsZero() {
		change.Timestamp = q.now()
	}
	if change.Action == ActionCreate && change.ID == "" {
		change.ID = placeholderPrefix + uuid.NewString()
	}

	key := change.key()
	kept := q.changes[:0]
	for _, existing := range q.changes {
		if existing.key() != key {
			kept = append(kept, existing)
		}
	}
	q.changes = append(kept, change)
}

// Changes returns a copy of the pending changes in publish order.
func (q *Queue) Changes() []Change {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Change, len(q.changes))
	copy(out, q.changes)
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.changes)
}

// HasChanges reports whether anything is waiting to be published.
func (q *Queue) HasChanges() bool {
	return q.Len() > 0
}

// Discard drops every pending change.
func (q *Queue) Discard() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.changes = nil
}
