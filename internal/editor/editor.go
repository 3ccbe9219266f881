// Package editor manages in-memory ordered lists of child items while they
// are being edited, before the full snapshot is submitted for persistence.
// The invariant held after every mutation: OrderIndex always equals the
// entry's current position, dense and zero-based.
package editor

import "github.com/google/uuid"

// Direction selects a neighbor for Move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Entry wraps a payload value with its editing identity and position.
type Entry[T any] struct {
	ID         string `json:"id"`
	OrderIndex int    `json:"orderIndex"`
	Value      T      `json:"value"`
}

// List is an ordered collection editor. One List serves every child
// collection type; the payload stays opaque.
type List[T any] struct {
	entries []Entry[T]
}

// NewList builds a List seeded with the given values in order.
func NewList[T any](values ...T) *List[T] {
	l := &List[T]{}
	for _, v := range values {
		l.Add(v)
	}
	return l
}

// Len returns the number of entries.
func (l *List[T]) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the current entries in display order.
func (l *List[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(l.entries))
	copy(out, l.entries)
	return out
}

// Add appends a value with a fresh client-side id and
// OrderIndex equal to the current length.
func (l *List[T]) Add(value T) Entry[T] {
	entry := Entry[T]{
		ID:         uuid.New().String(),
		OrderIndex: len(l.entries),
		Value:      value,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Remove deletes the entry with the given id and closes the gap.
// Returns false when no entry matches.
func (l *List[T]) Remove(id string) bool {
	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			l.reindex()
			return true
		}
	}
	return false
}

// Update applies mutate to the payload of the entry with the given id.
// Order is not affected. Returns false when no entry matches.
func (l *List[T]) Update(id string, mutate func(*T)) bool {
	for i := range l.entries {
		if l.entries[i].ID == id {
			mutate(&l.entries[i].Value)
			return true
		}
	}
	return false
}

// Move swaps the entry at index with its neighbor in the given direction.
// A move past either boundary is a no-op and returns false.
func (l *List[T]) Move(index int, dir Direction) bool {
	if index < 0 || index >= len(l.entries) {
		return false
	}

	target := index
	switch dir {
	case Up:
		target = index - 1
	case Down:
		target = index + 1
	default:
		return false
	}

	if target < 0 || target >= len(l.entries) {
		return false
	}

	l.entries[index], l.entries[target] = l.entries[target], l.entries[index]
	l.reindex()
	return true
}

func (l *List[T]) reindex() {
	for i := range l.entries {
		l.entries[i].OrderIndex = i
	}
}

// Reindex assigns dense zero-based positions to an arbitrary slice through
// the setter. Persistence code shares this with the interactive editor so
// both sides keep the same ordering invariant.
func Reindex[T any](items []T, set func(item *T, index int)) {
	for i := range items {
		set(&items[i], i)
	}
}
