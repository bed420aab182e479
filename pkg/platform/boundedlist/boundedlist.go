// Package boundedlist provides a fixed-ceiling append-only list used for the
// per-key secondary indexes (proofs per owner, credentials per refugee,
// enrollments per course and per refugee). Exceeding the ceiling is a hard
// failure of the originating operation, never silent truncation.
package boundedlist

import (
	"fmt"

	dErrors "haven/pkg/domain-errors"
)

// List holds up to cap elements in insertion order.
type List[T any] struct {
	items   []T
	ceiling int
}

// New creates an empty list with the given ceiling. Ceiling must be positive.
func New[T any](ceiling int) *List[T] {
	if ceiling <= 0 {
		panic(fmt.Sprintf("boundedlist: non-positive ceiling %d", ceiling))
	}
	return &List[T]{ceiling: ceiling}
}

// Append adds v to the end of the list, or returns a capacity error when the
// list is already at its ceiling. The ceiling is checked before any mutation.
func (l *List[T]) Append(v T) error {
	if l.Full() {
		return dErrors.New(dErrors.CodeCapacityExceeded,
			fmt.Sprintf("index full: ceiling of %d entries reached", l.ceiling))
	}
	l.items = append(l.items, v)
	return nil
}

// Full reports whether another Append would fail. Callers that must not
// partially mutate state check Full before touching any other index.
func (l *List[T]) Full() bool {
	return l != nil && len(l.items) >= l.ceiling
}

// Items returns a copy of the elements in insertion order.
func (l *List[T]) Items() []T {
	if l == nil {
		return nil
	}
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of elements currently held.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Ceiling returns the maximum number of elements the list accepts.
func (l *List[T]) Ceiling() int { return l.ceiling }
