package entry

import "time"

// Identified is anything a Bucket can hold.
type Identified interface {
	ID() string
}

type dayGroup[T Identified] struct {
	day     time.Time
	entries []T
	ids     map[string]bool
}

// Bucket groups items by calendar day. Days keep the order in which they were
// first added, and an item ID appears at most once per day.
type Bucket[T Identified] struct {
	days  []*dayGroup[T]
	index map[string]*dayGroup[T]
}

func NewBucket[T Identified]() *Bucket[T] {
	return &Bucket[T]{index: make(map[string]*dayGroup[T])}
}

// Add files item under the calendar day of at, in at's location. It reports
// false when the item was already present on that day.
func (b *Bucket[T]) Add(at time.Time, item T) bool {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	key := day.Format(time.DateOnly)

	g, ok := b.index[key]
	if !ok {
		g = &dayGroup[T]{day: day, ids: make(map[string]bool)}
		b.index[key] = g
		b.days = append(b.days, g)
	}
	if g.ids[item.ID()] {
		return false
	}
	g.ids[item.ID()] = true
	g.entries = append(g.entries, item)
	return true
}

// Days returns the day keys in insertion order.
func (b *Bucket[T]) Days() []time.Time {
	out := make([]time.Time, len(b.days))
	for i, g := range b.days {
		out[i] = g.day
	}
	return out
}

// EntriesOn returns the items for the day containing at, in insertion order.
func (b *Bucket[T]) EntriesOn(at time.Time) []T {
	g, ok := b.index[at.Format(time.DateOnly)]
	if !ok {
		return nil
	}
	return append([]T(nil), g.entries...)
}

// Len is the number of days.
func (b *Bucket[T]) Len() int {
	return len(b.days)
}

// Count is the number of items across all days.
func (b *Bucket[T]) Count() int {
	n := 0
	for _, g := range b.days {
		n += len(g.entries)
	}
	return n
}
