package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type item string

func (i item) ID() string { return string(i) }

func TestBucketGroupsByDayInInsertionOrder(t *testing.T) {
	b := NewBucket[item]()
	d1 := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)

	assert.True(t, b.Add(d1, "a"))
	assert.True(t, b.Add(d1.Add(-time.Hour), "b"))
	assert.True(t, b.Add(d2, "c"))

	days := b.Days()
	assert.Len(t, days, 2)
	assert.Equal(t, "2024-03-10", days[0].Format(time.DateOnly))
	assert.Equal(t, "2024-03-09", days[1].Format(time.DateOnly))
	assert.Equal(t, []item{"a", "b"}, b.EntriesOn(d1))
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 3, b.Count())
}

func TestBucketDeduplicatesByID(t *testing.T) {
	b := NewBucket[item]()
	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.True(t, b.Add(day, "a"))
	assert.False(t, b.Add(day.Add(time.Hour), "a"))
	assert.Equal(t, 1, b.Count())
}

func TestBucketUsesLocationOfTimestamp(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	b := NewBucket[item]()
	utcLate := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	b.Add(utcLate.In(tokyo), "a")

	assert.Equal(t, "2024-03-11", b.Days()[0].Format(time.DateOnly))
	assert.Nil(t, b.EntriesOn(time.Date(2024, 3, 10, 0, 0, 0, 0, tokyo)))
}

func TestEmptyBucket(t *testing.T) {
	b := NewBucket[item]()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Count())
	assert.Empty(t, b.Days())
}
