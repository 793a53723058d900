package match

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock always returns the same instant (08:00 UTC on a fixed day),
// hours away from the next daily cutoff, so the reaper's first wakeup never
// fires during a fast-running test that does not care about expiry behavior.
type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
}

// manualClock lets a test drive the reaper's wakeups deterministically.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock(start time.Time) *manualClock {
	return &manualClock{now: start}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func TestDailyCutoffRollsToNextDayOncePast(t *testing.T) {
	loc := time.UTC
	from := time.Date(2026, 1, 1, 17, 0, 0, 0, loc)

	cutoff := dailyCutoff(from, 16, loc)

	assert.Equal(t, time.Date(2026, 1, 2, 16, 0, 0, 0, loc), cutoff)
}

func TestDailyCutoffSameDayWhenBefore(t *testing.T) {
	loc := time.UTC
	from := time.Date(2026, 1, 1, 9, 0, 0, 0, loc)

	cutoff := dailyCutoff(from, 16, loc)

	assert.Equal(t, time.Date(2026, 1, 1, 16, 0, 0, 0, loc), cutoff)
}

func TestReaperCancelsGoodForDayOrdersAtCutoff(t *testing.T) {
	// The reaper computes its first wakeup wait from the clock's value at
	// Orderbook construction time; starting 100 milliseconds before the
	// cutoff keeps this test fast without needing to fake the timer itself.
	clock := newManualClock(time.Date(2026, 1, 1, 15, 59, 59, 900_000_000, time.UTC))
	book := NewOrderbook(WithClock(clock), WithDailyCutoff(16, time.UTC))
	defer book.Close()

	book.AddOrder(NewOrder(GoodForDay, 1, Buy, 100, 5))
	book.AddOrder(NewOrder(GoodTillCancel, 2, Buy, 99, 5))

	require.Equal(t, 2, book.Size())

	assert.Eventually(t, func() bool {
		return book.Size() == 1
	}, 2*time.Second, 5*time.Millisecond)

	assert.False(t, book.ladder.Contains(1))
	assert.True(t, book.ladder.Contains(2))
}

func TestOrderbookCloseStopsReaper(t *testing.T) {
	book := NewOrderbook(WithClock(fixedClock{}))
	book.Close()
}
