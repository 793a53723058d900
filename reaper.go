package match

import "time"

// Clock abstracts wall-clock access so the day-order reaper can be driven
// deterministically in tests instead of depending on real time.
type Clock interface {
	Now() time.Time
}

// systemClock is the default Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// dailyCutoff computes the next wall-clock instant, strictly after from,
// at which the configured cutoff hour elapses in loc.
func dailyCutoff(from time.Time, hour int, loc *time.Location) time.Time {
	local := from.In(loc)
	cutoff := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !cutoff.After(local) {
		cutoff = cutoff.AddDate(0, 0, 1)
	}
	return cutoff
}

// reaper cancels every live GoodForDay order once per trading day, at the
// engine's configured cutoff. It runs on its own goroutine, woken by a
// timer, and stops when shutdown is closed.
type reaper struct {
	book     *Orderbook
	clock    Clock
	hour     int
	loc      *time.Location
	shutdown chan struct{}
	done     chan struct{}
}

func newReaper(book *Orderbook, clock Clock, hour int, loc *time.Location) *reaper {
	return &reaper{
		book:     book,
		clock:    clock,
		hour:     hour,
		loc:      loc,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (r *reaper) start() {
	go r.run()
}

func (r *reaper) stop() {
	close(r.shutdown)
	<-r.done
}

func (r *reaper) run() {
	defer close(r.done)
	for {
		wait := dailyCutoff(r.clock.Now(), r.hour, r.loc).Sub(r.clock.Now()) + reaperGrace
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			r.sweep()
		case <-r.shutdown:
			timer.Stop()
			return
		}
	}
}

// sweep cancels every live GoodForDay order. It snapshots the ids under a
// brief lock, then cancels each one under a fresh lock, so the engine is
// never held locked across the whole batch.
func (r *reaper) sweep() {
	ids := r.book.goodForDayOrderIDs()
	if len(ids) == 0 {
		return
	}
	logger.Info("reaping good-for-day orders", "count", len(ids))
	for _, id := range ids {
		r.book.CancelOrder(id)
	}
}
