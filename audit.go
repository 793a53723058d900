package match

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
)

// EventType identifies what kind of state change (or rejection) an Event
// records. Open, Match, Cancel and Amend affect book state; Reject does
// not.
type EventType string

const (
	EventOpen   EventType = "open"
	EventMatch  EventType = "match"
	EventCancel EventType = "cancel"
	EventAmend  EventType = "amend"
	EventReject EventType = "reject"
)

// RejectReason explains why an Event of type EventReject carries no trades.
type RejectReason string

const (
	RejectReasonNone             RejectReason = ""
	RejectReasonNoLiquidity      RejectReason = "no_liquidity"
	RejectReasonInsufficientSize RejectReason = "insufficient_size"
)

// Event is an audit record for a single state-affecting or state-rejecting
// operation. SequenceID is a globally increasing per-engine counter used
// for ordering and gap detection by downstream consumers.
type Event struct {
	SequenceID   uint64
	LogID        string
	Type         EventType
	Side         Side
	OrderType    OrderType
	Price        Price
	Quantity     Quantity
	OrderID      OrderID
	RejectReason RejectReason
	CreatedAt    time.Time
}

var eventPool = sync.Pool{
	New: func() interface{} {
		return new(Event)
	},
}

func acquireEvent() *Event {
	return eventPool.Get().(*Event)
}

// releaseEvent resets ev to its zero value and returns it to the pool.
// Callers must not retain ev past this call.
func releaseEvent(ev *Event) {
	*ev = Event{}
	eventPool.Put(ev)
}

// EventPublisher receives Events as the engine produces them.
//
// Implementations must either process events synchronously before
// returning, or clone them first: the caller recycles Events to a
// sync.Pool once Publish returns, so any asynchronous processing must
// work from a copy.
type EventPublisher interface {
	Publish(...*Event)
}

// MemoryEventPublisher stores a clone of every published Event, useful for
// tests.
type MemoryEventPublisher struct {
	mu     sync.RWMutex
	events []*Event
}

func NewMemoryEventPublisher() *MemoryEventPublisher {
	return &MemoryEventPublisher{events: make([]*Event, 0)}
}

func (m *MemoryEventPublisher) Publish(events ...*Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range events {
		cpy := new(Event)
		*cpy = *ev
		m.events = append(m.events, cpy)
	}
}

func (m *MemoryEventPublisher) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

func (m *MemoryEventPublisher) Get(index int) *Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.events[index]
}

// Events returns a new slice of every Event stored so far. The slice is a
// copy; the Events it points to are the stored ones, not copies.
func (m *MemoryEventPublisher) Events() []*Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Event, len(m.events))
	copy(out, m.events)
	return out
}

// DiscardEventPublisher drops every Event. It is the default publisher.
type DiscardEventPublisher struct{}

func NewDiscardEventPublisher() *DiscardEventPublisher { return &DiscardEventPublisher{} }

func (p *DiscardEventPublisher) Publish(...*Event) {}

// TradeInfo is one leg (bid or ask) of a Trade: the resting or aggressing
// order's id, the price it traded at, and the quantity exchanged.
type TradeInfo struct {
	OrderID  OrderID
	Price    Price
	Quantity Quantity
}

// Trade pairs the bid and ask legs of a single match. Both legs carry the
// same Quantity.
type Trade struct {
	Bid TradeInfo
	Ask TradeInfo
}

// Trades is the result of any operation that may generate matches.
type Trades []Trade

// Trader receives completed Trades as the engine produces them.
type Trader interface {
	PublishTrades(...*Trade)
}

// MemoryTrader stores every published Trade, useful for tests.
type MemoryTrader struct {
	mu     sync.RWMutex
	trades []*Trade
}

func NewMemoryTrader() *MemoryTrader {
	return &MemoryTrader{trades: make([]*Trade, 0)}
}

func (m *MemoryTrader) PublishTrades(trades ...*Trade) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append(m.trades, trades...)
}

func (m *MemoryTrader) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trades)
}

func (m *MemoryTrader) Get(index int) *Trade {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trades[index]
}

// DiscardTrader drops every Trade. It is the default trader.
type DiscardTrader struct{}

func NewDiscardTrader() *DiscardTrader { return &DiscardTrader{} }

func (p *DiscardTrader) PublishTrades(...*Trade) {}

// eventSequencer hands out the monotonically increasing SequenceID carried
// by every Event an Orderbook instance produces.
type eventSequencer struct {
	next atomic.Uint64
}

func (s *eventSequencer) nextSequence() uint64 {
	return s.next.Add(1)
}

// newLogID returns a globally unique identifier for one Event, independent
// of SequenceID (which is only unique within a single engine instance).
func newLogID() string {
	return xid.New().String()
}
