package match

import (
	"sync"
	"time"
)

// Orderbook is a single-symbol, price-time priority limit order book. All
// public methods are safe for concurrent use: a single mutex serializes
// every mutation, including those made by the day-order reaper.
type Orderbook struct {
	mu sync.Mutex

	ladder *ladder
	levels *levelCache
	seq    eventSequencer

	events EventPublisher
	trades Trader

	reaper *reaper
}

// Option configures an Orderbook at construction time.
type Option func(*bookConfig)

type bookConfig struct {
	events EventPublisher
	trades Trader
	clock  Clock
	hour   int
	loc    *time.Location
}

// WithEventPublisher overrides the default discarding EventPublisher.
func WithEventPublisher(p EventPublisher) Option {
	return func(c *bookConfig) { c.events = p }
}

// WithTrader overrides the default discarding Trader.
func WithTrader(t Trader) Option {
	return func(c *bookConfig) { c.trades = t }
}

// WithClock overrides the default system Clock, for deterministic tests of
// the day-order reaper.
func WithClock(clock Clock) Option {
	return func(c *bookConfig) { c.clock = clock }
}

// WithDailyCutoff sets the local hour and time.Location at which
// GoodForDay orders are reaped. The default is 16:00 in time.Local.
func WithDailyCutoff(hour int, loc *time.Location) Option {
	return func(c *bookConfig) { c.hour = hour; c.loc = loc }
}

// NewOrderbook constructs an Orderbook and starts its day-order reaper.
// Callers must call Close when finished.
func NewOrderbook(opts ...Option) *Orderbook {
	cfg := &bookConfig{
		events: NewDiscardEventPublisher(),
		trades: NewDiscardTrader(),
		clock:  systemClock{},
		hour:   defaultCutoffHour,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	book := &Orderbook{
		ladder: newLadder(),
		levels: newLevelCache(),
		events: cfg.events,
		trades: cfg.trades,
	}
	book.reaper = newReaper(book, cfg.clock, cfg.hour, cfg.loc)
	book.reaper.start()
	return book
}

// Close stops the day-order reaper and releases background resources.
func (b *Orderbook) Close() {
	b.reaper.stop()
}

// Size returns the number of live orders across both sides.
func (b *Orderbook) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ladder.Size()
}

// AddOrder admits order according to its type's rule (see canMatch and
// canFullyFill), inserts it if admitted, and runs the matching loop.
// A rejected order produces no trades and is not inserted.
func (b *Orderbook) AddOrder(order *Order) Trades {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addOrderLocked(order)
}

func (b *Orderbook) addOrderLocked(order *Order) Trades {
	if b.ladder.Contains(order.orderID) {
		return nil
	}

	switch order.orderType {
	case Market:
		oppositeSide := opposite(order.side)
		worst, ok := b.ladder.WorstPrice(oppositeSide)
		if !ok {
			b.reject(order, RejectReasonNoLiquidity)
			return nil
		}
		order.ToGoodTillCancel(worst)

	case FillAndKill:
		if !b.canMatch(order.side, order.price) {
			b.reject(order, RejectReasonNoLiquidity)
			return nil
		}

	case FillOrKill:
		if !b.canFullyFill(order.side, order.price, order.remainingQuantity) {
			b.reject(order, RejectReasonInsufficientSize)
			return nil
		}
	}

	b.ladder.Insert(order)
	b.levels.update(order.side, order.price, order.initialQuantity, levelAdd)
	b.emit(EventOpen, order, RejectReasonNone)

	trades := b.matchOrders()

	if order.orderType == FillAndKill && b.ladder.Contains(order.orderID) {
		b.cancelOrderLocked(order.orderID)
	}

	return trades
}

// CancelOrder removes orderID from the book. It is a silent no-op if
// orderID is not live.
func (b *Orderbook) CancelOrder(orderID OrderID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelOrderLocked(orderID)
}

func (b *Orderbook) cancelOrderLocked(orderID OrderID) {
	order := b.ladder.Lookup(orderID)
	if order == nil {
		return
	}
	b.ladder.Erase(orderID)
	b.levels.update(order.side, order.price, order.remainingQuantity, levelRemove)
	b.emit(EventCancel, order, RejectReasonNone)
}

// ModifyOrder replaces a live order with a freshly admitted one built from
// req, inheriting the original's type. Cancel and re-add happen inside the
// same held lock, so the order loses time priority but the operation is
// atomic with respect to every other caller. A missing orderId is a
// silent no-op producing no trades.
func (b *Orderbook) ModifyOrder(req OrderModify) Trades {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing := b.ladder.Lookup(req.orderID)
	if existing == nil {
		return nil
	}

	orderType := existing.orderType
	b.cancelOrderLocked(req.orderID)
	return b.addOrderLocked(req.ToOrderPointer(orderType))
}

// matchOrders runs the crossing loop until the book is no longer crossed,
// emitting one Trade per match.
func (b *Orderbook) matchOrders() Trades {
	var trades Trades

	for {
		bidPrice, haveBid := b.ladder.BestPrice(Buy)
		askPrice, haveAsk := b.ladder.BestPrice(Sell)
		if !haveBid || !haveAsk || bidPrice < askPrice {
			break
		}

		bid := b.ladder.PeekHead(Buy)
		ask := b.ladder.PeekHead(Sell)

		quantity := bid.remainingQuantity
		if ask.remainingQuantity < quantity {
			quantity = ask.remainingQuantity
		}

		bid.Fill(quantity)
		ask.Fill(quantity)

		trades = append(trades, Trade{
			Bid: TradeInfo{OrderID: bid.orderID, Price: bid.price, Quantity: quantity},
			Ask: TradeInfo{OrderID: ask.orderID, Price: ask.price, Quantity: quantity},
		})

		b.settleLeg(bid, quantity)
		b.settleLeg(ask, quantity)
	}

	if len(trades) > 0 {
		ptrs := make([]*Trade, len(trades))
		for i := range trades {
			ptrs[i] = &trades[i]
		}
		b.trades.PublishTrades(ptrs...)
	}

	return trades
}

// settleLeg folds one side of a match into the ladder and level cache: if
// the order is now fully filled it is erased and reported as Remove,
// otherwise it keeps resting and is reported as Match.
func (b *Orderbook) settleLeg(order *Order, quantity Quantity) {
	if order.IsFilled() {
		b.ladder.Erase(order.orderID)
		b.levels.update(order.side, order.price, quantity, levelRemove)
	} else {
		b.levels.update(order.side, order.price, quantity, levelMatch)
	}
	b.emit(EventMatch, order, RejectReasonNone)
}

// canMatch reports whether an incoming order at price on side is
// marketable against the opposite side's best price.
func (b *Orderbook) canMatch(side Side, price Price) bool {
	opp := opposite(side)
	best, ok := b.ladder.BestPrice(opp)
	if !ok {
		return false
	}
	if side == Buy {
		return price >= best
	}
	return price <= best
}

// canFullyFill reports whether an incoming order at price on side could be
// matched in full against currently resting liquidity, walking the
// opposite ladder from best to deep and stopping as soon as a level is no
// longer marketable (every subsequent level is worse still).
func (b *Orderbook) canFullyFill(side Side, price Price, quantity Quantity) bool {
	opp := opposite(side)
	var available Quantity
	done := false

	b.ladder.Levels(opp, func(levelPrice Price) bool {
		marketable := levelPrice <= price
		if side == Sell {
			marketable = levelPrice >= price
		}
		if !marketable {
			return false
		}
		if qty, ok := b.levels.quantityAt(levelPrice); ok {
			available += qty
		}
		if available >= quantity {
			done = true
			return false
		}
		return true
	})

	return done
}

// goodForDayOrderIDs returns the ids of every live GoodForDay order, for
// the day-order reaper.
func (b *Orderbook) goodForDayOrderIDs() []OrderID {
	b.mu.Lock()
	defer b.mu.Unlock()

	var ids []OrderID
	b.ladder.ForEachOrder(func(o *Order) {
		if o.orderType == GoodForDay {
			ids = append(ids, o.orderID)
		}
	})
	return ids
}

// emit publishes an Event describing order's current state under typ.
func (b *Orderbook) emit(typ EventType, order *Order, reason RejectReason) {
	ev := acquireEvent()
	ev.SequenceID = b.seq.nextSequence()
	ev.LogID = newLogID()
	ev.Type = typ
	ev.Side = order.side
	ev.OrderType = order.orderType
	ev.Price = order.price
	ev.Quantity = order.remainingQuantity
	ev.OrderID = order.orderID
	ev.RejectReason = reason
	ev.CreatedAt = time.Now()

	b.events.Publish(ev)
	releaseEvent(ev)
}

func (b *Orderbook) reject(order *Order, reason RejectReason) {
	logger.Info("order rejected", "orderId", order.orderID, "side", order.side, "type", order.orderType, "reason", reason)
	b.emit(EventReject, order, reason)
}

func opposite(side Side) Side {
	if side == Buy {
		return Sell
	}
	return Buy
}
