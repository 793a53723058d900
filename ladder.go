package match

import "github.com/huandu/skiplist"

// priceLevel is one occupied price on one side: a FIFO queue of resting
// orders threaded through their intrusive next/prev pointers.
type priceLevel struct {
	price Price
	head  *Order
	tail  *Order
	count int
}

// pushBack appends order to the tail of the level, preserving arrival
// (time-priority) order.
func (l *priceLevel) pushBack(order *Order) {
	order.prev = l.tail
	order.next = nil
	if l.tail != nil {
		l.tail.next = order
	}
	l.tail = order
	if l.head == nil {
		l.head = order
	}
	l.count++
}

// unlink removes order from the level's linked list in O(1).
func (l *priceLevel) unlink(order *Order) {
	if order.prev != nil {
		order.prev.next = order.next
	} else {
		l.head = order.next
	}
	if order.next != nil {
		order.next.prev = order.prev
	} else {
		l.tail = order.prev
	}
	order.next = nil
	order.prev = nil
	l.count--
}

// sideLadder is a price-ordered skip list of priceLevels for one side, plus
// a map from price to skip list element so an emptied level can be removed
// from the skip list in O(log L) without a second descent.
type sideLadder struct {
	side      Side
	depthList *skiplist.SkipList
	byPrice   map[Price]*skiplist.Element
	orders    int
}

func priceLess(lhs, rhs any) int {
	a, _ := lhs.(Price)
	b, _ := rhs.(Price)
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	default:
		return 0
	}
}

func priceGreater(lhs, rhs any) int {
	a, _ := lhs.(Price)
	b, _ := rhs.(Price)
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// newBidLadder orders prices descending: best bid (highest price) first.
func newBidLadder() *sideLadder {
	return &sideLadder{
		side:      Buy,
		depthList: skiplist.New(skiplist.GreaterThanFunc(priceLess)),
		byPrice:   make(map[Price]*skiplist.Element),
	}
}

// newAskLadder orders prices ascending: best ask (lowest price) first.
func newAskLadder() *sideLadder {
	return &sideLadder{
		side:      Sell,
		depthList: skiplist.New(skiplist.GreaterThanFunc(priceGreater)),
		byPrice:   make(map[Price]*skiplist.Element),
	}
}

func (s *sideLadder) levelAt(price Price) *priceLevel {
	elem, ok := s.byPrice[price]
	if !ok {
		return nil
	}
	return elem.Value.(*priceLevel)
}

func (s *sideLadder) levelFor(price Price) *priceLevel {
	if level := s.levelAt(price); level != nil {
		return level
	}
	level := &priceLevel{price: price}
	elem := s.depthList.Set(price, level)
	s.byPrice[price] = elem
	return level
}

func (s *sideLadder) dropIfEmpty(level *priceLevel) {
	if level.count > 0 {
		return
	}
	elem, ok := s.byPrice[level.price]
	if !ok {
		return
	}
	s.depthList.RemoveElement(elem)
	delete(s.byPrice, level.price)
}

// best returns the front price level (best price for this side), or nil.
func (s *sideLadder) best() *priceLevel {
	elem := s.depthList.Front()
	if elem == nil {
		return nil
	}
	return elem.Value.(*priceLevel)
}

// worst returns the back price level (deepest price for this side), or nil.
// O(L); used only by Market order re-pegging.
func (s *sideLadder) worst() *priceLevel {
	elem := s.depthList.Front()
	if elem == nil {
		return nil
	}
	for elem.Next() != nil {
		elem = elem.Next()
	}
	return elem.Value.(*priceLevel)
}

// orderLocator lets CancelOrder and the matching loop erase a live order
// from its ladder in O(1) without re-descending the skip list.
type orderLocator struct {
	order *Order
	level *priceLevel
	side  *sideLadder
}

// ladder is the C4 component: two price-ordered skip lists (bids, asks)
// and an id index giving O(1) lookup and erase for any live order.
type ladder struct {
	bids  *sideLadder
	asks  *sideLadder
	index map[OrderID]*orderLocator
}

func newLadder() *ladder {
	return &ladder{
		bids:  newBidLadder(),
		asks:  newAskLadder(),
		index: make(map[OrderID]*orderLocator),
	}
}

func (l *ladder) sideOf(side Side) *sideLadder {
	if side == Buy {
		return l.bids
	}
	return l.asks
}

// Contains reports whether orderID is currently live.
func (l *ladder) Contains(orderID OrderID) bool {
	_, ok := l.index[orderID]
	return ok
}

// Lookup returns the live order for orderID, or nil.
func (l *ladder) Lookup(orderID OrderID) *Order {
	loc, ok := l.index[orderID]
	if !ok {
		return nil
	}
	return loc.order
}

// Insert appends order to the tail of its price level's FIFO queue,
// creating the level if this is the first order resting there.
func (l *ladder) Insert(order *Order) {
	side := l.sideOf(order.side)
	level := side.levelFor(order.price)
	level.pushBack(order)
	side.orders++
	l.index[order.orderID] = &orderLocator{order: order, level: level, side: side}
}

// Erase removes orderID from its ladder in O(1), dropping the price level
// if it becomes empty. It is a silent no-op if orderID is not live.
func (l *ladder) Erase(orderID OrderID) {
	loc, ok := l.index[orderID]
	if !ok {
		return
	}
	loc.level.unlink(loc.order)
	loc.side.orders--
	loc.side.dropIfEmpty(loc.level)
	delete(l.index, orderID)
}

// BestPrice returns the best price on side, and whether that side is
// non-empty.
func (l *ladder) BestPrice(side Side) (Price, bool) {
	level := l.sideOf(side).best()
	if level == nil {
		return 0, false
	}
	return level.price, true
}

// WorstPrice returns the deepest resting price on side, and whether that
// side is non-empty.
func (l *ladder) WorstPrice(side Side) (Price, bool) {
	level := l.sideOf(side).worst()
	if level == nil {
		return 0, false
	}
	return level.price, true
}

// PeekHead returns the order with time priority at the best price on side.
func (l *ladder) PeekHead(side Side) *Order {
	level := l.sideOf(side).best()
	if level == nil {
		return nil
	}
	return level.head
}

// Empty reports whether side has no resting orders.
func (l *ladder) Empty(side Side) bool {
	return l.sideOf(side).orders == 0
}

// Size returns the total number of live orders across both sides.
func (l *ladder) Size() int {
	return l.bids.orders + l.asks.orders
}

// Levels walks side in its native best-to-deep order, invoking fn with
// each occupied price. Stops early if fn returns false.
func (l *ladder) Levels(side Side, fn func(price Price) bool) {
	elem := l.sideOf(side).depthList.Front()
	for elem != nil {
		level := elem.Value.(*priceLevel)
		if !fn(level.price) {
			return
		}
		elem = elem.Next()
	}
}

// ForEachOrder visits every live order across both sides, in no
// particular order. It is used by the day-order reaper to find orders
// eligible for expiry.
func (l *ladder) ForEachOrder(fn func(*Order)) {
	for _, loc := range l.index {
		fn(loc.order)
	}
}
