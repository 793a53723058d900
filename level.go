package match

import "github.com/igrmk/treemap/v2"

// levelAction describes how an UpdateLevelData call should mutate a level's
// aggregate quantity and order count.
type levelAction int

const (
	// levelAdd records a brand-new resting order joining a price level.
	levelAdd levelAction = iota
	// levelRemove records an order fully leaving a price level, whether
	// through cancellation or a fill that exhausts its remaining quantity.
	levelRemove
	// levelMatch records a partial fill that leaves the order resting.
	levelMatch
)

// levelInfo is the aggregate shadow kept for one occupied price, across
// whichever side currently occupies that price. The no-cross invariant
// guarantees a price is never resting on both sides at once, so a single
// price-keyed map safely serves both ladders.
type levelInfo struct {
	side     Side
	quantity Quantity
	count    int
}

// levelCache is the C3 aggregate cache: a shadow of both ladders' resting
// quantity and order count, keyed by price, backed by an ordered map so the
// depth snapshot (C6) can read it in ladder order without re-summing orders.
type levelCache struct {
	levels *treemap.TreeMap[Price, *levelInfo]
}

func newLevelCache() *levelCache {
	return &levelCache{
		levels: treemap.New[Price, *levelInfo](),
	}
}

// update applies action to the level at price, for side, creating the
// entry on levelAdd if absent and deleting it once its count reaches zero.
func (c *levelCache) update(side Side, price Price, quantity Quantity, action levelAction) {
	info, ok := c.levels.Get(price)
	if !ok {
		if action != levelAdd {
			return
		}
		info = &levelInfo{side: side}
		c.levels.Set(price, info)
	}

	switch action {
	case levelAdd:
		info.count++
		info.quantity += quantity
	case levelRemove:
		info.count--
		info.quantity -= quantity
	case levelMatch:
		info.quantity -= quantity
	}

	if info.count <= 0 {
		c.levels.Del(price)
	}
}

// quantityAt returns the cached aggregate quantity at price, and whether
// the level exists.
func (c *levelCache) quantityAt(price Price) (Quantity, bool) {
	info, ok := c.levels.Get(price)
	if !ok {
		return 0, false
	}
	return info.quantity, true
}
