package match

// LevelInfo is one aggregated price level in a depth snapshot.
type LevelInfo struct {
	Price    Price
	Quantity Quantity
}

// OrderbookLevelInfos is a consistent depth snapshot: bids in descending
// price order, asks in ascending price order.
type OrderbookLevelInfos struct {
	Bids []LevelInfo
	Asks []LevelInfo
}

// GetOrderInfos returns a consistent snapshot of aggregated depth on both
// sides, read under the engine lock. Each side is walked in its ladder's
// native order, with quantity taken from the level aggregate cache.
func (b *Orderbook) GetOrderInfos() *OrderbookLevelInfos {
	b.mu.Lock()
	defer b.mu.Unlock()

	return &OrderbookLevelInfos{
		Bids: b.snapshotSide(Buy),
		Asks: b.snapshotSide(Sell),
	}
}

func (b *Orderbook) snapshotSide(side Side) []LevelInfo {
	var infos []LevelInfo
	b.ladder.Levels(side, func(price Price) bool {
		quantity, _ := b.levels.quantityAt(price)
		infos = append(infos, LevelInfo{Price: price, Quantity: quantity})
		return true
	})
	return infos
}
