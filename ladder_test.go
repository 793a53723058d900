package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLadderBestPriceOrdering(t *testing.T) {
	l := newLadder()

	l.Insert(NewOrder(GoodTillCancel, 1, Buy, 100, 5))
	l.Insert(NewOrder(GoodTillCancel, 2, Buy, 105, 5))
	l.Insert(NewOrder(GoodTillCancel, 3, Buy, 95, 5))

	price, ok := l.BestPrice(Buy)
	assert.True(t, ok)
	assert.Equal(t, Price(105), price)

	worst, ok := l.WorstPrice(Buy)
	assert.True(t, ok)
	assert.Equal(t, Price(95), worst)

	l.Insert(NewOrder(GoodTillCancel, 4, Sell, 110, 5))
	l.Insert(NewOrder(GoodTillCancel, 5, Sell, 108, 5))

	price, ok = l.BestPrice(Sell)
	assert.True(t, ok)
	assert.Equal(t, Price(108), price)
}

func TestLadderFIFOWithinLevel(t *testing.T) {
	l := newLadder()

	l.Insert(NewOrder(GoodTillCancel, 1, Buy, 100, 5))
	l.Insert(NewOrder(GoodTillCancel, 2, Buy, 100, 5))
	l.Insert(NewOrder(GoodTillCancel, 3, Buy, 100, 5))

	assert.Equal(t, OrderID(1), l.PeekHead(Buy).OrderID())

	l.Erase(1)
	assert.Equal(t, OrderID(2), l.PeekHead(Buy).OrderID())

	l.Erase(2)
	assert.Equal(t, OrderID(3), l.PeekHead(Buy).OrderID())

	l.Erase(3)
	assert.True(t, l.Empty(Buy))
}

func TestLadderEraseDropsEmptyLevel(t *testing.T) {
	l := newLadder()

	l.Insert(NewOrder(GoodTillCancel, 1, Buy, 100, 5))
	l.Erase(1)

	_, ok := l.BestPrice(Buy)
	assert.False(t, ok)
	assert.Equal(t, 0, l.Size())
}

func TestLadderEraseUnknownIsNoop(t *testing.T) {
	l := newLadder()
	l.Insert(NewOrder(GoodTillCancel, 1, Buy, 100, 5))

	l.Erase(999)

	assert.Equal(t, 1, l.Size())
}

func TestLadderLookupAndContains(t *testing.T) {
	l := newLadder()
	order := NewOrder(GoodTillCancel, 42, Sell, 100, 5)
	l.Insert(order)

	assert.True(t, l.Contains(42))
	assert.Same(t, order, l.Lookup(42))
	assert.Nil(t, l.Lookup(43))
}
