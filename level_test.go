package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelCacheAddMatchRemove(t *testing.T) {
	c := newLevelCache()

	c.update(Buy, 100, 10, levelAdd)
	c.update(Buy, 100, 5, levelAdd)

	qty, ok := c.quantityAt(100)
	assert.True(t, ok)
	assert.Equal(t, Quantity(15), qty)

	c.update(Buy, 100, 4, levelMatch)
	qty, ok = c.quantityAt(100)
	assert.True(t, ok)
	assert.Equal(t, Quantity(11), qty)

	c.update(Buy, 100, 6, levelRemove)
	qty, ok = c.quantityAt(100)
	assert.True(t, ok)
	assert.Equal(t, Quantity(5), qty)

	c.update(Buy, 100, 5, levelRemove)
	_, ok = c.quantityAt(100)
	assert.False(t, ok)
}

func TestLevelCacheRemoveOnAbsentLevelIsNoop(t *testing.T) {
	c := newLevelCache()
	c.update(Buy, 100, 5, levelRemove)

	_, ok := c.quantityAt(100)
	assert.False(t, ok)
}
