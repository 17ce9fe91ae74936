package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateThirteenItems(t *testing.T) {
	ids := make([]uint, 13)
	for i := range ids {
		ids[i] = uint(13 - i)
	}

	first, page := Paginate(ids, 10, 1)
	assert.Len(t, first, 10)
	assert.Equal(t, 2, page.NumPages)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrevious)

	second, page := Paginate(ids, 10, 2)
	assert.Len(t, second, 3)
	assert.Equal(t, []uint{3, 2, 1}, second)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)

	third, page := Paginate(ids, 10, 3)
	assert.Equal(t, second, third, "out of range page clamps to the last page")
	assert.Equal(t, 2, page.Number)
}

func TestPaginateEmpty(t *testing.T) {
	items, page := Paginate([]uint{}, 10, 1)

	assert.Empty(t, items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)

	_, page = Paginate([]uint{}, 10, 7)
	assert.Equal(t, 1, page.Number)
}

func TestNewPageClampsBelowOne(t *testing.T) {
	page := NewPage(25, 10, 0)
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 20, page.Offset())

	page = NewPage(25, 10, -2)
	assert.Equal(t, 3, page.Number)
}

func TestPageNavigation(t *testing.T) {
	page := NewPage(30, 10, 2)
	assert.Equal(t, 3, page.NextNumber())
	assert.Equal(t, 1, page.PreviousNumber())

	page = NewPage(5, 10, 1)
	assert.Equal(t, 1, page.NextNumber())
	assert.Equal(t, 1, page.PreviousNumber())
}
