package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intLess(a, b int) bool { return a < b }

func TestPageFrom_MiddlePage(t *testing.T) {
	items := []int{7, 3, 1, 6, 4, 2, 5}

	page := PageFrom(items, intLess, Paging{PageIndex: 1, PageSize: 3})

	assert.Equal(t, []int{4, 5, 6}, page.Items)
	assert.Equal(t, 1, page.PageIndex)
	assert.Equal(t, 3, page.PageSize)
	assert.Equal(t, 7, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.IsLast)
}

func TestPageFrom_LastPageIsShort(t *testing.T) {
	items := []int{7, 3, 1, 6, 4, 2, 5}

	page := PageFrom(items, intLess, Paging{PageIndex: 2, PageSize: 3})

	assert.Equal(t, []int{7}, page.Items)
	assert.True(t, page.IsLast)
}

func TestPageFrom_BeyondLastPage(t *testing.T) {
	items := []int{1, 2, 3}

	page := PageFrom(items, intLess, Paging{PageIndex: 5, PageSize: 3})

	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.TotalCount)
	assert.True(t, page.IsLast)
}

func TestPageFrom_Empty(t *testing.T) {
	page := PageFrom(nil, intLess, Paging{})

	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalCount)
	assert.Equal(t, 0, page.TotalPages)
	assert.True(t, page.IsLast)
}

func TestPageFrom_DoesNotModifyInput(t *testing.T) {
	items := []int{3, 1, 2}

	_ = PageFrom(items, intLess, Paging{PageSize: 10})

	assert.Equal(t, []int{3, 1, 2}, items)
}

func TestPagingNormalize(t *testing.T) {
	p := Paging{PageIndex: -4, PageSize: 0}.Normalize()
	assert.Equal(t, 0, p.PageIndex)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = Paging{PageSize: MaxPageSize + 50}.Normalize()
	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestMapPage(t *testing.T) {
	page := PageFrom([]int{2, 1}, intLess, Paging{PageSize: 10})

	mapped := MapPage(page, func(v int) int { return v * 10 })

	assert.Equal(t, []int{10, 20}, mapped.Items)
	assert.Equal(t, page.TotalCount, mapped.TotalCount)
	assert.Equal(t, page.IsLast, mapped.IsLast)
}
