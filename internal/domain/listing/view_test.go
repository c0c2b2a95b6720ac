package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestView_Defaults(t *testing.T) {
	v := NewView(0)
	q := v.Query()

	assert.Equal(t, "", q.Filter.Term)
	assert.Equal(t, AllCategories, q.Filter.Category)
	assert.Equal(t, DefaultSort, q.Sort)
	assert.Equal(t, 0, q.Page)
	assert.Equal(t, PageSize, q.PageSize)
}

func TestView_CriteriaChangeResetsPage(t *testing.T) {
	tests := []struct {
		name   string
		change func(v *View)
	}{
		{"搜索词", func(v *View) { v.SetTerm("dune") }},
		{"分类", func(v *View) { v.SetCategory("Fantasy") }},
		{"排序字段", func(v *View) { v.SetSort(SortSpec{Field: SortByAuthor}) }},
		{"排序方向", func(v *View) { v.SetSort(SortSpec{Field: SortByTitle, Direction: Descending}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(PageSize)
			v.SetPage(3)
			tt.change(v)
			assert.Equal(t, 0, v.Page())
		})
	}
}

func TestView_SameValueKeepsPage(t *testing.T) {
	v := NewView(PageSize)
	v.SetTerm("dune")
	v.SetPage(2)

	v.SetTerm("dune")
	v.SetCategory("")
	v.SetSort(SortSpec{Field: SortByTitle})
	assert.Equal(t, 2, v.Page())
}

func TestView_Navigation(t *testing.T) {
	v := NewView(PageSize)

	assert.False(t, v.Prev())
	assert.True(t, v.Next(2))
	assert.Equal(t, 1, v.Page())
	assert.False(t, v.Next(2))
	assert.True(t, v.Prev())
	assert.Equal(t, 0, v.Page())

	v.SetPage(-4)
	assert.Equal(t, 0, v.Page())
}

func TestView_Clamp(t *testing.T) {
	v := NewView(PageSize)
	v.SetPage(5)

	v.Clamp(3)
	assert.Equal(t, 2, v.Page())

	v.Clamp(0)
	assert.Equal(t, 0, v.Page())
}
