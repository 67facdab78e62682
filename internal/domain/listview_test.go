package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListView_Mount(t *testing.T) {
	v := NewListView(numberedCatalog(10))

	assert.Equal(t, DefaultCriteria(), v.Criteria())
	assert.Equal(t, 1, v.CurrentPage())
	assert.Equal(t, []int{1, 2}, v.PageNumbers())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, ids(v.CurrentItems()))

	require.NoError(t, v.GoToPage(2))
	assert.Equal(t, []int{9, 10}, ids(v.CurrentItems()))
}

func TestListView_CriteriaChangesResetPage(t *testing.T) {
	mutations := map[string]func(v *ListView){
		"category": func(v *ListView) { require.NoError(t, v.SetCategory("electronics")) },
		"price":    func(v *ListView) { require.NoError(t, v.SetMaxPrice(900)) },
		"rating":   func(v *ListView) { require.NoError(t, v.SetRatingTier(FourStarsAndAbove, true)) },
		"search":   func(v *ListView) { require.NoError(t, v.SetSearch("product")) },
		"apply": func(v *ListView) {
			_, err := v.Apply(Criteria{MaxPrice: 500, FiveStars: true})
			require.NoError(t, err)
		},
		"update": func(v *ListView) {
			_, err := v.Update(Criteria{MaxPrice: 500, Search: "1"})
			require.NoError(t, err)
		},
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			v := NewListView(numberedCatalog(20))
			require.NoError(t, v.GoToPage(3))

			mutate(v)

			assert.Equal(t, 1, v.CurrentPage())
		})
	}
}

func TestListView_PageMoveKeepsVisibleSet(t *testing.T) {
	v := NewListView(numberedCatalog(20))
	require.NoError(t, v.SetSearch("1"))
	visible := ids(v.Visible())
	criteria := v.Criteria()

	require.NoError(t, v.GoToPage(2))

	assert.Equal(t, visible, ids(v.Visible()))
	assert.Equal(t, criteria, v.Criteria())
}

func TestListView_UnchangedCriteriaKeepPage(t *testing.T) {
	v := NewListView(numberedCatalog(20))
	require.NoError(t, v.GoToPage(2))

	changed, err := v.Apply(v.Criteria())
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, 2, v.CurrentPage())
}

func TestListView_Update(t *testing.T) {
	v := NewListView(numberedCatalog(20))
	require.NoError(t, v.GoToPage(2))

	changed, err := v.Update(v.Criteria())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 2, v.CurrentPage(), "no criterion changed, so the page stays")

	want := Criteria{Category: "electronics", MaxPrice: 150, FourStars: true, FiveStars: true, Search: "product 1"}
	changed, err = v.Update(want)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, want, v.Criteria())
	assert.Empty(t, v.Visible(), "every product is rated 3")

	changed, err = v.Update(Criteria{MaxPrice: 150, Search: "product 1"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []int{1, 10, 11, 12, 13, 14, 15}, ids(v.Visible()))
}

func TestListView_UpdateRejectedLeavesState(t *testing.T) {
	v := NewListView(numberedCatalog(20))
	require.NoError(t, v.GoToPage(2))

	_, err := v.Update(Criteria{Category: "electronics", MaxPrice: -1, Search: "x"})
	assert.ErrorIs(t, err, ErrInvalidCriteria)
	assert.Equal(t, DefaultCriteria(), v.Criteria())
	assert.Equal(t, 2, v.CurrentPage())
}

func TestListView_GoToPageBounds(t *testing.T) {
	v := NewListView(numberedCatalog(10))

	assert.ErrorIs(t, v.GoToPage(0), ErrPageOutOfRange)
	assert.ErrorIs(t, v.GoToPage(3), ErrPageOutOfRange)
	assert.Equal(t, 1, v.CurrentPage())
}

func TestListView_MissingCategoryYieldsNoPages(t *testing.T) {
	v := NewListView(numberedCatalog(10))
	require.NoError(t, v.SetCategory("jewelery"))

	assert.Empty(t, v.Visible())
	assert.Empty(t, v.PageNumbers())
	assert.Empty(t, v.CurrentItems())
	assert.NoError(t, v.GoToPage(1))
}

func TestListView_InvalidInputLeavesState(t *testing.T) {
	v := NewListView(numberedCatalog(10))
	require.NoError(t, v.GoToPage(2))

	assert.ErrorIs(t, v.SetMaxPrice(-1), ErrInvalidCriteria)
	assert.ErrorIs(t, v.SetRatingTier("threeStars", true), ErrInvalidCriteria)
	assert.Equal(t, 2, v.CurrentPage())
	assert.Equal(t, DefaultCriteria(), v.Criteria())
}

func TestListView_Lookup(t *testing.T) {
	v := NewListView(numberedCatalog(3))

	p, ok := v.Lookup("2")
	require.True(t, ok)
	assert.Equal(t, "Product 2", p.Title)

	_, ok = v.Lookup("99")
	assert.False(t, ok)
}

func TestCart_AppendsDuplicates(t *testing.T) {
	var c Cart
	p := Product{ID: 1, Title: "Mug", Price: 4.5}
	c.Add(p)
	c.Add(p)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []int{1, 1}, ids(c.Items()))
	assert.InDelta(t, 9.0, c.Total(), 1e-9)
}
