package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shinyshoes/internal/domain"
)

func TestCatalog_GetAndFeatured(t *testing.T) {
	s := NewCatalogService(DefaultProducts())

	p, err := s.Get("4")
	require.NoError(t, err)
	assert.Equal(t, "The Elegant Heel", p.Name)

	_, err = s.Get("404")
	assert.ErrorIs(t, err, ErrProductNotFound)

	featured := s.Featured(3)
	assert.Equal(t, []string{"2", "3", "7"}, ids(featured))
}

func TestCatalog_AddPrependsAndRejectsDuplicates(t *testing.T) {
	s := NewCatalogService(DefaultProducts())
	now := time.UnixMilli(1700000000000)
	p := NewProduct(ProductDraft{Name: " Glide ", Brand: "ShinyShoes", Price: 99}, now)

	require.NoError(t, s.Add(p))
	assert.Equal(t, "1700000000000", s.List()[0].ID)
	assert.Equal(t, "Glide", s.List()[0].Name)
	assert.Equal(t, domain.CategoryMen, p.Category)
	assert.Equal(t, []float64{7, 8, 9, 10, 11}, p.Sizes)
	assert.True(t, p.IsNew)
	assert.NotEmpty(t, p.ImageURL)

	assert.ErrorIs(t, s.Add(p), ErrDuplicateProduct)
	assert.Len(t, s.List(), 10)

	// newest sort puts the admin addition first
	assert.Equal(t, p.ID, s.Filter(DefaultFilter())[0].ID)
}

func TestCatalog_DeleteLeavesCartCopies(t *testing.T) {
	s := NewCatalogService(DefaultProducts())
	c := NewCart("k", nil)
	p, _ := s.Get("5")
	c.Add(t.Context(), p, 9)

	assert.Equal(t, 1, s.Delete("5"))
	assert.Equal(t, 0, s.Delete("5"))
	_, err := s.Get("5")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, "5", c.Lines()[0].ID)
}

func TestCatalog_ListIsACopy(t *testing.T) {
	s := NewCatalogService(DefaultProducts())
	l := s.List()
	l[0].Name = "changed"
	l[0].Sizes[0] = 1
	p, _ := s.Get(l[0].ID)
	assert.NotEqual(t, "changed", p.Name)
	assert.NotEqual(t, 1.0, p.Sizes[0])
}

func TestWishlist_ToggleIsItsOwnInverse(t *testing.T) {
	var w Wishlist
	assert.True(t, w.Toggle("3"))
	assert.True(t, w.Toggle("1"))
	assert.True(t, w.Contains("3"))
	assert.Equal(t, []string{"3", "1"}, w.IDs())

	assert.False(t, w.Toggle("3"))
	assert.False(t, w.Contains("3"))
	assert.Equal(t, []string{"1"}, w.IDs())
}
