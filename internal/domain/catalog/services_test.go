package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nextcut-api/internal/domain/catalog"
)

func TestDefault_TieneTodasLasEntradas(t *testing.T) {
	c := catalog.Default()
	list := c.List()
	require.Len(t, list, 19)

	seen := map[string]bool{}
	for _, s := range list {
		assert.NotEmpty(t, s.ID)
		assert.False(t, seen[s.ID], "id duplicado %s", s.ID)
		seen[s.ID] = true
		assert.Greater(t, s.DurationMinutes, 0)
		assert.True(t, s.Price.GreaterThan(decimal.Zero))
		assert.True(t, s.PriceMin.LessThanOrEqual(s.Price) && s.Price.LessThanOrEqual(s.PriceMax), s.ID)
	}
}

func TestGet_NormalizaID(t *testing.T) {
	c := catalog.Default()

	s, ok := c.Get("  Beard-Trim ")
	require.True(t, ok)
	assert.Equal(t, "Beard Trim", s.Name)
	assert.Equal(t, 10, s.DurationMinutes)

	assert.False(t, c.Contains("haircut"))
}

func TestList_DevuelveCopia(t *testing.T) {
	c := catalog.Default()
	list := c.List()
	list[0].Name = "otro"
	assert.Equal(t, "Classic Haircut", c.List()[0].Name)
}

func TestPriceRange(t *testing.T) {
	c := catalog.Default()
	s, _ := c.Get("classic-haircut")
	assert.Equal(t, "₹2,050 - ₹3,280", catalog.PriceRange(s))
	assert.Equal(t, "₹820", catalog.FormatPrice(decimal.NewFromInt(820)))
}
