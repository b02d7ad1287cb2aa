package vehicle_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHasThreeFixedRows(t *testing.T) {
	vehicles := Catalog()

	require.Len(t, vehicles, 3)
	assert.Equal(t, []string{"standard", "premium", "suv"}, Types())
	for _, v := range vehicles {
		assert.Positive(t, v.PricePerKm)
		assert.Positive(t, v.Capacity)
		assert.NotEmpty(t, v.Features)
	}
}

func TestLookup(t *testing.T) {
	v, ok := Lookup(" Premium ")
	require.True(t, ok)
	assert.Equal(t, Premium, v.Type)
	assert.Equal(t, int64(500), v.PricePerKm)

	_, ok = Lookup("limousine")
	assert.False(t, ok)
	assert.False(t, IsValidType(""))
	assert.True(t, IsValidType("suv"))
}

func TestCatalogReturnsCopies(t *testing.T) {
	vehicles := Catalog()
	vehicles[0].Features[0] = "mutated"
	vehicles[0].PricePerKm = 1

	v, _ := Lookup("standard")
	assert.Equal(t, "Climatisation", v.Features[0])
	assert.Equal(t, int64(350), v.PricePerKm)
}
