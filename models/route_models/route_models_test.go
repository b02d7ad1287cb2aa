package route_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownPair(t *testing.T) {
	r, ok := DefaultTable().Lookup("Dakar", "Saint-Louis")

	require.True(t, ok)
	assert.Equal(t, 264.0, r.DistanceKm)
	assert.Equal(t, 270, r.DurationMinutes)
	assert.Equal(t, "Dakar", r.Steps[0])
	assert.Equal(t, "Saint-Louis", r.Steps[len(r.Steps)-1])
}

func TestLookup_IsSymmetric(t *testing.T) {
	forward, ok := DefaultTable().Lookup("Dakar", "Lac Rose")
	require.True(t, ok)
	backward, ok := DefaultTable().Lookup("Lac Rose", "Dakar")
	require.True(t, ok)

	assert.Equal(t, forward.DistanceKm, backward.DistanceKm)
	assert.Equal(t, "Lac Rose", backward.From)
	assert.Equal(t, []string{"Lac Rose", "Sangalkam", "Rufisque", "Dakar"}, backward.Steps)
	// the table itself must not be mutated by reversing
	again, _ := DefaultTable().Lookup("Dakar", "Lac Rose")
	assert.Equal(t, forward.Steps, again.Steps)
}

func TestLookup_NormalizesAccentsCaseAndAliases(t *testing.T) {
	cases := []struct{ from, to string }{
		{"dakar", "THIES"},
		{"  Dakar ", "Thiès"},
		{"Dakar", "thiès"},
	}
	for _, tc := range cases {
		r, ok := DefaultTable().Lookup(tc.from, tc.to)
		require.True(t, ok, "%q -> %q", tc.from, tc.to)
		assert.Equal(t, 70.0, r.DistanceKm)
	}

	r, ok := DefaultTable().Lookup("Aéroport", "St Louis")
	require.True(t, ok)
	assert.Equal(t, 245.0, r.DistanceKm)
}

func TestResolve_SynthesizesUnknownPairs(t *testing.T) {
	r, estimated := DefaultTable().Resolve("Podor", "Matam")

	assert.True(t, estimated)
	assert.GreaterOrEqual(t, r.DistanceKm, float64(minSyntheticKm))
	assert.Less(t, r.DistanceKm, float64(maxSyntheticKm))
	assert.Equal(t, []string{"Podor", "Matam"}, r.Steps)

	again, _ := DefaultTable().Resolve("matam", "PODOR")
	assert.Equal(t, r.DistanceKm, again.DistanceKm, "placeholder must be stable in both directions")
	assert.Equal(t, r.DurationMinutes, again.DurationMinutes)
}

func TestResolve_KnownPairIsNotEstimated(t *testing.T) {
	_, estimated := DefaultTable().Resolve("Dakar", "Touba")
	assert.False(t, estimated)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 min", FormatDuration(45))
	assert.Equal(t, "2h", FormatDuration(120))
	assert.Equal(t, "4h30", FormatDuration(270))
	assert.Equal(t, "1h05", FormatDuration(65))
}

func TestPlacesAreSortedAndUnique(t *testing.T) {
	places := DefaultTable().Places()

	assert.Contains(t, places, "Saint-Louis")
	assert.IsNonDecreasing(t, places)
	seen := map[string]bool{}
	for _, p := range places {
		assert.False(t, seen[p], "duplicate place %s", p)
		seen[p] = true
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "kedougou", Normalize("Kédougou"))
	assert.Equal(t, "joal fadiouth", Normalize("Joal-Fadiouth"))
	assert.Equal(t, "cap skirring", Normalize("  CAP   Skirring "))
}
