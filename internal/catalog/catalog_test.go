package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate())
}

func TestResolvePack(t *testing.T) {
	tests := []struct {
		alias    string
		expected string
		ok       bool
	}{
		{alias: "veg", expected: "veg", ok: true},
		{alias: "Non-Veg", expected: "nonveg", ok: true},
		{alias: "NON VEG", expected: "nonveg", ok: true},
		{alias: "chicken", expected: "nonveg", ok: true},
		{alias: "1", expected: "veg", ok: true},
		{alias: "4", expected: "deluxe", ok: true},
		{alias: " royal ", expected: "premium", ok: true},
		{alias: "sushi", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			key, ok := ResolvePack(tt.alias)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.expected, key)
			}
		})
	}
}

func TestResolveAddon(t *testing.T) {
	key, ok := ResolveAddon("Live Band")
	require.True(t, ok)
	assert.Equal(t, "live_music", key)

	_, ok = ResolveAddon("fireworks")
	assert.False(t, ok)
}

func TestCost(t *testing.T) {
	tests := []struct {
		name     string
		pack     string
		people   int
		addons   []string
		base     int
		addon    int
		total    int
	}{
		{
			name: "nonveg with decoration and cake", pack: "nonveg", people: 8,
			addons: []string{"decoration", "cake"},
			base:   3992, addon: 3700, total: 7692,
		},
		{
			name: "veg without addons", pack: "veg", people: 2,
			base: 798, total: 798,
		},
		{
			name: "deluxe with everything pricey", pack: "deluxe", people: 50,
			addons: []string{"dj", "live_music", "photography"},
			base:   49950, addon: 16500, total: 66450,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, addon, total := Cost(tt.pack, tt.people, tt.addons)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.addon, addon)
			assert.Equal(t, tt.total, total)
			assert.Equal(t, base+addon, total)
		})
	}
}

func TestRecommendationFor(t *testing.T) {
	rec, ok := RecommendationFor("birthday")
	require.True(t, ok)
	assert.Equal(t, "Birthday", rec.EventType)
	assert.Equal(t, "nonveg", rec.Pack)
	assert.Equal(t, []string{"decoration", "cake", "balloons"}, rec.Addons)

	// containment works both ways
	rec, ok = RecommendationFor("my birthday party")
	require.True(t, ok)
	assert.Equal(t, "Birthday", rec.EventType)

	rec, ok = RecommendationFor("corporate")
	require.True(t, ok)
	assert.Equal(t, "Corporate Event", rec.EventType)

	_, ok = RecommendationFor("housewarming")
	assert.False(t, ok)

	_, ok = RecommendationFor("  ")
	assert.False(t, ok)
}

func TestPackAndAddonNames(t *testing.T) {
	assert.Equal(t, "Non-Veg Classic", PackName("nonveg", "en"))
	assert.Equal(t, "அசைவ கிளாசிக்", PackName("nonveg", "ta"))
	assert.Equal(t, "unknown", PackName("unknown", "en"))

	assert.Equal(t, "Designer Cake", AddonName("cake", "en"))
	assert.Equal(t, "டிசைனர் கேக்", AddonName("cake", "ta"))
}

func TestPacksOrdering(t *testing.T) {
	packs := Packs()
	require.Len(t, packs, 4)
	assert.Equal(t, "veg", packs[0].Key)
	assert.Equal(t, "deluxe", packs[3].Key)

	// prices climb with the tiers
	for i := 1; i < len(packs); i++ {
		assert.Greater(t, packs[i].PricePerPerson, packs[i-1].PricePerPerson)
	}
}
