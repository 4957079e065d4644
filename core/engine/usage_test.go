package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func variant(id string, kind WiringKind, code string, active bool) Variant {
	return Variant{ID: id, Wiring: kind, Code: code, Active: active, ListingIDs: map[Account]string{}}
}

func TestUsageIndexCollectsActiveCodes(t *testing.T) {
	x := NewUsageIndex([]Model{
		{Code: "C/029", Vehicles: []Vehicle{
			{Name: "Ford Transit", Variants: []Variant{
				variant("v1", Wiring7Pin, "5900000000017", true),
				variant("v2", Wiring13Pin, "", true),
			}},
		}},
	})

	assert.True(t, x.InUse("5900000000017"))
	assert.Len(t, x.Used(), 1)
	assert.Equal(t, []Location{{Model: "C/029", Vehicle: "Ford Transit", Wiring: Wiring7Pin}},
		x.LocationsOf("5900000000017"))
}

func TestUsageIndexIgnoresInactiveVariants(t *testing.T) {
	x := NewUsageIndex([]Model{
		{Code: "C/029", Vehicles: []Vehicle{
			{Name: "Ford Transit", Variants: []Variant{
				variant("v1", Wiring7Pin, "5900000000017", false),
			}},
		}},
	})

	assert.False(t, x.InUse("5900000000017"))
	assert.Empty(t, x.Used())
	assert.Empty(t, x.Duplicates())
}

func TestUsageIndexTrimsCodes(t *testing.T) {
	x := NewUsageIndex([]Model{
		{Code: "C/029", Vehicles: []Vehicle{
			{Name: "Ford Transit", Variants: []Variant{
				variant("v1", Wiring7Pin, " 5900000000017 ", true),
			}},
		}},
	})
	assert.True(t, x.InUse("5900000000017"))
}

func TestUsageIndexDuplicates(t *testing.T) {
	models := []Model{
		{Code: "C/029", Vehicles: []Vehicle{
			{Name: "Ford Transit", Variants: []Variant{
				variant("v1", Wiring7Pin, "5900000000017", true),
				variant("v2", Wiring13Pin, "5900000000017", true),
			}},
		}},
		{Code: "W/018", Vehicles: []Vehicle{
			{Name: "VW Crafter", Variants: []Variant{
				variant("v3", WiringNone, "5900000000017", true),
				variant("v4", Wiring7Pin, "5900000000024", true),
			}},
		}},
	}

	dups := NewUsageIndex(models).Duplicates()
	assert.Len(t, dups, 1)
	assert.Equal(t, "5900000000017", dups[0].Code)
	assert.Len(t, dups[0].Locations, 3)
	// Catalog traversal order: C/029 locations first, then W/018.
	assert.Equal(t, "C/029", dups[0].Locations[0].Model)
	assert.Equal(t, "W/018", dups[0].Locations[2].Model)
}

func TestUsageIndexDuplicateRequiresTwoActiveLocations(t *testing.T) {
	// Same code twice, but one occurrence inactive: not a duplicate.
	x := NewUsageIndex([]Model{
		{Code: "C/029", Vehicles: []Vehicle{
			{Name: "Ford Transit", Variants: []Variant{
				variant("v1", Wiring7Pin, "5900000000017", true),
				variant("v2", Wiring13Pin, "5900000000017", false),
			}},
		}},
	})
	assert.Empty(t, x.Duplicates())
	assert.True(t, x.InUse("5900000000017"))
}
