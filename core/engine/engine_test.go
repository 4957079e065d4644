package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureSnapshot builds a small catalog: two models, a shared bank, one
// variant already holding a code.
func fixtureSnapshot() *Snapshot {
	return &Snapshot{
		Models: []Model{
			{ID: "m1", Code: "C/029", Vehicles: []Vehicle{
				{ID: "a1", Name: "Ford Transit", Order: 0, Variants: []Variant{
					variant("v1", WiringNone, "", true),
					variant("v2", Wiring7Pin, "5900000000017", true),
					variant("v3", Wiring13Pin, "", true),
				}},
			}},
			{ID: "m2", Code: "W/018", Vehicles: []Vehicle{
				{ID: "a2", Name: "VW Crafter", Order: 0, Variants: []Variant{
					variant("v4", Wiring7Pin, "", true),
				}},
			}},
		},
		Bank: []BankEntry{
			{Model: "C/029", Code: "5900000000017"},
			{Model: "C/029", Code: "5900000000024"},
			{Model: "C/029", Code: "5900000000031"},
			{Model: "W/018", Code: "5900000000048"},
		},
	}
}

func TestAvailableForExcludesUsedCodes(t *testing.T) {
	e := New(fixtureSnapshot())

	avail := e.AvailableFor("C/029")
	assert.Equal(t, []string{"5900000000024", "5900000000031"}, avail)

	// Availability never intersects the used set.
	used := e.UsedCodes()
	for _, code := range avail {
		_, inUse := used[code]
		assert.False(t, inUse, "available code %s must not be in use", code)
	}
}

func TestAvailableForIsDeterministic(t *testing.T) {
	e := New(fixtureSnapshot())
	first := e.AvailableFor("C/029")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.AvailableFor("C/029"))
	}
}

func TestAvailableForCanonicalizesModelCode(t *testing.T) {
	e := New(fixtureSnapshot())
	assert.Equal(t, e.AvailableFor("C/029"), e.AvailableFor("C029"))
}

func TestAvailableForCodeUsedUnderOtherModel(t *testing.T) {
	// A code used anywhere is unavailable, regardless of owning model.
	snap := fixtureSnapshot()
	snap.Models[1].Vehicles[0].Variants[0].Code = "5900000000024"
	e := New(snap)
	assert.Equal(t, []string{"5900000000031"}, e.AvailableFor("C/029"))
}

func TestTogglingVariantInactiveFreesItsCode(t *testing.T) {
	snap := fixtureSnapshot()
	e := New(snap)
	_, used := e.UsedCodes()["5900000000017"]
	require.True(t, used)

	snap.Models[0].Vehicles[0].Variants[1].Active = false
	e = New(snap)

	_, used = e.UsedCodes()["5900000000017"]
	assert.False(t, used)
	assert.Contains(t, e.AvailableFor("C/029"), "5900000000017")
	assert.Empty(t, e.DuplicateCodes())
}

func TestFindVariant(t *testing.T) {
	e := New(fixtureSnapshot())

	m, v, w, found := e.FindVariant("v2")
	require.True(t, found)
	assert.Equal(t, "C/029", m.Code)
	assert.Equal(t, "Ford Transit", v.Name)
	assert.Equal(t, Wiring7Pin, w.Wiring)

	_, _, _, found = e.FindVariant("missing")
	assert.False(t, found)
}

func TestOwnersOfDelegates(t *testing.T) {
	e := New(fixtureSnapshot())
	assert.Equal(t, []string{"C/029"}, e.OwnersOf("5900000000017"))
	assert.Empty(t, e.OwnersOf("0000000000000"))
}
