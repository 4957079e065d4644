package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrongModelAssignments(t *testing.T) {
	snap := &Snapshot{
		Models: []Model{
			{Code: "C/029", Vehicles: []Vehicle{
				{Name: "Ford Transit", Variants: []Variant{
					variant("v1", Wiring7Pin, "5900000000017", true),
				}},
			}},
		},
		Bank: []BankEntry{
			{Model: "W/018", Code: "5900000000017"},
		},
	}

	findings := New(snap).WrongModelAssignments()
	require.Len(t, findings, 1)
	assert.Equal(t, "5900000000017", findings[0].Code)
	assert.Equal(t, "C/029", findings[0].UsedInModel)
	assert.Equal(t, "Ford Transit", findings[0].Vehicle)
	assert.Equal(t, Wiring7Pin, findings[0].Wiring)
	assert.Equal(t, []string{"W/018"}, findings[0].BelongsToModels)
}

func TestWrongModelNotFlaggedWhenCodeAbsentFromBank(t *testing.T) {
	// A code missing from the bank entirely is "not yet banked", a softer
	// condition, never a wrong-model finding.
	snap := &Snapshot{
		Models: []Model{
			{Code: "C/029", Vehicles: []Vehicle{
				{Name: "Ford Transit", Variants: []Variant{
					variant("v1", Wiring7Pin, "5900000000099", true),
				}},
			}},
		},
		Bank: []BankEntry{{Model: "W/018", Code: "5900000000017"}},
	}
	assert.Empty(t, New(snap).WrongModelAssignments())
}

func TestWrongModelNotFlaggedForOwnModel(t *testing.T) {
	snap := &Snapshot{
		Models: []Model{
			{Code: "C/029", Vehicles: []Vehicle{
				{Name: "Ford Transit", Variants: []Variant{
					variant("v1", Wiring7Pin, "5900000000017", true),
				}},
			}},
		},
		Bank: []BankEntry{
			{Model: "C/029", Code: "5900000000017"},
			{Model: "W/018", Code: "5900000000017"},
		},
	}
	// The owning model is among the bank owners, so no finding even though
	// the bank itself is conflicted.
	e := New(snap)
	assert.Empty(t, e.WrongModelAssignments())
	assert.Len(t, e.BankConflicts(), 1)
}

func TestWrongModelIgnoresInactiveVariants(t *testing.T) {
	snap := &Snapshot{
		Models: []Model{
			{Code: "C/029", Vehicles: []Vehicle{
				{Name: "Ford Transit", Variants: []Variant{
					variant("v1", Wiring7Pin, "5900000000017", false),
				}},
			}},
		},
		Bank: []BankEntry{{Model: "W/018", Code: "5900000000017"}},
	}
	assert.Empty(t, New(snap).WrongModelAssignments())
}

func TestDualReportingDuplicateAndWrongModel(t *testing.T) {
	// The same code can fire both as a duplicate and as a wrong-model
	// assignment; the findings are independent and non-exclusive.
	snap := &Snapshot{
		Models: []Model{
			{Code: "C/029", Vehicles: []Vehicle{
				{Name: "Ford Transit", Variants: []Variant{
					variant("v1", Wiring7Pin, "5900000000017", true),
					variant("v2", Wiring13Pin, "5900000000017", true),
				}},
			}},
		},
		Bank: []BankEntry{{Model: "W/018", Code: "5900000000017"}},
	}

	report := New(snap).Validate()
	assert.Len(t, report.DuplicateCodes, 1)
	assert.Len(t, report.WrongModel, 2)
}

func TestMissingCodes(t *testing.T) {
	snap := &Snapshot{
		Models: []Model{
			{Code: "C/029", Vehicles: []Vehicle{
				{Name: "Ford Transit", Variants: []Variant{
					variant("v1", WiringNone, "", true),
					variant("v2", Wiring7Pin, "", true),
					variant("v3", Wiring13Pin, "5900000000017", true),
					variant("v4", Wiring7PinModule, "", false),
				}},
			}},
			{Code: "W/018", Vehicles: []Vehicle{
				{Name: "VW Crafter", Variants: []Variant{
					variant("v5", Wiring7Pin, "", true),
				}},
			}},
			{Code: "A/001", Vehicles: nil},
		},
		Bank: []BankEntry{
			{Model: "C/029", Code: "5900000000017"},
			{Model: "C/029", Code: "5900000000024"},
		},
	}

	gaps := New(snap).MissingCodes()
	require.Len(t, gaps, 2)

	// C/029: two active variants without a code, one bank code still free.
	assert.Equal(t, "C/029", gaps[0].Model)
	assert.Equal(t, 2, gaps[0].Missing)
	assert.Equal(t, 1, gaps[0].Available)
	assert.False(t, gaps[0].Blocked)

	// W/018: nothing banked, nothing to assign.
	assert.Equal(t, "W/018", gaps[1].Model)
	assert.Equal(t, 1, gaps[1].Missing)
	assert.Equal(t, 0, gaps[1].Available)
	assert.True(t, gaps[1].Blocked)
}

func TestValidateStats(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Models[0].Notes = "needs review"
	snap.Duplicates = []DuplicateListing{{ID: "d1", VariantID: "v2", Account: AccountMain, ExternalID: "123"}}

	report := New(snap).Validate()
	s := report.Stats
	assert.Equal(t, 2, s.Models)
	assert.Equal(t, 2, s.ModelsWithVehicle)
	assert.Equal(t, 1, s.ModelsWithNotes)
	assert.Equal(t, 2, s.Vehicles)
	assert.Equal(t, 4, s.ActiveVariants)
	assert.Equal(t, 1, s.FilledCodes)
	assert.Equal(t, 4, s.BankCodes)
	assert.Equal(t, 1, s.DuplicateRecords)
	assert.Zero(t, s.BankConflicts)
	assert.Zero(t, s.DuplicateCodes)
	assert.Zero(t, s.WrongModel)
}
