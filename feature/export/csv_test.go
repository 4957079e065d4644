package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"hookmap/core/engine"
	"hookmap/feature/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportSnapshot() *engine.Snapshot {
	return &engine.Snapshot{
		Models: []engine.Model{
			{
				ID:    "m1",
				Code:  "C/050",
				Notes: "check wiring photos",
				Vehicles: []engine.Vehicle{
					{
						ID:   "v1",
						Name: "Transit 2019",
						Variants: []engine.Variant{
							{
								ID:     "w1",
								Wiring: engine.Wiring13Pin,
								Code:   "59000000000017",
								Price:  "129.99",
								ListingIDs: map[engine.Account]string{
									engine.AccountMain: "111",
								},
								Active: true,
							},
							{ID: "w2", Wiring: engine.Wiring7Pin, Active: false},
						},
					},
				},
			},
			{ID: "m2", Code: "W/018", Notes: "no fitments yet"},
		},
	}
}

func parseExport(t *testing.T, data []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")
	r := csv.NewReader(bytes.NewReader(data[3:]))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, exportSnapshot()))

	records := parseExport(t, buf.Bytes())
	require.Len(t, records, 4)

	assert.Equal(t, "Model", records[0][0])
	assert.Equal(t, "Notes", records[0][10])

	first := records[1]
	assert.Equal(t, "C/050", first[0])
	assert.Equal(t, "Transit 2019", first[1])
	assert.Equal(t, "13-pin", first[2])
	assert.Equal(t, "59000000000017", first[3])
	assert.Equal(t, "129.99", first[4])
	assert.Equal(t, "111", first[5])
	assert.Equal(t, "yes", first[9])
	assert.Equal(t, "check wiring photos", first[10])

	second := records[2]
	assert.Equal(t, "7-pin", second[2])
	assert.Equal(t, "no", second[9])
	assert.Empty(t, second[10], "notes belong to the first row only")
}

func TestWriteCSVModelWithoutVehicles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, exportSnapshot()))

	records := parseExport(t, buf.Bytes())
	last := records[len(records)-1]
	assert.Equal(t, "W/018", last[0])
	assert.Empty(t, last[1])
	assert.Equal(t, "no fitments yet", last[10])
}

func TestWriteCSVEmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, &engine.Snapshot{}))

	out := strings.TrimPrefix(buf.String(), "\ufeff")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1, "header only")
}
