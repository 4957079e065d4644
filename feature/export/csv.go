package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"hookmap/core/engine"
)

// utf8BOM makes spreadsheet tools pick UTF-8 instead of a legacy codepage.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{
	"Model", "Vehicle", "Wiring", "Code", "Price",
	"Main Store", "Partner Store", "Outlet Store",
	"Duplicate", "Active", "Notes",
}

// WriteCSV renders the snapshot as a semicolon-separated spreadsheet. One
// row per variant; model notes appear only on the first row of the model's
// first vehicle. A model without vehicles still gets one row so it is not
// silently dropped from the sheet.
func WriteCSV(w io.Writer, snap *engine.Snapshot) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, m := range snap.Models {
		if len(m.Vehicles) == 0 {
			row := emptyRow()
			row[0] = m.Code
			row[10] = m.Notes
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
			continue
		}
		notesWritten := false
		for _, v := range m.Vehicles {
			for _, variant := range v.Variants {
				row := []string{
					m.Code,
					v.Name,
					string(variant.Wiring),
					variant.Code,
					variant.Price,
					variant.ListingIDs[engine.AccountMain],
					variant.ListingIDs[engine.AccountPartner],
					variant.ListingIDs[engine.AccountOutlet],
					variant.DuplicateRef,
					activeLabel(variant.Active),
					"",
				}
				if !notesWritten {
					row[10] = m.Notes
					notesWritten = true
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write row: %w", err)
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func emptyRow() []string {
	return make([]string, len(csvHeader))
}

func activeLabel(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}
