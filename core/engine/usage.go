package engine

import "strings"

// Location identifies where a product code is used in the catalog.
type Location struct {
	Model   string     `json:"model"`
	Vehicle string     `json:"vehicle"`
	Wiring  WiringKind `json:"wiring"`
}

// UsageIndex records every product code assigned to an active variant,
// with the locations using it. A variant contributes only when its code is
// non-empty after trimming AND the variant is active; toggling a variant
// inactive immediately removes its code from the index on the next rebuild.
type UsageIndex struct {
	locations map[string][]Location
	// codeOrder records codes in catalog traversal order (first occurrence).
	codeOrder []string
	used      map[string]struct{}
}

// NewUsageIndex scans the full catalog tree. Codes are compared after
// trimming surrounding whitespace; case is preserved and compared verbatim.
func NewUsageIndex(models []Model) *UsageIndex {
	x := &UsageIndex{
		locations: make(map[string][]Location),
		used:      make(map[string]struct{}),
	}
	for _, m := range models {
		for _, v := range m.Vehicles {
			for _, w := range v.Variants {
				if !w.Active {
					continue
				}
				code := strings.TrimSpace(w.Code)
				if code == "" {
					continue
				}
				if _, seen := x.used[code]; !seen {
					x.codeOrder = append(x.codeOrder, code)
					x.used[code] = struct{}{}
				}
				x.locations[code] = append(x.locations[code], Location{
					Model:   m.Code,
					Vehicle: v.Name,
					Wiring:  w.Wiring,
				})
			}
		}
	}
	return x
}

// Used returns the flat set of all used codes. The returned map is shared;
// callers must not mutate it.
func (x *UsageIndex) Used() map[string]struct{} {
	return x.used
}

// InUse reports whether the trimmed code is assigned to any active variant.
func (x *UsageIndex) InUse(code string) bool {
	_, ok := x.used[strings.TrimSpace(code)]
	return ok
}

// LocationsOf returns every catalog location using the trimmed code, in
// traversal order.
func (x *UsageIndex) LocationsOf(code string) []Location {
	return x.locations[strings.TrimSpace(code)]
}

// DuplicateCode reports a product code used by two or more active variants.
type DuplicateCode struct {
	Code      string     `json:"code"`
	Locations []Location `json:"locations"`
}

// Duplicates returns every code appearing in at least two locations, in
// catalog traversal order with every contributing location.
func (x *UsageIndex) Duplicates() []DuplicateCode {
	var out []DuplicateCode
	for _, code := range x.codeOrder {
		if locs := x.locations[code]; len(locs) > 1 {
			out = append(out, DuplicateCode{Code: code, Locations: locs})
		}
	}
	return out
}
