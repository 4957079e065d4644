package engine

import (
	"sort"
	"strings"
)

// MatchStatus is the three-way classification of a marketplace listing.
type MatchStatus string

const (
	StatusUnmapped  MatchStatus = "unmapped"
	StatusDuplicate MatchStatus = "duplicate"
	StatusMapped    MatchStatus = "mapped"
)

// statusRank orders statuses for the default sort: unmapped first so the
// listings needing attention surface on top.
var statusRank = map[MatchStatus]int{
	StatusUnmapped:  0,
	StatusDuplicate: 1,
	StatusMapped:    2,
}

// Match is the catalog payload resolved for a mapped or duplicate listing.
type Match struct {
	Model       string     `json:"model"`
	Vehicle     string     `json:"vehicle"`
	Wiring      WiringKind `json:"wiring"`
	IsDuplicate bool       `json:"is_duplicate"`
}

// MatchedListing is a listing enriched with its match status.
type MatchedListing struct {
	Listing
	MatchStatus MatchStatus `json:"match_status"`
	Match       *Match      `json:"match,omitempty"`
}

// listingMap builds the external-id lookup: variant identifier fields first,
// then duplicate-listing records overlaid last so they replace any prior
// entry for the same id and force the duplicate status.
func (e *Engine) listingMap() map[string]Match {
	m := make(map[string]Match)
	variantInfo := make(map[string]Match)
	for _, mod := range e.snap.Models {
		for _, veh := range mod.Vehicles {
			for _, w := range veh.Variants {
				info := Match{Model: mod.Code, Vehicle: veh.Name, Wiring: w.Wiring}
				variantInfo[w.ID] = info
				if !w.Active {
					continue
				}
				for _, acct := range Accounts() {
					for _, id := range splitListingIDs(w.ListingIDs[acct]) {
						if _, taken := m[id]; !taken {
							m[id] = info
						}
					}
				}
			}
		}
	}
	for _, d := range e.snap.Duplicates {
		id := strings.TrimSpace(d.ExternalID)
		if id == "" {
			continue
		}
		if info, ok := variantInfo[d.VariantID]; ok {
			info.IsDuplicate = true
			m[id] = info
		}
	}
	return m
}

// MatchListings classifies one account's listings against the catalog.
// A single external id resolves to exactly one status; duplicate overrides
// mapped by construction order. Unmatched ids retain no match payload.
func (e *Engine) MatchListings(account Account, listings []Listing) []MatchedListing {
	lookup := e.listingMap()
	out := make([]MatchedListing, 0, len(listings))
	for _, l := range listings {
		if l.Account != account {
			continue
		}
		ml := MatchedListing{Listing: l, MatchStatus: StatusUnmapped}
		if info, ok := lookup[strings.TrimSpace(l.ExternalID)]; ok {
			match := info
			ml.Match = &match
			if info.IsDuplicate {
				ml.MatchStatus = StatusDuplicate
			} else {
				ml.MatchStatus = StatusMapped
			}
		}
		out = append(out, ml)
	}
	return out
}

// MatchFilter narrows a matched-listing set. Zero values match everything.
type MatchFilter struct {
	// Status keeps only listings with the given status when non-empty.
	Status MatchStatus
	// Search is a case-insensitive free-text filter over the external id,
	// title, external model code, and matched model code.
	Search string
}

// FilterMatches applies the filter, preserving input order.
func FilterMatches(items []MatchedListing, f MatchFilter) []MatchedListing {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	var out []MatchedListing
	for _, it := range items {
		if f.Status != "" && it.MatchStatus != f.Status {
			continue
		}
		if q != "" && !matchesSearch(it, q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesSearch(it MatchedListing, q string) bool {
	if strings.Contains(strings.ToLower(it.ExternalID), q) ||
		strings.Contains(strings.ToLower(it.Title), q) ||
		strings.Contains(strings.ToLower(it.ExternalModel), q) {
		return true
	}
	return it.Match != nil && strings.Contains(strings.ToLower(it.Match.Model), q)
}

// SortMatches sorts in place by the given key. An empty key applies the
// default order: unmapped, then duplicate, then mapped. The sort is stable so
// equal elements keep their import order.
func SortMatches(items []MatchedListing, key string, desc bool) {
	less := func(a, b MatchedListing) bool {
		switch key {
		case "":
			return statusRank[a.MatchStatus] < statusRank[b.MatchStatus]
		case "price":
			return a.Price < b.Price
		case "qty":
			return a.Qty < b.Qty
		case "title":
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case "external_model":
			return strings.ToLower(a.ExternalModel) < strings.ToLower(b.ExternalModel)
		case "external_wiring":
			return strings.ToLower(a.ExternalWiring) < strings.ToLower(b.ExternalWiring)
		default:
			return a.ExternalID < b.ExternalID
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

// splitListingIDs splits a comma-separated identifier field into trimmed,
// non-empty ids.
func splitListingIDs(field string) []string {
	if field == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(field, ",") {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out
}
