package engine

import "strings"

// BankIndex groups manufacturer product codes by model. It preserves bank
// insertion order for display and answers reverse-ownership queries.
type BankIndex struct {
	// byModel maps model code to its bank codes in insertion order.
	byModel map[string][]string
	// owners maps a trimmed product code to the distinct models that have a
	// bank entry for it, in first-seen order.
	owners map[string][]string
	// codeOrder records trimmed codes in first-seen order, for deterministic
	// conflict listings.
	codeOrder []string
}

// NewBankIndex builds the index from the ordered set of bank entries.
// Distinct entries with the same code under different models are retained
// separately; that situation surfaces later as a conflict.
func NewBankIndex(entries []BankEntry) *BankIndex {
	x := &BankIndex{
		byModel: make(map[string][]string),
		owners:  make(map[string][]string),
	}
	for _, e := range entries {
		code := strings.TrimSpace(e.Code)
		if code == "" {
			continue
		}
		x.byModel[e.Model] = append(x.byModel[e.Model], code)
		if _, seen := x.owners[code]; !seen {
			x.codeOrder = append(x.codeOrder, code)
		}
		if !containsString(x.owners[code], e.Model) {
			x.owners[code] = append(x.owners[code], e.Model)
		}
	}
	return x
}

// CodesFor returns the bank codes registered for a model, in insertion order.
func (x *BankIndex) CodesFor(model string) []string {
	return x.byModel[model]
}

// OwnersOf returns every distinct model that has a bank entry for the exact
// code, after trimming surrounding whitespace. Empty slice if none.
func (x *BankIndex) OwnersOf(code string) []string {
	return x.owners[strings.TrimSpace(code)]
}

// BankConflict reports a product code banked under two or more models.
type BankConflict struct {
	Code   string   `json:"code"`
	Models []string `json:"models"`
}

// Conflicts returns every code present in the bank under at least two
// distinct models, in bank first-seen order.
func (x *BankIndex) Conflicts() []BankConflict {
	var out []BankConflict
	for _, code := range x.codeOrder {
		if models := x.owners[code]; len(models) > 1 {
			out = append(out, BankConflict{Code: code, Models: models})
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
