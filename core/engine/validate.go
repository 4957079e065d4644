package engine

import "strings"

// WrongModelAssignment reports an active variant whose code is banked, but
// under a different model than the one using it. A code absent from the bank
// entirely is not flagged here; that is merely "not yet in bank".
type WrongModelAssignment struct {
	Code            string     `json:"code"`
	UsedInModel     string     `json:"used_in_model"`
	Vehicle         string     `json:"vehicle"`
	Wiring          WiringKind `json:"wiring"`
	BelongsToModels []string   `json:"belongs_to_models"`
}

// ModelCodeGap reports, per model, how many active variants lack a code and
// whether the model's bank pool can still cover them.
type ModelCodeGap struct {
	Model string `json:"model"`
	// Missing is the count of active variants without a code.
	Missing int `json:"missing"`
	// Available is the size of the model's current assignable pool.
	Available int `json:"available"`
	// Blocked is true when variants are missing codes and the pool is empty.
	Blocked bool `json:"blocked"`
}

// Stats provides aggregate counts over the snapshot for dashboards.
type Stats struct {
	Models            int `json:"models"`
	ModelsWithVehicle int `json:"models_with_vehicle"`
	ModelsWithNotes   int `json:"models_with_notes"`
	Vehicles          int `json:"vehicles"`
	ActiveVariants    int `json:"active_variants"`
	FilledCodes       int `json:"filled_codes"`
	BankCodes         int `json:"bank_codes"`
	BankConflicts     int `json:"bank_conflicts"`
	DuplicateCodes    int `json:"duplicate_codes"`
	WrongModel        int `json:"wrong_model"`
	DuplicateRecords  int `json:"duplicate_records"`
}

// Report bundles every validation finding derived from one snapshot.
// Findings are surfaced for human review; nothing is corrected or blocked.
// Wrong-model and duplicate findings are independent and non-exclusive: both
// can fire for the same code.
type Report struct {
	DuplicateCodes []DuplicateCode        `json:"duplicate_codes"`
	BankConflicts  []BankConflict         `json:"bank_conflicts"`
	WrongModel     []WrongModelAssignment `json:"wrong_model"`
	MissingCodes   []ModelCodeGap         `json:"missing_codes"`
	Stats          Stats                  `json:"stats"`
}

// WrongModelAssignments scans every active variant with a non-empty code and
// flags the ones whose code is banked under some model(s) not including the
// variant's own model. Output preserves catalog traversal order.
func (e *Engine) WrongModelAssignments() []WrongModelAssignment {
	var out []WrongModelAssignment
	for _, m := range e.snap.Models {
		for _, v := range m.Vehicles {
			for _, w := range v.Variants {
				if !w.Active {
					continue
				}
				code := strings.TrimSpace(w.Code)
				if code == "" {
					continue
				}
				owners := e.bank.OwnersOf(code)
				if len(owners) == 0 || containsString(owners, m.Code) {
					continue
				}
				out = append(out, WrongModelAssignment{
					Code:            code,
					UsedInModel:     m.Code,
					Vehicle:         v.Name,
					Wiring:          w.Wiring,
					BelongsToModels: owners,
				})
			}
		}
	}
	return out
}

// MissingCodes returns, for every model with active variants lacking a code,
// the gap cross-referenced against the model's assignable pool.
func (e *Engine) MissingCodes() []ModelCodeGap {
	var out []ModelCodeGap
	for _, m := range e.snap.Models {
		missing := 0
		for _, v := range m.Vehicles {
			for _, w := range v.Variants {
				if w.Active && strings.TrimSpace(w.Code) == "" {
					missing++
				}
			}
		}
		if missing == 0 {
			continue
		}
		available := len(e.AvailableFor(m.Code))
		out = append(out, ModelCodeGap{
			Model:     m.Code,
			Missing:   missing,
			Available: available,
			Blocked:   available == 0,
		})
	}
	return out
}

// Validate produces the complete validation report for the snapshot.
func (e *Engine) Validate() *Report {
	r := &Report{
		DuplicateCodes: e.DuplicateCodes(),
		BankConflicts:  e.BankConflicts(),
		WrongModel:     e.WrongModelAssignments(),
		MissingCodes:   e.MissingCodes(),
	}
	r.Stats = e.computeStats(r)
	return r
}

func (e *Engine) computeStats(r *Report) Stats {
	s := Stats{
		Models:           len(e.snap.Models),
		BankCodes:        len(e.snap.Bank),
		BankConflicts:    len(r.BankConflicts),
		DuplicateCodes:   len(r.DuplicateCodes),
		WrongModel:       len(r.WrongModel),
		DuplicateRecords: len(e.snap.Duplicates),
	}
	for _, m := range e.snap.Models {
		if len(m.Vehicles) > 0 {
			s.ModelsWithVehicle++
		}
		if m.Notes != "" {
			s.ModelsWithNotes++
		}
		s.Vehicles += len(m.Vehicles)
		for _, v := range m.Vehicles {
			for _, w := range v.Variants {
				if !w.Active {
					continue
				}
				s.ActiveVariants++
				if strings.TrimSpace(w.Code) != "" {
					s.FilledCodes++
				}
			}
		}
	}
	return s
}
