package engine

// Engine bundles the indices derived from one snapshot. Build a new Engine
// whenever any input record changes; a built Engine never observes later
// mutations.
type Engine struct {
	snap  *Snapshot
	bank  *BankIndex
	usage *UsageIndex
}

// New derives the bank and usage indices from the snapshot.
func New(snap *Snapshot) *Engine {
	return &Engine{
		snap:  snap,
		bank:  NewBankIndex(snap.Bank),
		usage: NewUsageIndex(snap.Models),
	}
}

// Snapshot returns the snapshot this engine was derived from.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap
}

// Bank returns the bank index.
func (e *Engine) Bank() *BankIndex {
	return e.bank
}

// Usage returns the usage index.
func (e *Engine) Usage() *UsageIndex {
	return e.usage
}

// OwnersOf returns every distinct model owning a bank entry for the code.
func (e *Engine) OwnersOf(code string) []string {
	return e.bank.OwnersOf(code)
}

// UsedCodes returns the set of codes assigned to active variants.
func (e *Engine) UsedCodes() map[string]struct{} {
	return e.usage.Used()
}

// DuplicateCodes returns codes used by two or more active variants.
func (e *Engine) DuplicateCodes() []DuplicateCode {
	return e.usage.Duplicates()
}

// BankConflicts returns codes banked under two or more models.
func (e *Engine) BankConflicts() []BankConflict {
	return e.bank.Conflicts()
}

// AvailableFor returns the bank codes for the model that are not used by any
// active variant anywhere, regardless of owning model. The result preserves
// bank insertion order and is stable for a fixed snapshot.
func (e *Engine) AvailableFor(modelCode string) []string {
	var out []string
	for _, code := range e.bank.CodesFor(FormatModelCode(modelCode)) {
		if !e.usage.InUse(code) {
			out = append(out, code)
		}
	}
	return out
}

// FindVariant locates a variant by ID in the snapshot tree. It returns the
// variant along with its owning model and vehicle, or found=false.
func (e *Engine) FindVariant(variantID string) (m *Model, v *Vehicle, w *Variant, found bool) {
	return e.snap.FindVariant(variantID)
}
