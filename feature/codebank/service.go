package codebank

import (
	"context"
	"fmt"
	"regexp"

	"hookmap/core/engine"
	"hookmap/feature/catalog"

	"go.uber.org/zap"
)

// Skip reasons attached to rejected paste tokens.
const (
	ReasonInvalid       = "invalid"
	ReasonAlreadyBanked = "already_banked"
)

// Warning reasons attached to codes that were added anyway. Conflicts are
// findings for the validation report, never intake errors.
const (
	ReasonBankConflict = "banked_elsewhere"
	ReasonInUse        = "used_elsewhere"
)

var tokenSplit = regexp.MustCompile(`[\s,;]+`)

// Finding describes one code the paste flagged, with the models involved
// when a conflict is the reason.
type Finding struct {
	Code   string   `json:"code"`
	Reason string   `json:"reason"`
	Models []string `json:"models,omitempty"`
}

// PasteResult summarizes a bulk paste.
type PasteResult struct {
	Model        string    `json:"model"`
	ModelCreated bool      `json:"model_created"`
	Added        []string  `json:"added"`
	Skipped      []Finding `json:"skipped,omitempty"`
	Warnings     []Finding `json:"warnings,omitempty"`
}

// Service implements the code-bank intake workflows on top of the catalog
// store.
type Service struct {
	store  *catalog.Store
	logger *zap.Logger
}

// NewService creates a new codebank service.
func NewService(store *catalog.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// AddCodes ingests a raw paste of product codes for a model. Tokens split on
// whitespace, commas and semicolons. Well-formed codes not yet banked for the
// model are added in one batch; the rest come back as skipped or warned
// findings. An unknown model is created on the fly so a bank can be built
// before the catalog entry exists.
func (s *Service) AddCodes(ctx context.Context, rawModel, raw string) (*PasteResult, error) {
	modelCode := engine.FormatModelCode(rawModel)
	if modelCode == "" {
		return nil, catalog.ErrEmptyModelCode
	}

	result := &PasteResult{Model: modelCode}

	eng := s.store.Engine()
	banked := map[string]bool{}
	for _, code := range eng.Bank().CodesFor(modelCode) {
		banked[code] = true
	}

	seen := map[string]bool{}
	var accepted []string
	for _, token := range tokenSplit.Split(raw, -1) {
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true

		if !engine.ValidProductCode(token) {
			result.Skipped = append(result.Skipped, Finding{Code: token, Reason: ReasonInvalid})
			continue
		}
		if banked[token] {
			result.Skipped = append(result.Skipped, Finding{Code: token, Reason: ReasonAlreadyBanked})
			continue
		}
		if owners := otherOwners(eng, token, modelCode); len(owners) > 0 {
			result.Warnings = append(result.Warnings, Finding{Code: token, Reason: ReasonBankConflict, Models: owners})
		}
		if users := otherUsers(eng, token, modelCode); len(users) > 0 {
			result.Warnings = append(result.Warnings, Finding{Code: token, Reason: ReasonInUse, Models: users})
		}
		accepted = append(accepted, token)
	}

	// A paste with nothing usable must not create the model either.
	if len(accepted) > 0 && !s.modelExists(modelCode) {
		if _, err := s.store.AddModel(ctx, modelCode, "created from code bank paste"); err != nil {
			return nil, fmt.Errorf("failed to create model: %w", err)
		}
		result.ModelCreated = true
	}

	if err := s.store.AddBankEntries(ctx, modelCode, accepted); err != nil {
		return nil, err
	}
	result.Added = accepted

	s.logger.Info("Code bank paste processed",
		zap.String("model", modelCode),
		zap.Int("added", len(result.Added)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

// ModelBank describes a model's bank with its assignable remainder.
type ModelBank struct {
	Model     string   `json:"model"`
	Codes     []string `json:"codes"`
	Available []string `json:"available"`
}

// Bank returns the banked codes of a model, in insertion order, with the
// subset still assignable.
func (s *Service) Bank(rawModel string) ModelBank {
	modelCode := engine.FormatModelCode(rawModel)
	eng := s.store.Engine()
	return ModelBank{
		Model:     modelCode,
		Codes:     eng.Bank().CodesFor(modelCode),
		Available: eng.AvailableFor(modelCode),
	}
}

// RemoveCode removes one banked code from a model.
func (s *Service) RemoveCode(ctx context.Context, rawModel, code string) error {
	return s.store.RemoveBankEntry(ctx, rawModel, code)
}

// ClearModel removes every banked code of a model.
func (s *Service) ClearModel(ctx context.Context, rawModel string) error {
	return s.store.ClearModelBank(ctx, rawModel)
}

// Conflicts returns the codes banked under more than one model.
func (s *Service) Conflicts() []engine.BankConflict {
	return s.store.Engine().BankConflicts()
}

func (s *Service) modelExists(code string) bool {
	for _, m := range s.store.Snapshot().Models {
		if m.Code == code {
			return true
		}
	}
	return false
}

// otherOwners lists the models, excluding the target, that already bank the
// code.
func otherOwners(eng *engine.Engine, code, modelCode string) []string {
	var out []string
	for _, owner := range eng.OwnersOf(code) {
		if owner != modelCode {
			out = append(out, owner)
		}
	}
	return out
}

// otherUsers lists the models, excluding the target, whose active variants
// hold the code.
func otherUsers(eng *engine.Engine, code, modelCode string) []string {
	seen := map[string]bool{}
	var out []string
	for _, loc := range eng.Usage().LocationsOf(code) {
		if loc.Model == modelCode || seen[loc.Model] {
			continue
		}
		seen[loc.Model] = true
		out = append(out, loc.Model)
	}
	return out
}
