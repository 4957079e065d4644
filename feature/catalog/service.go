package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"hookmap/core/engine"
	"hookmap/core/writeback"
	"hookmap/feature/catalog/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VariantField names the variant columns editable through the debounced
// field-update path.
const (
	FieldCode         = "code"
	FieldPrice        = "price"
	FieldDuplicateRef = "duplicate_ref"
)

// Store holds the catalog snapshot and the engine derived from it.
// Mutations are applied optimistically in memory and persisted either
// immediately (structural changes) or via the write-behind queue
// (field-level edits).
type Store struct {
	db     *gorm.DB
	queue  *writeback.Queue
	logger *zap.Logger

	mu   sync.RWMutex
	snap *engine.Snapshot
	eng  *engine.Engine
}

// NewStore creates a store. Call Migrate and Reload before serving.
func NewStore(db *gorm.DB, queue *writeback.Queue, logger *zap.Logger) *Store {
	snap := &engine.Snapshot{}
	return &Store{
		db:     db,
		queue:  queue,
		logger: logger,
		snap:   snap,
		eng:    engine.New(snap),
	}
}

// Migrate creates the catalog tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.Model{},
		&models.Vehicle{},
		&models.Variant{},
		&models.DuplicateListing{},
		&models.BankEntry{},
	)
}

// Reload replaces the snapshot wholesale from the database and rebuilds the
// engine. Used at startup and on external change notifications.
func (s *Store) Reload(ctx context.Context) error {
	var rows []models.Model
	err := s.db.WithContext(ctx).
		Preload("Vehicles.Variants").
		Order("code").
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}

	var bank []models.BankEntry
	if err := s.db.WithContext(ctx).Order("position").Find(&bank).Error; err != nil {
		return fmt.Errorf("failed to load bank entries: %w", err)
	}

	var dups []models.DuplicateListing
	if err := s.db.WithContext(ctx).Order("created_at").Find(&dups).Error; err != nil {
		return fmt.Errorf("failed to load duplicate listings: %w", err)
	}

	snap := &engine.Snapshot{}
	for _, m := range rows {
		snap.Models = append(snap.Models, m.ToSnapshot())
	}
	for _, b := range bank {
		snap.Bank = append(snap.Bank, b.ToSnapshot())
	}
	for _, d := range dups {
		snap.Duplicates = append(snap.Duplicates, d.ToSnapshot())
	}

	s.mu.Lock()
	s.snap = snap
	s.eng = engine.New(snap)
	s.mu.Unlock()
	return nil
}

// Engine returns the engine derived from the current snapshot.
func (s *Store) Engine() *engine.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng
}

// Snapshot returns the current snapshot. A returned snapshot is never
// mutated afterwards; mutators publish a fresh copy instead.
func (s *Store) Snapshot() *engine.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// AddModel creates a model from a raw catalog code. The code is
// canonicalized first; an empty or already-used code is rejected with no
// effect.
func (s *Store) AddModel(ctx context.Context, rawCode, notes string) (*models.Model, error) {
	code := engine.FormatModelCode(rawCode)
	if code == "" {
		return nil, ErrEmptyModelCode
	}
	for _, m := range s.Snapshot().Models {
		if m.Code == code {
			return nil, fmt.Errorf("%w: %s", ErrModelExists, code)
		}
	}

	row := &models.Model{ID: uuid.NewString(), Code: code, Notes: notes}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return row, s.Reload(ctx)
}

// UpdateModelNotes sets the free-text notes on a model.
func (s *Store) UpdateModelNotes(ctx context.Context, modelID, notes string) error {
	res := s.db.WithContext(ctx).Model(&models.Model{}).Where("id = ?", modelID).Update("notes", notes)
	if res.Error != nil {
		return fmt.Errorf("failed to update model: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrModelNotFound
	}

	s.mu.Lock()
	snap := s.snap.Clone()
	for i := range snap.Models {
		if snap.Models[i].ID == modelID {
			snap.Models[i].Notes = notes
		}
	}
	s.snap = snap
	s.eng = engine.New(snap)
	s.mu.Unlock()
	return nil
}

// DeleteModel removes a model and, through cascading, its vehicles and
// variants.
func (s *Store) DeleteModel(ctx context.Context, modelID string) error {
	if err := s.db.WithContext(ctx).Where("vehicle_id IN (?)",
		s.db.Model(&models.Vehicle{}).Select("id").Where("model_id = ?", modelID),
	).Delete(&models.Variant{}).Error; err != nil {
		return fmt.Errorf("failed to delete variants: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("model_id = ?", modelID).Delete(&models.Vehicle{}).Error; err != nil {
		return fmt.Errorf("failed to delete vehicles: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("id = ?", modelID).Delete(&models.Model{}).Error; err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}
	return s.Reload(ctx)
}

// AddVehicle creates a vehicle under a model together with its fixed set of
// five wiring variants.
func (s *Store) AddVehicle(ctx context.Context, modelID, name string) (*models.Vehicle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Model{}).Where("id = ?", modelID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check model: %w", err)
	}
	if count == 0 {
		return nil, ErrModelNotFound
	}

	row := &models.Vehicle{ID: uuid.NewString(), ModelID: modelID, Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		for _, kind := range engine.WiringKinds() {
			w := &models.Variant{
				ID:        uuid.NewString(),
				VehicleID: row.ID,
				Wiring:    string(kind),
				Active:    true,
			}
			if err := tx.Create(w).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return row, s.Reload(ctx)
}

// RenameVehicle updates a vehicle's display name.
func (s *Store) RenameVehicle(ctx context.Context, vehicleID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	res := s.db.WithContext(ctx).Model(&models.Vehicle{}).Where("id = ?", vehicleID).Update("name", name)
	if res.Error != nil {
		return fmt.Errorf("failed to rename vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	return s.Reload(ctx)
}

// DeleteVehicle removes a vehicle and its variants.
func (s *Store) DeleteVehicle(ctx context.Context, vehicleID string) error {
	if err := s.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).Delete(&models.Variant{}).Error; err != nil {
		return fmt.Errorf("failed to delete variants: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("id = ?", vehicleID).Delete(&models.Vehicle{}).Error; err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return s.Reload(ctx)
}

// DuplicateVehicle copies a vehicle under the same model. Prices, wiring
// kinds and active flags carry over; product codes do not, since a code must
// stay unique to one variant.
func (s *Store) DuplicateVehicle(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	var src models.Vehicle
	if err := s.db.WithContext(ctx).Preload("Variants").Where("id = ?", vehicleID).First(&src).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}

	row := &models.Vehicle{
		ID:        uuid.NewString(),
		ModelID:   src.ModelID,
		Name:      src.Name + " (copy)",
		SortOrder: src.SortOrder,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		for _, w := range src.Variants {
			copyRow := &models.Variant{
				ID:        uuid.NewString(),
				VehicleID: row.ID,
				Wiring:    w.Wiring,
				Price:     w.Price,
				Active:    w.Active,
			}
			if err := tx.Create(copyRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate vehicle: %w", err)
	}
	return row, s.Reload(ctx)
}

// UpdateVariantField applies a field-level edit: the snapshot is updated
// optimistically and immediately, persistence is debounced per
// (variant, field) key so rapid edits coalesce into one write.
func (s *Store) UpdateVariantField(variantID, field, value string) error {
	column, apply, err := variantFieldSetter(field)
	if err != nil {
		return err
	}

	s.mu.Lock()
	snap := s.snap.Clone()
	_, _, w, found := snap.FindVariant(variantID)
	if !found {
		s.mu.Unlock()
		return ErrVariantNotFound
	}
	apply(w, value)
	s.snap = snap
	s.eng = engine.New(snap)
	s.mu.Unlock()

	db := s.db
	s.queue.Enqueue("variant:"+variantID+":"+field, func(ctx context.Context) error {
		return db.WithContext(ctx).Model(&models.Variant{}).
			Where("id = ?", variantID).
			Update(column, value).Error
	})
	return nil
}

// SetVariantActive toggles a variant's active flag. The change takes effect
// in every validation and count immediately; persistence is debounced like
// any other field edit.
func (s *Store) SetVariantActive(variantID string, active bool) error {
	s.mu.Lock()
	snap := s.snap.Clone()
	_, _, w, found := snap.FindVariant(variantID)
	if !found {
		s.mu.Unlock()
		return ErrVariantNotFound
	}
	w.Active = active
	s.snap = snap
	s.eng = engine.New(snap)
	s.mu.Unlock()

	db := s.db
	s.queue.Enqueue("variant:"+variantID+":active", func(ctx context.Context) error {
		return db.WithContext(ctx).Model(&models.Variant{}).
			Where("id = ?", variantID).
			Update("active", active).Error
	})
	return nil
}

// AssignNextCode assigns the first available bank code for the model to the
// variant. An empty pool is a normal no-op outcome, not an error. The check
// is not re-validated against concurrent assignments; a double pick surfaces
// later as a duplicate finding.
func (s *Store) AssignNextCode(variantID, modelCode string) (bool, error) {
	available := s.Engine().AvailableFor(modelCode)
	if len(available) == 0 {
		return false, nil
	}
	if err := s.UpdateVariantField(variantID, FieldCode, available[0]); err != nil {
		return false, err
	}
	return true, nil
}

// AddDuplicateListing creates a duplicate-listing record for a variant.
func (s *Store) AddDuplicateListing(ctx context.Context, variantID string, account engine.Account, externalID, code, notes string) (*models.DuplicateListing, error) {
	if !engine.ValidAccount(account) {
		return nil, fmt.Errorf("unknown account %q", account)
	}
	if _, _, _, found := s.Engine().FindVariant(variantID); !found {
		return nil, ErrVariantNotFound
	}
	row := &models.DuplicateListing{
		ID:         uuid.NewString(),
		VariantID:  variantID,
		Account:    string(account),
		ExternalID: strings.TrimSpace(externalID),
		Code:       strings.TrimSpace(code),
		Notes:      notes,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to create duplicate listing: %w", err)
	}
	return row, s.Reload(ctx)
}

// nextBankPosition returns the sequence value for the next bank row.
func nextBankPosition(tx *gorm.DB) (int64, error) {
	var last int64
	err := tx.Model(&models.BankEntry{}).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error
	return last + 1, err
}

// AddBankEntry records a manufacturer product code under a model. Validation
// beyond code shape (conflicts, usage elsewhere) is the codebank feature's
// concern.
func (s *Store) AddBankEntry(ctx context.Context, modelCode, code string) error {
	modelCode = engine.FormatModelCode(modelCode)
	if modelCode == "" {
		return ErrEmptyModelCode
	}
	code = strings.TrimSpace(code)
	if !engine.ValidProductCode(code) {
		return fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pos, err := nextBankPosition(tx)
		if err != nil {
			return err
		}
		row := &models.BankEntry{
			ID:       uuid.NewString(),
			Model:    modelCode,
			Code:     code,
			Position: pos,
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create bank entry: %w", err)
	}
	return s.Reload(ctx)
}

// AddBankEntries records a batch of codes under a model in one transaction
// and a single reload. Codes are assumed pre-validated by the caller.
func (s *Store) AddBankEntries(ctx context.Context, modelCode string, codes []string) error {
	modelCode = engine.FormatModelCode(modelCode)
	if modelCode == "" {
		return ErrEmptyModelCode
	}
	if len(codes) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pos, err := nextBankPosition(tx)
		if err != nil {
			return err
		}
		for _, code := range codes {
			row := &models.BankEntry{
				ID:       uuid.NewString(),
				Model:    modelCode,
				Code:     strings.TrimSpace(code),
				Position: pos,
			}
			pos++
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create bank entries: %w", err)
	}
	return s.Reload(ctx)
}

// RemoveBankEntry removes one code from a model's bank.
func (s *Store) RemoveBankEntry(ctx context.Context, modelCode, code string) error {
	modelCode = engine.FormatModelCode(modelCode)
	err := s.db.WithContext(ctx).
		Where("model = ? AND code = ?", modelCode, strings.TrimSpace(code)).
		Delete(&models.BankEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete bank entry: %w", err)
	}
	return s.Reload(ctx)
}

// ClearModelBank removes every banked code of a model.
func (s *Store) ClearModelBank(ctx context.Context, modelCode string) error {
	modelCode = engine.FormatModelCode(modelCode)
	err := s.db.WithContext(ctx).
		Where("model = ?", modelCode).
		Delete(&models.BankEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear bank: %w", err)
	}
	return s.Reload(ctx)
}

// DeleteDuplicateListing removes a duplicate-listing record.
func (s *Store) DeleteDuplicateListing(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DuplicateListing{}).Error; err != nil {
		return fmt.Errorf("failed to delete duplicate listing: %w", err)
	}
	return s.Reload(ctx)
}

// ReplaceAll swaps the whole catalog for the given snapshot in one
// transaction. Used by backup restore; the previous data is gone afterwards.
func (s *Store) ReplaceAll(ctx context.Context, snap *engine.Snapshot) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []any{
			&models.Variant{}, &models.Vehicle{}, &models.Model{},
			&models.DuplicateListing{}, &models.BankEntry{},
		} {
			if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
				return err
			}
		}
		for _, m := range snap.Models {
			if err := tx.Create(&models.Model{ID: m.ID, Code: m.Code, Notes: m.Notes}).Error; err != nil {
				return err
			}
			for order, v := range m.Vehicles {
				row := &models.Vehicle{ID: v.ID, ModelID: m.ID, Name: v.Name, SortOrder: order}
				if err := tx.Create(row).Error; err != nil {
					return err
				}
				for _, w := range v.Variants {
					vr := &models.Variant{
						ID:           w.ID,
						VehicleID:    v.ID,
						Wiring:       string(w.Wiring),
						Code:         w.Code,
						Price:        w.Price,
						DuplicateRef: w.DuplicateRef,
						Active:       w.Active,
					}
					vr.ListingsMain = w.ListingIDs[engine.AccountMain]
					vr.ListingsPartner = w.ListingIDs[engine.AccountPartner]
					vr.ListingsOutlet = w.ListingIDs[engine.AccountOutlet]
					if err := tx.Create(vr).Error; err != nil {
						return err
					}
				}
			}
		}
		for i, b := range snap.Bank {
			row := &models.BankEntry{
				ID:       uuid.NewString(),
				Model:    b.Model,
				Code:     b.Code,
				Position: int64(i + 1),
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		for _, d := range snap.Duplicates {
			row := &models.DuplicateListing{
				ID:         d.ID,
				VariantID:  d.VariantID,
				Account:    string(d.Account),
				ExternalID: d.ExternalID,
				Code:       d.Code,
				Notes:      d.Notes,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return s.Reload(ctx)
}

// Flush forces all debounced edits to persist now. Used on shutdown.
func (s *Store) Flush(ctx context.Context) {
	s.queue.Flush(ctx)
}

// variantFieldSetter resolves an editable field name to its DB column and
// its in-memory setter.
func variantFieldSetter(field string) (string, func(*engine.Variant, string), error) {
	switch field {
	case FieldCode:
		return "code", func(w *engine.Variant, v string) { w.Code = v }, nil
	case FieldPrice:
		return "price", func(w *engine.Variant, v string) { w.Price = v }, nil
	case FieldDuplicateRef:
		return "duplicate_ref", func(w *engine.Variant, v string) { w.DuplicateRef = v }, nil
	}
	// Per-account listing identifier columns.
	for _, acct := range engine.Accounts() {
		if field == "listings:"+string(acct) {
			acct := acct
			column, _ := models.ListingColumn(acct)
			return column, func(w *engine.Variant, v string) {
				if w.ListingIDs == nil {
					w.ListingIDs = map[engine.Account]string{}
				}
				w.ListingIDs[acct] = v
			}, nil
		}
	}
	return "", nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
}
