package models

import (
	"sort"
	"time"

	"hookmap/core/engine"
)

// Model is the 'models' table: one hook product per catalog code.
type Model struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Code      string    `gorm:"column:code;type:varchar(16);uniqueIndex"`
	Notes     string    `gorm:"column:notes;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Vehicles  []Vehicle `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name.
func (Model) TableName() string {
	return "models"
}

// Vehicle is the 'vehicles' table: one fitment under a model.
type Vehicle struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	ModelID   string    `gorm:"column:model_id;type:varchar(36);index"`
	Name      string    `gorm:"column:name;type:varchar(255)"`
	SortOrder int       `gorm:"column:sort_order"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Variants  []Variant `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name.
func (Vehicle) TableName() string {
	return "vehicles"
}

// Variant is the 'variants' table: one wiring configuration of a vehicle,
// with one listing-identifier column per marketplace account.
type Variant struct {
	ID              string    `gorm:"column:id;type:varchar(36);primaryKey"`
	VehicleID       string    `gorm:"column:vehicle_id;type:varchar(36);index"`
	Wiring          string    `gorm:"column:wiring;type:varchar(32)"`
	Code            string    `gorm:"column:code;type:varchar(32)"`
	Price           string    `gorm:"column:price;type:varchar(32)"`
	ListingsMain    string    `gorm:"column:listings_main;type:text"`
	ListingsPartner string    `gorm:"column:listings_partner;type:text"`
	ListingsOutlet  string    `gorm:"column:listings_outlet;type:text"`
	DuplicateRef    string    `gorm:"column:duplicate_ref;type:varchar(64)"`
	Active          bool      `gorm:"column:active;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name.
func (Variant) TableName() string {
	return "variants"
}

// DuplicateListing is the 'duplicate_listings' table: a manually tracked
// redundant external listing for a variant.
type DuplicateListing struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey"`
	VariantID  string    `gorm:"column:variant_id;type:varchar(36);index"`
	Account    string    `gorm:"column:account;type:varchar(32)"`
	ExternalID string    `gorm:"column:external_id;type:varchar(64)"`
	Code       string    `gorm:"column:code;type:varchar(32)"`
	Notes      string    `gorm:"column:notes;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name.
func (DuplicateListing) TableName() string {
	return "duplicate_listings"
}

// BankEntry is the 'bank_entries' table: one manufacturer product code
// registered for a model. Position is a store-assigned monotonic sequence;
// created_at is too coarse to tiebreak rows inserted in one batch, so the
// paste order is persisted explicitly.
type BankEntry struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Model     string    `gorm:"column:model;type:varchar(16);index"`
	Code      string    `gorm:"column:code;type:varchar(32);index"`
	Position  int64     `gorm:"column:position;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name.
func (BankEntry) TableName() string {
	return "bank_entries"
}

// listingColumns maps each marketplace account to its variant column.
var listingColumns = map[engine.Account]string{
	engine.AccountMain:    "listings_main",
	engine.AccountPartner: "listings_partner",
	engine.AccountOutlet:  "listings_outlet",
}

// ListingColumn returns the variant column storing listing ids for the
// account, or ok=false for an account outside the closed set.
func ListingColumn(a engine.Account) (string, bool) {
	col, ok := listingColumns[a]
	return col, ok
}

// ListingIDs exposes the per-account identifier columns as a map.
func (v Variant) ListingIDs() map[engine.Account]string {
	return map[engine.Account]string{
		engine.AccountMain:    v.ListingsMain,
		engine.AccountPartner: v.ListingsPartner,
		engine.AccountOutlet:  v.ListingsOutlet,
	}
}

// ToSnapshot converts the variant row to its engine form.
func (v Variant) ToSnapshot() engine.Variant {
	return engine.Variant{
		ID:           v.ID,
		Wiring:       engine.WiringKind(v.Wiring),
		Code:         v.Code,
		Price:        v.Price,
		ListingIDs:   v.ListingIDs(),
		DuplicateRef: v.DuplicateRef,
		Active:       v.Active,
	}
}

// ToSnapshot converts the vehicle row and its variants, ordered by the fixed
// wiring-kind order.
func (v Vehicle) ToSnapshot() engine.Vehicle {
	out := engine.Vehicle{
		ID:    v.ID,
		Name:  v.Name,
		Order: v.SortOrder,
	}
	rank := make(map[engine.WiringKind]int, 5)
	for i, k := range engine.WiringKinds() {
		rank[k] = i
	}
	variants := make([]Variant, len(v.Variants))
	copy(variants, v.Variants)
	sort.SliceStable(variants, func(i, j int) bool {
		return rank[engine.WiringKind(variants[i].Wiring)] < rank[engine.WiringKind(variants[j].Wiring)]
	})
	for _, w := range variants {
		out.Variants = append(out.Variants, w.ToSnapshot())
	}
	return out
}

// ToSnapshot converts the model row and its vehicles, ordered by sort order
// then creation time.
func (m Model) ToSnapshot() engine.Model {
	out := engine.Model{
		ID:    m.ID,
		Code:  m.Code,
		Notes: m.Notes,
	}
	vehicles := make([]Vehicle, len(m.Vehicles))
	copy(vehicles, m.Vehicles)
	sort.SliceStable(vehicles, func(i, j int) bool {
		if vehicles[i].SortOrder != vehicles[j].SortOrder {
			return vehicles[i].SortOrder < vehicles[j].SortOrder
		}
		return vehicles[i].CreatedAt.Before(vehicles[j].CreatedAt)
	})
	for _, v := range vehicles {
		out.Vehicles = append(out.Vehicles, v.ToSnapshot())
	}
	return out
}

// ToSnapshot converts the duplicate-listing row to its engine form.
func (d DuplicateListing) ToSnapshot() engine.DuplicateListing {
	return engine.DuplicateListing{
		ID:         d.ID,
		VariantID:  d.VariantID,
		Account:    engine.Account(d.Account),
		ExternalID: d.ExternalID,
		Code:       d.Code,
		Notes:      d.Notes,
	}
}

// ToSnapshot converts the bank row to its engine form.
func (b BankEntry) ToSnapshot() engine.BankEntry {
	return engine.BankEntry{Model: b.Model, Code: b.Code}
}
