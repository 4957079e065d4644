// Package models contains the marketplace listing table.
package models

import (
	"time"

	"hookmap/core/engine"
)

// MarketplaceListing is one imported listing row. A listing is identified by
// its (account, external id) pair; re-imports overwrite the row in place.
type MarketplaceListing struct {
	ID             string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Account        string    `gorm:"column:account;type:varchar(32);uniqueIndex:idx_account_external,priority:1"`
	ExternalID     string    `gorm:"column:external_id;type:varchar(64);uniqueIndex:idx_account_external,priority:2"`
	Title          string    `gorm:"column:title;type:varchar(512)"`
	ExternalModel  string    `gorm:"column:external_model;type:varchar(64)"`
	ExternalWiring string    `gorm:"column:external_wiring;type:varchar(64)"`
	Price          float64   `gorm:"column:price"`
	Qty            int       `gorm:"column:qty"`
	Status         string    `gorm:"column:status;type:varchar(32)"`
	Link           string    `gorm:"column:link;type:varchar(512)"`
	SyncedAt       time.Time `gorm:"column:synced_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (MarketplaceListing) TableName() string {
	return "marketplace_listings"
}

// ToSnapshot converts the row to its engine form.
func (l MarketplaceListing) ToSnapshot() engine.Listing {
	return engine.Listing{
		ID:             l.ID,
		Account:        engine.Account(l.Account),
		ExternalID:     l.ExternalID,
		Title:          l.Title,
		ExternalModel:  l.ExternalModel,
		ExternalWiring: l.ExternalWiring,
		Price:          l.Price,
		Qty:            l.Qty,
		Status:         l.Status,
		Link:           l.Link,
		SyncedAt:       l.SyncedAt,
	}
}
