package offers

import (
	"context"
	"fmt"
	"io"

	"hookmap/core/engine"
	"hookmap/feature/catalog"
	"hookmap/feature/offers/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertChunkSize bounds one insert statement during imports.
const upsertChunkSize = 500

// Service stores marketplace listings and serves them matched against the
// catalog.
type Service struct {
	db     *gorm.DB
	store  *catalog.Store
	logger *zap.Logger
}

// NewService creates a new offers service.
func NewService(db *gorm.DB, store *catalog.Store, logger *zap.Logger) *Service {
	return &Service{db: db, store: store, logger: logger}
}

// Migrate creates the listings table.
func (s *Service) Migrate() error {
	return s.db.AutoMigrate(&models.MarketplaceListing{})
}

// Import ingests a marketplace CSV export for one account. Rows upsert on
// (account, external id) with the last occurrence winning; listings absent
// from the file are retained, an import is an overlay rather than a sync.
func (s *Service) Import(ctx context.Context, account engine.Account, r io.Reader) (ImportStats, error) {
	if !engine.ValidAccount(account) {
		return ImportStats{}, fmt.Errorf("unknown account %q", account)
	}

	rows, stats, err := ParseCSV(r, string(account))
	if err != nil {
		return stats, err
	}

	// Last occurrence of a key wins within one file.
	byKey := map[string]int{}
	deduped := rows[:0]
	for _, row := range rows {
		if i, ok := byKey[row.ExternalID]; ok {
			deduped[i] = row
			continue
		}
		byKey[row.ExternalID] = len(deduped)
		deduped = append(deduped, row)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(deduped); start += upsertChunkSize {
			end := start + upsertChunkSize
			if end > len(deduped) {
				end = len(deduped)
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "account"}, {Name: "external_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"title", "external_model", "external_wiring",
					"price", "qty", "status", "link", "synced_at", "updated_at",
				}),
			}).Create(deduped[start:end]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("failed to upsert listings: %w", err)
	}

	s.logger.Info("Listings imported",
		zap.String("account", string(account)),
		zap.Int("rows", stats.Rows),
		zap.Int("parsed", stats.Parsed),
		zap.Int("skipped", stats.Skipped))
	return stats, nil
}

// Listings returns the stored listings for one account in engine form.
func (s *Service) Listings(ctx context.Context, account engine.Account) ([]engine.Listing, error) {
	var rows []models.MarketplaceListing
	err := s.db.WithContext(ctx).
		Where("account = ?", string(account)).
		Order("external_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	out := make([]engine.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToSnapshot())
	}
	return out, nil
}

// MatchQuery narrows and orders a matched listing view.
type MatchQuery struct {
	Status engine.MatchStatus
	Search string
	Sort   string
	Desc   bool
}

// Matches returns the account's listings matched against the catalog,
// filtered and sorted per the query.
func (s *Service) Matches(ctx context.Context, account engine.Account, q MatchQuery) ([]engine.MatchedListing, error) {
	if !engine.ValidAccount(account) {
		return nil, fmt.Errorf("unknown account %q", account)
	}
	listings, err := s.Listings(ctx, account)
	if err != nil {
		return nil, err
	}

	items := s.store.Engine().MatchListings(account, listings)
	items = engine.FilterMatches(items, engine.MatchFilter{Status: q.Status, Search: q.Search})
	engine.SortMatches(items, q.Sort, q.Desc)
	return items, nil
}

// ClearAccount removes every stored listing of one account.
func (s *Service) ClearAccount(ctx context.Context, account engine.Account) error {
	if !engine.ValidAccount(account) {
		return fmt.Errorf("unknown account %q", account)
	}
	err := s.db.WithContext(ctx).
		Where("account = ?", string(account)).
		Delete(&models.MarketplaceListing{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear listings: %w", err)
	}
	return nil
}
