package offers_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"hookmap/core/database"
	"hookmap/core/engine"
	"hookmap/core/writeback"
	"hookmap/feature/catalog"
	"hookmap/feature/offers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*offers.Service, *catalog.Store) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	queue := writeback.New(time.Millisecond, zap.NewNop())
	t.Cleanup(queue.Close)

	store := catalog.NewStore(db, queue, zap.NewNop())
	require.NoError(t, store.Migrate())
	require.NoError(t, store.Reload(context.Background()))

	svc := offers.NewService(db, store, zap.NewNop())
	require.NoError(t, svc.Migrate())
	return svc, store
}

func importCSV(t *testing.T, svc *offers.Service, account engine.Account, lines ...string) offers.ImportStats {
	t.Helper()
	stats, err := svc.Import(context.Background(), account, strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return stats
}

func TestImportUpsertsOnReimport(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	importCSV(t, svc, engine.AccountMain,
		"id,title,price",
		"111,Old title,10.00",
	)
	importCSV(t, svc, engine.AccountMain,
		"id,title,price",
		"111,New title,12.50",
		"222,Second offer,20.00",
	)

	listings, err := svc.Listings(ctx, engine.AccountMain)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "New title", listings[0].Title)
	assert.Equal(t, 12.50, listings[0].Price)
	assert.Equal(t, "222", listings[1].ExternalID)
}

func TestImportLastOccurrenceWinsWithinFile(t *testing.T) {
	svc, _ := newTestService(t)

	importCSV(t, svc, engine.AccountMain,
		"id,title",
		"111,First",
		"111,Last",
	)

	listings, err := svc.Listings(context.Background(), engine.AccountMain)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Last", listings[0].Title)
}

func TestImportKeepsAccountsSeparate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	importCSV(t, svc, engine.AccountMain, "id,title", "111,Main offer")
	importCSV(t, svc, engine.AccountPartner, "id,title", "111,Partner offer")

	main, err := svc.Listings(ctx, engine.AccountMain)
	require.NoError(t, err)
	partner, err := svc.Listings(ctx, engine.AccountPartner)
	require.NoError(t, err)
	require.Len(t, main, 1)
	require.Len(t, partner, 1)
	assert.Equal(t, "Main offer", main[0].Title)
	assert.Equal(t, "Partner offer", partner[0].Title)
}

func TestImportRejectsUnknownAccount(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Import(context.Background(), "ebay", strings.NewReader("id\n111"))
	assert.Error(t, err)
}

func TestMatchesAgainstCatalog(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	m, err := store.AddModel(ctx, "C/050", "")
	require.NoError(t, err)
	_, err = store.AddVehicle(ctx, m.ID, "Transit")
	require.NoError(t, err)
	variantID := store.Snapshot().Models[0].Vehicles[0].Variants[0].ID
	require.NoError(t, store.UpdateVariantField(variantID, "listings:"+string(engine.AccountMain), "111"))
	store.Flush(ctx)

	importCSV(t, svc, engine.AccountMain,
		"id,title",
		"111,Mapped offer",
		"999,Unknown offer",
	)

	items, err := svc.Matches(ctx, engine.AccountMain, offers.MatchQuery{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Default order puts unmapped before mapped.
	assert.Equal(t, "999", items[0].ExternalID)
	assert.Equal(t, engine.StatusUnmapped, items[0].MatchStatus)
	assert.Equal(t, "111", items[1].ExternalID)
	assert.Equal(t, engine.StatusMapped, items[1].MatchStatus)
	require.NotNil(t, items[1].Match)
	assert.Equal(t, "C/050", items[1].Match.Model)
}

func TestMatchesFilterByStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	importCSV(t, svc, engine.AccountMain,
		"id,title",
		"111,One",
		"222,Two",
	)

	items, err := svc.Matches(ctx, engine.AccountMain, offers.MatchQuery{Status: engine.StatusMapped})
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = svc.Matches(ctx, engine.AccountMain, offers.MatchQuery{Status: engine.StatusUnmapped})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestClearAccount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	importCSV(t, svc, engine.AccountMain, "id,title", "111,One")
	importCSV(t, svc, engine.AccountPartner, "id,title", "222,Two")

	require.NoError(t, svc.ClearAccount(ctx, engine.AccountMain))

	main, err := svc.Listings(ctx, engine.AccountMain)
	require.NoError(t, err)
	assert.Empty(t, main)

	partner, err := svc.Listings(ctx, engine.AccountPartner)
	require.NoError(t, err)
	assert.Len(t, partner, 1)
}
