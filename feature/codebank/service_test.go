package codebank_test

import (
	"context"
	"testing"
	"time"

	"hookmap/core/database"
	"hookmap/core/writeback"
	"hookmap/feature/catalog"
	"hookmap/feature/codebank"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*codebank.Service, *catalog.Store) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	queue := writeback.New(time.Millisecond, zap.NewNop())
	t.Cleanup(queue.Close)

	store := catalog.NewStore(db, queue, zap.NewNop())
	require.NoError(t, store.Migrate())
	require.NoError(t, store.Reload(context.Background()))
	return codebank.NewService(store, zap.NewNop()), store
}

func TestAddCodesSplitsAndValidates(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := store.AddModel(ctx, "C/050", "")
	require.NoError(t, err)

	raw := "59000000000017, 59000000000024;59000000000031\nnot-a-code 123"
	result, err := svc.AddCodes(ctx, "C/050", raw)
	require.NoError(t, err)

	assert.False(t, result.ModelCreated)
	assert.Equal(t, []string{"59000000000017", "59000000000024", "59000000000031"}, result.Added)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, "not-a-code", result.Skipped[0].Code)
	assert.Equal(t, codebank.ReasonInvalid, result.Skipped[0].Reason)
	assert.Equal(t, "123", result.Skipped[1].Code)

	assert.Equal(t, result.Added, store.Engine().AvailableFor("C/050"))
}

func TestAddCodesSkipsAlreadyBanked(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddCodes(ctx, "C/050", "59000000000017")
	require.NoError(t, err)

	result, err := svc.AddCodes(ctx, "C/050", "59000000000017 59000000000024")
	require.NoError(t, err)
	assert.Equal(t, []string{"59000000000024"}, result.Added)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, codebank.ReasonAlreadyBanked, result.Skipped[0].Reason)
}

func TestAddCodesDedupesWithinPaste(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.AddCodes(context.Background(), "C/050", "59000000000017 59000000000017")
	require.NoError(t, err)
	assert.Equal(t, []string{"59000000000017"}, result.Added)
	assert.Empty(t, result.Skipped)
}

func TestAddCodesCreatesUnknownModel(t *testing.T) {
	svc, store := newTestService(t)

	result, err := svc.AddCodes(context.Background(), "w018", "59000000000017")
	require.NoError(t, err)
	assert.True(t, result.ModelCreated)
	assert.Equal(t, "W/018", result.Model)

	require.Len(t, store.Snapshot().Models, 1)
	assert.Equal(t, "W/018", store.Snapshot().Models[0].Code)
}

func TestAddCodesWithoutValidCodesDoesNotCreateModel(t *testing.T) {
	svc, store := newTestService(t)

	result, err := svc.AddCodes(context.Background(), "W/018", "garbage, 123")
	require.NoError(t, err)
	assert.False(t, result.ModelCreated)
	assert.Empty(t, result.Added)
	assert.Len(t, result.Skipped, 2)
	assert.Empty(t, store.Snapshot().Models)
}

func TestBankListsCodesAndAvailability(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddCodes(ctx, "C/050", "59000000000017 59000000000024")
	require.NoError(t, err)

	m := store.Snapshot().Models[0]
	_, err = store.AddVehicle(ctx, m.ID, "Transit")
	require.NoError(t, err)
	variantID := store.Snapshot().Models[0].Vehicles[0].Variants[0].ID
	require.NoError(t, store.UpdateVariantField(variantID, catalog.FieldCode, "59000000000017"))

	bank := svc.Bank("c050")
	assert.Equal(t, "C/050", bank.Model)
	assert.Equal(t, []string{"59000000000017", "59000000000024"}, bank.Codes)
	assert.Equal(t, []string{"59000000000024"}, bank.Available)
}

func TestAddCodesWarnsOnConflictButStillAdds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddCodes(ctx, "C/050", "59000000000017")
	require.NoError(t, err)

	result, err := svc.AddCodes(ctx, "W/018", "59000000000017")
	require.NoError(t, err)

	assert.Equal(t, []string{"59000000000017"}, result.Added)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, codebank.ReasonBankConflict, result.Warnings[0].Reason)
	assert.Equal(t, []string{"C/050"}, result.Warnings[0].Models)

	conflicts := svc.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "59000000000017", conflicts[0].Code)
	assert.ElementsMatch(t, []string{"C/050", "W/018"}, conflicts[0].Models)
}

func TestAddCodesWarnsOnUsageUnderOtherModel(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	m, err := store.AddModel(ctx, "C/029", "")
	require.NoError(t, err)
	_, err = store.AddVehicle(ctx, m.ID, "Caddy")
	require.NoError(t, err)
	variantID := store.Snapshot().Models[0].Vehicles[0].Variants[0].ID
	require.NoError(t, store.UpdateVariantField(variantID, catalog.FieldCode, "59000000000017"))
	store.Flush(ctx)

	result, err := svc.AddCodes(ctx, "W/018", "59000000000017")
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, codebank.ReasonInUse, result.Warnings[0].Reason)
	assert.Equal(t, []string{"C/029"}, result.Warnings[0].Models)
}

func TestRemoveAndClear(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddCodes(ctx, "C/050", "59000000000017 59000000000024")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveCode(ctx, "C/050", "59000000000017"))
	assert.Equal(t, []string{"59000000000024"}, store.Engine().AvailableFor("C/050"))

	require.NoError(t, svc.ClearModel(ctx, "C/050"))
	assert.Empty(t, store.Engine().AvailableFor("C/050"))
}
