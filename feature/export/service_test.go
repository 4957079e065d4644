package export_test

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"hookmap/core/database"
	"hookmap/core/storage/mocks"
	"hookmap/core/writeback"
	"hookmap/feature/catalog"
	"hookmap/feature/export"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	queue := writeback.New(time.Millisecond, zap.NewNop())
	t.Cleanup(queue.Close)

	store := catalog.NewStore(db, queue, zap.NewNop())
	require.NoError(t, store.Migrate())
	require.NoError(t, store.Reload(context.Background()))
	return store
}

func TestBackupUploadsDatedSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddModel(ctx, "C/050", "")
	require.NoError(t, err)

	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "hookmap-backups").Return(true, nil)

	var uploaded []byte
	mockClient.On("PutObject", mock.Anything, "hookmap-backups", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			uploaded = data
		}).
		Return(minio.UploadInfo{}, nil)

	svc := export.NewService(store, mockClient, "hookmap-backups", zap.NewNop())
	objName, err := svc.Backup(ctx)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(objName, "backups/hookmap_"), objName)
	assert.True(t, strings.HasSuffix(objName, ".json"), objName)

	var payload struct {
		Snapshot struct {
			Models []struct {
				Code string `json:"code"`
			} `json:"models"`
		} `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(uploaded, &payload))
	require.Len(t, payload.Snapshot.Models, 1)
	assert.Equal(t, "C/050", payload.Snapshot.Models[0].Code)

	mockClient.AssertExpectations(t)
}

func TestBackupCreatesMissingBucket(t *testing.T) {
	store := newTestStore(t)

	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "hookmap-backups").Return(false, nil)
	mockClient.On("MakeBucket", mock.Anything, "hookmap-backups", mock.Anything).Return(nil)
	mockClient.On("PutObject", mock.Anything, "hookmap-backups", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := export.NewService(store, mockClient, "hookmap-backups", zap.NewNop())
	_, err := svc.Backup(context.Background())
	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestRestoreReplacesCatalog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Current state that the restore must wipe.
	_, err := store.AddModel(ctx, "X/999", "stale")
	require.NoError(t, err)

	backupJSON := `{
		"created_at": "2026-08-01T00:00:00Z",
		"snapshot": {
			"models": [
				{
					"id": "m1",
					"code": "C/050",
					"notes": "restored",
					"vehicles": [
						{
							"id": "v1",
							"name": "Transit",
							"variants": [
								{"id": "w1", "wiring": "13-pin", "code": "59000000000017", "active": true}
							]
						}
					]
				}
			],
			"bank": [{"model": "C/050", "code": "59000000000024"}]
		}
	}`

	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, "hookmap-backups", "backups/hookmap_2026-08-01.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(backupJSON)), nil)

	svc := export.NewService(store, mockClient, "hookmap-backups", zap.NewNop())
	require.NoError(t, svc.Restore(ctx, "backups/hookmap_2026-08-01.json"))

	snap := store.Snapshot()
	require.Len(t, snap.Models, 1)
	assert.Equal(t, "C/050", snap.Models[0].Code)
	assert.Equal(t, "restored", snap.Models[0].Notes)
	require.Len(t, snap.Models[0].Vehicles, 1)
	assert.Equal(t, []string{"59000000000024"}, store.Engine().AvailableFor("C/050"))
	mockClient.AssertExpectations(t)
}
