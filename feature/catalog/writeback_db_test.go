package catalog

import (
	"context"
	"testing"
	"time"

	"hookmap/core/engine"
	"hookmap/core/writeback"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// newMockedStore builds a store over a mocked connection with one model,
// one vehicle and one variant already in memory, bypassing Reload.
func newMockedStore(t *testing.T, db *gorm.DB) *Store {
	t.Helper()

	// Long enough that edits coalesce instead of the timer firing between
	// them; Flush forces the write in each test.
	queue := writeback.New(5*time.Second, zap.NewNop())
	t.Cleanup(queue.Close)

	s := NewStore(db, queue, zap.NewNop())
	snap := &engine.Snapshot{
		Models: []engine.Model{
			{
				ID:   "m1",
				Code: "C/050",
				Vehicles: []engine.Vehicle{
					{
						ID:   "v1",
						Name: "Transit",
						Variants: []engine.Variant{
							{ID: "w1", Wiring: engine.Wiring13Pin, Active: true},
						},
					},
				},
			},
		},
	}
	s.snap = snap
	s.eng = engine.New(snap)
	return s
}

func TestUpdateVariantFieldWritesSingleColumn(t *testing.T) {
	db, mock := setupMockDB(t)
	s := newMockedStore(t, db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `variants` SET `price`=\\? WHERE id = \\?").
		WithArgs("129.99", "w1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.UpdateVariantField("w1", FieldPrice, "129.99"))
	s.Flush(context.Background())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoalescedEditsWriteOnce(t *testing.T) {
	db, mock := setupMockDB(t)
	s := newMockedStore(t, db)

	// Three rapid edits to the same field must reach the database once,
	// with the last value.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `variants` SET `code`=\\? WHERE id = \\?").
		WithArgs("59000000000031", "w1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.UpdateVariantField("w1", FieldCode, "59000000000017"))
	require.NoError(t, s.UpdateVariantField("w1", FieldCode, "59000000000024"))
	require.NoError(t, s.UpdateVariantField("w1", FieldCode, "59000000000031"))
	s.Flush(context.Background())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetVariantActiveWritesFlag(t *testing.T) {
	db, mock := setupMockDB(t)
	s := newMockedStore(t, db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `variants` SET `active`=\\? WHERE id = \\?").
		WithArgs(false, "w1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.SetVariantActive("w1", false))
	s.Flush(context.Background())

	assert.NoError(t, mock.ExpectationsWereMet())
}
