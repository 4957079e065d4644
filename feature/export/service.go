package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hookmap/core/engine"
	"hookmap/core/storage"
	"hookmap/feature/catalog"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service renders catalog exports and ships backups to object storage.
type Service struct {
	store  *catalog.Store
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new export service.
func NewService(store *catalog.Store, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{store: store, client: client, bucket: bucket, logger: logger}
}

// CSV renders the current catalog as a semicolon-separated sheet.
func (s *Service) CSV() ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, s.store.Snapshot()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// backup is the envelope written to object storage.
type backup struct {
	CreatedAt time.Time        `json:"created_at"`
	Snapshot  *engine.Snapshot `json:"snapshot"`
	Stats     engine.Stats     `json:"stats"`
}

// Backup serializes the full snapshot with its current stats and uploads it
// as a dated JSON object. Backups for the same day overwrite each other.
func (s *Service) Backup(ctx context.Context) (string, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	payload := backup{
		CreatedAt: time.Now().UTC(),
		Snapshot:  s.store.Snapshot(),
		Stats:     s.store.Engine().Validate().Stats,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup: %w", err)
	}

	objName := fmt.Sprintf("backups/hookmap_%s.json", payload.CreatedAt.Format("2006-01-02"))
	_, err = s.client.PutObject(ctx, s.bucket, objName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	s.logger.Info("Backup uploaded",
		zap.String("bucket", s.bucket),
		zap.String("object", objName),
		zap.Int("bytes", len(data)))
	return objName, nil
}

// ListBackups returns the stored backup object names, newest last.
func (s *Service) ListBackups(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: "backups/", Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", obj.Err)
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

// Restore loads a backup object and replaces the catalog tables with its
// snapshot. The current data is gone afterwards.
func (s *Service) Restore(ctx context.Context, objName string) error {
	rc, err := s.client.GetObject(ctx, s.bucket, objName, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch backup: %w", err)
	}
	defer rc.Close()

	var payload backup
	if err := json.NewDecoder(rc).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if payload.Snapshot == nil {
		return fmt.Errorf("backup %s has no snapshot", objName)
	}
	if err := s.store.ReplaceAll(ctx, payload.Snapshot); err != nil {
		return err
	}

	s.logger.Info("Backup restored", zap.String("object", objName))
	return nil
}
