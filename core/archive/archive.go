package archive

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"rinksync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Config holds configuration for the feed snapshot archive.
type Config struct {
	// Enabled toggles snapshot archiving.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Prefix is the object name prefix for snapshots.
	Prefix string `mapstructure:"prefix" default:"snapshots/"`
	// RetentionDays is how long snapshots are kept before pruning.
	RetentionDays int `mapstructure:"retention_days" default:"90"`
}

// Archiver stores raw feed snapshots in object storage and prunes them
// past the retention horizon. Snapshots exist for forensics: when a run
// aborts on a load failure, the last good payloads show what changed.
type Archiver struct {
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger
}

// New creates an archiver writing to the given bucket.
func New(client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "snapshots/"
	}
	return &Archiver{client: client, bucket: bucket, cfg: cfg, logger: logger}
}

// EnsureBucket creates the snapshot bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check snapshot bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create snapshot bucket: %w", err)
	}
	return nil
}

// Store uploads one raw feed payload under a date-keyed object name and
// returns that name.
func (a *Archiver) Store(ctx context.Context, body []byte, at time.Time) (string, error) {
	objectName := a.cfg.Prefix + at.UTC().Format("2006/01/02/feed-150405.ics")

	_, err := a.client.PutObject(ctx, a.bucket, objectName,
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "text/calendar"})
	if err != nil {
		return "", fmt.Errorf("failed to store feed snapshot: %w", err)
	}

	a.logger.Debug("feed snapshot stored",
		zap.String("object", objectName),
		zap.Int("bytes", len(body)),
	)
	return objectName, nil
}

// Prune removes snapshots whose last modification predates the
// retention horizon. Returns the number of objects removed.
func (a *Archiver) Prune(ctx context.Context, now time.Time) (int, error) {
	if a.cfg.RetentionDays <= 0 {
		return 0, nil
	}
	cutoff := now.UTC().AddDate(0, 0, -a.cfg.RetentionDays)

	removed := 0
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    a.cfg.Prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return removed, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if !strings.HasPrefix(obj.Key, a.cfg.Prefix) || !obj.LastModified.Before(cutoff) {
			continue
		}
		if err := a.client.RemoveObject(ctx, a.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			a.logger.Warn("failed to prune snapshot", zap.String("object", obj.Key), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		a.logger.Info("pruned expired snapshots", zap.Int("removed", removed))
	}
	return removed, nil
}
