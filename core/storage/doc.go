// Package storage provides an abstraction layer for object storage.
//
// It wraps the MinIO Go client behind a small interface so the feed
// snapshot archive can run against AWS S3 or a self-hosted MinIO, and so
// tests can substitute the mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: verify or create the snapshot bucket.
//   - PutObject: store a feed snapshot.
//   - GetObject: retrieve a snapshot for inspection.
//   - ListObjects: enumerate snapshots for retention pruning.
//   - RemoveObject: delete an expired snapshot.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
