// Package storage wraps the MinIO client for the object storage kg-sync reads
// input files from and writes run reports to. It works against AWS S3 and
// self-hosted MinIO alike.
//
// The Client interface keeps only the calls kg-sync makes, so tests can use
// the testify mock in core/storage/mocks.
//
// # Helpers
//
//   - EnsureBucket: creates the report bucket on first use
//   - Upload: writes a byte slice with a content type
//   - ParseURI: splits s3://bucket/key input locations
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	bucket, key, err := storage.ParseURI("s3://feeds/products.json", cfg.Storage.Bucket)
//	body, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
package storage
