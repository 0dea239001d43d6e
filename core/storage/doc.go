// Package storage wraps the S3-compatible object storage client (MinIO).
//
// The inventory projection archive uploads every published projection as a JSON
// object and reads it back on startup, so that a restarted process can serve the
// last known inventory before its first sync cycle completes.
//
// Client is an interface so tests can substitute mocks.Client.
package storage
