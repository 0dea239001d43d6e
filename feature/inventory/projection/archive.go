package projection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"inventory-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// Archive keeps the last published projection in object storage so a
// restarted process can serve stale data while the database is unreachable.
type Archive struct {
	client storage.Client
	bucket string
	key    string
}

// NewArchive creates an archive writing to bucket/key.
func NewArchive(client storage.Client, bucket, key string) *Archive {
	return &Archive{client: client, bucket: bucket, key: key}
}

// Save uploads the projection as JSON, creating the bucket if needed.
func (a *Archive) Save(ctx context.Context, p *Projection) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode projection: %w", err)
	}
	_, err = a.client.PutObject(ctx, a.bucket, a.key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", a.bucket, a.key, err)
	}
	return nil
}

// Load downloads and decodes the archived projection.
func (a *Archive) Load(ctx context.Context) (*Projection, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, a.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", a.bucket, a.key, err)
	}
	defer obj.Close()

	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", a.bucket, a.key, err)
	}

	var p Projection
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", a.bucket, a.key, err)
	}
	return &p, nil
}
