// Package blob abstracts where todo attachments live. The default keeps the
// bytes inline in the todos row; deployments with an S3-compatible backend
// store them as objects and keep only the key in the row.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store persists attachment payloads addressed by an opaque key.
type Store interface {
	Put(ctx context.Context, key string, content []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewStorageKey returns a fresh object key, partitioned by date so bucket
// listings stay manageable.
func NewStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("attachments/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}
