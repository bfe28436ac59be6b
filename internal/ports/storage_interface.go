package ports

import (
	"context"
	"time"
)

// BlobStorage is the blob side of the service. CopyFromURL moves an uploaded
// object from its temporary location into permanent storage and returns the
// permanent key. The copy is not transactional and is never rolled back.
type BlobStorage interface {
	CopyFromURL(ctx context.Context, sourceURL string) (string, error)
	PresignGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
}
