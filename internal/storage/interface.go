package storage

import (
	"context"
	"io"
)

// SignatureStore persists proof-of-delivery signature blobs. Stops reference
// blobs by the opaque key returned from Save; the allocation core never
// inspects blob contents.
type SignatureStore interface {
	// Save stores a blob and returns its reference key.
	Save(ctx context.Context, data io.Reader) (string, error)

	// Open returns a reader for a previously stored blob.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)

	// Delete removes a stored blob.
	Delete(ctx context.Context, ref string) error
}
