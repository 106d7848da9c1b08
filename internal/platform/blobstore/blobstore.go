// Package blobstore stores result-file binaries. The service keeps only
// metadata in Postgres; bytes live here, handed to clients through
// short-lived signed URLs.
package blobstore

import (
	"context"
	"io"
	"time"
)

// SignedURLTTL is how long a download link stays valid.
const SignedURLTTL = 5 * time.Minute

type Store interface {
	// Put writes the object under key. size may be -1 when unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// SignedURL returns a pre-authenticated download URL valid for SignedURLTTL.
	SignedURL(ctx context.Context, key string) (string, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
