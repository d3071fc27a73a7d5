package tcos

import (
	"context"
	"io"
)

// RemoteStore is the object-storage boundary the orchestrator talks to.
// Implementations translate transport failures into *StoreError so callers
// only ever see the code/name/message triple.
type RemoteStore interface {
	// HeadExists probes for an object. A missing object is (false, nil),
	// not an error; any other probe failure is returned as is.
	HeadExists(ctx context.Context, bucket, key string) (bool, error)

	// Put writes an object and returns its remote metadata.
	Put(ctx context.Context, bucket, key string, body io.Reader) (PutResult, error)
}

// PutResult is the remote response metadata kept per uploaded file.
type PutResult struct {
	Location string
	ETag     string
}
