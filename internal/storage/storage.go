package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains object storage abstractions for S3-compatible
// backends. Implementations rely on streaming I/O only; no local disk.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1
// and the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable object storage client interface.
// Put overwrites an existing object under the same key; the prescription
// upload workflow depends on that overwrite semantic.
type Storage interface {
	// Put uploads an object under the given key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL granting read access to one
	// object without separate authentication.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
