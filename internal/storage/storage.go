package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains blob storage abstractions for uploaded media.
// Implementations: local filesystem (subpackage local) and S3-compatible object stores (MinIO).

var (
	// ErrExists is returned by Put when an object with the same key is already stored.
	ErrExists = errors.New("object already exists")
	// ErrNotFound is returned by Get for unknown keys.
	ErrNotFound = errors.New("object not found")
	// ErrUnavailable wraps backend failures (permissions, disk, network).
	ErrUnavailable = errors.New("media storage unavailable")
	// ErrInvalidKey is returned for keys that would escape the storage root.
	ErrInvalidKey = errors.New("invalid object key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
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

// Storage places uploaded blobs in durable, publicly reachable storage.
type Storage interface {
	// Put stores the content of r under name. The object only becomes visible once fully
	// written, and an existing object is never overwritten (ErrExists).
	Put(ctx context.Context, name string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// PublicURL returns the reference clients use to fetch the object.
	PublicURL(key string) string
	// Backend names the implementation, e.g. "local" or "minio".
	Backend() string
}
