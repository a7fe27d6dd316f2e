package repository

import (
	"context"

	"questionnaire/internal/model"
)

// DocumentRepository owns durable read/replace access to the question set.
// Validation belongs to the service layer.
type DocumentRepository interface {
	// EnsureReady creates the storage location if it is missing. Calling it again is a no-op.
	EnsureReady(ctx context.Context) error

	// Read returns the last written document, or an empty one if nothing was ever written.
	Read(ctx context.Context) (*model.Document, error)

	// Write replaces the stored document as a whole. Concurrent readers see either
	// the previous or the new document, never a partial one.
	Write(ctx context.Context, doc *model.Document) error

	// Ping reports whether the storage location is reachable.
	Ping(ctx context.Context) error
}
