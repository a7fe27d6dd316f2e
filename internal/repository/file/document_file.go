package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"questionnaire/internal/model"
	"questionnaire/internal/repository"
)

// DocumentFile is a repository.DocumentRepository backed by a single JSON file.
// Writes are serialized and go through a temp file plus rename, so readers never
// observe a partially written document.
type DocumentFile struct {
	path string
	// mu serializes writers; readers rely on rename atomicity and take no lock.
	mu sync.Mutex
}

// NewDocumentFile creates a repository for the document stored at path.
func NewDocumentFile(path string) *DocumentFile {
	return &DocumentFile{path: path}
}

var _ repository.DocumentRepository = (*DocumentFile)(nil)

// Path returns the location of the document file.
func (r *DocumentFile) Path() string {
	return r.path
}

// EnsureReady creates the directory holding the document file.
func (r *DocumentFile) EnsureReady(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %v", repository.ErrUnavailable, err)
	}
	return nil
}

// Read loads the document. A missing file is the initial state and yields an empty document.
func (r *DocumentFile) Read(ctx context.Context) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.EmptyDocument(), nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", repository.ErrUnavailable, r.path, err)
	}

	var doc model.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}
	return doc.Normalize(), nil
}

// Write replaces the document file with doc.
func (r *DocumentFile) Write(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: nil document", repository.ErrCorrupt)
	}

	out := model.Document{Questions: doc.Questions, AudioURLs: doc.AudioURLs}
	b, err := json.MarshalIndent(out.Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.EnsureReady(ctx); err != nil {
		return err
	}
	if err := writeAtomic(r.path, b); err != nil {
		return fmt.Errorf("%w: write %s: %v", repository.ErrUnavailable, r.path, err)
	}
	return nil
}

// Ping checks that the directory of the document file exists and is a directory.
func (r *DocumentFile) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(r.path)
	st, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", repository.ErrUnavailable, dir)
	}
	return nil
}

// writeAtomic writes b to a temp file next to path, syncs it and renames it into place.
func writeAtomic(path string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(b); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	committed = true
	return nil
}
