package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"questionnaire/internal/storage"
)

// Storage keeps media files in a single directory that is served publicly under a URL prefix.
// It is safe for concurrent use by multiple goroutines.
type Storage struct {
	dir    string
	prefix string
}

var _ storage.Storage = (*Storage)(nil)

// New returns a filesystem storage rooted at dir. prefix is prepended to object names
// to build public references (e.g. "/uploads").
func New(dir, prefix string) *Storage {
	return &Storage{dir: dir, prefix: strings.TrimRight(prefix, "/")}
}

// Dir returns the directory holding the media files.
func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) Backend() string {
	return "local"
}

// Put writes r to a temp file inside the media directory and links it to its final name.
// Linking fails when the name is taken, so concurrent uploads never clobber each other.
func (s *Storage) Put(ctx context.Context, name string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	if err := validName(name); err != nil {
		return storage.ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return storage.ObjectInfo{}, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("%w: create media directory: %v", storage.ErrUnavailable, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*.tmp")
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("%w: create temp file: %v", storage.ErrUnavailable, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("%w: write temp file: %v", storage.ErrUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("%w: sync temp file: %v", storage.ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("%w: close temp file: %v", storage.ErrUnavailable, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("%w: chmod temp file: %v", storage.ErrUnavailable, err)
	}

	final := filepath.Join(s.dir, name)
	if err := os.Link(tmpPath, final); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return storage.ObjectInfo{}, fmt.Errorf("%w: %s", storage.ErrExists, name)
		}
		return storage.ObjectInfo{}, fmt.Errorf("%w: publish %s: %v", storage.ErrUnavailable, name, err)
	}

	st, err := os.Stat(final)
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("%w: stat %s: %v", storage.ErrUnavailable, name, err)
	}
	return storage.ObjectInfo{
		Key:          name,
		Size:         written,
		ContentType:  opt.ContentType,
		LastModified: st.ModTime(),
		Metadata:     opt.Metadata,
	}, nil
}

// Get opens a stored file for reading.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	if err := validName(key); err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ObjectInfo{}, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return nil, storage.ObjectInfo{}, fmt.Errorf("%w: open %s: %v", storage.ErrUnavailable, key, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, storage.ObjectInfo{}, fmt.Errorf("%w: stat %s: %v", storage.ErrUnavailable, key, err)
	}
	return f, storage.ObjectInfo{Key: key, Size: st.Size(), LastModified: st.ModTime()}, nil
}

// PublicURL joins the public prefix and the object name.
func (s *Storage) PublicURL(key string) string {
	return s.prefix + "/" + key
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", storage.ErrInvalidKey, name)
	}
	return nil
}
