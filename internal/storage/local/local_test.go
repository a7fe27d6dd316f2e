package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"questionnaire/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStorage_PutGet(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "public", "uploads")
	s := New(dir, "/uploads/")

	content := []byte{0xff, 0xfb, 0x90, 0x00, 0x01, 0x02}
	info, err := s.Put(ctx, "question_3_1.mp3", bytes.NewReader(content), storage.PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: "audio/mpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, "question_3_1.mp3", info.Key)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.Equal(t, "audio/mpeg", info.ContentType)
	assert.Equal(t, "/uploads/question_3_1.mp3", s.PublicURL(info.Key))

	rc, got, err := s.Get(ctx, info.Key)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, b)
	assert.Equal(t, int64(len(content)), got.Size)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must be removed after publish")
}

func TestStorage_PutNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir(), "/uploads")

	_, err := s.Put(ctx, "a.mp3", strings.NewReader("first"), storage.PutObjectOptions{Size: 5})
	require.NoError(t, err)

	_, err = s.Put(ctx, "a.mp3", strings.NewReader("second"), storage.PutObjectOptions{Size: 6})
	assert.ErrorIs(t, err, storage.ErrExists)

	rc, _, err := s.Get(ctx, "a.mp3")
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "first", string(b))
}

func TestStorage_PutReaderFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := New(dir, "/uploads")

	_, err := s.Put(ctx, "broken.mp3", failingReader{}, storage.PutObjectOptions{Size: -1})
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStorage_InvalidKeys(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir(), "/uploads")

	for _, key := range []string{"", ".", "..", "../escape.mp3", "nested/file.mp3", `win\file.mp3`} {
		_, err := s.Put(ctx, key, strings.NewReader("x"), storage.PutObjectOptions{Size: 1})
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)

		_, _, err = s.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
	}
}

func TestStorage_GetMissing(t *testing.T) {
	s := New(t.TempDir(), "/uploads")

	_, _, err := s.Get(context.Background(), "missing.mp3")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_DirectoryBlocked(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "uploads")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := New(blocker, "/uploads")
	_, err := s.Put(context.Background(), "a.mp3", strings.NewReader("x"), storage.PutObjectOptions{Size: 1})
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestStorage_Backend(t *testing.T) {
	s := New("dir", "")
	assert.Equal(t, "local", s.Backend())
	assert.Equal(t, "dir", s.Dir())
	assert.Equal(t, "/a.mp3", s.PublicURL("a.mp3"))
}
