package storage

import (
	"context"
	"strings"
	"testing"

	"questionnaire/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantMsg string
	}{
		{name: "missing endpoint", cfg: config.MinIOConfig{}, wantMsg: "endpoint is required"},
		{name: "missing credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000"}, wantMsg: "credentials are required"},
		{name: "missing bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, wantMsg: "bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(tt.cfg)
			assert.Nil(t, s)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestMinioBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/audio",
		minioBaseURL(config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "audio"}))
	assert.Equal(t, "https://s3.example.com/audio",
		minioBaseURL(config.MinIOConfig{Endpoint: "s3.example.com", Bucket: "audio", UseSSL: true}))
	assert.Equal(t, "https://cdn.example.com/audio",
		minioBaseURL(config.MinIOConfig{Endpoint: "minio:9000", Bucket: "audio", PublicBaseURL: "https://cdn.example.com/"}))
}

func TestMinioStorage_PutInvalidKey(t *testing.T) {
	m := &minioStorage{bucket: "audio", baseURL: "http://localhost:9000/audio"}

	_, err := m.Put(context.Background(), "nested/key.mp3", strings.NewReader("x"), PutObjectOptions{Size: 1})
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.Equal(t, "http://localhost:9000/audio/audios/a.mp3", m.PublicURL("audios/a.mp3"))
	assert.Equal(t, "minio", m.Backend())
}
