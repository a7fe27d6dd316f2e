package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Media backends supported by the upload endpoint.
const (
	MediaBackendLocal = "local"
	MediaBackendMinIO = "minio"
)

// DocumentConfig holds settings for the JSON file that stores the question set.
type DocumentConfig struct {
	Dir      string
	Filename string
}

// Path returns the full path of the document file.
func (c DocumentConfig) Path() string {
	return filepath.Join(c.Dir, c.Filename)
}

// MediaConfig holds settings for uploaded audio files.
type MediaConfig struct {
	Backend        string
	Dir            string
	PublicPrefix   string
	MaxUploadBytes int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string
	Document DocumentConfig
	Media    MediaConfig
	MinIO    MinIOConfig
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		Document: DocumentConfig{
			Dir:      getEnv("DATA_DIR", "data"),
			Filename: getEnv("DOCUMENT_FILE", "questions.json"),
		},
		Media: MediaConfig{
			Backend:        getEnv("MEDIA_BACKEND", MediaBackendLocal),
			Dir:            getEnv("MEDIA_DIR", filepath.Join("public", "uploads")),
			PublicPrefix:   getEnv("MEDIA_PUBLIC_PREFIX", "/uploads"),
			MaxUploadBytes: getEnvInt("MAX_UPLOAD_BYTES", 20<<20),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", ""),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
