package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., file) inside this directory.

import "errors"

var (
	// ErrUnavailable means the storage location could not be created, read or written.
	ErrUnavailable = errors.New("document storage unavailable")
	// ErrCorrupt means the stored document could not be decoded.
	ErrCorrupt = errors.New("stored document is corrupt")
)
