// Package storage persists uploaded pet photos on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxPhotoBytes caps photo uploads at 2MB.
const MaxPhotoBytes = 2 << 20

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// PhotoStore saves and removes pet photos under a base directory. Stored
// photos are addressed by an opaque key; public URLs are the configured base
// URL joined with the key.
type PhotoStore struct {
	dir     string
	baseURL string
}

// NewPhotoStore creates the store, ensuring the directory exists.
func NewPhotoStore(dir, baseURL string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	return &PhotoStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// AllowedPhoto reports whether the uploaded file has an accepted extension
// and size.
func AllowedPhoto(header *multipart.FileHeader) bool {
	if header.Size > MaxPhotoBytes {
		return false
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	return allowedPhotoExtensions[ext]
}

// Save writes the uploaded file under a fresh key and returns the key.
func (s *PhotoStore) Save(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return key, nil
}

// Delete removes a stored photo. A missing file is not an error; the row is
// the source of truth.
func (s *PhotoStore) Delete(key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL returns the public URL for a stored photo key.
func (s *PhotoStore) URL(key string) string {
	return s.baseURL + "/" + path.Join("storage", key)
}
