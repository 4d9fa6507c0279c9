// Package storage is the object-store boundary for asset attachments.
// The core only handles opaque keys and metadata; binary content never
// flows through the asset records.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ObjectStore stores attachment binaries by opaque key.
type ObjectStore interface {
	// Put stores the content and returns the generated key.
	Put(content io.Reader, originalName string) (key string, size int64, err error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(key string) error
	// URLFor returns a URL a client can fetch the object from.
	URLFor(key string) string
}

// DiskStore keeps objects as files under a base directory, keyed by
// uuid plus the original extension.
type DiskStore struct {
	baseDir string
	baseURL string
}

// NewDiskStore ensures the directory exists. baseURL is the public
// prefix downloads are served from (e.g. "/files").
func NewDiskStore(baseDir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", baseDir, err)
	}
	return &DiskStore{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *DiskStore) Put(content io.Reader, originalName string) (string, int64, error) {
	key := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	f, err := os.Create(filepath.Join(d.baseDir, key))
	if err != nil {
		return "", 0, fmt.Errorf("creating object %s: %w", key, err)
	}
	defer f.Close()

	size, err := io.Copy(f, content)
	if err != nil {
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("writing object %s: %w", key, err)
	}
	return key, size, nil
}

func (d *DiskStore) Delete(key string) error {
	err := os.Remove(filepath.Join(d.baseDir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}
	return nil
}

func (d *DiskStore) URLFor(key string) string {
	return d.baseURL + "/" + filepath.Base(key)
}

// Dir exposes the base directory for static file serving.
func (d *DiskStore) Dir() string { return d.baseDir }
