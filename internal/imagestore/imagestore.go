// Package imagestore is the image hosting collaborator. The core only ever
// sees opaque URLs; this package turns uploads into URLs and supports the
// compensating delete used when complaint creation fails halfway.
package imagestore

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"civicgrid/backend/internal/apperr"

	"github.com/google/uuid"
)

// Store persists uploaded images and returns their public URLs.
type Store interface {
	Save(r io.Reader, origName string) (string, error)
	Delete(url string) error
}

// DiskStore keeps images on the local filesystem and serves them under
// BaseURL. Stands in for a hosted image service in deployments without one.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Upstream("image store init", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *DiskStore) Save(r io.Reader, origName string) (string, error) {
	ext := filepath.Ext(origName)
	name := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return "", apperr.Upstream("image save", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", apperr.Upstream("image save", err)
	}
	return fmt.Sprintf("%s/%s", d.BaseURL, name), nil
}

func (d *DiskStore) Delete(url string) error {
	name := filepath.Base(url)
	// Refuse anything that would escape the upload directory.
	if name == "" || name == "." || strings.Contains(name, "..") {
		return apperr.Validation("url", "not a stored image URL")
	}
	if err := os.Remove(filepath.Join(d.Dir, name)); err != nil && !os.IsNotExist(err) {
		return apperr.Upstream("image delete", err)
	}
	return nil
}

// Cleanup deletes already-uploaded images after a failed create. Failures
// here are logged and swallowed; the original error matters more.
func Cleanup(s Store, urls []string) {
	for _, u := range urls {
		if err := s.Delete(u); err != nil {
			log.Printf("ERROR: Image cleanup failed for %s: %v", u, err)
		}
	}
}
