package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PublicPrefix is the URL prefix under which stored images are served.
const PublicPrefix = "/uploads/"

// Saver persists uploaded images to a local directory
type Saver struct {
	dir string
	log *logrus.Logger
}

// NewSaver creates the upload directory if needed and returns a Saver
func NewSaver(dir string, log *logrus.Logger) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Saver{dir: dir, log: log}, nil
}

// Save writes an uploaded file under a randomized name and returns the
// public path it will be served from. Randomizing the name keeps concurrent
// uploads with the same client filename from clobbering each other.
func (s *Saver) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	name := uuid.New().String() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	s.log.Debugf("Stored upload %s as %s", header.Filename, name)
	return PublicPrefix + name, nil
}

// Sweep deletes stored images that are not in the referenced set and are
// older than the grace period. Cause updates and deletes leave replaced
// images behind; this reclaims them.
func (s *Saver) Sweep(referenced map[string]bool, olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read upload directory: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if referenced[PublicPrefix+entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			s.log.Errorf("Failed to remove orphaned upload %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}
	if removed > 0 {
		s.log.Infof("Removed %d orphaned uploads", removed)
	}
	return removed, nil
}
