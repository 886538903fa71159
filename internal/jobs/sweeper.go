package jobs

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"contosocrafts/internal/models"
	"contosocrafts/internal/storage"
)

// Catalog is the read side of the product store.
type Catalog interface {
	GetAll() []*models.Product
}

// ImageSweeper removes files under <webroot>/images that no product refers
// to. Files younger than the grace period are kept so that an image uploaded
// from the create form survives until the form is submitted.
type ImageSweeper struct {
	fs      storage.FileSystem
	catalog Catalog
	webRoot string
	grace   time.Duration
	now     func() time.Time
}

type SweeperOption func(*ImageSweeper)

func WithFileSystem(fsys storage.FileSystem) SweeperOption {
	return func(s *ImageSweeper) { s.fs = fsys }
}

func WithClock(now func() time.Time) SweeperOption {
	return func(s *ImageSweeper) { s.now = now }
}

func NewImageSweeper(catalog Catalog, webRoot string, grace time.Duration, opts ...SweeperOption) *ImageSweeper {
	s := &ImageSweeper{
		fs:      storage.OS{},
		catalog: catalog,
		webRoot: webRoot,
		grace:   grace,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sweep deletes orphaned images and returns how many were removed. Files
// that cannot be removed are logged and skipped.
func (s *ImageSweeper) Sweep() (int, error) {
	imagesDir := filepath.Join(s.webRoot, "images")
	entries, err := s.fs.ReadDir(imagesDir)
	if err != nil {
		return 0, fmt.Errorf("read images directory: %w", err)
	}

	referenced := make(map[string]struct{})
	for _, p := range s.catalog.GetAll() {
		if p == nil {
			continue
		}
		if path, ok := storage.ResolveImagePath(s.webRoot, p.Image); ok {
			referenced[path] = struct{}{}
		}
	}

	now := s.now()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(imagesDir, entry.Name())
		if _, ok := referenced[path]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil || now.Sub(info.ModTime()) < s.grace {
			continue
		}
		if err := s.fs.Remove(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("sweeper: could not remove orphaned image")
			continue
		}
		removed++
	}
	return removed, nil
}
