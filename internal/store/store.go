// Package store persists the product catalog as a single JSON array file.
//
// Layout under the web root:
//
//	images/              uploaded product images
//	data/products.json   the catalog, always a JSON array
//
// Every mutation re-reads the whole file, changes the in-memory list and
// rewrites the whole file. Read faults degrade to an empty catalog and write
// faults are logged and dropped: callers never see an error from the store.
// A mutex serialises callers of one Store; separate processes writing the
// same file still race, and the last full write wins.
package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"contosocrafts/internal/models"
	"contosocrafts/internal/storage"
)

const (
	imagesDirName = "images"
	dataDirName   = "data"
	dataFileName  = "products.json"
)

type Store struct {
	mu      sync.Mutex
	fs      storage.FileSystem
	webRoot string

	// dataDir resolves the directory holding the JSON file. An empty result
	// aborts a save without writing.
	dataDir func() string
}

type Option func(*Store)

// WithFileSystem replaces the local disk, e.g. with storagetest.MemFS.
func WithFileSystem(fsys storage.FileSystem) Option {
	return func(s *Store) { s.fs = fsys }
}

// New prepares the directory structure under webRoot and returns the store.
// A blank webRoot falls back to "<cwd>/wwwroot".
func New(webRoot string, opts ...Option) *Store {
	s := &Store{fs: storage.OS{}, webRoot: resolveWebRoot(webRoot)}
	s.dataDir = func() string { return filepath.Dir(s.jsonPath()) }
	for _, opt := range opts {
		opt(s)
	}
	s.ensureLayout()
	return s
}

func resolveWebRoot(webRoot string) string {
	if strings.TrimSpace(webRoot) != "" {
		return webRoot
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "wwwroot"
	}
	return filepath.Join(cwd, "wwwroot")
}

func (s *Store) WebRoot() string { return s.webRoot }

func (s *Store) ImagesDir() string { return filepath.Join(s.webRoot, imagesDirName) }

func (s *Store) jsonPath() string {
	return filepath.Join(s.webRoot, dataDirName, dataFileName)
}

func (s *Store) ensureLayout() {
	if !s.fs.DirExists(s.ImagesDir()) {
		s.mkdir(s.ImagesDir())
	}
	s.ensureDir(filepath.Join(s.webRoot, dataDirName))
	if !s.fs.FileExists(s.jsonPath()) {
		s.tryWrite(s.jsonPath(), []byte("[]"))
	}
}

// ensureDir creates dir, first removing a plain file that occupies its path.
func (s *Store) ensureDir(dir string) bool {
	if s.fs.DirExists(dir) {
		return true
	}
	if s.fs.FileExists(dir) {
		s.deleteFile(dir)
	}
	return s.mkdir(dir)
}

func (s *Store) mkdir(dir string) bool {
	if err := s.fs.MkdirAll(dir); err != nil {
		log.Warn().Err(err).Str("path", dir).Msg("store: could not create directory")
		return false
	}
	return true
}

// deleteFile removes path, tolerating missing, locked and denied files.
func (s *Store) deleteFile(path string) {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("store: delete failed, ignoring")
	}
}

// tryWrite is the single place where the best-effort write policy lives:
// a failed write is logged and the change is dropped.
func (s *Store) tryWrite(path string, data []byte) bool {
	if err := s.fs.WriteFile(path, data); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("store: write failed, change dropped")
		return false
	}
	return true
}

// GetAll returns the records in file order. nil entries from literal JSON
// nulls are kept; callers skip them.
func (s *Store) GetAll() []*models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []*models.Product {
	path := s.jsonPath()
	if !s.fs.FileExists(path) {
		return []*models.Product{}
	}
	data, err := s.fs.ReadFile(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("store: read failed, using empty catalog")
		return []*models.Product{}
	}
	if strings.TrimSpace(string(data)) == "" {
		return []*models.Product{}
	}
	var products []*models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("store: malformed catalog, using empty catalog")
		return []*models.Product{}
	}
	if products == nil {
		return []*models.Product{}
	}
	return products
}

// Create appends product and persists the catalog. A nil product is ignored.
func (s *Store) Create(product *models.Product) {
	if product == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	products := s.load()
	products = append(products, product)
	s.save(products)
}

// Update copies the editable fields of product onto the stored record with
// the same id (exact match). Id, maker and ratings are left as stored. It
// reports false when product is nil or no record matches.
func (s *Store) Update(product *models.Product) bool {
	if product == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	products := s.load()
	existing := findExact(products, product.ID)
	if existing == nil {
		return false
	}
	existing.Title = product.Title
	existing.Description = product.Description
	existing.URL = product.URL
	existing.Image = product.Image
	existing.Location = product.Location
	existing.GraduateDegree = product.GraduateDegree
	existing.UnderGraduateDegree = product.UnderGraduateDegree
	existing.TypeOfUniversity = product.TypeOfUniversity
	existing.NumberOfDepartments = product.NumberOfDepartments
	existing.HasOnlinePrograms = product.HasOnlinePrograms
	existing.Campuses = product.Campuses
	s.save(products)
	return true
}

// Delete removes the record whose id matches case-insensitively, together
// with its local image. Blank or unknown ids are ignored.
func (s *Store) Delete(id string) {
	if strings.TrimSpace(id) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	products := s.load()
	idx := -1
	for i, p := range products {
		if p != nil && strings.EqualFold(p.ID, id) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	s.deleteLocalImage(products[idx])
	products = append(products[:idx], products[idx+1:]...)
	s.save(products)
}

func (s *Store) deleteLocalImage(product *models.Product) {
	path, ok := storage.ResolveImagePath(s.webRoot, product.Image)
	if !ok {
		return
	}
	if s.fs.FileExists(path) {
		s.deleteFile(path)
	}
}

// AddRating appends rating to the matching record (exact id).
func (s *Store) AddRating(productID string, rating int) bool {
	if strings.TrimSpace(productID) == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	products := s.load()
	found := findExact(products, productID)
	if found == nil {
		return false
	}
	if found.Ratings == nil {
		found.Ratings = []int{}
	}
	found.Ratings = append(found.Ratings, rating)
	s.save(products)
	return true
}

func findExact(products []*models.Product, id string) *models.Product {
	for _, p := range products {
		if p != nil && p.ID != "" && p.ID == id {
			return p
		}
	}
	return nil
}

// save rewrites the whole catalog. nil entries are not written back.
func (s *Store) save(products []*models.Product) {
	dir := s.dataDir()
	if strings.TrimSpace(dir) == "" {
		log.Warn().Msg("store: data directory unresolved, change dropped")
		return
	}

	out := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if p != nil {
			out = append(out, p)
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("store: encode failed, change dropped")
		return
	}

	path := s.jsonPath()
	if s.fs.FileExists(path) {
		s.deleteFile(path)
	}
	if !s.ensureDir(dir) {
		return
	}
	s.tryWrite(path, data)
}
