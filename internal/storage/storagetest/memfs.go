// Package storagetest provides an in-memory storage.FileSystem with hooks for
// injecting faults in tests.
package storagetest

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemFS keeps files and directories in maps keyed by cleaned path. The Fail*
// hooks, when set, are consulted before the operation and their error is
// returned instead of performing it.
type MemFS struct {
	mu    sync.Mutex
	files map[string]memFile
	dirs  map[string]struct{}

	FailRead   func(path string) error
	FailWrite  func(path string) error
	FailRemove func(path string) error
	FailMkdir  func(path string) error

	// Now stamps written files; defaults to time.Now.
	Now func() time.Time
}

type memFile struct {
	data    []byte
	modTime time.Time
}

func New() *MemFS {
	return &MemFS{
		files: map[string]memFile{},
		dirs:  map[string]struct{}{},
	}
}

func (m *MemFS) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *MemFS) FileExists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

func (m *MemFS) DirExists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.dirs[filepath.Clean(path)]
	return ok
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	if m.FailRead != nil {
		if err := m.FailRead(path); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), f.data...), nil
}

func (m *MemFS) WriteFile(path string, data []byte) error {
	if m.FailWrite != nil {
		if err := m.FailWrite(path); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if _, ok := m.dirs[filepath.Dir(path)]; !ok {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if _, ok := m.dirs[path]; ok {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrExist}
	}
	m.files[path] = memFile{data: append([]byte(nil), data...), modTime: m.now()}
	return nil
}

// MkdirAll fails with fs.ErrExist when a file occupies any component.
func (m *MemFS) MkdirAll(path string) error {
	if m.FailMkdir != nil {
		if err := m.FailMkdir(path); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	for p := path; ; p = filepath.Dir(p) {
		if _, ok := m.files[p]; ok {
			return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
		}
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}
	for p := path; ; p = filepath.Dir(p) {
		m.dirs[p] = struct{}{}
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}
	return nil
}

func (m *MemFS) Remove(path string) error {
	if m.FailRemove != nil {
		if err := m.FailRemove(path); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if _, ok := m.dirs[path]; ok {
		prefix := path + string(filepath.Separator)
		for p := range m.files {
			if strings.HasPrefix(p, prefix) {
				return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrExist}
			}
		}
		delete(m.dirs, path)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
}

func (m *MemFS) ReadDir(path string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if _, ok := m.dirs[path]; !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	var entries []fs.DirEntry
	for p, f := range m.files {
		if filepath.Dir(p) == path {
			entries = append(entries, fs.FileInfoToDirEntry(fileInfo{name: filepath.Base(p), size: int64(len(f.data)), modTime: f.modTime}))
		}
	}
	for p := range m.dirs {
		if p != path && filepath.Dir(p) == path {
			entries = append(entries, fs.FileInfoToDirEntry(fileInfo{name: filepath.Base(p), dir: true}))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// PutFile stores data at path, creating parent directories. It bypasses the
// fault hooks so tests can seed state.
func (m *MemFS) PutFile(path string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	for p := filepath.Dir(path); ; p = filepath.Dir(p) {
		m.dirs[p] = struct{}{}
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}
	m.files[path] = memFile{data: append([]byte(nil), data...), modTime: modTime}
}

type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
	dir     bool
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) ModTime() time.Time { return fi.modTime }
func (fi fileInfo) IsDir() bool        { return fi.dir }
func (fi fileInfo) Sys() any           { return nil }

func (fi fileInfo) Mode() fs.FileMode {
	if fi.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
