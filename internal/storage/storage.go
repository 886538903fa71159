// Package storage defines the filesystem capability used by the product store
// and the upload workflow. Every check and mutation goes through FileSystem so
// tests can substitute in-memory or fault-injecting implementations.
package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type FileSystem interface {
	// FileExists reports whether path exists and is not a directory.
	FileExists(path string) bool
	DirExists(path string) bool
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	MkdirAll(path string) error
	Remove(path string) error
	ReadDir(path string) ([]fs.DirEntry, error)
}

// OS is the FileSystem backed by the local disk.
type OS struct{}

func (OS) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (OS) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OS) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (OS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (OS) Remove(path string) error {
	return os.Remove(path)
}

func (OS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// IsAccessDenied reports whether err is a permission fault.
func IsAccessDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// ImagePrefix is the web path under which uploaded images are served.
const ImagePrefix = "/images/"

// ResolveImagePath maps a stored image reference such as
// "/images/UW_20240101000000.png" to its location under webRoot. Backslashes
// are normalised first. ok is false for remote URLs, other prefixes, and
// paths that would escape the images directory.
func ResolveImagePath(webRoot, image string) (string, bool) {
	if strings.TrimSpace(webRoot) == "" || strings.TrimSpace(image) == "" {
		return "", false
	}
	normalized := strings.ReplaceAll(image, "\\", "/")
	if !strings.HasPrefix(normalized, ImagePrefix) {
		return "", false
	}
	imagesDir := filepath.Clean(filepath.Join(webRoot, "images"))
	target := filepath.Join(webRoot, filepath.FromSlash(strings.TrimLeft(normalized, "/")))
	if !strings.HasPrefix(target, imagesDir+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}
