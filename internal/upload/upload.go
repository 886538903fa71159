// Package upload validates product images and stores them under the web
// root's images directory.
//
// Uploads are classified by content (see Sniff) and saved as
// "<INITIALS>_<yyyyMMddHHmmss>.<png|jpg>" using the product title. The
// returned web path ("/images/...") is what gets stored on the product.
//
// Example usage:
//
//	u := upload.New(webRoot)
//	path, err := u.Upload(upload.FromMultipart(header), title)
//	if err != nil {
//		msg := upload.Message(err)
//		...
//	}
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"contosocrafts/internal/storage"
	"contosocrafts/internal/utils"
)

// MaxSize is the largest accepted upload, 2 MiB.
const MaxSize = 2 * 1024 * 1024

const timestampLayout = "20060102150405"

var (
	ErrNoFile          = errors.New("no file provided")
	ErrTooLarge        = errors.New("file exceeds maximum size")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrNoPath          = errors.New("no image path provided")
	ErrInvalidPath     = errors.New("invalid image path")
)

// SaveError reports a filesystem fault while storing an upload or removing
// the image it replaces.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	if e.AccessDenied() {
		return "could not save upload: access denied"
	}
	return "could not save upload: " + e.Err.Error()
}

func (e *SaveError) Unwrap() error { return e.Err }

// AccessDenied reports whether the underlying fault was a permission error.
func (e *SaveError) AccessDenied() bool { return storage.IsAccessDenied(e.Err) }

// Message converts an upload error into the text shown to users.
func Message(err error) string {
	var saveErr *SaveError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFile):
		return "No file provided."
	case errors.Is(err, ErrTooLarge):
		return "File is too large. Maximum allowed size is 2 MB."
	case errors.Is(err, ErrUnsupportedType):
		return "Uploaded file is not a supported image type (png/jpg/jpeg)."
	case errors.Is(err, ErrNoPath):
		return "No image path provided."
	case errors.Is(err, ErrInvalidPath):
		return "Invalid image path."
	case errors.As(err, &saveErr):
		if saveErr.AccessDenied() {
			return "Could not save upload: access denied."
		}
		return "Could not save upload: " + saveErr.Err.Error()
	default:
		return err.Error()
	}
}

// Result is the JSON body returned by the AJAX image endpoints.
type Result struct {
	Success   bool   `json:"success"`
	ImagePath string `json:"imagePath,omitempty"`
	Error     string `json:"error,omitempty"`
}

// File is an uploaded file as handed over by the HTTP layer.
type File interface {
	Size() int64
	// Name is the client file name. It is only used for logging.
	Name() string
	Open() (io.ReadCloser, error)
}

type multipartFile struct {
	header *multipart.FileHeader
}

// FromMultipart adapts a parsed multipart file. A nil header yields a nil
// File, which uploads reject with ErrNoFile.
func FromMultipart(header *multipart.FileHeader) File {
	if header == nil {
		return nil
	}
	return multipartFile{header: header}
}

func (f multipartFile) Size() int64  { return f.header.Size }
func (f multipartFile) Name() string { return f.header.Filename }

func (f multipartFile) Open() (io.ReadCloser, error) { return f.header.Open() }

type bytesFile struct {
	name string
	data []byte
}

// Bytes wraps an in-memory buffer as a File.
func Bytes(name string, data []byte) File {
	return bytesFile{name: name, data: data}
}

func (f bytesFile) Size() int64  { return int64(len(f.data)) }
func (f bytesFile) Name() string { return f.name }

func (f bytesFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type Uploader struct {
	fs      storage.FileSystem
	webRoot string
	now     func() time.Time
}

type Option func(*Uploader)

func WithFileSystem(fsys storage.FileSystem) Option {
	return func(u *Uploader) { u.fs = fsys }
}

// WithClock overrides the time source used for file name timestamps.
func WithClock(now func() time.Time) Option {
	return func(u *Uploader) { u.now = now }
}

func New(webRoot string, opts ...Option) *Uploader {
	u := &Uploader{fs: storage.OS{}, webRoot: webRoot, now: time.Now}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Uploader) imagesDir() string {
	return filepath.Join(u.webRoot, "images")
}

// Upload validates f and writes it into the images directory. It returns the
// web path of the stored file.
func (u *Uploader) Upload(f File, title string) (string, error) {
	data, kind, err := u.read(f)
	if err != nil {
		return "", err
	}
	return u.write(data, kind, title)
}

// Replace behaves like Upload but first removes previous when it is a local
// image. The new file is validated before anything is deleted; a failed
// delete aborts the upload with a *SaveError.
func (u *Uploader) Replace(f File, title, previous string) (string, error) {
	data, kind, err := u.read(f)
	if err != nil {
		return "", err
	}
	if path, ok := storage.ResolveImagePath(u.webRoot, previous); ok && u.fs.FileExists(path) {
		if err := u.fs.Remove(path); err != nil {
			return "", &SaveError{Err: err}
		}
		log.Debug().Str("path", path).Msg("upload: removed replaced image")
	}
	return u.write(data, kind, title)
}

// Delete removes a previously uploaded image. Paths outside /images/ are
// rejected before the filesystem is touched; an already missing file counts
// as deleted.
func (u *Uploader) Delete(imagePath string) error {
	if strings.TrimSpace(imagePath) == "" {
		return ErrNoPath
	}
	path, ok := storage.ResolveImagePath(u.webRoot, imagePath)
	if !ok {
		return ErrInvalidPath
	}
	if !u.fs.FileExists(path) {
		return nil
	}
	if err := u.fs.Remove(path); err != nil {
		return &SaveError{Err: err}
	}
	return nil
}

// UploadImage runs Upload and packs the outcome into a Result.
func (u *Uploader) UploadImage(f File, title string) Result {
	path, err := u.Upload(f, title)
	if err != nil {
		return Result{Error: Message(err)}
	}
	return Result{Success: true, ImagePath: path}
}

// DeleteImage runs Delete and packs the outcome into a Result.
func (u *Uploader) DeleteImage(imagePath string) Result {
	if err := u.Delete(imagePath); err != nil {
		return Result{Error: Message(err)}
	}
	return Result{Success: true}
}

func (u *Uploader) read(f File) ([]byte, ImageType, error) {
	if f == nil || f.Size() <= 0 {
		return nil, Unknown, ErrNoFile
	}
	if f.Size() > MaxSize {
		return nil, Unknown, ErrTooLarge
	}
	rc, err := f.Open()
	if err != nil {
		return nil, Unknown, &SaveError{Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxSize+1))
	if err != nil {
		return nil, Unknown, &SaveError{Err: err}
	}
	if len(data) == 0 {
		return nil, Unknown, ErrNoFile
	}
	if len(data) > MaxSize {
		return nil, Unknown, ErrTooLarge
	}

	kind := Sniff(data)
	if kind == Unknown {
		log.Debug().Str("file", utils.SanitizeFilename(f.Name())).Msg("upload: rejected unsupported content")
		return nil, Unknown, ErrUnsupportedType
	}
	return data, kind, nil
}

func (u *Uploader) write(data []byte, kind ImageType, title string) (string, error) {
	dir := u.imagesDir()
	if err := u.fs.MkdirAll(dir); err != nil {
		return "", &SaveError{Err: err}
	}
	name := fmt.Sprintf("%s_%s%s", utils.BuildInitials(title), u.now().UTC().Format(timestampLayout), kind.Ext())
	if err := u.fs.WriteFile(filepath.Join(dir, name), data); err != nil {
		return "", &SaveError{Err: err}
	}
	log.Info().Str("path", name).Int("size", len(data)).Str("type", kind.String()).Msg("upload: image stored")
	return storage.ImagePrefix + name, nil
}
