package upload

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"contosocrafts/internal/storage"
	"contosocrafts/internal/storage/storagetest"
)

const root = "/srv/www"

var (
	pngBytes  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
	jpegBytes = []byte{0xFF, 0xD8, 0x01}
	fixedNow  = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
)

// spyFS counts every call that reaches the filesystem.
type spyFS struct {
	storage.FileSystem
	calls int
}

func (s *spyFS) FileExists(p string) bool                { s.calls++; return s.FileSystem.FileExists(p) }
func (s *spyFS) DirExists(p string) bool                 { s.calls++; return s.FileSystem.DirExists(p) }
func (s *spyFS) ReadFile(p string) ([]byte, error)       { s.calls++; return s.FileSystem.ReadFile(p) }
func (s *spyFS) WriteFile(p string, d []byte) error      { s.calls++; return s.FileSystem.WriteFile(p, d) }
func (s *spyFS) MkdirAll(p string) error                 { s.calls++; return s.FileSystem.MkdirAll(p) }
func (s *spyFS) Remove(p string) error                   { s.calls++; return s.FileSystem.Remove(p) }
func (s *spyFS) ReadDir(p string) ([]fs.DirEntry, error) { s.calls++; return s.FileSystem.ReadDir(p) }

func newUploader(mem *storagetest.MemFS) *Uploader {
	return New(root, WithFileSystem(mem), WithClock(func() time.Time { return fixedNow }))
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want ImageType
	}{
		{"png", pngBytes, PNG},
		{"png signature only", pngBytes[:8], PNG},
		{"truncated png", pngBytes[:7], Unknown},
		{"jpeg prefix", []byte{0xFF, 0xD8}, JPEG},
		{"jpeg with marker", []byte{0xFF, 0xD8, 0xFF, 0xE0}, JPEG},
		{"single byte", []byte{0xFF}, Unknown},
		{"gif", []byte("GIF89a"), Unknown},
		{"text", []byte("hello"), Unknown},
		{"empty", nil, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.data); got != tt.want {
				t.Fatalf("Sniff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUploadJPEGScenario(t *testing.T) {
	mem := storagetest.New()
	u := New(root, WithFileSystem(mem))

	res := u.UploadImage(Bytes("photo.jpg", jpegBytes), "My Title")

	if !res.Success || res.Error != "" {
		t.Fatalf("expected success, got %+v", res)
	}
	if !regexp.MustCompile(`^/images/[A-Z0-9]{1,20}_\d{14}\.jpg$`).MatchString(res.ImagePath) {
		t.Fatalf("unexpected image path %q", res.ImagePath)
	}
	if !strings.HasPrefix(res.ImagePath, "/images/MT_") {
		t.Fatalf("expected initials MT, got %q", res.ImagePath)
	}
	stored, err := mem.ReadFile(filepath.Join(root, "images", strings.TrimPrefix(res.ImagePath, "/images/")))
	if err != nil || !bytes.Equal(stored, jpegBytes) {
		t.Fatalf("stored bytes = %v, %v", stored, err)
	}
}

func TestUploadSniffingBeatsFileName(t *testing.T) {
	mem := storagetest.New()
	u := newUploader(mem)

	path, err := u.Upload(Bytes("notes.txt", pngBytes), "University of Washington")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "/images/UOW_20240309140507.png"; path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}

	if _, err := u.Upload(Bytes("photo.png", []byte("plain text")), "Title"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
}

func TestUploadRejections(t *testing.T) {
	tests := []struct {
		name string
		file File
		want error
		msg  string
	}{
		{"nil file", nil, ErrNoFile, "No file provided."},
		{"empty file", Bytes("a.png", nil), ErrNoFile, "No file provided."},
		{"too large", Bytes("a.png", append(append([]byte{}, pngBytes...), make([]byte, MaxSize)...)), ErrTooLarge, "File is too large. Maximum allowed size is 2 MB."},
		{"unsupported", Bytes("a.gif", []byte("GIF89a")), ErrUnsupportedType, "Uploaded file is not a supported image type (png/jpg/jpeg)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storagetest.New()
			u := newUploader(mem)
			_, err := u.Upload(tt.file, "Title")
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if got := Message(err); got != tt.msg {
				t.Fatalf("Message() = %q, want %q", got, tt.msg)
			}
			if mem.DirExists(filepath.Join(root, "images")) {
				t.Fatal("rejected upload should not touch the images directory")
			}
		})
	}
}

func TestUploadExactlyMaxSize(t *testing.T) {
	data := make([]byte, MaxSize)
	copy(data, jpegBytes)
	if _, err := newUploader(storagetest.New()).Upload(Bytes("big.jpg", data), "Big"); err != nil {
		t.Fatalf("2 MiB upload should be accepted, got %v", err)
	}
}

// lyingFile reports a small size but streams more data.
type lyingFile struct{ data []byte }

func (f lyingFile) Size() int64                  { return 10 }
func (f lyingFile) Name() string                 { return "liar.png" }
func (f lyingFile) Open() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(f.data)), nil }

func TestUploadLimitsStreamedBytes(t *testing.T) {
	data := append(append([]byte{}, pngBytes...), make([]byte, MaxSize)...)
	if _, err := newUploader(storagetest.New()).Upload(lyingFile{data: data}, "Liar"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestUploadWriteFailure(t *testing.T) {
	mem := storagetest.New()
	mem.FailWrite = func(string) error { return &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission} }
	u := newUploader(mem)

	_, err := u.Upload(Bytes("a.png", pngBytes), "Title")

	var saveErr *SaveError
	if !errors.As(err, &saveErr) || !saveErr.AccessDenied() {
		t.Fatalf("expected access-denied SaveError, got %v", err)
	}
	if got := Message(err); got != "Could not save upload: access denied." {
		t.Fatalf("Message() = %q", got)
	}

	mem.FailWrite = func(string) error { return errors.New("disk full") }
	_, err = u.Upload(Bytes("a.png", pngBytes), "Title")
	if got := Message(err); got != "Could not save upload: disk full" {
		t.Fatalf("Message() = %q", got)
	}
	if !errors.As(err, &saveErr) || saveErr.AccessDenied() {
		t.Fatalf("expected generic SaveError, got %v", err)
	}
}

func TestReplaceRemovesPreviousImage(t *testing.T) {
	mem := storagetest.New()
	old := filepath.Join(root, "images", "OLD_20200101000000.png")
	mem.PutFile(old, pngBytes, fixedNow)
	u := newUploader(mem)

	path, err := u.Replace(Bytes("new.jpg", jpegBytes), "New Title", "/images/OLD_20200101000000.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "/images/NT_20240309140507.jpg" {
		t.Fatalf("unexpected path %q", path)
	}
	if mem.FileExists(old) {
		t.Fatal("expected previous image to be removed")
	}
}

func TestReplaceIgnoresRemoteAndMissingPrevious(t *testing.T) {
	for _, previous := range []string{"https://cdn.example.com/a.png", "/images/missing.png", ""} {
		mem := storagetest.New()
		if _, err := newUploader(mem).Replace(Bytes("a.png", pngBytes), "Title", previous); err != nil {
			t.Errorf("Replace with previous %q: %v", previous, err)
		}
	}
}

func TestReplaceDeleteFailureKeepsOldImage(t *testing.T) {
	mem := storagetest.New()
	old := filepath.Join(root, "images", "OLD.png")
	mem.PutFile(old, pngBytes, fixedNow)
	mem.FailRemove = func(string) error { return fs.ErrPermission }
	u := newUploader(mem)

	_, err := u.Replace(Bytes("a.png", pngBytes), "Title", "/images/OLD.png")

	var saveErr *SaveError
	if !errors.As(err, &saveErr) || !saveErr.AccessDenied() {
		t.Fatalf("expected access-denied SaveError, got %v", err)
	}
	entries, _ := mem.ReadDir(filepath.Join(root, "images"))
	if len(entries) != 1 {
		t.Fatalf("expected only the old image to remain, got %d entries", len(entries))
	}
}

func TestReplaceValidatesBeforeDeleting(t *testing.T) {
	mem := storagetest.New()
	old := filepath.Join(root, "images", "OLD.png")
	mem.PutFile(old, pngBytes, fixedNow)

	_, err := newUploader(mem).Replace(Bytes("a.txt", []byte("text")), "Title", "/images/OLD.png")

	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
	if !mem.FileExists(old) {
		t.Fatal("old image must survive a rejected replacement")
	}
}

func TestDeleteImage(t *testing.T) {
	mem := storagetest.New()
	img := filepath.Join(root, "images", "UW.png")
	mem.PutFile(img, pngBytes, fixedNow)
	u := newUploader(mem)

	if res := u.DeleteImage("/images/UW.png"); !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if mem.FileExists(img) {
		t.Fatal("expected image to be removed")
	}
	if res := u.DeleteImage("/images/UW.png"); !res.Success {
		t.Fatalf("missing file should count as deleted, got %+v", res)
	}
}

func TestDeleteImageRejectsWithoutFilesystemAccess(t *testing.T) {
	tests := []struct {
		path string
		msg  string
	}{
		{"../etc/passwd", "Invalid image path."},
		{"/images/../data/products.json", "Invalid image path."},
		{"/uploads/a.png", "Invalid image path."},
		{"https://cdn.example.com/images/a.png", "Invalid image path."},
		{"", "No image path provided."},
		{"   ", "No image path provided."},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			spy := &spyFS{FileSystem: storagetest.New()}
			u := New(root, WithFileSystem(spy))
			res := u.DeleteImage(tt.path)
			if res.Success || res.Error != tt.msg {
				t.Fatalf("DeleteImage(%q) = %+v, want error %q", tt.path, res, tt.msg)
			}
			if spy.calls != 0 {
				t.Fatalf("expected no filesystem access, got %d calls", spy.calls)
			}
		})
	}
}

func TestDeleteImageBackslashes(t *testing.T) {
	mem := storagetest.New()
	img := filepath.Join(root, "images", "UW.jpg")
	mem.PutFile(img, jpegBytes, fixedNow)

	if res := newUploader(mem).DeleteImage(`\images\UW.jpg`); !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if mem.FileExists(img) {
		t.Fatal("expected image to be removed")
	}
}

func TestUploadToRealDisk(t *testing.T) {
	dir := t.TempDir()
	u := New(dir, WithClock(func() time.Time { return fixedNow }))

	path, err := u.Upload(Bytes("a.png", pngBytes), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !regexp.MustCompile(`^/images/[0-9a-f]{8}_20240309140507\.png$`).MatchString(path) {
		t.Fatalf("expected random fallback initials, got %q", path)
	}
	if !(storage.OS{}).FileExists(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(path, "/")))) {
		t.Fatal("expected file on disk")
	}
}
