package upload

import "bytes"

// ImageType is the format detected from an upload's leading bytes.
type ImageType int

const (
	Unknown ImageType = iota
	PNG
	JPEG
)

var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegSignature = []byte{0xFF, 0xD8}
)

// Sniff classifies data by magic number only. File names and client
// content types are never consulted.
func Sniff(data []byte) ImageType {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return PNG
	case bytes.HasPrefix(data, jpegSignature):
		return JPEG
	default:
		return Unknown
	}
}

// Ext returns the extension stored files get for t.
func (t ImageType) Ext() string {
	switch t {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	default:
		return ""
	}
}

func (t ImageType) String() string {
	switch t {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}
