package media

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageBytes caps prescription uploads; the OCR endpoint rejects larger
// payloads anyway.
const MaxImageBytes = 10 << 20

var jpegMagic = []byte{0xFF, 0xD8, 0xFF}
var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// ReadImage loads a prescription photo from disk and verifies it is a JPEG or
// PNG of acceptable size.
func ReadImage(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.Size() > MaxImageBytes {
		return nil, fmt.Errorf("image %s is %d bytes, limit is %d", filepath.Base(path), info.Size(), MaxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if !isImage(data) {
		return nil, fmt.Errorf("%s is not a JPEG or PNG image", filepath.Base(path))
	}
	return data, nil
}

func isImage(data []byte) bool {
	return bytes.HasPrefix(data, jpegMagic) || bytes.HasPrefix(data, pngMagic)
}

// IsImagePath reports whether path has an image extension. Used to filter the
// picker before any bytes are read.
func IsImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
