package storage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxImageSize is the upload cap for resource images.
const MaxImageSize = 2 << 20 // 2MB

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// ValidateImageFile checks extension and size before anything touches R2.
func ValidateImageFile(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("unsupported image type %q, use png, jpg, jpeg or webp", ext)
	}
	if header.Size > MaxImageSize {
		return fmt.Errorf("image exceeds the 2MB limit")
	}
	return nil
}
