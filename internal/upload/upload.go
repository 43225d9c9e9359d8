// Package upload validates audio uploads at the HTTP boundary, before
// anything downstream sees them.
package upload

import (
	"path/filepath"
	"strings"

	"guitartab-transcriber/internal/apierr"
	"guitartab-transcriber/internal/config"
)

// allowedExtensions are the audio containers the pipeline accepts.
var allowedExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".flac": true,
	".m4a":  true,
}

// Validate rejects a missing filename, an unsupported extension, a
// file over cfg.MaxUploadBytes, or an empty file.
func Validate(filename string, size int64, cfg config.Config) error {
	if filename == "" {
		return apierr.Invalid("missing filename")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return apierr.Invalid("unsupported file extension: " + ext)
	}
	if size <= 0 {
		return apierr.Invalid("empty file")
	}
	if size > cfg.MaxUploadBytes {
		return apierr.Invalid("file exceeds maximum upload size")
	}
	return nil
}
