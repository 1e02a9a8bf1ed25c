// Package storage owns the temporary artifact holding one request's audio
// bytes. An artifact is created right before inference, belongs exclusively
// to that request, and never outlives the handler call.
package storage

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveTemp writes an uploaded file into the platform temp directory under a
// process-unique name that preserves the original extension (inference
// engines dispatch on the suffix). Returns the path of the artifact.
func SaveTemp(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(os.TempDir(), "upload_"+uuid.NewString()+ext)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// O_EXCL guarantees no two requests ever share a path
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := out.ReadFrom(src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return dst, nil
}

// Remove deletes a temp artifact. Removal is best-effort and idempotent: a
// path that is already gone is not an error.
func Remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("[Storage] Failed to remove temp file %s: %v", path, err)
	}
}
