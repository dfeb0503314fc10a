package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileHandler stages uploaded resumes and job descriptions on disk
type FileHandler struct {
	uploadsDir string
}

// NewFileHandler creates a new file handler
func NewFileHandler(uploadsDir string) *FileHandler {
	return &FileHandler{
		uploadsDir: uploadsDir,
	}
}

// Dir returns the uploads directory
func (fh *FileHandler) Dir() string {
	return fh.uploadsDir
}

// SaveUploadedFile saves an uploaded file to the uploads directory.
// Only the base name is kept and it is prefixed with a random id, so
// concurrent uploads of the same name never collide.
func (fh *FileHandler) SaveUploadedFile(filename string, content io.Reader) (string, error) {
	// Ensure uploads directory exists
	if err := os.MkdirAll(fh.uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	base := filepath.Base(filepath.Clean("/" + filename))
	if base == "/" || base == "." || strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("invalid upload file name %q", filename)
	}

	filePath := filepath.Join(fh.uploadsDir, uuid.NewString()+"_"+base)
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}

// Remove deletes a staged file; missing files are ignored
func (fh *FileHandler) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// isStagedName reports whether name has the "<uuid>_" prefix that
// SaveUploadedFile gives every staged upload
func isStagedName(name string) bool {
	id, base, ok := strings.Cut(name, "_")
	if !ok || base == "" || len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// ClearUploads removes uploads left behind by earlier runs. Only files named
// like staged uploads are deleted; anything else in the directory is kept.
func (fh *FileHandler) ClearUploads() error {
	if err := os.MkdirAll(fh.uploadsDir, 0755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %w", err)
	}

	entries, err := os.ReadDir(fh.uploadsDir)
	if err != nil {
		return fmt.Errorf("failed to read uploads directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || !isStagedName(entry.Name()) {
			continue
		}
		if err := fh.Remove(filepath.Join(fh.uploadsDir, entry.Name())); err != nil {
			return fmt.Errorf("failed to clear uploads directory: %w", err)
		}
	}
	return nil
}
