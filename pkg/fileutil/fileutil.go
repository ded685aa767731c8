package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/arnie-quotes/pkg/failure"
)

// GetFileExtension extracts the lowercased file extension from a path, or empty string if none
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	// Remove the leading dot
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	if err := os.MkdirAll(filepath.Join(targetPath...), 0755); err != nil {
		return &FileError{
			Message: fmt.Sprintf("%v", err),
			Cause:   ErrCausePathError,
		}
	}
	return nil
}

// ReadFile reads a whole file, separating a missing file from an unreadable one.
func ReadFile(path string) ([]byte, failure.ClassifiedError) {
	if _, err := os.Stat(path); err != nil {
		return nil, &FileError{
			Message: err.Error(),
			Cause:   ErrCauseNotExist,
		}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{
			Message: err.Error(),
			Cause:   ErrCauseReadFailure,
		}
	}
	return content, nil
}
