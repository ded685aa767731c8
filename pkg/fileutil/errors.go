package fileutil

import (
	"fmt"

	"github.com/rohmanhakim/arnie-quotes/pkg/failure"
)

type FileErrorCause string

const (
	ErrCausePathError   FileErrorCause = "path error"
	ErrCauseNotExist    FileErrorCause = "file does not exist"
	ErrCauseReadFailure FileErrorCause = "read failed"
)

// FileError is always fatal: every file the program touches is named by the user.
type FileError struct {
	Message string
	Cause   FileErrorCause
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s: %s", e.Cause, e.Message)
}

func (e *FileError) Severity() failure.Severity {
	return failure.SeverityFatal
}
