package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rohmanhakim/arnie-quotes/internal/metadata"
	"github.com/rohmanhakim/arnie-quotes/internal/quote"
	"github.com/rohmanhakim/arnie-quotes/pkg/failure"
	"github.com/rohmanhakim/arnie-quotes/pkg/fileutil"
)

/*
Responsibilities
- Persist the results of one batch as a JSON array
- Create the parent directory of the output file

Output Characteristics
- Same document as the one printed on stdout
- One file per batch, overwritten on rerun
*/

type Sink interface {
	Write(
		path string,
		results []quote.Result,
	) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
	}
}

func (s *LocalSink) Write(
	path string,
	results []quote.Result,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(path, results)
	if err != nil {
		var storageError *StorageError
		errors.As(err, &storageError)
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(storageError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrWritePath, storageError.Path),
			},
		)
		return WriteResult{}, storageError
	}
	return writeResult, nil
}

func write(
	path string,
	results []quote.Result,
) (WriteResult, failure.ClassifiedError) {
	if results == nil {
		results = []quote.Result{}
	}
	content, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return WriteResult{}, &StorageError{
			Message: err.Error(),
			Cause:   ErrCauseEncodeFailure,
			Path:    path,
		}
	}
	content = append(content, '\n')

	outputDir := filepath.Dir(path)
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return WriteResult{}, &StorageError{
			Message: err.Error(),
			Cause:   ErrCausePathError,
			Path:    outputDir,
		}
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		if errors.Is(err, syscall.ENOSPC) {
			cause = ErrCauseDiskFull
			retryable = true // disk full is retryable
		}
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: retryable,
			Cause:     cause,
			Path:      path,
		}
	}

	failed := 0
	for _, result := range results {
		if result.IsFailure() {
			failed++
		}
	}
	return NewWriteResult(path, len(results), failed, len(content)), nil
}
