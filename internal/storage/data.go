package storage

// Persistence

type WriteResult struct {
	path        string
	resultCount int
	failedCount int
	bytes       int
}

func NewWriteResult(
	path string,
	resultCount int,
	failedCount int,
	bytes int,
) WriteResult {
	return WriteResult{
		path:        path,
		resultCount: resultCount,
		failedCount: failedCount,
		bytes:       bytes,
	}
}

func (w *WriteResult) Path() string {
	return w.path
}

func (w *WriteResult) ResultCount() int {
	return w.resultCount
}

func (w *WriteResult) FailedCount() int {
	return w.failedCount
}

func (w *WriteResult) Bytes() int {
	return w.bytes
}
