package fetcher_test

import (
	"sync"
	"time"

	"github.com/rohmanhakim/arnie-quotes/internal/metadata"
)

// mockMetadataSink is a test double for metadata.MetadataSink
type mockMetadataSink struct {
	mu          sync.Mutex
	fetchEvents []fetchEvent
	errorEvents []errorEvent
}

type fetchEvent struct {
	fetchUrl   string
	httpStatus int
	duration   time.Duration
}

type errorEvent struct {
	observedAt  time.Time
	packageName string
	action      string
	cause       metadata.ErrorCause
	details     string
	attrs       []metadata.Attribute
}

func (m *mockMetadataSink) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchEvents = append(m.fetchEvents, fetchEvent{
		fetchUrl:   fetchUrl,
		httpStatus: httpStatus,
		duration:   duration,
	})
}

func (m *mockMetadataSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorEvents = append(m.errorEvents, errorEvent{
		observedAt:  observedAt,
		packageName: packageName,
		action:      action,
		cause:       cause,
		details:     details,
		attrs:       attrs,
	})
}

func (m *mockMetadataSink) RecordCacheLookup(key string, hit bool) {}

func (m *mockMetadataSink) RecordResolution(identifier string, success bool) {}
