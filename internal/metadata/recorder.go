package metadata

import (
	"time"

	"github.com/apex/log"
)

/*
Metadata Collected
- Fetch durations and HTTP status codes
- Cache hits and misses
- Per-identifier outcomes
- Batch summaries

Determinism guarantees:
 - Metadata does not affect control flow
 - Errors do not reorder results

Metadata is write-only.
No component may read metadata to influence resolution decisions.
*/

/*
Recorder captures structured batch events.
It writes each event as an apex/log entry and, when metrics are attached,
updates the matching Prometheus collectors.
It must not:
- perform I/O decisions
- affect control flow
Ordering guarantees:
- Events from concurrent resolutions are interleaved in arrival order.
- Consumers MUST NOT assume total ordering inside a window.
*/
type Recorder struct {
	workerId string
	logger   log.Interface
	metrics  *Metrics
}

// NewRecorder creates a Recorder logging through logger.
// metrics may be nil.
func NewRecorder(workerId string, logger log.Interface, metrics *Metrics) Recorder {
	return Recorder{
		workerId: workerId,
		logger:   logger,
		metrics:  metrics,
	}
}

func (r *Recorder) entry(fields log.Fields) *log.Entry {
	fields["worker"] = r.workerId
	return r.logger.WithFields(fields)
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	fields := log.Fields{
		"package":     packageName,
		"action":      action,
		"cause":       cause.String(),
		"observed_at": observedAt.Format(time.RFC3339Nano),
	}
	for _, attr := range attrs {
		fields[string(attr.Key)] = attr.Value
	}
	r.entry(fields).Warn(errorString)

	if r.metrics != nil {
		r.metrics.errorsTotal.WithLabelValues(cause.String()).Inc()
	}
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
) {
	event := FetchEvent{
		fetchUrl:   fetchUrl,
		httpStatus: httpStatus,
		duration:   duration,
	}
	r.entry(log.Fields{
		string(AttrURL):        event.fetchUrl,
		string(AttrHTTPStatus): event.httpStatus,
		"duration_ms":          event.duration.Milliseconds(),
	}).Debug("fetch")

	if r.metrics != nil {
		r.metrics.fetchesTotal.WithLabelValues(statusLabel(event.httpStatus)).Inc()
		r.metrics.fetchDuration.Observe(event.duration.Seconds())
	}
}

func (r *Recorder) RecordCacheLookup(key string, hit bool) {
	r.entry(log.Fields{
		string(AttrURL): key,
		"hit":           hit,
	}).Debug("cache lookup")

	if r.metrics != nil {
		r.metrics.cacheLookupsTotal.WithLabelValues(cacheLabel(hit)).Inc()
	}
}

func (r *Recorder) RecordResolution(identifier string, success bool) {
	r.entry(log.Fields{
		string(AttrURL): identifier,
		"outcome":       outcomeLabel(success),
	}).Debug("resolved")

	if r.metrics != nil {
		r.metrics.resolutionsTotal.WithLabelValues(outcomeLabel(success)).Inc()
	}
}

/*
RecordBatchStats records a terminal, derived summary of a completed FetchAll call.

Contract:
  - MUST be called exactly once per FetchAll call that passed input validation.
  - MUST be called only after the final window joined.
  - The provided counts MUST be derived from the returned results.
*/
func (r *Recorder) RecordBatchStats(
	totalItems int,
	failedItems int,
	totalWindows int,
	duration time.Duration,
) {
	stats := batchStats{
		totalItems:   totalItems,
		failedItems:  failedItems,
		totalWindows: totalWindows,
		durationMs:   duration.Milliseconds(),
	}

	r.entry(log.Fields{
		"total":       stats.totalItems,
		"failed":      stats.failedItems,
		"windows":     stats.totalWindows,
		"duration_ms": stats.durationMs,
	}).Info("batch complete")

	if r.metrics != nil {
		r.metrics.batchesTotal.Inc()
		r.metrics.batchItemsTotal.Add(float64(stats.totalItems))
		r.metrics.batchWindowsTotal.Add(float64(stats.totalWindows))
		r.metrics.batchDuration.Observe(duration.Seconds())
	}
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
	)

	RecordCacheLookup(key string, hit bool)

	RecordResolution(identifier string, success bool)
}

type BatchFinalizer interface {
	RecordBatchStats(
		totalItems int,
		failedItems int,
		totalWindows int,
		duration time.Duration,
	)
}

// NoopSink implements MetadataSink and BatchFinalizer but does nothing.
// The scheduler (or a test) decides whether to inject a Recorder or a NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration) {}

func (n *NoopSink) RecordCacheLookup(key string, hit bool) {}

func (n *NoopSink) RecordResolution(identifier string, success bool) {}

func (n *NoopSink) RecordBatchStats(totalItems int, failedItems int, totalWindows int, duration time.Duration) {
}
