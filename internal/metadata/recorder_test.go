package metadata_test

import (
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rohmanhakim/arnie-quotes/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecorderForTest(t *testing.T) (metadata.Recorder, *memory.Handler, *prometheus.Registry) {
	t.Helper()
	handler := memory.New()
	logger := &log.Logger{Handler: handler, Level: log.DebugLevel}
	registry := prometheus.NewRegistry()
	metrics, err := metadata.NewMetrics(registry)
	require.NoError(t, err)
	return metadata.NewRecorder("test-worker", logger, metrics), handler, registry
}

// metricValue sums the counter or histogram sample count of every series in a family.
func metricValue(t *testing.T, registry *prometheus.Registry, name string, labelValue string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			if labelValue != "" {
				matched := false
				for _, label := range m.GetLabel() {
					if label.GetValue() == labelValue {
						matched = true
					}
				}
				if !matched {
					continue
				}
			}
			if m.GetCounter() != nil {
				total += m.GetCounter().GetValue()
			}
			if m.GetHistogram() != nil {
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return total
}

func TestRecorder_RecordFetch(t *testing.T) {
	recorder, handler, registry := newRecorderForTest(t)

	recorder.RecordFetch("https://a", 200, 15*time.Millisecond)
	recorder.RecordFetch("https://b", 500, 5*time.Millisecond)

	require.Len(t, handler.Entries, 2)
	entry := handler.Entries[0]
	assert.Equal(t, "fetch", entry.Message)
	assert.Equal(t, log.DebugLevel, entry.Level)
	assert.Equal(t, "https://a", entry.Fields.Get("url"))
	assert.Equal(t, 200, entry.Fields.Get("http_status"))
	assert.Equal(t, "test-worker", entry.Fields.Get("worker"))

	assert.Equal(t, 1.0, metricValue(t, registry, "arnie_quotes_fetches_total", "200"))
	assert.Equal(t, 1.0, metricValue(t, registry, "arnie_quotes_fetches_total", "500"))
	assert.Equal(t, 2.0, metricValue(t, registry, "arnie_quotes_fetch_duration_seconds", ""))
}

func TestRecorder_RecordCacheLookup(t *testing.T) {
	recorder, handler, registry := newRecorderForTest(t)

	recorder.RecordCacheLookup("https://a", false)
	recorder.RecordCacheLookup("https://a", true)
	recorder.RecordCacheLookup("https://a", true)

	require.Len(t, handler.Entries, 3)
	assert.Equal(t, true, handler.Entries[1].Fields.Get("hit"))
	assert.Equal(t, 2.0, metricValue(t, registry, "arnie_quotes_cache_lookups_total", "hit"))
	assert.Equal(t, 1.0, metricValue(t, registry, "arnie_quotes_cache_lookups_total", "miss"))
}

func TestRecorder_RecordError(t *testing.T) {
	recorder, handler, registry := newRecorderForTest(t)

	recorder.RecordError(
		time.Now(),
		"resolver",
		"Resolver.Resolve",
		metadata.CauseUpstreamRejected,
		"gone",
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, "https://b"),
			metadata.NewAttr(metadata.AttrHTTPStatus, "500"),
		},
	)

	require.Len(t, handler.Entries, 1)
	entry := handler.Entries[0]
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Equal(t, "gone", entry.Message)
	assert.Equal(t, "upstream_rejected", entry.Fields.Get("cause"))
	assert.Equal(t, "https://b", entry.Fields.Get("url"))
	assert.Equal(t, "500", entry.Fields.Get("http_status"))
	assert.Equal(t, 1.0, metricValue(t, registry, "arnie_quotes_errors_total", "upstream_rejected"))
}

func TestRecorder_RecordResolution(t *testing.T) {
	recorder, _, registry := newRecorderForTest(t)

	recorder.RecordResolution("https://a", true)
	recorder.RecordResolution("https://b", false)
	recorder.RecordResolution("https://c", true)

	assert.Equal(t, 2.0, metricValue(t, registry, "arnie_quotes_resolutions_total", "success"))
	assert.Equal(t, 1.0, metricValue(t, registry, "arnie_quotes_resolutions_total", "failure"))
}

func TestRecorder_RecordBatchStats(t *testing.T) {
	recorder, handler, registry := newRecorderForTest(t)

	recorder.RecordBatchStats(25, 3, 3, 120*time.Millisecond)

	require.Len(t, handler.Entries, 1)
	entry := handler.Entries[0]
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, "batch complete", entry.Message)
	assert.Equal(t, 25, entry.Fields.Get("total"))
	assert.Equal(t, 3, entry.Fields.Get("failed"))
	assert.Equal(t, int64(120), entry.Fields.Get("duration_ms"))

	assert.Equal(t, 1.0, metricValue(t, registry, "arnie_quotes_batches_total", ""))
	assert.Equal(t, 25.0, metricValue(t, registry, "arnie_quotes_batch_items_total", ""))
	assert.Equal(t, 3.0, metricValue(t, registry, "arnie_quotes_batch_windows_total", ""))
}

func TestRecorder_WithoutMetrics(t *testing.T) {
	handler := memory.New()
	recorder := metadata.NewRecorder("w", &log.Logger{Handler: handler, Level: log.DebugLevel}, nil)

	assert.NotPanics(t, func() {
		recorder.RecordFetch("https://a", 200, time.Millisecond)
		recorder.RecordCacheLookup("https://a", true)
		recorder.RecordResolution("https://a", true)
		recorder.RecordBatchStats(1, 0, 1, time.Millisecond)
	})
	assert.Len(t, handler.Entries, 4)
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := metadata.NewMetrics(registry)
	require.NoError(t, err)

	_, err = metadata.NewMetrics(registry)
	assert.Error(t, err)
}

func TestErrorCause_String(t *testing.T) {
	assert.Equal(t, "network_failure", metadata.CauseNetworkFailure.String())
	assert.Equal(t, "malformed_response", metadata.CauseMalformedResponse.String())
	assert.Equal(t, "content_invalid", metadata.CauseContentInvalid.String())
	assert.Equal(t, "invariant_violation", metadata.CauseInvariantViolation.String())
	assert.Equal(t, "storage_failure", metadata.CauseStorageFailure.String())
	assert.Equal(t, "unknown", metadata.CauseUnknown.String())
}

func TestNoopSink_ImplementsInterfaces(t *testing.T) {
	var _ metadata.MetadataSink = &metadata.NoopSink{}
	var _ metadata.BatchFinalizer = &metadata.NoopSink{}
	recorder, _, _ := newRecorderForTest(t)
	var _ metadata.MetadataSink = &recorder
	var _ metadata.BatchFinalizer = &recorder
}
