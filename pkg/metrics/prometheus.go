// Package metrics provides Prometheus metrics for the scouting board service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultRefreshInterval = 10 * time.Second

// Manager owns every collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Board resolution
	boardResolveLatency    prometheus.Histogram
	boardRecords           *prometheus.GaugeVec
	boardDropped           prometheus.Counter
	boardUnresolvedScouts  prometheus.Counter
	performanceRequests    prometheus.Counter
	entityCount            *prometheus.GaugeVec
	changesApplied         *prometheus.CounterVec
	idempotentDuplicates   prometheus.Counter
	snapshotRebuildLatency prometheus.Histogram
	snapshotLastUnix       prometheus.Gauge
	snapshotCount          prometheus.Counter
	snapshotVersion        prometheus.Gauge

	// Store
	storeLatency *prometheus.HistogramVec
	storeErrors  *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// Init replaces the global manager and its registry with one built from
// opts. It is meant to be called once from main, before handlers that
// serve GetRegistry are created.
func Init(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithRegistry(customRegistry)}, opts...)...)
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoutdesk",
		subsystem:        "board",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauge updaters should sample.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) name(n string) string { return m.metricPrefix + n }

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: m.name(name), Help: help, ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: m.name(name), Help: help, ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	if buckets == nil {
		buckets = m.histogramBuckets
	}
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: m.name(name), Help: help, ConstLabels: m.customLabels, Buckets: buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.boardResolveLatency = auto.NewHistogram(m.histogramOpts("resolve_latency_milliseconds",
		"Time to resolve one board view from a snapshot", nil))
	m.boardRecords = auto.NewGaugeVec(m.gaugeOpts("records",
		"Records in the most recently resolved unfiltered board by bucket"), []string{"bucket"})
	m.boardDropped = auto.NewCounter(m.counterOpts("records_dropped_total",
		"Assignments or shortlist entries skipped because their player is missing"))
	m.boardUnresolvedScouts = auto.NewCounter(m.counterOpts("unresolved_scouts_total",
		"Records rendered with a placeholder scout name"))
	m.performanceRequests = auto.NewCounter(m.counterOpts("performance_summaries_total",
		"Scout performance summaries computed"))
	m.entityCount = auto.NewGaugeVec(m.gaugeOpts("entities",
		"Entities in the current snapshot by kind"), []string{"kind"})
	m.changesApplied = auto.NewCounterVec(m.counterOpts("changes_total",
		"Accepted writes by change kind"), []string{"kind"})
	m.idempotentDuplicates = auto.NewCounter(m.counterOpts("idempotent_duplicates_total",
		"Writes skipped because their Idempotency-Key was already seen"))
	m.snapshotRebuildLatency = auto.NewHistogram(m.histogramOpts("snapshot_rebuild_duration_milliseconds",
		"Time to load the store and index a new snapshot", nil))
	m.snapshotLastUnix = auto.NewGauge(m.gaugeOpts("snapshot_last_unix",
		"Unix timestamp of the last snapshot publish"))
	m.snapshotCount = auto.NewCounter(m.counterOpts("snapshot_count_total",
		"Snapshots published"))
	m.snapshotVersion = auto.NewGauge(m.gaugeOpts("snapshot_version",
		"Data version of the published snapshot"))

	m.storeLatency = auto.NewHistogramVec(m.histogramOpts("store_latency_milliseconds",
		"Store operation latency", nil), []string{"op"})
	m.storeErrors = auto.NewCounterVec(m.counterOpts("store_errors_total",
		"Store operations that failed"), []string{"op"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", nil), []string{"endpoint", "method", "status_code"})

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Change events waiting in the queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Queue size divided by capacity"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Change events enqueued"))
	m.queueDequeued = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Change events dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Change events rejected by the queue"))

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Configured refresh workers"))
	m.workerActiveCount = auto.NewGauge(m.gaugeOpts("worker_active_count", "Refresh workers currently running"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogramOpts("worker_processing_latency_milliseconds",
		"Time a worker spends refreshing for one change event", nil))
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Refresh failures"))

	m.errorsByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total",
		"Errors by component and type"), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes in use"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"Most recent GC pause in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// ObserveBoard records one board resolution. Bucket gauges are only set for
// unfiltered boards so they reflect the whole desk.
func (m *Manager) ObserveBoard(latencyMs float64, counts map[string]int, dropped, unresolved int, filtered bool) {
	if !m.enabled {
		return
	}
	m.boardResolveLatency.Observe(latencyMs)
	m.boardDropped.Add(float64(dropped))
	m.boardUnresolvedScouts.Add(float64(unresolved))
	if filtered {
		return
	}
	for bucket, n := range counts {
		m.boardRecords.WithLabelValues(bucket).Set(float64(n))
	}
}

// ObserveSnapshot records a snapshot publish.
func (m *Manager) ObserveSnapshot(durationMs float64, version uint64, entities map[string]int) {
	if !m.enabled {
		return
	}
	m.snapshotRebuildLatency.Observe(durationMs)
	m.snapshotLastUnix.Set(float64(time.Now().Unix()))
	m.snapshotCount.Inc()
	m.snapshotVersion.Set(float64(version))
	for kind, n := range entities {
		m.entityCount.WithLabelValues(kind).Set(float64(n))
	}
}

// RecordChange counts an accepted write.
func (m *Manager) RecordChange(kind string) {
	if m.enabled {
		m.changesApplied.WithLabelValues(kind).Inc()
	}
}

// RecordStoreOp records a store call and, when err is non-nil, a failure.
func (m *Manager) RecordStoreOp(op string, latencyMs float64, err error) {
	if !m.enabled {
		return
	}
	m.storeLatency.WithLabelValues(op).Observe(latencyMs)
	if err != nil {
		m.storeErrors.WithLabelValues(op).Inc()
	}
}

// RecordHTTP records one served request.
func (m *Manager) RecordHTTP(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError counts an error against a component.
func (m *Manager) RecordError(component, errorType string) {
	if m.enabled {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// Package-level helpers operate on the global manager.

// RefreshInterval is the sampling period of the global manager.
func RefreshInterval() time.Duration { return globalManager.RefreshInterval() }

// ObserveBoard records a board resolution on the global manager.
func ObserveBoard(latencyMs float64, counts map[string]int, dropped, unresolved int, filtered bool) {
	globalManager.ObserveBoard(latencyMs, counts, dropped, unresolved, filtered)
}

// ObserveSnapshot records a snapshot publish on the global manager.
func ObserveSnapshot(durationMs float64, version uint64, entities map[string]int) {
	globalManager.ObserveSnapshot(durationMs, version, entities)
}

// RecordPerformanceSummary counts a performance computation.
func RecordPerformanceSummary() {
	if globalManager.enabled {
		globalManager.performanceRequests.Inc()
	}
}

// RecordChange counts an accepted write.
func RecordChange(kind string) { globalManager.RecordChange(kind) }

// RecordIdempotentDuplicate counts a write skipped by its Idempotency-Key.
func RecordIdempotentDuplicate() {
	if globalManager.enabled {
		globalManager.idempotentDuplicates.Inc()
	}
}

// RecordStoreOp records a store call.
func RecordStoreOp(op string, latencyMs float64, err error) {
	globalManager.RecordStoreOp(op, latencyMs, err)
}

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTP(endpoint, method, statusCode, durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordError(component, errorType)
}

// UpdateQueueStats sets queue size, capacity and utilization together.
func UpdateQueueStats(size, capacity int) {
	if !globalManager.enabled {
		return
	}
	globalManager.queueSize.Set(float64(size))
	globalManager.queueCapacity.Set(float64(capacity))
	if capacity > 0 {
		globalManager.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) { globalManager.workerCount.Set(float64(count)) }

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) { globalManager.workerActiveCount.Set(float64(count)) }

// RecordWorkerProcessingLatency records how long one refresh took.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// UpdateSystemMemoryUsage sets the heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
