package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the toolkit
type Registry struct {
	// Graph Metrics
	GraphsLoaded     prometheus.Counter
	GraphNodesTotal  prometheus.Gauge
	GraphEdgesTotal  prometheus.Gauge
	GraphLoadErrors  prometheus.Counter
	SubsetFiltered   prometheus.Counter

	// Analysis Metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	PathsEnumerated  prometheus.Counter
	CriticalPaths    prometheus.Histogram

	// Assessment Metrics
	SessionsSaved     prometheus.Counter
	SessionsLoaded    prometheus.Counter
	AssessmentsScored prometheus.Counter

	// Export Metrics
	ExportFilesTotal  *prometheus.CounterVec
	ExportDuration    prometheus.Histogram
	ExportErrorsTotal prometheus.Counter

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initGraphMetrics()
	r.initAnalysisMetrics()
	r.initAssessmentMetrics()
	r.initExportMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
