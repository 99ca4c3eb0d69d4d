package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphsLoaded = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "astrarisk_graphs_loaded_total",
			Help: "Total number of threat graphs loaded from CSV",
		},
	)

	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "astrarisk_graph_nodes",
			Help: "Number of threats in the current graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "astrarisk_graph_edges",
			Help: "Number of relations in the current graph",
		},
	)

	r.GraphLoadErrors = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "astrarisk_graph_load_errors_total",
			Help: "Total number of failed graph loads",
		},
	)

	r.SubsetFiltered = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "astrarisk_subset_filtered_threats_total",
			Help: "Total number of threats removed by subset filtering",
		},
	)
}

func (r *Registry) initAnalysisMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "astrarisk_analyses_total",
			Help: "Total number of analyses run",
		},
		[]string{"status"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "astrarisk_analysis_duration_seconds",
			Help:    "Full analysis duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0},
		},
	)

	r.PathsEnumerated = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "astrarisk_paths_enumerated_total",
			Help: "Total number of simple paths enumerated",
		},
	)

	r.CriticalPaths = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "astrarisk_critical_paths_per_analysis",
			Help:    "Unique critical paths found per analysis",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		},
	)
}

func (r *Registry) initAssessmentMetrics() {
	r.SessionsSaved = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "astrarisk_sessions_saved_total",
			Help: "Total number of assessment sessions saved",
		},
	)

	r.SessionsLoaded = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "astrarisk_sessions_loaded_total",
			Help: "Total number of assessment sessions loaded",
		},
	)

	r.AssessmentsScored = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "astrarisk_assessments_scored_total",
			Help: "Total number of threat-asset assessments scored",
		},
	)
}

func (r *Registry) initExportMetrics() {
	r.ExportFilesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "astrarisk_export_files_total",
			Help: "Total number of export files written",
		},
		[]string{"format"},
	)

	r.ExportDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "astrarisk_export_duration_seconds",
			Help:    "Export duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.ExportErrorsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "astrarisk_export_errors_total",
			Help: "Total number of failed exports",
		},
	)
}
