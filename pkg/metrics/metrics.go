package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	dto "github.com/prometheus/client_model/go"
)

// RecordGraphLoad records a successful graph load and its size.
func (r *Registry) RecordGraphLoad(nodes, edges uint64) {
	r.GraphsLoaded.Inc()
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}

// RecordGraphLoadError records a failed graph load.
func (r *Registry) RecordGraphLoadError() {
	r.GraphLoadErrors.Inc()
}

// RecordSubsetFilter records threats removed by subset filtering.
func (r *Registry) RecordSubsetFilter(removed int) {
	r.SubsetFiltered.Add(float64(removed))
}

// RecordAnalysis records a completed analysis run.
func (r *Registry) RecordAnalysis(status string, duration time.Duration, pathsEnumerated, criticalPaths int) {
	r.AnalysesTotal.WithLabelValues(status).Inc()
	r.AnalysisDuration.Observe(duration.Seconds())
	r.PathsEnumerated.Add(float64(pathsEnumerated))
	r.CriticalPaths.Observe(float64(criticalPaths))
}

// RecordSessionSaved records a session written to the store.
func (r *Registry) RecordSessionSaved() {
	r.SessionsSaved.Inc()
}

// RecordSessionLoaded records a session read from the store.
func (r *Registry) RecordSessionLoaded() {
	r.SessionsLoaded.Inc()
}

// RecordAssessments records pairs scored by a recomputation.
func (r *Registry) RecordAssessments(scored int) {
	r.AssessmentsScored.Add(float64(scored))
}

// RecordExport records export files written in one export pass.
func (r *Registry) RecordExport(format string, files int, duration time.Duration) {
	r.ExportFilesTotal.WithLabelValues(format).Add(float64(files))
	r.ExportDuration.Observe(duration.Seconds())
}

// RecordExportError records a failed export.
func (r *Registry) RecordExportError() {
	r.ExportErrorsTotal.Inc()
}

// Summary gathers all registered metrics and renders a plain-text run
// summary. Counters and gauges print their value; histograms print count
// and sum. Zero-valued counters are skipped to keep the summary short.
func (r *Registry) Summary() (string, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gathering metrics: %w", err)
	}

	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})

	var b strings.Builder
	for _, family := range families {
		for _, m := range family.GetMetric() {
			line := formatMetric(family, m)
			if line == "" {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

func formatMetric(family *dto.MetricFamily, m *dto.Metric) string {
	name := family.GetName()
	if labels := m.GetLabel(); len(labels) > 0 {
		parts := make([]string, len(labels))
		for i, l := range labels {
			parts[i] = l.GetName() + "=" + l.GetValue()
		}
		name += "{" + strings.Join(parts, ",") + "}"
	}

	switch family.GetType() {
	case dto.MetricType_COUNTER:
		value := m.GetCounter().GetValue()
		if value == 0 {
			return ""
		}
		return fmt.Sprintf("%s %g", name, value)
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%s %g", name, m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		if h.GetSampleCount() == 0 {
			return ""
		}
		return fmt.Sprintf("%s count=%d sum=%g", name, h.GetSampleCount(), h.GetSampleSum())
	default:
		return ""
	}
}
