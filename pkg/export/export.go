// Package export writes assessment results to disk: semicolon-separated CSV
// files, GEXF and DOT graph files and a plain-text analysis report.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/orbitalsec/astrarisk/pkg/logging"
	"github.com/orbitalsec/astrarisk/pkg/metrics"
)

// dirPrefix is the name prefix of the folder one export pass writes into.
const dirPrefix = "CSV_Export_"

// timestampLayout is the folder timestamp, e.g. CSV_Export_20260823_141502.
const timestampLayout = "20060102_150405"

// Exporter writes all output files of one export pass into a timestamped
// directory under the base directory.
type Exporter struct {
	dir     string
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for export progress.
func WithLogger(logger logging.Logger) Option {
	return func(e *Exporter) { e.logger = logger }
}

// WithMetrics sets the registry export counters are recorded on.
func WithMetrics(registry *metrics.Registry) Option {
	return func(e *Exporter) { e.metrics = registry }
}

// New creates the timestamped export directory under baseDir and returns an
// Exporter writing into it.
func New(baseDir string, opts ...Option) (*Exporter, error) {
	dir := filepath.Join(baseDir, dirPrefix+time.Now().Format(timestampLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	e := &Exporter{
		dir:    dir,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Dir returns the directory this exporter writes into.
func (e *Exporter) Dir() string {
	return e.dir
}

// path joins a file name onto the export directory.
func (e *Exporter) path(name string) string {
	return filepath.Join(e.dir, name)
}

// record books one finished file on the metrics registry, if any.
func (e *Exporter) record(format string, files int, start time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordExport(format, files, time.Since(start))
}

// recordError books a failed export on the metrics registry, if any.
func (e *Exporter) recordError() {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordExportError()
}
