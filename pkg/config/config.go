// Package config loads the toolkit configuration from YAML. Unknown keys
// are rejected so typos in config files fail loudly instead of silently
// falling back to defaults.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/orbitalsec/astrarisk/pkg/analyzer"
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
	"github.com/orbitalsec/astrarisk/pkg/visualization"
)

// Config is the full toolkit configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Layout   LayoutConfig   `yaml:"layout"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig points at the CSV inputs.
type DataConfig struct {
	RelationsFile string `yaml:"relations_file"`
	SubsetFile    string `yaml:"subset_file"`
	LegacyFile    string `yaml:"legacy_file"`
	SessionDir    string `yaml:"session_dir"`
}

// AnalysisConfig overrides the graph-sized analysis parameters. Zero fields
// keep their dynamic value.
type AnalysisConfig struct {
	TopCentralityNodes int `yaml:"top_centrality_nodes" validate:"omitempty,min=1,max=100"`
	MaxPathsPerPair    int `yaml:"max_paths_per_pair" validate:"omitempty,min=1,max=50"`
	MaxPathLength      int `yaml:"max_path_length" validate:"omitempty,min=1,max=12"`
	TopCriticalPaths   int `yaml:"top_critical_paths" validate:"omitempty,min=1,max=100"`
	FocusPathLength    int `yaml:"focus_path_length" validate:"omitempty,min=1,max=12"`
}

// LayoutConfig selects and sizes the graph layout used for GEXF positions.
type LayoutConfig struct {
	Algorithm  string  `yaml:"algorithm" validate:"omitempty,oneof=force circular hierarchical"`
	Width      float64 `yaml:"width" validate:"omitempty,min=100"`
	Height     float64 `yaml:"height" validate:"omitempty,min=100"`
	Iterations int     `yaml:"iterations" validate:"omitempty,min=1,max=1000"`
	Seed       int64   `yaml:"seed"`
}

// ExportConfig controls where and what the export pass writes.
type ExportConfig struct {
	Directory string   `yaml:"directory"`
	Formats   []string `yaml:"formats" validate:"dive,oneof=csv gexf dot report"`
}

// LoggingConfig sets the log level.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			RelationsFile: "Threat_Relations.csv",
			SubsetFile:    "Threat_Analyzed.csv",
			SessionDir:    "sessions",
		},
		Layout: LayoutConfig{
			Algorithm:  "force",
			Width:      1200,
			Height:     800,
			Iterations: 50,
			Seed:       1,
		},
		Export: ExportConfig{
			Directory: ".",
			Formats:   []string{"csv", "gexf", "dot", "report"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads and validates a YAML configuration file. Missing values fall
// back to Default, unknown keys are an error.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", path, err)
	}
	return &cfg, nil
}

// applyDefaults fills unset fields from Default. Analysis overrides stay
// zero so the analyzer keeps its graph-sized values.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Data.RelationsFile == "" {
		cfg.Data.RelationsFile = def.Data.RelationsFile
	}
	if cfg.Data.SubsetFile == "" {
		cfg.Data.SubsetFile = def.Data.SubsetFile
	}
	if cfg.Data.SessionDir == "" {
		cfg.Data.SessionDir = def.Data.SessionDir
	}

	if cfg.Layout.Algorithm == "" {
		cfg.Layout.Algorithm = def.Layout.Algorithm
	}
	if cfg.Layout.Width == 0 {
		cfg.Layout.Width = def.Layout.Width
	}
	if cfg.Layout.Height == 0 {
		cfg.Layout.Height = def.Layout.Height
	}
	if cfg.Layout.Iterations == 0 {
		cfg.Layout.Iterations = def.Layout.Iterations
	}
	if cfg.Layout.Seed == 0 {
		cfg.Layout.Seed = def.Layout.Seed
	}

	if cfg.Export.Directory == "" {
		cfg.Export.Directory = def.Export.Directory
	}
	if len(cfg.Export.Formats) == 0 {
		cfg.Export.Formats = def.Export.Formats
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

// Parameters applies the analysis overrides on top of the graph-sized
// parameters.
func (c AnalysisConfig) Parameters(g *threatgraph.Graph) analyzer.Parameters {
	p := analyzer.DynamicParameters(g)
	if c.TopCentralityNodes > 0 {
		p.TopCentralityNodes = c.TopCentralityNodes
	}
	if c.MaxPathsPerPair > 0 {
		p.MaxPathsPerPair = c.MaxPathsPerPair
	}
	if c.MaxPathLength > 0 {
		p.MaxPathLength = c.MaxPathLength
	}
	if c.TopCriticalPaths > 0 {
		p.TopCriticalPaths = c.TopCriticalPaths
	}
	if c.FocusPathLength > 0 {
		p.FocusPathLength = c.FocusPathLength
	}
	return p
}

// Layout builds the configured layout algorithm.
func (c LayoutConfig) Layout() (visualization.Layout, error) {
	lc := &visualization.LayoutConfig{
		Width:      c.Width,
		Height:     c.Height,
		Iterations: c.Iterations,
		Seed:       c.Seed,
	}
	switch c.Algorithm {
	case "force", "":
		return visualization.NewForceDirectedLayout(lc), nil
	case "circular":
		return visualization.NewCircularLayout(lc), nil
	case "hierarchical":
		return visualization.NewHierarchicalLayout(lc), nil
	default:
		return nil, fmt.Errorf("unknown layout algorithm %q", c.Algorithm)
	}
}

// HasFormat reports whether the export formats include the given one.
func (c ExportConfig) HasFormat(format string) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}
