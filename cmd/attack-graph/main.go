package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/orbitalsec/astrarisk/pkg/algorithms"
	"github.com/orbitalsec/astrarisk/pkg/analyzer"
	"github.com/orbitalsec/astrarisk/pkg/config"
	"github.com/orbitalsec/astrarisk/pkg/export"
	"github.com/orbitalsec/astrarisk/pkg/logging"
	"github.com/orbitalsec/astrarisk/pkg/metrics"
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML configuration file")
		relations   = flag.String("relations", "", "threat relations CSV (overrides config)")
		subsetPath  = flag.String("subset", "", "threat subset CSV (overrides config)")
		outDir      = flag.String("out", "", "export base directory (overrides config)")
		focus       = flag.String("focus", "", "print a connection report for this threat")
		source      = flag.String("source", "", "with -target, list attack paths from this threat")
		target      = flag.String("target", "", "with -source, list attack paths to this threat")
		showMetrics = flag.Bool("metrics", false, "print a metrics summary after the run")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *relations != "" {
		cfg.Data.RelationsFile = *relations
	}
	if *subsetPath != "" {
		cfg.Data.SubsetFile = *subsetPath
	}
	if *outDir != "" {
		cfg.Export.Directory = *outDir
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.Logging.Level))
	registry := metrics.DefaultRegistry()

	graph, err := threatgraph.LoadRelationsFile(cfg.Data.RelationsFile)
	if err != nil {
		registry.RecordGraphLoadError()
		log.Fatalf("Failed to load relations: %v", err)
	}

	var subset []threatgraph.SubsetEntry
	if cfg.Data.SubsetFile != "" {
		if subset, err = threatgraph.LoadSubsetFile(cfg.Data.SubsetFile); err != nil {
			// The subset is optional: without it the whole relation graph
			// is analyzed.
			logger.Warn("subset file not loaded, analyzing full graph",
				logging.Path(cfg.Data.SubsetFile),
				logging.Error(err))
			subset = nil
		} else {
			removed := threatgraph.FilterToSubset(graph, subset)
			registry.RecordSubsetFilter(len(removed))
			logger.Info("graph filtered to subset",
				logging.Int("removed", len(removed)),
				logging.Int("kept", len(subset)))
		}
	}

	stats := graph.Statistics()
	registry.RecordGraphLoad(stats.NodeCount, stats.EdgeCount)

	a := analyzer.New(graph, subset,
		analyzer.WithParameters(cfg.Analysis.Parameters(graph)),
		analyzer.WithLogger(logger),
		analyzer.WithMetrics(registry),
	)

	if *focus != "" {
		conn, err := a.AnalyzeConnections(*focus)
		if err != nil {
			log.Fatalf("Connection analysis failed: %v", err)
		}
		fmt.Print(export.RenderConnections(conn))
		return
	}

	if *source != "" || *target != "" {
		if *source == "" || *target == "" {
			log.Fatal("-source and -target must be given together")
		}
		printPaths(graph, cfg.Analysis.Parameters(graph), *source, *target)
		return
	}

	runFullAnalysis(a, cfg, graph, registry, *showMetrics)
}

// printPaths enumerates attack paths between two named threats and ranks
// them by criticality.
func printPaths(graph *threatgraph.Graph, params analyzer.Parameters, source, target string) {
	src, ok := graph.NodeByName(source)
	if !ok {
		log.Fatalf("Threat %q not found in graph", source)
	}
	dst, ok := graph.NodeByName(target)
	if !ok {
		log.Fatalf("Threat %q not found in graph", target)
	}

	paths, err := algorithms.AllSimplePaths(graph, src.ID, dst.ID, params.MaxPathLength)
	if err != nil {
		log.Fatalf("Path search failed: %v", err)
	}
	if len(paths) == 0 {
		fmt.Printf("No attack paths from %q to %q within %d steps\n",
			source, target, params.MaxPathLength)
		return
	}

	type scoredPath struct {
		path  algorithms.Path
		score float64
	}
	scored := make([]scoredPath, len(paths))
	for i, p := range paths {
		scored[i] = scoredPath{path: p, score: analyzer.PathCriticality(graph, p, nil)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	fmt.Printf("Attack paths from %q to %q (max %d steps):\n\n", source, target, params.MaxPathLength)
	for i, sp := range scored {
		fmt.Printf("%2d. [score %.1f, danger %3.0f%%] %s\n",
			i+1, sp.score, analyzer.Danger(sp.score)*100,
			strings.Join(sp.path.Names(), " -> "))
	}
}

func runFullAnalysis(a *analyzer.Analyzer, cfg *config.Config, graph *threatgraph.Graph, registry *metrics.Registry, showMetrics bool) {
	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.Logging.Level))
	report := a.Analyze()
	fmt.Print(export.RenderReport(report))

	exporter, err := export.New(cfg.Export.Directory,
		export.WithLogger(logger),
		export.WithMetrics(registry),
	)
	if err != nil {
		log.Fatalf("Failed to create export directory: %v", err)
	}

	if cfg.Export.HasFormat("report") {
		if err := exporter.ExportReport(report); err != nil {
			log.Fatalf("Report export failed: %v", err)
		}
	}
	if cfg.Export.HasFormat("csv") {
		if err := exporter.ExportRelations(graph); err != nil {
			log.Fatalf("Relations export failed: %v", err)
		}
	}
	if cfg.Export.HasFormat("gexf") {
		layout, err := cfg.Layout.Layout()
		if err != nil {
			log.Fatalf("Layout setup failed: %v", err)
		}
		positions, err := layout.ComputeLayout(graph, graph.NodeIDs())
		if err != nil {
			log.Fatalf("Layout computation failed: %v", err)
		}
		if err := exporter.ExportGEXF(graph, positions); err != nil {
			log.Fatalf("GEXF export failed: %v", err)
		}
	}
	if cfg.Export.HasFormat("dot") {
		if err := exporter.ExportDOT(graph); err != nil {
			log.Fatalf("DOT export failed: %v", err)
		}
	}

	fmt.Printf("\nExport written to %s\n", exporter.Dir())

	if showMetrics {
		summary, err := registry.Summary()
		if err != nil {
			log.Fatalf("Metrics summary failed: %v", err)
		}
		fmt.Println()
		fmt.Print(summary)
	}
}
