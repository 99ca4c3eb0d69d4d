// Package analyzer runs the full attack-graph analysis: statistics,
// centrality, critical sources and targets, critical-path ranking, attack
// surface and focused per-threat connection reports.
package analyzer

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/orbitalsec/astrarisk/pkg/algorithms"
	"github.com/orbitalsec/astrarisk/pkg/logging"
	"github.com/orbitalsec/astrarisk/pkg/metrics"
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// Analyzer runs analyses over one threat graph. The rated subset feeds the
// keyword heuristics; it may be empty, in which case built-in keyword lists
// apply.
type Analyzer struct {
	graph   *threatgraph.Graph
	subset  []threatgraph.SubsetEntry
	params  Parameters
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithParameters overrides the dynamically derived analysis parameters.
func WithParameters(p Parameters) Option {
	return func(a *Analyzer) { a.params = p }
}

// WithLogger sets the analysis logger.
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithMetrics sets the metrics registry analyses are recorded to.
func WithMetrics(r *metrics.Registry) Option {
	return func(a *Analyzer) { a.metrics = r }
}

// New creates an Analyzer for the graph with parameters sized to it.
func New(g *threatgraph.Graph, subset []threatgraph.SubsetEntry, opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:  g,
		subset: subset,
		params: DynamicParameters(g),
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Parameters returns the parameters in effect for this analyzer.
func (a *Analyzer) Parameters() Parameters { return a.params }

// Analyze runs the full analysis and assembles the report.
func (a *Analyzer) Analyze() *Report {
	start := time.Now()
	stats := a.graph.Statistics()

	a.logger.Info("starting analysis",
		logging.Uint64("nodes", stats.NodeCount),
		logging.Uint64("edges", stats.EdgeCount))

	report := &Report{
		Statistics: stats,
		Density:    a.graph.Density(),
		Parameters: a.params,
		IsDAG:      algorithms.IsDAG(a.graph),
		Components: len(algorithms.WeaklyConnectedComponents(a.graph)),
	}

	report.Categories = a.analyzeCategories()
	report.Centrality = a.analyzeCentrality()
	report.CriticalSources = limitScored(criticalSources(a.graph, likelihoodKeywords(a.subset)), maxCriticalEndpoints)
	report.CriticalTargets = limitScored(criticalTargets(a.graph, impactKeywords(a.subset)), maxCriticalEndpoints)

	var enumerated int
	report.CriticalPaths, enumerated = a.analyzeCriticalPaths(report.CriticalSources, report.CriticalTargets)
	report.Surface = algorithms.FindAttackSurface(a.graph)

	if a.metrics != nil {
		a.metrics.RecordAnalysis("success", time.Since(start), enumerated, len(report.CriticalPaths))
	}
	a.logger.Info("analysis complete",
		logging.Int("critical_paths", len(report.CriticalPaths)),
		logging.Int("paths_enumerated", enumerated),
		logging.Duration("elapsed", time.Since(start)))

	return report
}

// analyzeCategories counts category occurrences (each relation contributes
// both endpoint categories), relation types and directed category pairs.
func (a *Analyzer) analyzeCategories() CategoryAnalysis {
	categoryCounts := make(map[string]int)
	relationCounts := make(map[string]int)
	pairCounts := make(map[categoryPairKey]int)

	for _, edge := range a.graph.Edges() {
		from, err := a.graph.Node(edge.FromID)
		if err != nil {
			continue
		}
		to, err := a.graph.Node(edge.ToID)
		if err != nil {
			continue
		}
		categoryCounts[from.Category]++
		categoryCounts[to.Category]++
		relationCounts[edge.Type]++
		pairCounts[categoryPairKey{from.Category, to.Category}]++
	}

	analysis := CategoryAnalysis{
		Distribution:  sortedCounts(categoryCounts),
		RelationTypes: sortedCounts(relationCounts),
	}
	for key, count := range pairCounts {
		analysis.Pairs = append(analysis.Pairs, CategoryPair{
			Source: key.source,
			Target: key.target,
			Count:  count,
		})
	}
	sort.SliceStable(analysis.Pairs, func(i, j int) bool {
		if analysis.Pairs[i].Count != analysis.Pairs[j].Count {
			return analysis.Pairs[i].Count > analysis.Pairs[j].Count
		}
		if analysis.Pairs[i].Source != analysis.Pairs[j].Source {
			return analysis.Pairs[i].Source < analysis.Pairs[j].Source
		}
		return analysis.Pairs[i].Target < analysis.Pairs[j].Target
	})
	return analysis
}

// analyzeCentrality computes every centrality measure and keeps the top
// nodes of each. Eigenvector centrality is skipped (with a note in the
// report) when power iteration cannot converge.
func (a *Analyzer) analyzeCentrality() CentralityReport {
	top := a.params.TopCentralityNodes
	report := CentralityReport{
		Degree:      algorithms.TopThreats(a.graph, algorithms.DegreeCentrality(a.graph), top),
		InDegree:    algorithms.TopThreats(a.graph, algorithms.InDegreeCentrality(a.graph), top),
		OutDegree:   algorithms.TopThreats(a.graph, algorithms.OutDegreeCentrality(a.graph), top),
		Betweenness: algorithms.TopThreats(a.graph, algorithms.BetweennessCentrality(a.graph), top),
		Closeness:   algorithms.TopThreats(a.graph, algorithms.ClosenessCentrality(a.graph), top),
	}

	pr := algorithms.PageRank(a.graph, algorithms.DefaultPageRankOptions())
	report.PageRank = algorithms.TopThreats(a.graph, pr.Scores, top)

	eigen, err := algorithms.EigenvectorCentrality(a.graph, 1000)
	if err != nil {
		a.logger.Warn("eigenvector centrality skipped", logging.Error(err))
		report.EigenvectorSkipped = true
	} else {
		report.Eigenvector = algorithms.TopThreats(a.graph, eigen, top)
	}

	return report
}

// analyzeCriticalPaths enumerates simple paths between critical sources and
// targets, scores them and returns the unique paths ranked by criticality.
// The second return value is the total number of paths enumerated before
// deduplication.
func (a *Analyzer) analyzeCriticalPaths(sources, targets []ScoredThreat) ([]CriticalPath, int) {
	highRisk := riskKeywords(a.subset)

	maxPairs := len(sources) * len(targets)
	if maxPairs > maxSourceTargetPairs {
		maxPairs = maxSourceTargetPairs
	}

	var (
		unique     []CriticalPath
		seen       = make(map[string]bool)
		enumerated int
		pairs      int
	)

	for _, source := range sources {
		for _, target := range targets {
			if pairs >= maxPairs {
				break
			}
			if source.Threat.ID == target.Threat.ID {
				continue
			}
			pairs++

			paths, err := algorithms.AllSimplePaths(a.graph, source.Threat.ID, target.Threat.ID, a.params.MaxPathLength)
			if err != nil {
				continue
			}
			enumerated += len(paths)

			if len(paths) > a.params.MaxPathsPerPair {
				paths = paths[:a.params.MaxPathsPerPair]
			}
			for _, path := range paths {
				key := pathKey(path)
				if seen[key] {
					continue
				}
				seen[key] = true

				score := PathCriticality(a.graph, path, highRisk)
				unique = append(unique, CriticalPath{
					Path:   path,
					Source: source.Threat,
					Target: target.Threat,
					Score:  score,
					Danger: Danger(score),
				})
			}
		}
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if unique[i].Score != unique[j].Score {
			return unique[i].Score > unique[j].Score
		}
		return pathNameKey(unique[i].Path) < pathNameKey(unique[j].Path)
	})

	if len(unique) > a.params.TopCriticalPaths {
		unique = unique[:a.params.TopCriticalPaths]
	}
	return unique, enumerated
}

func limitScored(threats []ScoredThreat, n int) []ScoredThreat {
	if len(threats) > n {
		return threats[:n]
	}
	return threats
}

func pathKey(p algorithms.Path) string {
	var b strings.Builder
	for i, node := range p.Threats {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.FormatUint(node.ID, 10))
	}
	return b.String()
}

func pathNameKey(p algorithms.Path) string {
	return strings.Join(p.Names(), " -> ")
}

type categoryPairKey struct {
	source string
	target string
}

func sortedCounts(counts map[string]int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
