package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/orbitalsec/astrarisk/pkg/assessment"
	"github.com/orbitalsec/astrarisk/pkg/logging"
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// threatsFile is the rolled-up threat table written by every export pass.
const threatsFile = "Threat_Analyzed.csv"

// relationsFile holds the relation edges of the threat graph.
const relationsFile = "Threat_Relations.csv"

var threatHeader = []string{"THREAT", "Likelihood", "Impact", "Risk"}

var relationHeader = []string{
	"Source Threat", "Source Category",
	"Target Threat", "Target Category",
	"Relation Type",
}

// ExportSession writes the rolled-up threat table and one per-asset table
// for each asset with at least one scored pair.
func (e *Exporter) ExportSession(s *assessment.Session) error {
	start := time.Now()

	if err := e.writeThreatTable(s); err != nil {
		e.recordError()
		return err
	}
	files := 1

	assetFiles, err := e.writeAssetTables(s)
	if err != nil {
		e.recordError()
		return err
	}
	files += assetFiles

	e.record("csv", files, start)
	e.logger.Info("session exported",
		logging.String("dir", e.dir),
		logging.Int("files", files))
	return nil
}

// writeThreatTable writes Threat_Analyzed.csv with the worst-case levels per
// threat, sorted by threat name.
func (e *Exporter) writeThreatTable(s *assessment.Session) error {
	threats := make([]assessment.ThreatEntry, len(s.Threats))
	copy(threats, s.Threats)
	sort.Slice(threats, func(i, j int) bool { return threats[i].Name < threats[j].Name })

	rows := make([][]string, 0, len(threats))
	for _, entry := range threats {
		rows = append(rows, []string{
			entry.Name,
			entry.Likelihood.String(),
			entry.Impact.String(),
			entry.Risk.String(),
		})
	}

	return e.writeCSV(threatsFile, threatHeader, rows)
}

// writeAssetTables writes Threat_Analyzed_<asset>.csv per asset, listing the
// pair levels of every scored threat-asset pair. Assets without a scored
// pair produce no file.
func (e *Exporter) writeAssetTables(s *assessment.Session) (int, error) {
	byAsset := make(map[string][]*assessment.PairAssessment)
	for i := range s.Assessments {
		pair := &s.Assessments[i]
		if pair.Result == nil || !pair.Result.Risk.Valid() {
			continue
		}
		byAsset[pair.Asset] = append(byAsset[pair.Asset], pair)
	}

	assets := make([]string, 0, len(byAsset))
	for asset := range byAsset {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	for _, asset := range assets {
		pairs := byAsset[asset]
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].Threat < pairs[j].Threat })

		rows := make([][]string, 0, len(pairs))
		for _, pair := range pairs {
			rows = append(rows, []string{
				pair.Threat,
				pair.Result.ThreatLikelihood.String(),
				pair.Result.ThreatImpact.String(),
				pair.Result.Risk.String(),
			})
		}

		name := fmt.Sprintf("Threat_Analyzed_%s.csv", sanitizeAssetName(asset))
		if err := e.writeCSV(name, threatHeader, rows); err != nil {
			return 0, err
		}
	}

	return len(assets), nil
}

// ExportRelations writes the relation edges of the graph with both endpoint
// categories.
func (e *Exporter) ExportRelations(g *threatgraph.Graph) error {
	start := time.Now()

	rows := make([][]string, 0)
	for _, edge := range g.Edges() {
		from, err := g.Node(edge.FromID)
		if err != nil {
			e.recordError()
			return err
		}
		to, err := g.Node(edge.ToID)
		if err != nil {
			e.recordError()
			return err
		}
		rows = append(rows, []string{
			from.Name, from.Category,
			to.Name, to.Category,
			edge.Type,
		})
	}

	if err := e.writeCSV(relationsFile, relationHeader, rows); err != nil {
		e.recordError()
		return err
	}

	e.record("csv", 1, start)
	return nil
}

// writeCSV writes one semicolon-separated file into the export directory.
func (e *Exporter) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(e.path(name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", name, err)
	}
	return f.Close()
}

// sanitizeAssetName makes an asset component safe as a file name part.
func sanitizeAssetName(asset string) string {
	asset = strings.ReplaceAll(asset, "/", "_")
	return strings.ReplaceAll(asset, " ", "_")
}
