package threatgraph

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/orbitalsec/astrarisk/pkg/rating"
)

// Delimiter used by all the toolkit's CSV files.
const Delimiter = ';'

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// relation CSV column names.
const (
	colSourceThreat   = "Source Threat"
	colSourceCategory = "Source Category"
	colTargetThreat   = "Target Threat"
	colTargetCategory = "Target Category"
	colRelationType   = "Relation Type"
)

// SubsetEntry is one row of the threat subset file: a threat with the
// ratings assigned to it by a previous assessment.
type SubsetEntry struct {
	Threat     string
	Likelihood rating.Level
	Impact     rating.Level
	Risk       rating.Level
}

// newReader builds a CSV reader with the toolkit's conventions.
func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader
}

// headerIndex maps column names to positions, so files may order their
// columns freely.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %q (found: %s)", ErrMissingColumn, name, strings.Join(header, ", "))
		}
	}
	return index, nil
}

// LoadRelations reads the threat relationship CSV and builds the directed
// graph. Rows with empty source or target names are rejected with their
// line number.
func LoadRelations(r io.Reader) (*Graph, error) {
	reader := newReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading relations header: %w", err)
	}
	index, err := headerIndex(header,
		colSourceThreat, colSourceCategory, colTargetThreat, colTargetCategory, colRelationType)
	if err != nil {
		return nil, err
	}

	graph := New()
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("relations line %d: %w", line, err)
		}

		field := func(name string) string {
			pos := index[name]
			if pos >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[pos])
		}

		sourceName := field(colSourceThreat)
		targetName := field(colTargetThreat)
		if sourceName == "" || targetName == "" {
			return nil, fmt.Errorf("relations line %d: empty threat name", line)
		}

		source, err := graph.AddThreat(sourceName, field(colSourceCategory))
		if err != nil {
			return nil, fmt.Errorf("relations line %d: %w", line, err)
		}
		target, err := graph.AddThreat(targetName, field(colTargetCategory))
		if err != nil {
			return nil, fmt.Errorf("relations line %d: %w", line, err)
		}
		if _, err := graph.AddRelation(source.ID, target.ID, field(colRelationType)); err != nil {
			return nil, fmt.Errorf("relations line %d: %w", line, err)
		}
	}

	return graph, nil
}

// LoadRelationsFile opens and loads a relations CSV from disk.
func LoadRelationsFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening relations file: %w", err)
	}
	defer f.Close()
	return LoadRelations(f)
}

// LoadSubset reads the threat subset CSV (THREAT;Likelihood;Impact;Risk).
// Rating columns beyond THREAT are optional per row; unparseable levels
// stay Unrated rather than failing the load.
func LoadSubset(r io.Reader) ([]SubsetEntry, error) {
	reader := newReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading subset header: %w", err)
	}
	index, err := headerIndex(header, "THREAT")
	if err != nil {
		return nil, err
	}

	parseLevel := func(record []string, column string) rating.Level {
		pos, ok := index[column]
		if !ok || pos >= len(record) {
			return rating.Unrated
		}
		level, err := rating.ParseLevel(record[pos])
		if err != nil {
			return rating.Unrated
		}
		return level
	}

	var entries []SubsetEntry
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("subset line %d: %w", line, err)
		}

		pos := index["THREAT"]
		if pos >= len(record) {
			return nil, fmt.Errorf("subset line %d: missing THREAT column", line)
		}
		name := strings.TrimSpace(record[pos])
		if name == "" {
			continue
		}

		entries = append(entries, SubsetEntry{
			Threat:     name,
			Likelihood: parseLevel(record, "Likelihood"),
			Impact:     parseLevel(record, "Impact"),
			Risk:       parseLevel(record, "Risk"),
		})
	}

	return entries, nil
}

// LoadSubsetFile opens and loads a subset CSV from disk.
func LoadSubsetFile(path string) ([]SubsetEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening subset file: %w", err)
	}
	defer f.Close()
	return LoadSubset(f)
}

// FilterToSubset removes every node whose name is not in the subset,
// keeping the intersection of relation threats and subset threats. It
// returns the names that were removed, sorted by the graph's node order.
func FilterToSubset(graph *Graph, subset []SubsetEntry) []string {
	if len(subset) == 0 {
		return nil
	}

	allowed := make(map[string]bool, len(subset))
	for _, entry := range subset {
		allowed[entry.Threat] = true
	}

	var removed []string
	for _, node := range graph.Nodes() {
		if !allowed[node.Name] {
			removed = append(removed, node.Name)
			graph.RemoveThreat(node.ID)
		}
	}
	return removed
}
