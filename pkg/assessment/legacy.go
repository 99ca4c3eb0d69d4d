package assessment

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// LegacyMapping maps normalized old threat names to their current names.
// One old name may fan out to several current threats.
type LegacyMapping map[string][]string

var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// NormalizeThreatName canonicalizes a threat name for legacy matching:
// lowercase, no spaces or separator characters, parenthesized qualifiers
// dropped.
func NormalizeThreatName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = parenthetical.ReplaceAllString(normalized, "")
	replacer := strings.NewReplacer(" ", "", "/", "", "-", "", "_", "")
	return replacer.Replace(normalized)
}

// LoadLegacyMapping reads a two-column `Old Threat;New Threat` CSV. Rows
// with an empty side are skipped.
func LoadLegacyMapping(r io.Reader) (LegacyMapping, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing legacy mapping: %w", err)
	}
	if len(records) == 0 {
		return LegacyMapping{}, nil
	}

	mapping := LegacyMapping{}
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		oldName := strings.TrimSpace(record[0])
		newName := strings.TrimSpace(record[1])
		if oldName == "" || newName == "" {
			continue
		}
		key := NormalizeThreatName(oldName)
		mapping[key] = append(mapping[key], newName)
	}
	return mapping, nil
}

// LoadLegacyMappingFile reads a legacy mapping from disk.
func LoadLegacyMappingFile(path string) (LegacyMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening legacy mapping: %w", err)
	}
	defer f.Close()
	return LoadLegacyMapping(f)
}

// Resolve maps an old threat name to its current names, or nil when the
// name is unknown to the mapping.
func (m LegacyMapping) Resolve(oldName string) []string {
	return m[NormalizeThreatName(oldName)]
}

// ApplyLegacy remaps the session's threats and assessments through the
// mapping. A threat resolving to several current names is duplicated for
// each; unmapped threats are kept unchanged. It returns the number of
// threats remapped.
func (s *Session) ApplyLegacy(mapping LegacyMapping) int {
	remapped := 0

	var threats []ThreatEntry
	seen := map[string]bool{}
	rename := map[string][]string{}

	for _, entry := range s.Threats {
		names := mapping.Resolve(entry.Name)
		if names == nil {
			names = []string{entry.Name}
		} else {
			remapped++
			rename[entry.Name] = names
		}
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			mapped := entry
			mapped.Name = name
			threats = append(threats, mapped)
		}
	}
	s.Threats = threats

	var assessments []PairAssessment
	for _, pair := range s.Assessments {
		names, ok := rename[pair.Threat]
		if !ok {
			assessments = append(assessments, pair)
			continue
		}
		for _, name := range names {
			mapped := pair
			mapped.Threat = name
			if pair.Result != nil {
				result := *pair.Result
				mapped.Result = &result
			}
			assessments = append(assessments, mapped)
		}
	}
	s.Assessments = assessments

	return remapped
}
