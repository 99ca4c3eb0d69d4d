package analyzer

import (
	"sort"
	"strings"

	"github.com/orbitalsec/astrarisk/pkg/rating"
	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
)

// Fallback keyword sets used when no rated threat subset is available.
// They reflect the threat names that recur across space-segment assessments.
var (
	fallbackLikelihoodKeywords = []string{
		"Social Engineering", "Unauthorized access", "Physical access",
		"Supply Chain", "Legacy Software", "Malicious code",
	}

	fallbackImpactKeywords = []string{
		"Seizure of control", "Denial of Service", "Data modification",
		"Firmware corruption", "Satellite bus", "Compromising",
		"Destruction", "Failure of power", "Security services failure",
	}

	fallbackRiskKeywords = []string{
		"Seizure", "Control", "Satellite", "Destruction", "Failure",
		"Security", "Unauthorized", "Malicious", "Denial",
	}
)

const topKeywordCount = 10

// topRatedThreats returns the names of the top-n subset threats by the
// given rating dimension, highest first. Unrated entries are skipped.
// Name ascending breaks ties so the selection is stable.
func topRatedThreats(subset []threatgraph.SubsetEntry, pick func(threatgraph.SubsetEntry) rating.Level, n int) []string {
	rated := make([]threatgraph.SubsetEntry, 0, len(subset))
	for _, entry := range subset {
		if pick(entry).Valid() {
			rated = append(rated, entry)
		}
	}

	sort.SliceStable(rated, func(i, j int) bool {
		if pick(rated[i]) != pick(rated[j]) {
			return pick(rated[i]) > pick(rated[j])
		}
		return rated[i].Threat < rated[j].Threat
	})

	if len(rated) > n {
		rated = rated[:n]
	}
	names := make([]string, len(rated))
	for i, entry := range rated {
		names[i] = entry.Threat
	}
	return names
}

// likelihoodKeywords derives the source-threat keyword list from the rated
// subset, falling back to the built-in list when the subset carries no
// usable likelihood ratings.
func likelihoodKeywords(subset []threatgraph.SubsetEntry) []string {
	names := topRatedThreats(subset, func(e threatgraph.SubsetEntry) rating.Level { return e.Likelihood }, topKeywordCount)
	if len(names) == 0 {
		return fallbackLikelihoodKeywords
	}
	return names
}

// impactKeywords derives the target-threat keyword list from the rated
// subset, falling back to the built-in list.
func impactKeywords(subset []threatgraph.SubsetEntry) []string {
	names := topRatedThreats(subset, func(e threatgraph.SubsetEntry) rating.Level { return e.Impact }, topKeywordCount)
	if len(names) == 0 {
		return fallbackImpactKeywords
	}
	return names
}

// riskKeywords derives the high-risk threat list used for path scoring.
func riskKeywords(subset []threatgraph.SubsetEntry) []string {
	names := topRatedThreats(subset, func(e threatgraph.SubsetEntry) rating.Level { return e.Risk }, topKeywordCount)
	if len(names) == 0 {
		return fallbackRiskKeywords
	}
	return names
}

// matchesAny reports whether any keyword occurs in the name,
// case-insensitively.
func matchesAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
