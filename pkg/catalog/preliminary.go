package catalog

import (
	"sort"

	"github.com/orbitalsec/astrarisk/pkg/rating"
)

// PreliminaryEntry is one row of the preliminary risk table: a catalogue
// threat with its baseline likelihood and impact for the mission type and
// the combined risk.
type PreliminaryEntry struct {
	Threat     string
	Likelihood rating.Level
	Impact     rating.Level
	Risk       rating.Level
}

type baseline struct {
	likelihood rating.Level
	impact     rating.Level
}

// Mission-agnostic baselines per catalogue threat, drawn from the CCSDS
// threat discussion: remote RF and software threats are the most likely,
// physical attack the least likely but most damaging.
var threatBaselines = map[string]baseline{
	"Data Corruption":               {rating.Medium, rating.High},
	"Physical Attack":               {rating.VeryLow, rating.VeryHigh},
	"Interception/Eavesdropping":    {rating.High, rating.Medium},
	"Jamming":                       {rating.High, rating.High},
	"Denial-of-Service":             {rating.Medium, rating.High},
	"Masquerade/Spoofing":           {rating.Medium, rating.High},
	"Replay":                        {rating.Medium, rating.Medium},
	"Software Threats":              {rating.High, rating.High},
	"Unauthorized Access/Hijacking": {rating.Medium, rating.VeryHigh},
	"Tainted Hardware Components":   {rating.Low, rating.High},
	"Supply Chain":                  {rating.Medium, rating.High},
}

// Per-mission adjustments reflecting each type's typical threat profile
// (the same emphasis the mission contexts describe).
var missionAdjustments = map[MissionType]map[string]baseline{
	EarthObservation: {
		"Interception/Eavesdropping": {rating.VeryHigh, rating.Medium},
		"Data Corruption":            {rating.Medium, rating.VeryHigh},
	},
	Communication: {
		"Jamming":                    {rating.VeryHigh, rating.High},
		"Interception/Eavesdropping": {rating.VeryHigh, rating.Medium},
		"Denial-of-Service":          {rating.Medium, rating.VeryHigh},
	},
	ScienceMission: {
		"Data Corruption":  {rating.High, rating.High},
		"Software Threats": {rating.High, rating.VeryHigh},
		"Jamming":          {rating.Medium, rating.High},
	},
	Navigation: {
		"Masquerade/Spoofing": {rating.VeryHigh, rating.VeryHigh},
		"Replay":              {rating.High, rating.Medium},
	},
	OnOrbitService: {
		"Unauthorized Access/Hijacking": {rating.High, rating.VeryHigh},
		"Physical Attack":               {rating.Low, rating.VeryHigh},
	},
}

// PreliminaryAssessment builds the baseline risk table for a mission type:
// one entry per catalogue threat, combined through the risk matrix and
// sorted by risk, then likelihood, then catalogue order.
func PreliminaryAssessment(mt MissionType) []PreliminaryEntry {
	adjustments := missionAdjustments[mt]

	order := make(map[string]int, len(CCSDSThreats))
	entries := make([]PreliminaryEntry, 0, len(CCSDSThreats))
	for i, threat := range CCSDSThreats {
		order[threat] = i

		b := threatBaselines[threat]
		if adjusted, ok := adjustments[threat]; ok {
			b = adjusted
		}
		entries = append(entries, PreliminaryEntry{
			Threat:     threat,
			Likelihood: b.likelihood,
			Impact:     b.impact,
			Risk:       rating.Combine(b.likelihood, b.impact),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Risk != entries[j].Risk {
			return entries[i].Risk > entries[j].Risk
		}
		if entries[i].Likelihood != entries[j].Likelihood {
			return entries[i].Likelihood > entries[j].Likelihood
		}
		return order[entries[i].Threat] < order[entries[j].Threat]
	})
	return entries
}
