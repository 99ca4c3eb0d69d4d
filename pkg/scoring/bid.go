package scoring

import (
	"fmt"

	"github.com/orbitalsec/astrarisk/pkg/rating"
)

// BIDCategory is one row of the invitation-to-tender (BID phase) score
// sheet: a fixed category with its base weight.
type BIDCategory struct {
	Name   string
	Weight float64
}

// BIDCategories lists the eleven BID categories with their base weights.
// The weights sum to 1.0.
var BIDCategories = []BIDCategory{
	{"Cybersecurity Requirements", 0.15},
	{"Security Architecture Constraints", 0.12},
	{"Cryptographic Requirements", 0.10},
	{"Authentication & Access Control", 0.08},
	{"Supply Chain Security", 0.12},
	{"Threat Modeling Guidelines", 0.08},
	{"Security Compliance References", 0.07},
	{"Security Validation Requirements", 0.10},
	{"Incident Response Expectations", 0.05},
	{"Data Protection and Privacy", 0.07},
	{"Cybersecurity Historical Data", 0.06},
}

// BIDEntry is the user's rating of a single category: a value 1..4, or
// inapplicable, in which case the category's weight is redistributed.
type BIDEntry struct {
	Value        int
	Inapplicable bool
}

// BIDSheet holds an entry per category, positionally matching BIDCategories.
type BIDSheet [11]BIDEntry

// EffectiveWeights returns the per-category weights after redistributing
// the weight of inapplicable categories evenly across the applicable ones.
// Inapplicable categories get weight 0.
func (s BIDSheet) EffectiveWeights() [11]float64 {
	var weights [11]float64

	removed := 0.0
	applicable := 0
	for i, entry := range s {
		if entry.Inapplicable {
			removed += BIDCategories[i].Weight
		} else {
			applicable++
		}
	}

	if applicable == 0 {
		return weights
	}

	share := removed / float64(applicable)
	for i, entry := range s {
		if !entry.Inapplicable {
			weights[i] = BIDCategories[i].Weight + share
		}
	}
	return weights
}

// BIDResult is the outcome of scoring a BID sheet.
type BIDResult struct {
	Total float64
	Level rating.Level
}

// ScoreBID computes the weighted total of the sheet. Each rated category
// contributes (value-1)*weight/3 so a sheet of all 1s scores 0 and a sheet
// of all 4s scores 1. Totals above 0.99 are capped to 1.0. Unrated
// applicable categories contribute nothing.
func ScoreBID(sheet BIDSheet) (BIDResult, error) {
	weights := sheet.EffectiveWeights()

	total := 0.0
	for i, entry := range sheet {
		if entry.Inapplicable || entry.Value == 0 {
			continue
		}
		if entry.Value < 1 || entry.Value > 4 {
			return BIDResult{}, fmt.Errorf("%w: category %q has value %d", ErrScoreOutOfRange, BIDCategories[i].Name, entry.Value)
		}
		total += float64(entry.Value-1) * weights[i] / 3
	}

	if total > 0.99 {
		total = 1.0
	}

	return BIDResult{Total: total, Level: bidLevel(total)}, nil
}

// bidLevel maps a BID total onto the five-point scale. The bands differ
// slightly from rating.FromScore (boundaries at .09/.39/.69/.89).
func bidLevel(total float64) rating.Level {
	switch {
	case total <= 0.09:
		return rating.VeryLow
	case total <= 0.39:
		return rating.Low
	case total <= 0.69:
		return rating.Medium
	case total <= 0.89:
		return rating.High
	default:
		return rating.VeryHigh
	}
}
