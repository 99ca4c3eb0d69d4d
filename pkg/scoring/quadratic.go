package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/orbitalsec/astrarisk/pkg/rating"
)

// ErrNoScores is returned when an aggregation receives no rated criteria.
var ErrNoScores = errors.New("no criteria scores provided")

// ErrScoreOutOfRange is returned when a criterion score falls outside 1..5.
var ErrScoreOutOfRange = errors.New("criterion score out of range")

// QuadraticMean aggregates criteria scores (1..5) with the quadratic mean
// and normalizes the result to [0,1] via (qm-1)/4. The quadratic mean
// weighs high scores more heavily than the arithmetic mean, which keeps a
// single bad criterion visible in the aggregate.
func QuadraticMean(scores []int) (float64, error) {
	if len(scores) == 0 {
		return 0, ErrNoScores
	}

	sumSquares := 0.0
	for _, s := range scores {
		if s < 1 || s > 5 {
			return 0, fmt.Errorf("%w: %d", ErrScoreOutOfRange, s)
		}
		sumSquares += float64(s) * float64(s)
	}

	qm := math.Sqrt(sumSquares / float64(len(scores)))
	normalized := (qm - 1) / 4
	return math.Max(0, math.Min(1, normalized)), nil
}

// AssessmentScores holds the criteria scores a user entered against one
// rubric. Positions map to the rubric's criteria; a zero means unrated.
type AssessmentScores []int

// split separates the rated scores into likelihood and impact groups
// according to the rubric. Any unrated criterion in a group makes the
// whole group incomplete (nil).
func (s AssessmentScores) split(criteria []Criterion) (likelihood, impact []int) {
	pick := func(indexes []int) []int {
		out := make([]int, 0, len(indexes))
		for _, idx := range indexes {
			if idx >= len(s) || s[idx] == 0 {
				return nil
			}
			out = append(out, s[idx])
		}
		return out
	}
	return pick(likelihoodIndexes(criteria)), pick(impactIndexes(criteria))
}

// AssetResult is the outcome of scoring one asset against the asset rubric.
type AssetResult struct {
	Likelihood rating.Level
	Impact     rating.Level
}

// ScoreAsset evaluates the asset rubric. Both criteria groups must be
// completely rated; otherwise the corresponding level stays Unrated.
func ScoreAsset(scores AssessmentScores) (AssetResult, error) {
	var result AssetResult

	likelihood, impact := scores.split(AssetCriteria)

	if likelihood != nil {
		value, err := QuadraticMean(likelihood)
		if err != nil {
			return result, err
		}
		result.Likelihood = rating.FromScore(value)
	}
	if impact != nil {
		value, err := QuadraticMean(impact)
		if err != nil {
			return result, err
		}
		result.Impact = rating.FromScore(value)
	}
	return result, nil
}

// ThreatResult is the outcome of scoring a threat against an asset: the
// combined likelihood, impact and the resulting risk level.
type ThreatResult struct {
	Likelihood rating.Level
	Impact     rating.Level
	Risk       rating.Level
}

// ScoreThreat evaluates the threat rubric and combines the threat-specific
// levels with the asset levels through the ISO 27005 matrix: likelihood x
// likelihood and impact x impact first, then likelihood x impact for the
// risk. Missing asset levels leave the combined values Unrated.
func ScoreThreat(scores AssessmentScores, asset AssetResult) (ThreatResult, error) {
	var result ThreatResult

	likelihood, impact := scores.split(ThreatCriteria)

	if likelihood != nil && asset.Likelihood.Valid() {
		value, err := QuadraticMean(likelihood)
		if err != nil {
			return result, err
		}
		result.Likelihood = rating.Combine(rating.FromScore(value), asset.Likelihood)
	}
	if impact != nil && asset.Impact.Valid() {
		value, err := QuadraticMean(impact)
		if err != nil {
			return result, err
		}
		result.Impact = rating.Combine(rating.FromScore(value), asset.Impact)
	}
	if result.Likelihood.Valid() && result.Impact.Valid() {
		result.Risk = rating.Combine(result.Likelihood, result.Impact)
	}
	return result, nil
}
