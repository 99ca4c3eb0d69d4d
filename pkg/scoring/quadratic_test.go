package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/orbitalsec/astrarisk/pkg/rating"
)

func TestQuadraticMean_KnownValues(t *testing.T) {
	cases := []struct {
		scores []int
		want   float64
	}{
		{[]int{1, 1, 1}, 0.0},
		{[]int{5, 5, 5}, 1.0},
		{[]int{3, 3, 3, 3}, 0.5},
		// sqrt((1+25)/2) = sqrt(13) ~ 3.6056 -> 0.6514
		{[]int{1, 5}, (math.Sqrt(13) - 1) / 4},
	}

	for _, tc := range cases {
		got, err := QuadraticMean(tc.scores)
		if err != nil {
			t.Fatalf("QuadraticMean(%v) failed: %v", tc.scores, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("QuadraticMean(%v) = %v, want %v", tc.scores, got, tc.want)
		}
	}
}

func TestQuadraticMean_Errors(t *testing.T) {
	if _, err := QuadraticMean(nil); !errors.Is(err, ErrNoScores) {
		t.Errorf("expected ErrNoScores, got %v", err)
	}
	if _, err := QuadraticMean([]int{3, 6}); !errors.Is(err, ErrScoreOutOfRange) {
		t.Errorf("expected ErrScoreOutOfRange, got %v", err)
	}
	if _, err := QuadraticMean([]int{0}); !errors.Is(err, ErrScoreOutOfRange) {
		t.Errorf("expected ErrScoreOutOfRange, got %v", err)
	}
}

func TestQuadraticMeanProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	genScores := gen.SliceOfN(5, gen.IntRange(1, 5))

	properties.Property("result stays within [0,1]", prop.ForAll(
		func(scores []int) bool {
			v, err := QuadraticMean(scores)
			return err == nil && v >= 0 && v <= 1
		},
		genScores,
	))

	properties.Property("raising any score never lowers the result", prop.ForAll(
		func(scores []int, idx int) bool {
			base, err := QuadraticMean(scores)
			if err != nil {
				return false
			}
			bumped := make([]int, len(scores))
			copy(bumped, scores)
			i := idx % len(scores)
			if bumped[i] < 5 {
				bumped[i]++
			}
			raised, err := QuadraticMean(bumped)
			return err == nil && raised >= base
		},
		genScores,
		gen.IntRange(0, 4),
	))

	properties.Property("quadratic mean dominates arithmetic mean", prop.ForAll(
		func(scores []int) bool {
			qm, err := QuadraticMean(scores)
			if err != nil {
				return false
			}
			sum := 0
			for _, s := range scores {
				sum += s
			}
			am := (float64(sum)/float64(len(scores)) - 1) / 4
			return qm >= am-1e-12
		},
		genScores,
	))

	properties.TestingRun(t)
}

func TestScoreAsset_CompleteScores(t *testing.T) {
	// 4 likelihood criteria all 3, 5 impact criteria all 5.
	scores := AssessmentScores{3, 3, 3, 3, 5, 5, 5, 5, 5}

	result, err := ScoreAsset(scores)
	if err != nil {
		t.Fatalf("ScoreAsset failed: %v", err)
	}
	if result.Likelihood != rating.Medium {
		t.Errorf("likelihood = %s, want Medium", result.Likelihood)
	}
	if result.Impact != rating.VeryHigh {
		t.Errorf("impact = %s, want Very High", result.Impact)
	}
}

func TestScoreAsset_IncompleteGroup(t *testing.T) {
	// Missing one likelihood criterion leaves likelihood unrated but the
	// complete impact group still scores.
	scores := AssessmentScores{3, 0, 3, 3, 2, 2, 2, 2, 2}

	result, err := ScoreAsset(scores)
	if err != nil {
		t.Fatalf("ScoreAsset failed: %v", err)
	}
	if result.Likelihood != rating.Unrated {
		t.Errorf("likelihood = %s, want Unrated", result.Likelihood)
	}
	if result.Impact != rating.Low {
		t.Errorf("impact = %s, want Low", result.Impact)
	}
}

func TestScoreThreat_CombinesWithAsset(t *testing.T) {
	// Threat likelihood criteria all 5 (-> Very High), impact criteria all 3
	// (-> Medium). Asset Medium/Medium.
	scores := AssessmentScores{5, 5, 5, 5, 5, 3, 3}
	asset := AssetResult{Likelihood: rating.Medium, Impact: rating.Medium}

	result, err := ScoreThreat(scores, asset)
	if err != nil {
		t.Fatalf("ScoreThreat failed: %v", err)
	}
	// Combine(VH, M) = High for likelihood; Combine(M, M) = Medium for impact;
	// risk = Combine(High, Medium) = High.
	if result.Likelihood != rating.High {
		t.Errorf("likelihood = %s, want High", result.Likelihood)
	}
	if result.Impact != rating.Medium {
		t.Errorf("impact = %s, want Medium", result.Impact)
	}
	if result.Risk != rating.High {
		t.Errorf("risk = %s, want High", result.Risk)
	}
}

func TestScoreThreat_NoAssetData(t *testing.T) {
	scores := AssessmentScores{5, 5, 5, 5, 5, 3, 3}

	result, err := ScoreThreat(scores, AssetResult{})
	if err != nil {
		t.Fatalf("ScoreThreat failed: %v", err)
	}
	if result.Likelihood != rating.Unrated || result.Impact != rating.Unrated || result.Risk != rating.Unrated {
		t.Errorf("expected all levels unrated without asset data, got %+v", result)
	}
}
