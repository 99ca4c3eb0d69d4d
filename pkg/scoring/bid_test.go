package scoring

import (
	"math"
	"testing"

	"github.com/orbitalsec/astrarisk/pkg/rating"
)

func fullSheet(value int) BIDSheet {
	var sheet BIDSheet
	for i := range sheet {
		sheet[i].Value = value
	}
	return sheet
}

func TestScoreBID_Extremes(t *testing.T) {
	low, err := ScoreBID(fullSheet(1))
	if err != nil {
		t.Fatalf("ScoreBID failed: %v", err)
	}
	if low.Total != 0 {
		t.Errorf("all-1 sheet total = %v, want 0", low.Total)
	}
	if low.Level != rating.VeryLow {
		t.Errorf("all-1 sheet level = %s, want Very Low", low.Level)
	}

	high, err := ScoreBID(fullSheet(4))
	if err != nil {
		t.Fatalf("ScoreBID failed: %v", err)
	}
	// Weights sum to 1.0, so (4-1)*1.0/3 = 1.0 exactly (capped from >0.99).
	if high.Total != 1.0 {
		t.Errorf("all-4 sheet total = %v, want 1.0", high.Total)
	}
	if high.Level != rating.VeryHigh {
		t.Errorf("all-4 sheet level = %s, want Very High", high.Level)
	}
}

func TestScoreBID_WeightRedistribution(t *testing.T) {
	sheet := fullSheet(3)
	// Mark the two heaviest categories inapplicable; their 0.27 combined
	// weight spreads evenly over the remaining nine.
	sheet[0].Inapplicable = true // 0.15
	sheet[4].Inapplicable = true // 0.12

	weights := sheet.EffectiveWeights()
	if weights[0] != 0 || weights[4] != 0 {
		t.Error("inapplicable categories must get zero weight")
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("effective weights sum to %v, want 1.0", total)
	}

	share := (0.15 + 0.12) / 9
	if math.Abs(weights[1]-(0.12+share)) > 1e-9 {
		t.Errorf("weights[1] = %v, want %v", weights[1], 0.12+share)
	}

	result, err := ScoreBID(sheet)
	if err != nil {
		t.Fatalf("ScoreBID failed: %v", err)
	}
	// All applicable values are 3: total = sum(2*w/3) = 2/3.
	if math.Abs(result.Total-2.0/3.0) > 1e-9 {
		t.Errorf("total = %v, want 2/3", result.Total)
	}
	if result.Level != rating.Medium {
		t.Errorf("level = %s, want Medium", result.Level)
	}
}

func TestScoreBID_AllInapplicable(t *testing.T) {
	var sheet BIDSheet
	for i := range sheet {
		sheet[i].Inapplicable = true
	}

	result, err := ScoreBID(sheet)
	if err != nil {
		t.Fatalf("ScoreBID failed: %v", err)
	}
	if result.Total != 0 {
		t.Errorf("total = %v, want 0", result.Total)
	}
}

func TestScoreBID_OutOfRange(t *testing.T) {
	sheet := fullSheet(2)
	sheet[3].Value = 5
	if _, err := ScoreBID(sheet); err == nil {
		t.Error("expected error for value outside 1..4")
	}
}

func TestBIDLevel_Bands(t *testing.T) {
	cases := []struct {
		total float64
		want  rating.Level
	}{
		{0.0, rating.VeryLow},
		{0.09, rating.VeryLow},
		{0.1, rating.Low},
		{0.39, rating.Low},
		{0.4, rating.Medium},
		{0.69, rating.Medium},
		{0.7, rating.High},
		{0.89, rating.High},
		{0.9, rating.VeryHigh},
	}
	for _, tc := range cases {
		if got := bidLevel(tc.total); got != tc.want {
			t.Errorf("bidLevel(%v) = %s, want %s", tc.total, got, tc.want)
		}
	}
}
