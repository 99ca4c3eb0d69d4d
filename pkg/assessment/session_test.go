package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalsec/astrarisk/pkg/rating"
	"github.com/orbitalsec/astrarisk/pkg/scoring"
)

func completeScores(n, value int) scoring.AssessmentScores {
	scores := make(scoring.AssessmentScores, n)
	for i := range scores {
		scores[i] = value
	}
	return scores
}

func TestNewSession(t *testing.T) {
	s := NewSession("LEO Comms Demo")

	assert.NotEqual(t, s.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, "LEO Comms Demo", s.Mission)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestSession_AddThreatDeduplicates(t *testing.T) {
	s := NewSession("demo")

	s.AddThreat(ThreatEntry{Name: "Jamming", Likelihood: rating.High})
	s.AddThreat(ThreatEntry{Name: "Jamming", Likelihood: rating.Low})

	require.Len(t, s.Threats, 1)
	assert.Equal(t, rating.High, s.Threats[0].Likelihood)
}

func TestSession_AssessmentCreatesOnFirstUse(t *testing.T) {
	s := NewSession("demo")

	first := s.Assessment("Jamming", "Ground Station")
	first.ThreatScores = completeScores(len(scoring.ThreatCriteria), 3)

	again := s.Assessment("Jamming", "Ground Station")
	assert.Equal(t, first.ThreatScores, again.ThreatScores)
	assert.Len(t, s.Assessments, 1)
}

func TestSession_Recompute(t *testing.T) {
	s := NewSession("demo")
	s.AddThreat(ThreatEntry{Name: "Jamming"})
	s.Assets = []Asset{
		{Category: "Ground", Subcategory: "Stations", Component: "Ground Station"},
		{Category: "Space", Subcategory: "Bus", Component: "OBC"},
	}

	// Register both pairs before filling in scores: Assessment returns a
	// pointer into the session slice, which may move on append.
	s.Assessment("Jamming", "Ground Station")
	s.Assessment("Jamming", "OBC")

	// Severe against the ground station: every threat criterion at 5,
	// every asset criterion at 3.
	severe := s.Assessment("Jamming", "Ground Station")
	severe.ThreatScores = completeScores(len(scoring.ThreatCriteria), 5)
	severe.AssetScores = completeScores(len(scoring.AssetCriteria), 3)

	// Mild against the on-board computer.
	mild := s.Assessment("Jamming", "OBC")
	mild.ThreatScores = completeScores(len(scoring.ThreatCriteria), 1)
	mild.AssetScores = completeScores(len(scoring.AssetCriteria), 3)

	scored, err := s.Recompute()
	require.NoError(t, err)
	assert.Equal(t, 2, scored)

	// Severe pair: threat levels Very High combined with asset Medium
	// give High across the board.
	require.NotNil(t, severe.Result)
	assert.Equal(t, rating.High, severe.Result.ThreatLikelihood)
	assert.Equal(t, rating.High, severe.Result.ThreatImpact)
	assert.Equal(t, rating.High, severe.Result.Risk)

	// Mild pair: Very Low against Medium gives Low.
	require.NotNil(t, mild.Result)
	assert.Equal(t, rating.Low, mild.Result.Risk)

	// Threat rollup takes the worst case across assets.
	entry := s.Threat("Jamming")
	require.NotNil(t, entry)
	assert.Equal(t, rating.High, entry.Likelihood)
	assert.Equal(t, rating.High, entry.Impact)
	assert.Equal(t, rating.High, entry.Risk)
}

func TestSession_RecomputeSkipsIncompletePairs(t *testing.T) {
	s := NewSession("demo")
	s.AddThreat(ThreatEntry{Name: "Replay", Likelihood: rating.Medium, Impact: rating.Medium, Risk: rating.Medium})

	partial := s.Assessment("Replay", "Ground Station")
	partial.ThreatScores = completeScores(len(scoring.ThreatCriteria), 4)
	// No asset scores entered.

	scored, err := s.Recompute()
	require.NoError(t, err)
	assert.Equal(t, 0, scored)

	// Imported levels survive when nothing could be computed.
	entry := s.Threat("Replay")
	assert.Equal(t, rating.Medium, entry.Risk)
	require.NotNil(t, partial.Result)
	assert.Equal(t, rating.Unrated, partial.Result.Risk)
}

func TestSession_RecomputeBID(t *testing.T) {
	s := NewSession("demo")

	var sheet scoring.BIDSheet
	for i := range sheet {
		sheet[i] = scoring.BIDEntry{Value: 2}
	}
	s.BID = &sheet

	_, err := s.Recompute()
	require.NoError(t, err)
	require.NotNil(t, s.BIDScore)

	// All values 2: total = sum(w * 1/3) = 1/3.
	assert.InDelta(t, 1.0/3.0, s.BIDScore.Total, 1e-9)
	assert.Equal(t, rating.Low, s.BIDScore.Level)
}
