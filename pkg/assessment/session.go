// Package assessment holds the session model for a risk assessment run: the
// mission under assessment, its threats and assets, the per-pair criteria
// scores, and the recomputation that rolls pair results up to threat level.
package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/orbitalsec/astrarisk/pkg/catalog"
	"github.com/orbitalsec/astrarisk/pkg/rating"
	"github.com/orbitalsec/astrarisk/pkg/scoring"
)

// Asset is one entry of the asset catalogue, identified by its component
// name within a category/subcategory.
type Asset struct {
	Category    string `json:"category" validate:"required"`
	Subcategory string `json:"subcategory" validate:"required"`
	Component   string `json:"component" validate:"required"`
}

// ThreatEntry is a threat under assessment with its rolled-up levels. The
// levels hold the worst case across all assessed assets after Recompute,
// or imported values before any criteria are scored.
type ThreatEntry struct {
	Name       string       `json:"name" validate:"required"`
	Likelihood rating.Level `json:"likelihood"`
	Impact     rating.Level `json:"impact"`
	Risk       rating.Level `json:"risk"`
}

// PairResult holds the computed levels for one threat-asset pair.
type PairResult struct {
	AssetLikelihood  rating.Level `json:"asset_likelihood"`
	AssetImpact      rating.Level `json:"asset_impact"`
	ThreatLikelihood rating.Level `json:"threat_likelihood"`
	ThreatImpact     rating.Level `json:"threat_impact"`
	Risk             rating.Level `json:"risk"`
}

// PairAssessment carries the criteria scores entered for one threat against
// one asset, and the result of the last recomputation.
type PairAssessment struct {
	Threat       string                   `json:"threat" validate:"required"`
	Asset        string                   `json:"asset" validate:"required"`
	ThreatScores scoring.AssessmentScores `json:"threat_scores,omitempty"`
	AssetScores  scoring.AssessmentScores `json:"asset_scores,omitempty"`
	Result       *PairResult              `json:"result,omitempty"`
}

// Session is a complete assessment workspace.
type Session struct {
	ID          uuid.UUID           `json:"id" validate:"required"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Mission     string              `json:"mission" validate:"required"`
	MissionType catalog.MissionType `json:"mission_type,omitempty"`

	Threats     []ThreatEntry    `json:"threats" validate:"dive"`
	Assets      []Asset          `json:"assets" validate:"dive"`
	Assessments []PairAssessment `json:"assessments,omitempty" validate:"dive"`

	BID      *scoring.BIDSheet  `json:"bid,omitempty"`
	BIDScore *scoring.BIDResult `json:"bid_score,omitempty"`
}

// NewSession creates an empty session for the mission.
func NewSession(mission string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Mission:   mission,
	}
}

// Threat returns the threat entry by name, or nil.
func (s *Session) Threat(name string) *ThreatEntry {
	for i := range s.Threats {
		if s.Threats[i].Name == name {
			return &s.Threats[i]
		}
	}
	return nil
}

// AddThreat appends a threat unless one with the same name exists.
func (s *Session) AddThreat(entry ThreatEntry) {
	if s.Threat(entry.Name) != nil {
		return
	}
	s.Threats = append(s.Threats, entry)
}

// Assessment returns the pair assessment for the threat-asset combination,
// creating it on first use.
func (s *Session) Assessment(threat, asset string) *PairAssessment {
	for i := range s.Assessments {
		if s.Assessments[i].Threat == threat && s.Assessments[i].Asset == asset {
			return &s.Assessments[i]
		}
	}
	s.Assessments = append(s.Assessments, PairAssessment{Threat: threat, Asset: asset})
	return &s.Assessments[len(s.Assessments)-1]
}

// Recompute scores every threat-asset pair with complete criteria and rolls
// the results up to threat level, taking the worst (highest) likelihood,
// impact and risk across each threat's assets. It returns the number of
// pairs that produced a full result.
func (s *Session) Recompute() (int, error) {
	type rollup struct {
		likelihood rating.Level
		impact     rating.Level
		risk       rating.Level
	}
	worst := make(map[string]rollup, len(s.Threats))

	scored := 0
	for i := range s.Assessments {
		pair := &s.Assessments[i]

		assetResult, err := scoring.ScoreAsset(pair.AssetScores)
		if err != nil {
			return scored, err
		}
		threatResult, err := scoring.ScoreThreat(pair.ThreatScores, assetResult)
		if err != nil {
			return scored, err
		}

		pair.Result = &PairResult{
			AssetLikelihood:  assetResult.Likelihood,
			AssetImpact:      assetResult.Impact,
			ThreatLikelihood: threatResult.Likelihood,
			ThreatImpact:     threatResult.Impact,
			Risk:             threatResult.Risk,
		}

		if !threatResult.Risk.Valid() {
			continue
		}
		scored++

		r := worst[pair.Threat]
		if threatResult.Likelihood > r.likelihood {
			r.likelihood = threatResult.Likelihood
		}
		if threatResult.Impact > r.impact {
			r.impact = threatResult.Impact
		}
		if threatResult.Risk > r.risk {
			r.risk = threatResult.Risk
		}
		worst[pair.Threat] = r
	}

	for i := range s.Threats {
		r, ok := worst[s.Threats[i].Name]
		if !ok {
			continue
		}
		s.Threats[i].Likelihood = r.likelihood
		s.Threats[i].Impact = r.impact
		s.Threats[i].Risk = r.risk
	}

	if s.BID != nil {
		result, err := scoring.ScoreBID(*s.BID)
		if err != nil {
			return scored, err
		}
		s.BIDScore = &result
	}

	s.UpdatedAt = time.Now().UTC()
	return scored, nil
}
