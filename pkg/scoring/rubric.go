// Package scoring implements the fixed rubrics that turn user-entered
// ordinal criteria scores into likelihood, impact and risk levels: the
// quadratic-mean threat/asset assessment and the weighted BID sheet.
package scoring

// Criterion describes a single scoring criterion: its name, which side of
// the assessment it contributes to, and the rubric text for each score.
type Criterion struct {
	Name         string
	Contributes  Contribution
	Descriptions [5]string // index 0 = score 1 (Very Low) .. index 4 = score 5 (Very High)
}

// Contribution marks whether a criterion feeds the likelihood or the impact
// side of an assessment.
type Contribution int

const (
	ContributesLikelihood Contribution = iota
	ContributesImpact
)

// ThreatCriteria is the threat assessment rubric: five likelihood criteria
// followed by two impact criteria.
var ThreatCriteria = []Criterion{
	{
		Name:        "Vulnerability Effectiveness",
		Contributes: ContributesLikelihood,
		Descriptions: [5]string{
			"No known or already resolved vulnerabilities",
			"Known vulnerability, mitigated through hardening and patches",
			"Known vulnerability, but only partially mitigated",
			"Known vulnerability, with no effective mitigations",
			"Actively exploitable vulnerability, with no defenses",
		},
	},
	{
		Name:        "Mitigation Presence",
		Contributes: ContributesLikelihood,
		Descriptions: [5]string{
			"Multi-level countermeasures in place and validated",
			"Robust countermeasures but not regularly tested",
			"Limited or isolated countermeasures",
			"Weak or outdated countermeasures",
			"No relevant countermeasures",
		},
	},
	{
		Name:        "Detection Probability",
		Contributes: ContributesLikelihood,
		Descriptions: [5]string{
			"Real-time, centralized, and automated detection",
			"Automated but not centralized detection",
			"Manual or retrospective detection only",
			"Occasional or incorrect detection",
			"No detection capability",
		},
	},
	{
		Name:        "Access Complexity",
		Contributes: ContributesLikelihood,
		Descriptions: [5]string{
			"Access strongly protected by physical/logical measures",
			"Moderately protected access (VPN, ACL, bastion host)",
			"Access protected with weaker controls",
			"Access easily accessible by remote attackers",
			"Completely open or physically accessible access",
		},
	},
	{
		Name:        "Privilege Requirement",
		Contributes: ContributesLikelihood,
		Descriptions: [5]string{
			"Requires root/admin access",
			"Elevated privileges but not root",
			"Standard user privileges",
			"Minimal privileges or no authentication",
			"No privileges required",
		},
	},
	{
		Name:        "Response Delay",
		Contributes: ContributesImpact,
		Descriptions: [5]string{
			"Predefined automated response",
			"Quick response thanks to well-defined procedures",
			"Manual but formalized response",
			"Slow or poorly coordinated response",
			"No response capability",
		},
	},
	{
		Name:        "Resilience Impact",
		Contributes: ContributesImpact,
		Descriptions: [5]string{
			"No disruption: full operability with local redundancies, automatic failover, and tested continuity plans",
			"Temporary impact: quick restoration via documented, semi-automated procedures",
			"Partial degradation: minimum operational capacity maintained, manual intervention required",
			"Severe impact: critical unavailability, recoverable only with urgent external intervention",
			"Irreversible loss: asset permanently disabled or destroyed",
		},
	},
}

// AssetCriteria is the asset assessment rubric: four likelihood criteria
// followed by five impact criteria.
var AssetCriteria = []Criterion{
	{
		Name:        "Dependency",
		Contributes: ContributesLikelihood,
		Descriptions: [5]string{
			"Asset not involved in mission-critical functions",
			"Useful support asset",
			"Relationship important for multiple business processes",
			"Asset supporting several mission services",
			"Essential asset",
		},
	},
	{
		Name:        "Penetration",
		Contributes: ContributesLikelihood,
		Descriptions: [5]string{
			"No access or isolated user-level access",
			"User-level access to general ground segment components",
			"Admin-level access to mission services",
			"Admin access to mission-critical components",
			"Full privileged access to core mission infrastructure",
		},
	},
	{
		Name:        "Cyber Maturity",
		Contributes: ContributesLikelihood,
		Descriptions: [5]string{
			"Mature, audited, and mission-integrated cyber governance with real-time threat management",
			"Integrated and proactive cybersecurity program with vulnerability management and incident drills",
			"Cybersecurity policy enforced with partially proactive practices",
			"Security rules exist but are scattered, limited integration with mission security architecture",
			"Minimal cybersecurity procedures, no defined response to cyber incidents",
		},
	},
	{
		Name:        "Trust",
		Contributes: ContributesLikelihood,
		Descriptions: [5]string{
			"Strategic partner under strict control with shared security responsibility",
			"Stakeholder trusted, with contractual obligations and validated controls",
			"Stakeholder known and generally aligned, moderate assurance level",
			"Stakeholder considered low-risk but no formal guarantees",
			"No trust relationship; stakeholder identity or intent unknown",
		},
	},
	{
		Name:        "Performance",
		Contributes: ContributesImpact,
		Descriptions: [5]string{
			"Minimal or no impact",
			"Moderate reduction, some approach retained",
			"Moderate reduction, but workarounds available",
			"Major reduction, but workarounds available",
			"Unacceptable, no alternatives exist",
		},
	},
	{
		Name:        "Schedule",
		Contributes: ContributesImpact,
		Descriptions: [5]string{
			"Minimal or no impact",
			"Additional activities required, able to meet need dates",
			"Project team milestone slip <= 1 month",
			"Project milestone slip >= 1 month or project critical path impacted",
			"Can't achieve major project milestone",
		},
	},
	{
		Name:        "Costs",
		Contributes: ContributesImpact,
		Descriptions: [5]string{
			"Minimal or no impact",
			"Cost increase < 5%",
			"Cost increase > 5%",
			"Cost increase > 10%",
			"Cost increase > 15%",
		},
	},
	{
		Name:        "Reputation",
		Contributes: ContributesImpact,
		Descriptions: [5]string{
			"Issue contained internally with no external reputational impact",
			"Slight reputational damage; disclosure required to customers",
			"Noticeable reputational harm; media coverage and regulatory disclosure required",
			"Serious reputational damage; loss of investor confidence and client disengagement",
			"Irreparable reputational harm; industry-wide loss of credibility",
		},
	},
	{
		Name:        "Recovery",
		Contributes: ContributesImpact,
		Descriptions: [5]string{
			"Limited damage; up to 1 month to resumption of normal operations",
			"Minor damage; up to 3 months to resumption of normal operations",
			"Moderate damage; up to 6 months to resumption of normal operations",
			"Significant damage; up to 1 year to resumption of normal operations",
			"Catastrophic long-term damage or complete loss of mission",
		},
	},
}

// likelihoodIndexes returns the rubric positions contributing to likelihood.
func likelihoodIndexes(criteria []Criterion) []int {
	var out []int
	for i, c := range criteria {
		if c.Contributes == ContributesLikelihood {
			out = append(out, i)
		}
	}
	return out
}

// impactIndexes returns the rubric positions contributing to impact.
func impactIndexes(criteria []Criterion) []int {
	var out []int
	for i, c := range criteria {
		if c.Contributes == ContributesImpact {
			out = append(out, i)
		}
	}
	return out
}
