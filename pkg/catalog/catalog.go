// Package catalog carries the CCSDS 350.1 threat catalogue, the mission-type
// taxonomy with keyword inference, and the preliminary per-mission risk
// baseline used before any detailed assessment exists.
package catalog

import "strings"

// CCSDSThreats lists the threat classes of CCSDS 350.1-G-3, in the report
// order the green book uses.
var CCSDSThreats = []string{
	"Data Corruption",
	"Physical Attack",
	"Interception/Eavesdropping",
	"Jamming",
	"Denial-of-Service",
	"Masquerade/Spoofing",
	"Replay",
	"Software Threats",
	"Unauthorized Access/Hijacking",
	"Tainted Hardware Components",
	"Supply Chain",
}

// MissionType classifies a space program for preliminary assessment.
type MissionType string

const (
	EarthObservation MissionType = "Earth Observation"
	Communication    MissionType = "Communication"
	ScienceMission   MissionType = "Science Mission"
	Navigation       MissionType = "Navigation"
	OnOrbitService   MissionType = "On-Orbit Service"
)

// MissionTypes lists all mission types in declaration order. Inference ties
// resolve to the earliest entry.
var MissionTypes = []MissionType{
	EarthObservation,
	Communication,
	ScienceMission,
	Navigation,
	OnOrbitService,
}

// Context describes what matters for a mission type: the assets worth
// attacking, the functions whose loss ends the mission, and the threats
// seen most often against this class of system.
type Context struct {
	KeyAssets         string
	CriticalFunctions string
	TypicalThreats    string
}

type missionProfile struct {
	keywords      []string
	orbitKeywords []string
	context       Context
}

var missionProfiles = map[MissionType]missionProfile{
	EarthObservation: {
		keywords:      []string{"earth observation", "remote sensing", "imaging", "monitoring", "surveillance", "environmental", "optical", "radar"},
		orbitKeywords: []string{"leo", "polar", "sun-synchronous", "low earth"},
		context: Context{
			KeyAssets:         "imaging sensors, data processing systems, ground stations, data storage",
			CriticalFunctions: "Earth imaging, data collection, environmental monitoring",
			TypicalThreats:    "data theft, image manipulation, unauthorized surveillance",
		},
	},
	Communication: {
		keywords:      []string{"communication", "telecommunications", "relay", "broadcasting", "internet", "voice", "data", "constellation"},
		orbitKeywords: []string{"geo", "meo", "leo constellation", "geostationary"},
		context: Context{
			KeyAssets:         "transponders, antennas, user terminals, ground gateways",
			CriticalFunctions: "voice/data relay, internet connectivity, broadcasting",
			TypicalThreats:    "eavesdropping, jamming, service disruption",
		},
	},
	ScienceMission: {
		keywords:      []string{"science", "research", "exploration", "astronomy", "astrophysics", "planetary", "deep space", "lunar", "mars"},
		orbitKeywords: []string{"lunar", "mars", "deep space", "heliocentric", "interplanetary"},
		context: Context{
			KeyAssets:         "scientific instruments, data recorders, navigation systems",
			CriticalFunctions: "scientific data collection, instrument control, mission operations",
			TypicalThreats:    "data corruption, instrument sabotage, mission interference",
		},
	},
	Navigation: {
		keywords:      []string{"navigation", "positioning", "gps", "gnss", "timing", "location", "atomic clock"},
		orbitKeywords: []string{"meo", "medium earth orbit", "navigation"},
		context: Context{
			KeyAssets:         "atomic clocks, signal generators, control systems, user receivers",
			CriticalFunctions: "precise timing, positioning signals, navigation services",
			TypicalThreats:    "signal spoofing, timing attacks, navigation disruption",
		},
	},
	OnOrbitService: {
		keywords:      []string{"servicing", "refueling", "repair", "debris removal", "satellite maintenance", "robotics", "docking"},
		orbitKeywords: []string{"various", "multiple orbits", "rendezvous"},
		context: Context{
			KeyAssets:         "robotic arms, docking systems, proximity sensors, control systems",
			CriticalFunctions: "satellite servicing, debris removal, orbital operations",
			TypicalThreats:    "hijacking, collision, unauthorized maneuvers",
		},
	},
}

// ContextFor returns the mission context for the type, defaulting to Earth
// Observation for unknown values.
func ContextFor(mt MissionType) Context {
	if profile, ok := missionProfiles[mt]; ok {
		return profile.context
	}
	return missionProfiles[EarthObservation].context
}

// InferMissionType scores a free-text program description against every
// mission profile: 2 points per keyword hit, 3 per orbit-keyword hit,
// case-insensitive. Ties resolve in declaration order; a description
// matching nothing defaults to Earth Observation.
func InferMissionType(description string) (MissionType, int) {
	lower := strings.ToLower(description)

	best := EarthObservation
	bestScore := 0
	for _, mt := range MissionTypes {
		profile := missionProfiles[mt]

		score := 0
		for _, keyword := range profile.keywords {
			if strings.Contains(lower, keyword) {
				score += 2
			}
		}
		for _, keyword := range profile.orbitKeywords {
			if strings.Contains(lower, keyword) {
				score += 3
			}
		}

		if score > bestScore {
			best = mt
			bestScore = score
		}
	}
	return best, bestScore
}
