// Package rating defines the ordinal rating scale and the ISO 27005 risk
// matrix used by every scoring component in the toolkit.
package rating

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Level is an ordinal rating on the five-point scale used throughout the
// assessment rubrics. The zero value is Unrated.
type Level int

const (
	Unrated Level = iota
	VeryLow
	Low
	Medium
	High
	VeryHigh
)

var levelNames = map[Level]string{
	Unrated:  "",
	VeryLow:  "Very Low",
	Low:      "Low",
	Medium:   "Medium",
	High:     "High",
	VeryHigh: "Very High",
}

// String returns the display name of the level ("Very Low" .. "Very High").
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Score returns the numeric score 1..5 of the level, or 0 for Unrated.
func (l Level) Score() int {
	if l < VeryLow || l > VeryHigh {
		return 0
	}
	return int(l)
}

// Valid reports whether the level is one of the five rated values.
func (l Level) Valid() bool {
	return l >= VeryLow && l <= VeryHigh
}

// ParseLevel parses a level from its display name. Matching is
// case-insensitive and tolerates surrounding whitespace.
func ParseLevel(s string) (Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for level, name := range levelNames {
		if level != Unrated && strings.ToLower(name) == normalized {
			return level, nil
		}
	}
	return Unrated, fmt.Errorf("unknown rating level %q", s)
}

// FromScore maps a normalized score in [0,1] onto the five-point scale.
// The band boundaries follow the assessment rubric in pkg/scoring:
// <=0.1 Very Low, <=0.4 Low, <=0.7 Medium, <=0.9 High, else Very High.
func FromScore(value float64) Level {
	switch {
	case value <= 0.1:
		return VeryLow
	case value <= 0.4:
		return Low
	case value <= 0.7:
		return Medium
	case value <= 0.9:
		return High
	default:
		return VeryHigh
	}
}

// MarshalJSON encodes the level as its display name.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level from its display name. An empty string
// decodes to Unrated.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*l = Unrated
		return nil
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML encodes the level as its display name.
func (l Level) MarshalYAML() (any, error) {
	return l.String(), nil
}

// UnmarshalYAML decodes a level from its display name.
func (l *Level) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*l = Unrated
		return nil
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Levels lists the five rated levels in ascending order.
func Levels() []Level {
	return []Level{VeryLow, Low, Medium, High, VeryHigh}
}
