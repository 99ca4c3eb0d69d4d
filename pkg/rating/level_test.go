package rating

import (
	"encoding/json"
	"testing"
)

func TestParseLevel_RoundTrip(t *testing.T) {
	for _, level := range Levels() {
		parsed, err := ParseLevel(level.String())
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", level.String(), err)
		}
		if parsed != level {
			t.Errorf("ParseLevel(%q) = %s, want %s", level.String(), parsed, level)
		}
	}
}

func TestParseLevel_CaseInsensitive(t *testing.T) {
	cases := map[string]Level{
		"very high": VeryHigh,
		"VERY LOW":  VeryLow,
		"  Medium ": Medium,
		"low":       Low,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", input, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	if _, err := ParseLevel("extreme"); err == nil {
		t.Error("expected error for unknown level name")
	}
}

func TestFromScore_Bands(t *testing.T) {
	cases := []struct {
		value float64
		want  Level
	}{
		{0.0, VeryLow},
		{0.1, VeryLow},
		{0.11, Low},
		{0.4, Low},
		{0.5, Medium},
		{0.7, Medium},
		{0.75, High},
		{0.9, High},
		{0.91, VeryHigh},
		{1.0, VeryHigh},
	}
	for _, tc := range cases {
		if got := FromScore(tc.value); got != tc.want {
			t.Errorf("FromScore(%v) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestLevel_JSONRoundTrip(t *testing.T) {
	type doc struct {
		Risk Level `json:"risk"`
	}

	data, err := json.Marshal(doc{Risk: High})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"risk":"High"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var decoded doc
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Risk != High {
		t.Errorf("round trip produced %s, want High", decoded.Risk)
	}

	var empty doc
	if err := json.Unmarshal([]byte(`{"risk":""}`), &empty); err != nil {
		t.Fatalf("unmarshal of empty level failed: %v", err)
	}
	if empty.Risk != Unrated {
		t.Errorf("empty string decoded to %s, want Unrated", empty.Risk)
	}
}
