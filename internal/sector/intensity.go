// Package sector maps SIC codes to sector-average greenhouse-gas intensity
// bands using a pre-built snapshot of the ONS environmental accounts.
package sector

import (
	"encoding/json"
	"log"
	"math"
	"os"
)

type Band string

const (
	BandLow     Band = "low"
	BandMedium  Band = "medium"
	BandHigh    Band = "high"
	BandUnknown Band = "unknown"
)

type Thresholds struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type Meta struct {
	Source         string     `json:"source"`
	GeneratedAt    string     `json:"generated_at"`
	BandThresholds Thresholds `json:"band_thresholds"`
}

// Map holds the code-keyed intensity tables. Exact carries 2-5 digit prefixes,
// Groups 2-digit SIC divisions. Loaded once at startup and never mutated.
type Map struct {
	Meta         Meta               `json:"meta"`
	Exact        map[string]float64 `json:"exact"`
	Groups       map[string]float64 `json:"groups"`
	Descriptions map[string]string  `json:"descriptions,omitempty"`
}

type Result struct {
	Value       *float64
	Band        Band
	MatchedCode string
	Description string
}

// Load reads the intensity map artifact. A missing or corrupt file degrades
// to a nil map; Resolve then answers "unknown" instead of failing lookups.
func Load(path string) *Map {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[sector] unable to load intensity map: %v", err)
		return nil
	}
	var m Map
	if err := json.Unmarshal(b, &m); err != nil {
		log.Printf("[sector] intensity map is corrupt: %v", err)
		return nil
	}
	return &m
}

func normalizeSIC(code string) string {
	out := make([]byte, 0, len(code))
	for i := 0; i < len(code); i++ {
		if code[i] >= '0' && code[i] <= '9' {
			out = append(out, code[i])
		}
	}
	return string(out)
}

type match struct {
	value   float64
	matched string
	weight  int
}

// findMatch tries prefixes most-specific first: 5, 4 and 3 digits against the
// exact table (weight 2), then the 2-digit division (weight 1).
func findMatch(code string, m *Map) (match, bool) {
	normalized := normalizeSIC(code)
	for _, n := range []int{5, 4, 3} {
		if len(normalized) < n {
			continue
		}
		prefix := normalized[:n]
		if v, ok := m.Exact[prefix]; ok {
			return match{value: v, matched: prefix, weight: 2}, true
		}
	}
	if len(normalized) >= 2 {
		prefix := normalized[:2]
		if v, ok := m.Groups[prefix]; ok {
			return match{value: v, matched: prefix, weight: 1}, true
		}
	}
	return match{}, false
}

func pickBand(value float64, t Thresholds) Band {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return BandUnknown
	}
	if value <= t.Low {
		return BandLow
	}
	if value <= t.High {
		return BandMedium
	}
	return BandHigh
}

// Resolve picks the best intensity hit across all codes: highest weight wins,
// ties go to the higher value (the conservative choice). No codes, no map or
// no table hit resolves to an unknown band, not an error.
func Resolve(sicCodes []string, m *Map) Result {
	if m == nil || len(sicCodes) == 0 {
		return Result{Band: BandUnknown}
	}

	var best match
	found := false
	for _, code := range sicCodes {
		hit, ok := findMatch(code, m)
		if !ok {
			continue
		}
		if !found ||
			hit.weight > best.weight ||
			(hit.weight == best.weight && hit.value > best.value) {
			best = hit
			found = true
		}
	}
	if !found {
		return Result{Band: BandUnknown}
	}

	description := m.Descriptions[best.matched]
	if description == "" && len(best.matched) > 2 {
		description = m.Descriptions[best.matched[:2]]
	}

	value := best.value
	return Result{
		Value:       &value,
		Band:        pickBand(best.value, m.Meta.BandThresholds),
		MatchedCode: best.matched,
		Description: description,
	}
}
