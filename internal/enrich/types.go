package enrich

import (
	"greensignal-engine/internal/commitments"
	"greensignal-engine/internal/register"
)

type Status string

const (
	StatusAvailable     Status = "available"
	StatusLowConfidence Status = "low_confidence"
	StatusNoData        Status = "no_data"
	StatusError         Status = "error"
)

// Override pins an employer to a specific register entity, bypassing the
// automatic ranking.
type Override struct {
	CompanyNumber string `json:"company_number"`
	CompanyName   string `json:"company_name,omitempty"`
}

// Signals carries the profile-derived facts for the selected company.
type Signals struct {
	CompanyNumber        string   `json:"company_number"`
	SICCodes             []string `json:"sic_codes"`
	SectorIntensityBand  string   `json:"sector_intensity_band"`
	SectorIntensityValue *float64 `json:"sector_intensity_value"`
	SectorIntensitySIC   string   `json:"sector_intensity_sic_code,omitempty"`
	SectorDescription    string   `json:"sector_description,omitempty"`
	Sources              []string `json:"sources"`
	Cached               bool     `json:"cached"`
}

// Result is the composed enrichment answer. Errors are reported in-band via
// Status and Reason; nothing panics across this boundary.
type Result struct {
	Status          Status                    `json:"status"`
	Reason          string                    `json:"reason,omitempty"`
	Confidence      string                    `json:"confidence,omitempty"`
	Candidates      []register.Candidate      `json:"candidates"`
	Selected        *register.Candidate       `json:"selected_candidate,omitempty"`
	Signals         *Signals                  `json:"signals,omitempty"`
	Commitment      *commitments.MatchResult  `json:"commitment,omitempty"`
	OverrideApplied bool                      `json:"override_applied,omitempty"`
	Cached          bool                      `json:"cached"`
}
