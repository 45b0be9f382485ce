// Package enrich composes register lookup, sector intensity and commitment
// matching into one employer enrichment pipeline.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"greensignal-engine/internal/cache"
	"greensignal-engine/internal/commitments"
	"greensignal-engine/internal/register"
	"greensignal-engine/internal/sector"
)

// HighConfidenceScore is the ranking score at which a top candidate counts
// as a confident match rather than a guess.
const HighConfidenceScore = 0.7

// RegisterAPI is the slice of the register client the pipeline needs;
// narrowed to an interface so tests can stub the upstream.
type RegisterAPI interface {
	Search(ctx context.Context, query string) (register.SearchResponse, error)
	Profile(ctx context.Context, companyNumber string) (register.Profile, error)
}

type Service struct {
	Register  RegisterAPI
	SectorMap *sector.Map
	Matcher   *commitments.Matcher

	// Ranked candidate lists and profiles are cached aggressively; both are
	// slow-moving upstream data. Last write wins for concurrent misses.
	ResolveCache *cache.Cache[[]register.Candidate]
	ProfileCache *cache.Cache[register.Profile]
}

// resolveCacheKey fingerprints a query deterministically. json.Marshal of a
// struct keeps field order fixed.
func resolveCacheKey(name, hintLocation string) string {
	b, _ := json.Marshal(struct {
		Name string `json:"name"`
		Hint string `json:"hint_location"`
	}{
		Name: strings.ToLower(strings.TrimSpace(name)),
		Hint: strings.ToLower(strings.TrimSpace(hintLocation)),
	})
	return string(b)
}

// Resolve returns ranked register candidates for an employer name. The bool
// reports whether the answer came from cache.
func (s *Service) Resolve(ctx context.Context, name, hintLocation string) ([]register.Candidate, bool, error) {
	key := resolveCacheKey(name, hintLocation)
	if cached, ok := s.ResolveCache.Get(key); ok {
		return cached, true, nil
	}

	res, err := s.Register.Search(ctx, name)
	if err != nil {
		return nil, false, err
	}
	candidates := register.Rank(name, res.Items, hintLocation)
	s.ResolveCache.Set(key, candidates)
	return candidates, false, nil
}

// Signals fetches the register profile for a company and resolves its sector
// intensity from the loaded map.
func (s *Service) Signals(ctx context.Context, companyNumber string) (*Signals, error) {
	profile, cached := s.cachedProfile(companyNumber)
	if !cached {
		fetched, err := s.Register.Profile(ctx, companyNumber)
		if err != nil {
			return nil, err
		}
		profile = fetched
		s.ProfileCache.Set(companyNumber, profile)
	}

	var sicCodes []string
	for _, code := range profile.SICCodes {
		if code != "" {
			sicCodes = append(sicCodes, code)
		}
	}

	intensity := sector.Resolve(sicCodes, s.SectorMap)
	sources := []string{"companies_house"}
	if intensity.Value != nil {
		sources = append(sources, "ons")
	}

	number := profile.CompanyNumber
	if number == "" {
		number = companyNumber
	}
	return &Signals{
		CompanyNumber:        number,
		SICCodes:             sicCodes,
		SectorIntensityBand:  string(intensity.Band),
		SectorIntensityValue: intensity.Value,
		SectorIntensitySIC:   intensity.MatchedCode,
		SectorDescription:    intensity.Description,
		Sources:              sources,
		Cached:               cached,
	}, nil
}

func (s *Service) cachedProfile(companyNumber string) (register.Profile, bool) {
	if p, ok := s.ProfileCache.Get(companyNumber); ok {
		return p, true
	}
	return register.Profile{}, false
}

func statusForScore(score float64) Status {
	if score >= HighConfidenceScore {
		return StatusAvailable
	}
	return StatusLowConfidence
}

// selectCandidate applies the override pin when present: a pin matching a
// ranked candidate reuses it, an unranked pin becomes a synthetic candidate.
func selectCandidate(candidates []register.Candidate, override *Override) (*register.Candidate, bool) {
	if override != nil && override.CompanyNumber != "" {
		for i := range candidates {
			if candidates[i].CompanyNumber == override.CompanyNumber {
				return &candidates[i], true
			}
		}
		title := override.CompanyName
		if title == "" {
			title = override.CompanyNumber
		}
		return &register.Candidate{
			CompanyNumber: override.CompanyNumber,
			Title:         title,
			Status:        "override",
			Score:         1,
			Reasons:       []string{"user_override"},
		}, true
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return &candidates[0], false
}

// Enrich runs the full pipeline for one employer name. All failure modes are
// reported in-band on the result; an unreachable register degrades to status
// "error", an unmatched name to "no_data".
func (s *Service) Enrich(ctx context.Context, name, hintLocation string, override *Override) Result {
	name = strings.TrimSpace(name)
	if name == "" {
		return Result{Status: StatusNoData, Reason: "missing employer name", Candidates: []register.Candidate{}}
	}

	candidates, cached, err := s.Resolve(ctx, name, hintLocation)
	if err != nil {
		log.Printf("[enrich] resolve failed name=%q err=%v", name, err)
		return Result{Status: StatusError, Reason: "register lookup failed", Candidates: []register.Candidate{}}
	}
	if candidates == nil {
		candidates = []register.Candidate{}
	}

	selected, overrideApplied := selectCandidate(candidates, override)
	if selected == nil {
		return Result{Status: StatusNoData, Reason: "no candidate matched", Candidates: candidates, Cached: cached}
	}

	status := statusForScore(selected.Score)
	confidence := fmt.Sprintf("%.3f", selected.Score)
	if overrideApplied {
		status = StatusAvailable
		confidence = "user-selected"
	}

	var signals *Signals
	var commitment commitments.MatchResult

	// Profile fetch is network I/O, commitment matching is in-memory; run
	// them side by side.
	var g errgroup.Group
	g.Go(func() error {
		got, err := s.Signals(ctx, selected.CompanyNumber)
		if err != nil {
			// degraded result, not a pipeline failure
			log.Printf("[enrich] signals failed company=%s err=%v", selected.CompanyNumber, err)
			return nil
		}
		signals = got
		return nil
	})
	g.Go(func() error {
		commitment = s.Matcher.Match(name)
		return nil
	})
	_ = g.Wait()

	return Result{
		Status:          status,
		Confidence:      confidence,
		Candidates:      candidates,
		Selected:        selected,
		Signals:         signals,
		Commitment:      &commitment,
		OverrideApplied: overrideApplied,
		Cached:          cached,
	}
}
