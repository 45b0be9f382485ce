package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills defaults into a copy and reports anything the
// engine cannot run with (Errors) or that looks suspicious (Warnings).
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port == 0 {
		out.App.Port = 8787
	}
	if out.App.Port < 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	// cache sanity: zero means default, negatives are mistakes
	fillPositive := func(name string, p *int, def int) {
		if *p == 0 {
			*p = def
		}
		if *p < 0 {
			res.addErr("%s must be > 0", name)
		}
	}
	fillPositive("cache.resolve_ttl_hours", &out.Cache.ResolveTTLHours, 7*24)
	fillPositive("cache.profile_ttl_hours", &out.Cache.ProfileTTLHours, 30*24)
	fillPositive("cache.jobs_ttl_minutes", &out.Cache.JobsTTLMinutes, 10)
	fillPositive("cache.resolve_max_entries", &out.Cache.ResolveMaxEntries, 200)
	fillPositive("cache.profile_max_entries", &out.Cache.ProfileMaxEntries, 200)
	fillPositive("cache.jobs_max_entries", &out.Cache.JobsMaxEntries, 500)

	fillPositive("rate_limit.window_ms", &out.RateLimit.WindowMS, 60_000)
	fillPositive("rate_limit.max", &out.RateLimit.Max, 60)
	if out.RateLimit.WindowMS > 0 && out.RateLimit.WindowMS < 1000 {
		res.addWarn("rate_limit.window_ms is very low (%d); clients will see few 429s", out.RateLimit.WindowMS)
	}

	if out.Commitments.FuzzyThreshold == 0 {
		out.Commitments.FuzzyThreshold = 95
	}
	if out.Commitments.FuzzyThreshold < 0 || out.Commitments.FuzzyThreshold > 100 {
		res.addErr("commitments.fuzzy_threshold must be 1..100")
	} else if out.Commitments.FuzzyThreshold < 80 {
		res.addWarn("commitments.fuzzy_threshold below 80 will produce noisy matches")
	}

	out.Commitments.RecordsPath = strings.TrimSpace(out.Commitments.RecordsPath)
	out.Commitments.IndexPath = strings.TrimSpace(out.Commitments.IndexPath)
	if (out.Commitments.RecordsPath == "") != (out.Commitments.IndexPath == "") {
		res.addErr("commitments.records_path and commitments.index_path must be set together")
	}
	if out.Commitments.RecordsPath == "" {
		res.addWarn("no commitments snapshot configured; commitment matching will return no_match")
	}
	if strings.TrimSpace(out.Sector.IntensityPath) == "" {
		res.addWarn("no sector.intensity_path configured; sector bands will be unknown")
	}

	if out.JobSearch.Country == "" {
		out.JobSearch.Country = "gb"
	}
	out.JobSearch.Country = strings.ToLower(strings.TrimSpace(out.JobSearch.Country))
	if out.JobSearch.ResultsPerPage == 0 {
		out.JobSearch.ResultsPerPage = 20
	}
	if out.JobSearch.ResultsPerPage < 0 || out.JobSearch.ResultsPerPage > 50 {
		res.addErr("jobsearch.results_per_page must be 1..50")
	}

	return out, res
}
