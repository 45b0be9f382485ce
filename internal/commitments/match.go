package commitments

import (
	"sort"
	"unicode/utf8"

	"greensignal-engine/internal/normalize"
)

type MatchStatus string

const (
	StatusMatched       MatchStatus = "matched"
	StatusLowConfidence MatchStatus = "low_confidence"
	StatusNoMatch       MatchStatus = "no_match"
)

const (
	DefaultFuzzyThreshold = 95
	strongTokenLength     = 4
	minTokenMatches       = 2
	maxCandidates         = 200
)

const source = "SBTi Companies Taking Action (snapshot)"

type MatchResult struct {
	MatchStatus                 MatchStatus `json:"match_status"`
	MatchConfidence             float64     `json:"match_confidence"`
	MatchedCompanyName          string      `json:"matched_company_name,omitempty"`
	ID                          string      `json:"sbti_id,omitempty"`
	NearTermStatus              string      `json:"near_term_status,omitempty"`
	NearTermClassification      string      `json:"near_term_target_classification,omitempty"`
	NearTermTargetYear          string      `json:"near_term_target_year,omitempty"`
	NetZeroStatus               string      `json:"net_zero_status,omitempty"`
	NetZeroYear                 string      `json:"net_zero_year,omitempty"`
	BA15Status                  string      `json:"ba15_status,omitempty"`
	DateUpdated                 string      `json:"date_updated,omitempty"`
	ReasonForExtensionOrRemoval string      `json:"reason_for_extension_or_removal,omitempty"`
	Sources                     []string    `json:"sources"`
}

// Matcher wraps a snapshot with its match policy.
type Matcher struct {
	Snapshot       *Snapshot
	FuzzyThreshold int
}

func NewMatcher(snap *Snapshot, fuzzyThreshold int) *Matcher {
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = DefaultFuzzyThreshold
	}
	return &Matcher{Snapshot: snap, FuzzyThreshold: fuzzyThreshold}
}

func noMatch() MatchResult {
	return MatchResult{MatchStatus: StatusNoMatch, Sources: []string{source}}
}

func matched(rec Record, status MatchStatus, confidence float64) MatchResult {
	return MatchResult{
		MatchStatus:                 status,
		MatchConfidence:             confidence,
		MatchedCompanyName:          rec.CompanyName,
		ID:                          rec.ID,
		NearTermStatus:              rec.NearTermStatus,
		NearTermClassification:      rec.NearTermClassification,
		NearTermTargetYear:          rec.NearTermTargetYear,
		NetZeroStatus:               rec.NetZeroStatus,
		NetZeroYear:                 rec.NetZeroYear,
		BA15Status:                  rec.BA15Status,
		DateUpdated:                 rec.DateUpdated,
		ReasonForExtensionOrRemoval: rec.ReasonForExtensionOrRemoval,
		Sources:                     []string{source},
	}
}

// Match resolves a free-text employer name against the snapshot. Exact loose
// name hits are "matched" with confidence 1; fuzzy hits over the rare-token
// index are "low_confidence" with the similarity ratio as confidence.
func (m *Matcher) Match(name string) MatchResult {
	if m == nil || m.Snapshot == nil || name == "" {
		return noMatch()
	}
	snap := m.Snapshot

	strict := normalize.Strict(name)
	loose := normalize.Loose(name)
	if loose == "" {
		return noMatch()
	}

	if ids := snap.Index.Names[loose]; len(ids) > 0 {
		if rec, ok := pickExact(ids, strict, snap); ok {
			return matched(rec, StatusMatched, 1)
		}
	}

	queryTokens := normalize.Tokens(loose)
	if len(queryTokens) <= 2 {
		return noMatch()
	}

	candidateIDs := buildCandidateIDs(queryTokens, snap)
	if len(candidateIDs) == 0 {
		return noMatch()
	}

	type scored struct {
		record      Record
		score       int
		strictMatch bool
		isUK        bool
	}
	var best *scored

	for _, id := range candidateIDs {
		rec, okRec := snap.Records[id]
		idx, okIdx := snap.Index.Records[id]
		if !okRec || !okIdx {
			continue
		}

		score := tokenSetRatio(loose, idx.NameLoose)
		if score < m.FuzzyThreshold {
			continue
		}
		if !hasStrongTokenOverlap(queryTokens, idx.Tokens, snap.stopwords) {
			continue
		}

		cand := &scored{
			record:      rec,
			score:       score,
			strictMatch: idx.NameStrict == strict,
			isUK:        isUKLocation(rec.Location),
		}
		switch {
		case best == nil:
			best = cand
		case cand.score > best.score:
			best = cand
		case cand.score == best.score && cand.isUK && !best.isUK:
			best = cand
		case cand.score == best.score && cand.isUK == best.isUK && cand.strictMatch && !best.strictMatch:
			best = cand
		}
	}

	if best == nil {
		return noMatch()
	}
	return matched(best.record, StatusLowConfidence, float64(best.score)/100)
}

// pickExact prefers a UK-located record, then a strict-name match, then the
// first candidate in index order.
func pickExact(ids []string, strict string, snap *Snapshot) (Record, bool) {
	type pair struct {
		record Record
		index  IndexRecord
	}
	var candidates []pair
	for _, id := range ids {
		rec, okRec := snap.Records[id]
		idx, okIdx := snap.Index.Records[id]
		if okRec && okIdx {
			candidates = append(candidates, pair{rec, idx})
		}
	}
	if len(candidates) == 0 {
		return Record{}, false
	}

	pool := candidates
	var uk []pair
	for _, c := range candidates {
		if isUKLocation(c.record.Location) {
			uk = append(uk, c)
		}
	}
	if len(uk) > 0 {
		pool = uk
	}
	for _, c := range pool {
		if c.index.NameStrict == strict {
			return c.record, true
		}
	}
	return pool[0].record, true
}

// buildCandidateIDs intersects the query tokens with the rare-token index,
// keeps records hit by at least two distinct tokens and caps the pool.
func buildCandidateIDs(queryTokens []string, snap *Snapshot) []string {
	var indexed []string
	for _, token := range queryTokens {
		if snap.stopwords[token] {
			continue
		}
		if _, ok := snap.Index.Tokens[token]; ok {
			indexed = append(indexed, token)
		}
	}
	if len(indexed) < minTokenMatches {
		return nil
	}

	counts := make(map[string]int)
	for _, token := range indexed {
		for _, id := range snap.Index.Tokens[token] {
			counts[id]++
		}
	}

	type hit struct {
		id    string
		count int
	}
	var hits []hit
	for id, count := range counts {
		if count >= minTokenMatches {
			hits = append(hits, hit{id, count})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].count != hits[j].count {
			return hits[i].count > hits[j].count
		}
		return hits[i].id < hits[j].id
	})
	if len(hits) > maxCandidates {
		hits = hits[:maxCandidates]
	}

	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}

// hasStrongTokenOverlap requires one shared non-stopword token of at least 4
// characters so that suffix soup alone cannot clear the similarity bar.
func hasStrongTokenOverlap(queryTokens, candidateTokens []string, stopwords map[string]bool) bool {
	candidateSet := make(map[string]bool, len(candidateTokens))
	for _, t := range candidateTokens {
		candidateSet[t] = true
	}
	for _, t := range queryTokens {
		if utf8.RuneCountInString(t) >= strongTokenLength && !stopwords[t] && candidateSet[t] {
			return true
		}
	}
	return false
}
