package register

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"greensignal-engine/internal/normalize"
)

// Candidate is a scored register hit. Produced fresh per query, never stored.
type Candidate struct {
	CompanyNumber         string         `json:"company_number"`
	Title                 string         `json:"title"`
	Status                string         `json:"status"`
	AddressSnippet        string         `json:"address_snippet"`
	SICCodes              []string       `json:"sic_codes"`
	Score                 float64        `json:"score"`
	Reasons               []string       `json:"reasons"`
	OrgClassification     Classification `json:"org_classification"`
	ClassificationReasons []string       `json:"classification_reasons,omitempty"`
}

// BuildAddressSnippet prefers the upstream snippet and otherwise joins the
// structured parts, so everything downstream sees one address shape.
func BuildAddressSnippet(item SearchItem) string {
	if item.AddressSnippet != "" {
		return item.AddressSnippet
	}
	if item.Address == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{
		item.Address.AddressLine1,
		item.Address.AddressLine2,
		item.Address.Locality,
		item.Address.Region,
		item.Address.PostalCode,
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// tokenOverlap is the share of query tokens found in the candidate, over the
// larger of the two token-set sizes.
func tokenOverlap(queryTokens, candidateTokens []string) float64 {
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}
	candidateSet := make(map[string]bool, len(candidateTokens))
	for _, t := range candidateTokens {
		candidateSet[t] = true
	}
	shared := 0
	for _, t := range queryTokens {
		if candidateSet[t] {
			shared++
		}
	}
	return float64(shared) / float64(max(len(queryTokens), len(candidateTokens)))
}

func matchesLocationHint(addressSnippet, hintLocation string) bool {
	if addressSnippet == "" || hintLocation == "" {
		return false
	}
	address := normalize.Strict(addressSnippet)
	for _, token := range normalize.Tokens(normalize.Strict(hintLocation)) {
		if utf8.RuneCountInString(token) > 2 && strings.Contains(address, token) {
			return true
		}
	}
	return false
}

// Rank scores search hits against the query name. Pure function: scores are
// deterministic, ties keep input order, hits without a company number are
// dropped.
func Rank(query string, items []SearchItem, hintLocation string) []Candidate {
	normalizedQuery := normalize.Loose(query)
	queryTokens := normalize.Tokens(normalizedQuery)

	var candidates []Candidate
	for _, item := range items {
		if item.CompanyNumber == "" {
			continue
		}

		normalizedTitle := normalize.Loose(item.Title)
		candidateTokens := normalize.Tokens(normalizedTitle)

		var score float64
		var reasons []string

		if normalizedQuery != "" && normalizedQuery == normalizedTitle {
			score += 0.65
			reasons = append(reasons, "exact_normalized_match")
		}

		if overlap := tokenOverlap(queryTokens, candidateTokens); overlap > 0 {
			score += 0.25 * overlap
			reasons = append(reasons, fmt.Sprintf("token_overlap_%d", int(math.Round(overlap*100))))
		}

		addressSnippet := BuildAddressSnippet(item)
		if hintLocation != "" && matchesLocationHint(addressSnippet, hintLocation) {
			score += 0.1
			reasons = append(reasons, "location_hint_match")
		}

		score = math.Min(1, math.Round(score*1000)/1000)

		var sicCodes []string
		for _, code := range item.SICCodes {
			if code != "" {
				sicCodes = append(sicCodes, code)
			}
		}
		classification, classificationReasons := ClassifySIC(sicCodes)

		status := item.CompanyStatus
		if status == "" {
			status = "unknown"
		}

		candidates = append(candidates, Candidate{
			CompanyNumber:         item.CompanyNumber,
			Title:                 item.Title,
			Status:                status,
			AddressSnippet:        addressSnippet,
			SICCodes:              sicCodes,
			Score:                 score,
			Reasons:               reasons,
			OrgClassification:     classification,
			ClassificationReasons: classificationReasons,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}
