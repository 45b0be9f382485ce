package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankExactMatch(t *testing.T) {
	items := []SearchItem{
		{CompanyNumber: "1", Title: "Acme Ltd", CompanyStatus: "active", SICCodes: []string{"62020"}},
	}
	candidates := Rank("Acme", items, "")
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.GreaterOrEqual(t, c.Score, 0.65)
	assert.Contains(t, c.Reasons, "exact_normalized_match")
	assert.Contains(t, c.Reasons, "token_overlap_100")
	assert.Equal(t, ClassificationEmployer, c.OrgClassification)
}

func TestRankTokenOverlap(t *testing.T) {
	items := []SearchItem{
		{CompanyNumber: "1", Title: "Acme Widgets Trading Ltd"},
	}
	candidates := Rank("Acme Widgets", items, "")
	require.Len(t, candidates, 1)

	// 2 shared tokens over a max set size of 3
	assert.InDelta(t, 0.25*(2.0/3.0), candidates[0].Score, 0.001)
	assert.Contains(t, candidates[0].Reasons, "token_overlap_67")
	assert.NotContains(t, candidates[0].Reasons, "exact_normalized_match")
}

func TestRankLocationHint(t *testing.T) {
	items := []SearchItem{
		{CompanyNumber: "1", Title: "Acme", AddressSnippet: "1 High Street, Leeds, LS1 1AA"},
		{CompanyNumber: "2", Title: "Acme", AddressSnippet: "2 Low Road, Bristol, BS1 1BB"},
	}
	candidates := Rank("Acme", items, "Leeds")
	require.Len(t, candidates, 2)

	assert.Equal(t, "1", candidates[0].CompanyNumber)
	assert.Contains(t, candidates[0].Reasons, "location_hint_match")
	assert.InDelta(t, 0.1, candidates[0].Score-candidates[1].Score, 0.001)

	// short hint tokens must not match ("in" is inside "Bristol" etc.)
	candidates = Rank("Acme", items, "in at")
	for _, c := range candidates {
		assert.NotContains(t, c.Reasons, "location_hint_match")
	}
}

func TestRankDropsHitsWithoutCompanyNumber(t *testing.T) {
	items := []SearchItem{
		{Title: "Ghost Entry"},
		{CompanyNumber: "2", Title: "Real Entry"},
	}
	candidates := Rank("Real Entry", items, "")
	require.Len(t, candidates, 1)
	assert.Equal(t, "2", candidates[0].CompanyNumber)
}

func TestRankStableTieOrder(t *testing.T) {
	items := []SearchItem{
		{CompanyNumber: "a", Title: "Acme"},
		{CompanyNumber: "b", Title: "Acme"},
		{CompanyNumber: "c", Title: "Acme"},
	}
	candidates := Rank("Acme", items, "")
	require.Len(t, candidates, 3)
	assert.Equal(t, "a", candidates[0].CompanyNumber)
	assert.Equal(t, "b", candidates[1].CompanyNumber)
	assert.Equal(t, "c", candidates[2].CompanyNumber)
}

func TestRankScoreClamp(t *testing.T) {
	items := []SearchItem{
		{CompanyNumber: "1", Title: "Acme Ltd", AddressSnippet: "Leeds"},
	}
	candidates := Rank("Acme", items, "Leeds")
	require.Len(t, candidates, 1)
	assert.LessOrEqual(t, candidates[0].Score, 1.0)
	assert.Equal(t, 1.0, candidates[0].Score, "0.65+0.25+0.1 rounds to exactly 1")
}

func TestBuildAddressSnippet(t *testing.T) {
	assert.Equal(t, "pre-built", BuildAddressSnippet(SearchItem{AddressSnippet: "pre-built"}))
	assert.Equal(t, "", BuildAddressSnippet(SearchItem{}))
	assert.Equal(t, "1 High St, Leeds, LS1 1AA", BuildAddressSnippet(SearchItem{
		Address: &Address{AddressLine1: "1 High St", Locality: "Leeds", PostalCode: "LS1 1AA"},
	}))
}

func TestRankDefaultsStatus(t *testing.T) {
	candidates := Rank("Acme", []SearchItem{{CompanyNumber: "1", Title: "Acme"}}, "")
	require.Len(t, candidates, 1)
	assert.Equal(t, "unknown", candidates[0].Status)
}

func TestLocationHintCountsCharacters(t *testing.T) {
	// "éé" is 2 characters (4 bytes) and too short to count as a hint token
	assert.False(t, matchesLocationHint("12 éé street, London", "éé"))
	assert.True(t, matchesLocationHint("Écosse House, Edinburgh", "Écosse"))
}
