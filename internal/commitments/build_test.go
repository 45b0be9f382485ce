package commitments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `sbti_id,company_name,location,region,sector,near_term_status,near_term_target_classification,near_term_target_year,net_zero_status,net_zero_year,ba15_status,date_updated,reason_for_extension_or_removal
SBT001,Acme Widgets Ltd,United Kingdom,Europe,Manufacturing,Targets set,1.5C,2030,Committed,2050,,27/01/2026,
SBT002,Acme Widgets Inc,United States,North America,Manufacturing,Targets set,1.5C,2030,,,,27/01/2026,
SBT003,Northern Holdings Group,United Kingdom,Europe,Finance,Committed,,,,,,,
,Rowless Corp,,,,,,,,,,,
`

func TestBuildSnapshot(t *testing.T) {
	records, index, err := BuildSnapshot(strings.NewReader(sampleCSV), "sample.csv")
	require.NoError(t, err)

	assert.Len(t, records, 3, "row without an id is skipped")
	assert.Equal(t, 3, index.Meta.RecordCount)
	assert.Equal(t, "sample.csv", index.Meta.SnapshotFile)

	rec := records["SBT001"]
	assert.Equal(t, "Acme Widgets Ltd", rec.CompanyName)
	assert.Equal(t, "Targets set", rec.NearTermStatus)
	assert.Equal(t, "2026-01-27", rec.DateUpdated, "dd/mm/yyyy is normalized")

	// both Acme rows index under the same loose name
	assert.ElementsMatch(t, []string{"SBT001", "SBT002"}, index.Names["acme widgets"])

	// builder strips holdings/group suffixes the matcher's loose form keeps
	assert.Equal(t, []string{"SBT003"}, index.Names["northern"])

	idx := index.Records["SBT001"]
	assert.Equal(t, "acme widgets ltd", idx.NameStrict)
	assert.Equal(t, "acme widgets", idx.NameLoose)
	assert.Equal(t, []string{"acme", "widgets"}, idx.Tokens)

	// rare-token index covers discriminative tokens only
	assert.ElementsMatch(t, []string{"SBT001", "SBT002"}, index.Tokens["acme"])
	assert.Equal(t, 2, index.Meta.TokenFrequencies["acme"])
	assert.NotContains(t, index.Tokens, "the")
}

func TestBuildSnapshotRoundTripsIntoMatcher(t *testing.T) {
	records, index, err := BuildSnapshot(strings.NewReader(sampleCSV), "sample.csv")
	require.NoError(t, err)

	snap := &Snapshot{Records: records, Index: index, stopwords: map[string]bool{}}
	for _, w := range index.Meta.Stopwords {
		snap.stopwords[w] = true
	}

	res := NewMatcher(snap, 0).Match("Acme Widgets Limited")
	require.Equal(t, StatusMatched, res.MatchStatus)
	assert.Equal(t, "SBT001", res.ID, "UK record wins over the US duplicate")
}

func TestBuildSnapshotMissingIDColumn(t *testing.T) {
	_, _, err := BuildSnapshot(strings.NewReader("name,location\nAcme,UK\n"), "bad.csv")
	assert.Error(t, err)
}
