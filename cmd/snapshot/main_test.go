package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greensignal-engine/internal/commitments"
)

func TestWriteArtifactsCarriesMetaInBothFiles(t *testing.T) {
	csv := "sbti_id,company_name,location\n" +
		"SBT001,Acme Widgets Limited,United Kingdom\n"
	records, index, err := commitments.BuildSnapshot(strings.NewReader(csv), "export.csv")
	require.NoError(t, err)

	dir := t.TempDir()
	recordsPath := filepath.Join(dir, "records.json")
	indexPath := filepath.Join(dir, "index.json")
	require.NoError(t, writeArtifacts(recordsPath, indexPath, records, index))

	var recordsFile struct {
		Meta    commitments.IndexMeta         `json:"meta"`
		Records map[string]commitments.Record `json:"records"`
	}
	b, err := os.ReadFile(recordsPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &recordsFile))
	assert.Equal(t, "export.csv", recordsFile.Meta.SnapshotFile)
	assert.Equal(t, 1, recordsFile.Meta.RecordCount)
	assert.NotEmpty(t, recordsFile.Meta.GeneratedAt)
	assert.Contains(t, recordsFile.Records, "SBT001")

	var indexFile commitments.NameIndex
	b, err = os.ReadFile(indexPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &indexFile))
	assert.Equal(t, recordsFile.Meta.SnapshotFile, indexFile.Meta.SnapshotFile)

	// the engine's loader accepts the emitted pair
	snap := commitments.LoadSnapshot(recordsPath, indexPath)
	require.NotNil(t, snap)
	res := commitments.NewMatcher(snap, 0).Match("Acme Widgets Ltd")
	assert.Equal(t, commitments.StatusMatched, res.MatchStatus)
}
