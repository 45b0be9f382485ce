// Package commitments matches employer names against a static snapshot of
// public science-based climate-target commitments.
package commitments

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Record carries one company's commitment fields verbatim from the snapshot.
// The matcher copies them into results without interpreting them.
type Record struct {
	ID                          string `json:"sbti_id"`
	CompanyName                 string `json:"company_name"`
	Location                    string `json:"location"`
	Region                      string `json:"region"`
	Sector                      string `json:"sector"`
	NearTermStatus              string `json:"near_term_status"`
	NearTermClassification      string `json:"near_term_target_classification"`
	NearTermTargetYear          string `json:"near_term_target_year"`
	NetZeroStatus               string `json:"net_zero_status"`
	NetZeroYear                 string `json:"net_zero_year"`
	BA15Status                  string `json:"ba15_status"`
	DateUpdated                 string `json:"date_updated"`
	ReasonForExtensionOrRemoval string `json:"reason_for_extension_or_removal"`
}

// IndexRecord holds the pre-normalized name forms for one record.
type IndexRecord struct {
	NameStrict string   `json:"name_strict"`
	NameLoose  string   `json:"name_loose"`
	Tokens     []string `json:"tokens"`
}

type IndexMeta struct {
	SnapshotFile     string         `json:"snapshot_file"`
	GeneratedAt      string         `json:"generated_at"`
	RecordCount      int            `json:"record_count"`
	MinTokenLength   int            `json:"min_token_length,omitempty"`
	RareTokenMax     int            `json:"rare_token_max,omitempty"`
	Stopwords        []string       `json:"stopwords,omitempty"`
	TokenFrequencies map[string]int `json:"token_frequencies,omitempty"`
}

// NameIndex maps loose names to record IDs exactly, and rare tokens (those
// appearing in few enough records to be discriminative) to candidate IDs.
type NameIndex struct {
	Meta    IndexMeta              `json:"meta"`
	Names   map[string][]string    `json:"names"`
	Tokens  map[string][]string    `json:"tokens"`
	Records map[string]IndexRecord `json:"records"`
}

type Snapshot struct {
	Records map[string]Record
	Index   NameIndex

	stopwords map[string]bool
}

type recordsPayload struct {
	Records map[string]Record `json:"records"`
}

// LoadSnapshot reads the records and index artifacts. Both reads run
// concurrently; any failure degrades to a nil snapshot so the matcher
// answers no_match instead of taking the pipeline down.
func LoadSnapshot(recordsPath, indexPath string) *Snapshot {
	var payload recordsPayload
	var index NameIndex

	var g errgroup.Group
	g.Go(func() error { return readJSON(recordsPath, &payload) })
	g.Go(func() error { return readJSON(indexPath, &index) })
	if err := g.Wait(); err != nil {
		log.Printf("[commitments] unable to load snapshot: %v", err)
		return nil
	}

	snap := &Snapshot{
		Records:   payload.Records,
		Index:     index,
		stopwords: make(map[string]bool, len(index.Meta.Stopwords)),
	}
	for _, w := range index.Meta.Stopwords {
		snap.stopwords[w] = true
	}
	return snap
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

var ukLocationTokens = []string{
	"united kingdom",
	"uk",
	"great britain",
	"england",
	"scotland",
	"wales",
	"northern ireland",
}

func isUKLocation(location string) bool {
	if location == "" {
		return false
	}
	lower := strings.ToLower(location)
	for _, token := range ukLocationTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
