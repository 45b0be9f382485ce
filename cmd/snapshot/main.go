// Command snapshot builds the commitments records and name-index artifacts
// from a CSV export of the public commitments dataset.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"greensignal-engine/internal/commitments"
)

func main() {
	csvPath := flag.String("csv", "", "path to the commitments CSV export")
	recordsOut := flag.String("records", "commitments_records.json", "output path for the records file")
	indexOut := flag.String("index", "commitments_index.json", "output path for the name index")
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("usage: snapshot -csv <export.csv> [-records out.json] [-index out.json]")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	records, index, err := commitments.BuildSnapshot(f, filepath.Base(*csvPath))
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	if err := writeArtifacts(*recordsOut, *indexOut, records, index); err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote %d records (index tokens=%d names=%d)",
		len(records), len(index.Tokens), len(index.Names))
}

// writeArtifacts writes the two snapshot files. Both carry the same meta
// block so either can be checked for provenance on its own.
func writeArtifacts(recordsOut, indexOut string, records map[string]commitments.Record, index commitments.NameIndex) error {
	recordsPayload := map[string]any{
		"meta":    index.Meta,
		"records": records,
	}
	if err := writeJSON(recordsOut, recordsPayload); err != nil {
		return err
	}
	return writeJSON(indexOut, index)
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
