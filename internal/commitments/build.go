package commitments

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"greensignal-engine/internal/normalize"
)

// The builder strips a wider suffix set than the matcher so that group and
// holding companies index under their distinctive name.
var builderSuffixes = map[string]bool{
	"ltd": true, "limited": true, "holdings": true, "holding": true,
	"group": true, "groups": true, "plc": true, "llp": true, "lp": true,
	"inc": true, "incorporated": true, "co": true, "company": true,
	"corp": true, "corporation": true, "llc": true, "gmbh": true,
	"sa": true, "sarl": true,
}

var builderStopwords = []string{
	"and", "co", "companies", "company", "corp", "corporation", "global",
	"group", "groups", "holding", "holdings", "inc", "incorporated",
	"international", "limited", "llc", "llp", "ltd", "plc", "service",
	"services", "solution", "solutions", "the", "uk",
}

const (
	builderMinTokenLength = 2
	builderRareTokenMax   = 50
)

var ddmmyyyy = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

func normalizeDate(s string) string {
	if m := ddmmyyyy.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
	}
	return s
}

// BuildSnapshot turns the upstream CSV export into the records and index
// artifacts the matcher loads. Rows without an ID are skipped; everything
// else is carried through verbatim with only whitespace trimming and
// dd/mm/yyyy date normalization.
func BuildSnapshot(r io.Reader, snapshotFile string) (map[string]Record, NameIndex, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, NameIndex{}, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["sbti_id"]; !ok {
		return nil, NameIndex{}, fmt.Errorf("csv is missing the sbti_id column")
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	stopwords := make(map[string]bool, len(builderStopwords))
	for _, w := range builderStopwords {
		stopwords[w] = true
	}

	records := make(map[string]Record)
	indexRecords := make(map[string]IndexRecord)
	names := make(map[string][]string)
	tokenCounts := make(map[string]int)
	tokenIDs := make(map[string][]string)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NameIndex{}, fmt.Errorf("read csv row: %w", err)
		}

		id := field(row, "sbti_id")
		if id == "" {
			continue
		}

		companyName := field(row, "company_name")
		strict := normalize.Strict(companyName)
		loose := normalize.StripSuffixes(strict, builderSuffixes)

		seen := make(map[string]bool)
		var tokens []string
		for _, token := range normalize.Tokens(loose) {
			if utf8.RuneCountInString(token) < builderMinTokenLength || stopwords[token] || seen[token] {
				continue
			}
			seen[token] = true
			tokens = append(tokens, token)
		}

		records[id] = Record{
			ID:                          id,
			CompanyName:                 companyName,
			Location:                    field(row, "location"),
			Region:                      field(row, "region"),
			Sector:                      field(row, "sector"),
			NearTermStatus:              field(row, "near_term_status"),
			NearTermClassification:      field(row, "near_term_target_classification"),
			NearTermTargetYear:          field(row, "near_term_target_year"),
			NetZeroStatus:               field(row, "net_zero_status"),
			NetZeroYear:                 field(row, "net_zero_year"),
			BA15Status:                  field(row, "ba15_status"),
			DateUpdated:                 normalizeDate(field(row, "date_updated")),
			ReasonForExtensionOrRemoval: field(row, "reason_for_extension_or_removal"),
		}
		indexRecords[id] = IndexRecord{NameStrict: strict, NameLoose: loose, Tokens: tokens}

		if loose != "" {
			names[loose] = append(names[loose], id)
		}
		for _, token := range tokens {
			tokenCounts[token]++
			tokenIDs[token] = append(tokenIDs[token], id)
		}
	}

	rare := make(map[string][]string)
	for token, ids := range tokenIDs {
		if tokenCounts[token] <= builderRareTokenMax {
			rare[token] = ids
		}
	}

	index := NameIndex{
		Meta: IndexMeta{
			SnapshotFile:     snapshotFile,
			GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
			RecordCount:      len(records),
			MinTokenLength:   builderMinTokenLength,
			RareTokenMax:     builderRareTokenMax,
			Stopwords:        sortedCopy(builderStopwords),
			TokenFrequencies: tokenCounts,
		},
		Names:   names,
		Tokens:  rare,
		Records: indexRecords,
	}
	return records, index, nil
}

func sortedCopy(xs []string) []string {
	out := append([]string{}, xs...)
	sort.Strings(out)
	return out
}
