// Package wikimap resolves Wikipedia titles to their numeric identifiers:
// the Wikipedia pageid and, when one exists, the Wikidata QID. The bulk of
// the mapping streams in from an Avro object-container file; a small list
// of manual corrections is applied first and always wins.
package wikimap

import (
	"fmt"
	"os"

	"github.com/hamba/avro/v2/ocf"
)

// Entry is the resolved identifier pair for one title. QID is nil for
// titles that have no Wikidata item.
type Entry struct {
	PageID uint32
	QID    *uint32
}

// Table maps a title to its resolved identifiers. Built once per run,
// read-only afterward.
type Table map[string]Entry

// record mirrors one row of the wiki2qid Avro stream.
type record struct {
	Title  string `avro:"title"`
	PageID int64  `avro:"pageid"`
	QID    *int64 `avro:"qid"`
}

func qid(v uint32) *uint32 { return &v }

// Overrides returns the manual corrections applied before the external
// stream is consulted. These fix titles the upstream dump resolves to the
// wrong page (redirects, disambiguation churn).
func Overrides() Table {
	return Table{
		"International_cricketers_of_South_African_origin": {PageID: 17416221, QID: qid(258)},
		"Independence_Day_(film)":                          {PageID: 52389, QID: qid(105387)},
		"Camelot,_Chesapeake,_Virginia":                    {PageID: 91342, QID: qid(49222)},
		"SBC_Communications":                               {PageID: 26213969, QID: qid(444015)},
		"Superman_(film)":                                  {PageID: 28381, QID: qid(79015)},
		"Rabobank_(cycling_team)":                          {PageID: 2354465, QID: qid(6233)},
		"U._Chandana":                                      {PageID: 896434, QID: qid(3520028)},
		"LPGA_Championship":                                {PageID: 229059, QID: qid(281917)},
		"Hapoel_Be'er_Sheva_A.F.C.":                        {PageID: 5834903, QID: qid(986529)},
	}
}

// Resolve builds the title table for the given title set. The table starts
// from the manual overrides; the Avro stream at path then fills in titles
// from the set on a first-write-wins basis, so overrides are never
// replaced and duplicate stream entries keep their first value. Stream
// entries whose title is outside the set are skipped.
func Resolve(path string, titles map[string]struct{}) (Table, error) {
	table := Overrides()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()

	dec, err := ocf.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("read mapping container: %w", err)
	}

	for dec.HasNext() {
		var rec record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode mapping record: %w", err)
		}

		if _, wanted := titles[rec.Title]; !wanted {
			continue
		}
		if _, exists := table[rec.Title]; exists {
			continue
		}

		entry := Entry{PageID: uint32(rec.PageID)}
		if rec.QID != nil {
			entry.QID = qid(uint32(*rec.QID))
		}
		table[rec.Title] = entry
	}
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}

	return table, nil
}
