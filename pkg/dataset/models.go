// Package dataset defines the output record shape and commits one Parquet
// file per split.
package dataset

// Mention is one entity span inside a record's text. Offsets count Unicode
// characters into the NFC-normalized text, end exclusive. PageID and QID
// are nil for mentions that are intentionally absent from the title
// mapping.
type Mention struct {
	Start  uint32  `parquet:"start"`
	End    uint32  `parquet:"end"`
	PageID *uint32 `parquet:"primary_id,optional"`
	QID    *uint32 `parquet:"secondary_id,optional"`
}

// Record is one document of one split: the reconstructed text plus its
// mentions in offset order. ID is unique per process run, not reproducible
// across runs.
type Record struct {
	ID         string    `parquet:"id"`
	DocumentID uint32    `parquet:"document_id"`
	Text       string    `parquet:"text"`
	Mentions   []Mention `parquet:"mentions,list"`
}
