// Package assemble regroups one split's tagged tokens into dataset records:
// one record per document, one mention per maximal run of identically
// tagged tokens, with character offsets into the reconstructed text.
package assemble

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"aidaprep/pkg/conll"
	"aidaprep/pkg/dataset"
	"aidaprep/pkg/wikimap"
)

// ErrUnresolvedTitle reports a candidate title missing from the resolver
// table. It signals a violated contract between parser and resolver (the
// parser's title set must cover every title the assembler looks up), so
// the whole run aborts.
type ErrUnresolvedTitle struct {
	Title string
}

func (e *ErrUnresolvedTitle) Error() string {
	return fmt.Sprintf("candidate title %q missing from mapping table", e.Title)
}

// Split folds one split's token sequence into records, one per document.
// Tokens arrive in document order with each document's tokens contiguous,
// so grouping is a single forward pass over consecutive runs, never a
// sort. Documents with no tokens (consecutive boundary lines in the
// source) contribute nothing here and produce no record.
func Split(tokens []conll.Token, table wikimap.Table) ([]dataset.Record, error) {
	var records []dataset.Record

	for start := 0; start < len(tokens); {
		end := start + 1
		for end < len(tokens) && tokens[end].DocumentID == tokens[start].DocumentID {
			end++
		}

		rec, err := document(tokens[start:end], table)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)

		start = end
	}

	return records, nil
}

// document reconstructs one document from its contiguous token run.
// Within the run, each maximal sub-run of tokens sharing an identical tag
// is one unit: its texts join with single spaces, entity runs additionally
// become a mention spanning the joined text. Offsets count runes into the
// normalized text, with one extra for the space separating a unit from
// prior content.
func document(tokens []conll.Token, table wikimap.Table) (dataset.Record, error) {
	var (
		text     strings.Builder
		textLen  uint32 // rune count of text, maintained incrementally
		mentions []dataset.Mention
	)

	for start := 0; start < len(tokens); {
		end := start + 1
		for end < len(tokens) && tokens[end].Tag == tokens[start].Tag {
			end++
		}

		parts := make([]string, 0, end-start)
		for _, tok := range tokens[start:end] {
			parts = append(parts, tok.Text)
		}
		joined := strings.Join(parts, " ")

		spanStart := textLen
		if text.Len() > 0 {
			spanStart++
		}
		spanEnd := spanStart + uint32(utf8.RuneCountInString(joined))

		switch tag := tokens[start].Tag; tag.Kind {
		case conll.TagOutOfMapping:
			mentions = append(mentions, dataset.Mention{Start: spanStart, End: spanEnd})
		case conll.TagCandidate:
			entry, ok := table[tag.Title]
			if !ok {
				return dataset.Record{}, &ErrUnresolvedTitle{Title: tag.Title}
			}
			pageID := entry.PageID
			mentions = append(mentions, dataset.Mention{
				Start:  spanStart,
				End:    spanEnd,
				PageID: &pageID,
				QID:    entry.QID,
			})
		}

		if text.Len() > 0 {
			text.WriteByte(' ')
			textLen++
		}
		text.WriteString(joined)
		textLen += uint32(utf8.RuneCountInString(joined))

		start = end
	}

	return dataset.Record{
		ID:         uuid.NewString(),
		DocumentID: tokens[0].DocumentID,
		Text:       text.String(),
		Mentions:   mentions,
	}, nil
}
