// Package conll parses the AIDA CoNLL-YAGO token stream: a tab-separated
// line format with embedded -DOCSTART- document boundaries and per-token
// entity annotations.
package conll

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Split identifies which output table a document belongs to.
type Split int

const (
	Train Split = iota
	Validation
	Test
)

func (s Split) String() string {
	switch s {
	case Validation:
		return "validation"
	case Test:
		return "test"
	default:
		return "train"
	}
}

// TagKind discriminates the entity annotation attached to a token.
type TagKind int

const (
	// TagNone marks a token that is not part of any entity mention.
	TagNone TagKind = iota
	// TagOutOfMapping marks a mention that is deliberately excluded from
	// title resolution (annotated --NME-- in the source corpus).
	TagOutOfMapping
	// TagCandidate marks a mention whose title must be resolved to
	// numeric identifiers before assembly.
	TagCandidate
)

// Tag is the entity annotation of a token. Tags compare by value: a maximal
// run of adjacent tokens with equal Tag is exactly one mention, so Candidate
// tags with different titles must not group together.
type Tag struct {
	Kind  TagKind
	Title string // set only for TagCandidate
}

// None, OutOfMapping and Candidate construct the three Tag variants.
func None() Tag { return Tag{Kind: TagNone} }

func OutOfMapping() Tag { return Tag{Kind: TagOutOfMapping} }

func Candidate(title string) Tag { return Tag{Kind: TagCandidate, Title: title} }

// Token is one NFC-normalized token with its document and annotation.
type Token struct {
	DocumentID uint32
	Text       string
	Tag        Tag
}

// Corpus holds the parsed token stream, partitioned by split, plus the set
// of candidate titles referenced anywhere in the stream. The title set is
// the filter handed to the mapping resolver; it is a superset of every
// title the assembler will look up.
type Corpus struct {
	Train      []Token
	Validation []Token
	Test       []Token
	Titles     map[string]struct{}
}

// Tokens returns the token slice for the given split.
func (c *Corpus) Tokens(s Split) []Token {
	switch s {
	case Validation:
		return c.Validation
	case Test:
		return c.Test
	default:
		return c.Train
	}
}

// titlePrefixLen is the fixed length, in runes, of the URL prefix carried by
// every title annotation ("http://en.wikipedia.org/wiki/" is 29 characters).
// The source format guarantees this prefix; if the upstream annotation
// format ever changes, this constant silently corrupts titles, so it stays
// a named constant rather than inferred logic.
const titlePrefixLen = 29

// docStartRe matches a document boundary line. Capture 1 is the document
// id, capture 2 the optional split marker glued to the digits: absent for
// train, "testa" for validation, "testb" for test. The tail tolerates
// escaped characters inside the parenthesized description.
var docStartRe = regexp.MustCompile(`-DOCSTART- \((\d+)(testa|testb)? [^)\\]*(?:\\.[^)\\]*)*\)`)

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Parse reads the token stream line by line and classifies each line.
//
// Empty lines are skipped. A single-field line matching the boundary
// pattern updates the current document id and split and emits nothing; a
// single-field line that fails the pattern degrades to an untagged token.
// Any other line is tab-split: field 0 is the token text, exactly 4 fields
// tag it OutOfMapping, more than 4 tag it Candidate with field 4's title
// (URL prefix stripped), anything else tags it None. Tokens land in the
// split selected by the most recent boundary; before the first boundary
// the document id is 0 and the split is Train.
func Parse(r io.Reader) (*Corpus, error) {
	corpus := &Corpus{Titles: make(map[string]struct{})}

	documentID := uint32(0)
	split := Train

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}

		fields := strings.Split(line, "\t")

		if len(fields) == 1 {
			if m := docStartRe.FindStringSubmatch(fields[0]); m != nil {
				id, err := strconv.ParseUint(m[1], 10, 32)
				if err != nil {
					return nil, fmt.Errorf("document id %q: %w", m[1], err)
				}
				documentID = uint32(id)
				switch m[2] {
				case "testa":
					split = Validation
				case "testb":
					split = Test
				default:
					split = Train
				}
				continue
			}
		}

		token := Token{
			DocumentID: documentID,
			Text:       norm.NFC.String(fields[0]),
			Tag:        None(),
		}

		switch {
		case len(fields) == 4:
			token.Tag = OutOfMapping()
		case len(fields) > 4:
			title := norm.NFC.String(stripRunes(fields[4], titlePrefixLen))
			token.Tag = Candidate(title)
			corpus.Titles[title] = struct{}{}
		}

		switch split {
		case Validation:
			corpus.Validation = append(corpus.Validation, token)
		case Test:
			corpus.Test = append(corpus.Test, token)
		default:
			corpus.Train = append(corpus.Train, token)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	return corpus, nil
}

// stripRunes drops the first n runes of s, counting characters rather than
// bytes so multibyte titles survive the prefix strip.
func stripRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}
