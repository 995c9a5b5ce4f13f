// Package pipeline wires the conversion stages together: parse the corpus,
// resolve the title mapping, assemble the three splits and commit one
// Parquet file per split.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"aidaprep/pkg/assemble"
	"aidaprep/pkg/conll"
	"aidaprep/pkg/dataset"
	"aidaprep/pkg/wikimap"
)

// Options are the caller-supplied paths for one run.
type Options struct {
	CorpusPath  string // AIDA CoNLL-YAGO TSV token stream
	MappingPath string // wiki2qid Avro object-container file
	OutputDir   string // receives train/validation/test .parquet files
}

var splits = []conll.Split{conll.Train, conll.Validation, conll.Test}

// Run executes the whole conversion. Assembly of the three splits runs
// concurrently; all three must succeed before any output file is written,
// so an unresolved title aborts the run with no partial output on disk.
func Run(ctx context.Context, opts Options, log logrus.FieldLogger) error {
	corpus, err := conll.ParseFile(opts.CorpusPath)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"action":     "parse_corpus",
		"train":      len(corpus.Train),
		"validation": len(corpus.Validation),
		"test":       len(corpus.Test),
		"titles":     len(corpus.Titles),
	}).Info("corpus parsed")

	table, err := wikimap.Resolve(opts.MappingPath, corpus.Titles)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"action":  "resolve_titles",
		"entries": len(table),
	}).Info("title mapping resolved")

	assembled := make(map[conll.Split][]dataset.Record, len(splits))
	var mu sync.Mutex

	pool := NewWorkerPool(len(splits), len(splits))
	pool.Start(ctx)
	for _, split := range splits {
		split := split // capture per iteration; required under Go < 1.22 loop scoping
		err := pool.Submit(func(ctx context.Context) error {
			records, err := assemble.Split(corpus.Tokens(split), table)
			if err != nil {
				return fmt.Errorf("assemble %s: %w", split, err)
			}
			mu.Lock()
			assembled[split] = records
			mu.Unlock()
			return nil
		})
		if err != nil {
			pool.Close()
			return err
		}
	}
	if err := pool.Close(); err != nil {
		return err
	}

	for _, split := range splits {
		records := assembled[split]
		path := filepath.Join(opts.OutputDir, split.String()+".parquet")
		if err := dataset.WriteFile(path, records); err != nil {
			return fmt.Errorf("write %s split: %w", split, err)
		}
		log.WithFields(logrus.Fields{
			"action":    "write_split",
			"split":     split.String(),
			"documents": len(records),
			"path":      path,
		}).Info("split committed")
	}

	return nil
}
