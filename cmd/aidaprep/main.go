// Command aidaprep converts the AIDA CoNLL-YAGO entity-linking corpus into
// three Parquet tables (train/validation/test), resolving entity titles
// against a Wikipedia-title → Wikidata-QID mapping in Avro format.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"aidaprep/pkg/pipeline"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app := &cli.App{
		Name:  "aidaprep",
		Usage: "build an entity-linking dataset from the AIDA CoNLL-YAGO corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input-conll",
				Usage:    "path to the AIDA CoNLL-YAGO dataset in TSV format",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "input-wiki2qid",
				Usage:    "path to the Wikipedia title to Wikidata QID mapping in Avro format",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output-dir",
				Usage:    "directory receiving train/validation/test parquet files",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return pipeline.Run(ctx, pipeline.Options{
				CorpusPath:  c.String("input-conll"),
				MappingPath: c.String("input-wiki2qid"),
				OutputDir:   c.String("output-dir"),
			}, log)
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.WithError(err).Fatal("run failed")
	}
}
