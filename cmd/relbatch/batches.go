package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relbatch/batch"
	"github.com/revelaction/relbatch/label"
	"github.com/revelaction/relbatch/render"
)

var errLimit = errors.New("limit reached")

func batchesCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "batches",
		Usage: "materialize the batches of a partition and show their shapes",
		Flags: []cli.Flag{
			partitionFlag("partition to batch (default: the training partition)"),
			&cli.StringFlag{
				Name:    "stage",
				Aliases: []string{"s"},
				Value:   label.Full.String(),
				Usage:   "curriculum stage: binary, subj_type, subj_obj_type, full",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "show at most n batches (0 = all)",
			},
			formatFlag(),
			noColorFlag(),
		},
		Action: func(c *cli.Context) error {
			// Fail on a bad stage before loading the corpus
			if _, err := label.ParseStage(c.String("stage")); err != nil {
				return err
			}

			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			p, _, err := e.processor()
			if err != nil {
				return err
			}

			partition := c.String("partition")
			if partition == "" {
				partition = e.cfg.Data.TrainPartition()
			}

			b, err := p.IteratorFor(partition, c.String("stage"))
			if err != nil {
				return err
			}

			limit := c.Int("limit")
			var views []render.BatchView
			err = b.Each(func(i int, bt *batch.Batch) error {
				if limit > 0 && i >= limit {
					return errLimit
				}
				views = append(views, render.NewBatchView(i, bt))
				return nil
			})
			if err != nil && !errors.Is(err, errLimit) {
				return err
			}

			e.logger.Info("batched partition", "partition", partition, "examples", b.NumExamples(), "batches", b.Len(), "fields", b.Fields())

			r, err := render.New(c.String("format"), ui.Out, hasColor(c, ui.Out))
			if err != nil {
				return err
			}
			return r.Batches(views)
		},
	}
}
