package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/relbatch/render"
	"github.com/revelaction/relbatch/stat"
)

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "stat",
		Usage: "show record, token and relation counts",
		Flags: []cli.Flag{
			partitionFlag("count only this partition (default: all configured)"),
			formatFlag(),
			noColorFlag(),
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			repo, err := NewPartitionRepository(&e.pool, e.cfg.Data.Path)
			if err != nil {
				return err
			}

			names := e.cfg.Data.Partitions
			if p := c.String("partition"); p != "" {
				names = []string{p}
			}

			hdl := stat.NewHandler()
			for _, name := range names {
				part, err := repo.Read(name)
				if err != nil {
					return err
				}
				hdl.Aggregate(part)
			}

			r, err := render.New(c.String("format"), ui.Out, hasColor(c, ui.Out))
			if err != nil {
				return err
			}
			return r.Stats(render.NewStatsView(hdl.Get()))
		},
	}
}
