package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/relbatch/query"
)

func queryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "look up the curriculum labels of relations interactively",
		Flags: []cli.Flag{noColorFlag()},
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			defer e.Close()

			p, _, err := e.processor()
			if err != nil {
				return err
			}

			// now present the REPL
			h, err := query.NewHandler(p.Hierarchy(), ui.Out)
			if err != nil {
				return err
			}
			h.HasColor = hasColor(c, ui.Out)
			return h.Run()
		},
	}
}
