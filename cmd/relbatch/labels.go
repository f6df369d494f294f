package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/relbatch/render"
)

func labelsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "labels",
		Usage: "show the relation ids, the curriculum groupings and the relation graph",
		Flags: []cli.Flag{formatFlag(), noColorFlag()},
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

			h := p.Hierarchy()
			view, err := render.NewHierarchyView(h, h.TypeName)
			if err != nil {
				return err
			}

			r, err := render.New(c.String("format"), ui.Out, hasColor(c, ui.Out))
			if err != nil {
				return err
			}
			return r.Hierarchy(view)
		},
	}
}
