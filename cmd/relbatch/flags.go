package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relbatch/render"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   render.DefaultFormat,
		Usage:   "output format: " + strings.Join(render.SupportedFormats(), ", "),
	}
}

func noColorFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-color",
		Usage: "do not color the text output",
	}
}

func partitionFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "partition",
		Aliases: []string{"p"},
		Usage:   usage,
	}
}
