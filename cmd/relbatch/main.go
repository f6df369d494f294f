package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relbatch/config"
)

// Set at build time with -ldflags "-X main.BuildTag=... -X main.BuildCommit=..."
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "relbatch: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:        "relbatch",
		Usage:       "prepare, label and batch relation extraction corpora",
		Writer:      ui.Out,
		ErrWriter:   ui.Err,
		HideVersion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{config.EnvPrefix + "_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "partition directory or SQLite file, overrides data.path",
			},
			&cli.StringFlag{
				Name:  "vocab",
				Usage: "vocabulary file, overrides data.vocab",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "do not show progress bars",
			},
		},
		Commands: []*cli.Command{
			labelsCommand(ui),
			batchesCommand(ui),
			statCommand(ui),
			importCommand(ui),
			queryCommand(ui),
			versionCommand(ui),
		},
	}
}
