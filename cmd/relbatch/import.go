package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/relbatch/storage/filesystem"
	"github.com/revelaction/relbatch/storage/sqlite/zombiezen"
)

func importCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "copy the partitions of a JSON directory into a SQLite file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "partition directory", Required: true},
			&cli.StringFlag{Name: "to", Usage: "SQLite file, created if missing", Required: true},
		},
		Action: func(c *cli.Context) error {
			return importPartitions(c.String("from"), c.String("to"), c.Bool("quiet"), ui)
		},
	}
}

func importPartitions(from, to string, quiet bool, ui UI) error {
	src := filesystem.NewPartitionStore(from)

	pool, err := zombiezen.NewPool(to)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := zombiezen.CreatePartitionTables(pool); err != nil {
		return fmt.Errorf("failed to create partition tables: %w", err)
	}

	dst := zombiezen.NewPartitionStore(pool)

	fmt.Fprintf(ui.Out, "Reading partitions from %s...\n", from)
	names, err := src.Names()
	if err != nil {
		return err
	}

	var bar *uiprogress.Bar
	if !quiet {
		progress := uiprogress.New()
		progress.SetOut(ui.Err)
		progress.Start()
		defer progress.Stop()

		bar = progress.AddBar(len(names))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}

	count := 0
	for _, name := range names {
		part, err := src.Read(name)
		if err != nil {
			return fmt.Errorf("failed to read partition %s: %w", name, err)
		}

		if err := dst.Write(name, part); err != nil {
			return fmt.Errorf("failed to write partition %s: %w", name, err)
		}
		count += len(part)
		if bar != nil {
			bar.Incr()
		}
	}

	fmt.Fprintf(ui.Out, "Successfully imported %d records in %d partitions from %s to %s\n", count, len(names), from, to)
	return nil
}
