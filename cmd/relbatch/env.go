package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/relbatch/config"
	"github.com/revelaction/relbatch/processor"
	"github.com/revelaction/relbatch/vocab"
)

// env is the state shared by the commands: configuration, logger and the
// lazily opened SQLite pool.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   Pool
	quiet  bool
	ui     UI
}

func setup(c *cli.Context, ui UI) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if p := c.String("data"); p != "" {
		cfg.Data.Path = p
	}
	if v := c.String("vocab"); v != "" {
		cfg.Data.Vocab = v
	}

	return &env{
		cfg:    cfg,
		logger: newLogger(cfg.Log, ui.Err),
		quiet:  c.Bool("quiet"),
		ui:     ui,
	}, nil
}

func (e *env) Close() error {
	return e.pool.Close()
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// processor loads the vocabulary and all configured partitions, showing one
// progress bar per partition unless quiet.
func (e *env) processor() (*processor.Processor, *vocab.Vocab, error) {
	v, err := vocab.Load(e.cfg.Data.Vocab)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Debug("loaded vocabulary", "path", e.cfg.Data.Vocab, "size", v.Size())

	repo, err := NewPartitionRepository(&e.pool, e.cfg.Data.Path)
	if err != nil {
		return nil, nil, err
	}

	opts := []processor.Option{processor.WithLogger(e.logger)}

	if !e.quiet {
		progress := uiprogress.New()
		progress.SetOut(e.ui.Err)
		progress.Start()
		defer progress.Stop()

		bars := map[string]*uiprogress.Bar{}
		opts = append(opts, processor.WithProgress(func(partition string, done, total int) {
			bar, ok := bars[partition]
			if !ok {
				bar = progress.AddBar(total)
				bar.AppendCompleted()
				bar.PrependElapsed()
				// Append partition name to the progress bar
				bar.AppendFunc(func(b *uiprogress.Bar) string {
					return partition
				})
				bars[partition] = bar
			}
			bar.Set(done)
		}))
	}

	p, err := processor.New(e.cfg.Data, v, repo, opts...)
	if err != nil {
		return nil, nil, err
	}

	return p, v, nil
}

func hasColor(c *cli.Context, w io.Writer) bool {
	if c.Bool("no-color") {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
