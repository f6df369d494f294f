package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 50, cfg.Data.BatchSize)
	require.Equal(t, 0.04, cfg.Data.WordDropout)
	require.Equal(t, uint64(1234), cfg.Data.Seed)
	require.Equal(t, []string{"train", "dev", "test"}, cfg.Data.Partitions)
	require.Nil(t, cfg.Data.SampleSize)
	require.Equal(t, "train", cfg.Data.TrainPartition())
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relbatch.yaml")
	content := `
log:
  level: debug
  format: json
data:
  path: /corpus
  partitions: [train, dev]
  lower: true
  typed_relations: true
  relation_masking: true
  sample_size: 100
  batch_size: 8
  word_dropout: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "/corpus", cfg.Data.Path)
	require.Equal(t, []string{"train", "dev"}, cfg.Data.Partitions)
	require.True(t, cfg.Data.Lower)
	require.True(t, cfg.Data.TypedRelations)
	require.True(t, cfg.Data.RelationMasking)
	require.False(t, cfg.Data.BinaryLabels)
	require.NotNil(t, cfg.Data.SampleSize)
	require.Equal(t, 100, *cfg.Data.SampleSize)
	require.Equal(t, 8, cfg.Data.BatchSize)
	require.Equal(t, 0.0, cfg.Data.WordDropout)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("RELBATCH_DATA_BATCH_SIZE", "16")
	t.Setenv("RELBATCH_DATA_SAMPLE_SIZE", "30")
	t.Setenv("RELBATCH_DATA_BINARY_LABELS", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 16, cfg.Data.BatchSize)
	require.NotNil(t, cfg.Data.SampleSize)
	require.Equal(t, 30, *cfg.Data.SampleSize)
	require.True(t, cfg.Data.BinaryLabels)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	negative := -1
	zero := 0

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"batch size", func(c *Config) { c.Data.BatchSize = 0 }},
		{"dropout", func(c *Config) { c.Data.WordDropout = 1.5 }},
		{"sample size", func(c *Config) { c.Data.SampleSize = &negative }},
		{"zero sample size", func(c *Config) { c.Data.SampleSize = &zero }},
		{"partitions", func(c *Config) { c.Data.Partitions = nil }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)

			tt.modify(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
