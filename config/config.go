package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/revelaction/relbatch/file"
)

// EnvPrefix prefixes the environment overrides, e.g. RELBATCH_DATA_BATCH_SIZE.
const EnvPrefix = "RELBATCH"

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Data pipeline configuration
	Data DataConfig `mapstructure:"data"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DataConfig holds the options of the batching pipeline
type DataConfig struct {
	// Path is a directory of <partition>.json files or a SQLite file
	Path string `mapstructure:"path"`

	// Vocab is a file with one token per line
	Vocab string `mapstructure:"vocab"`

	// Partitions are loaded in this order; the first one is the training
	// partition.
	Partitions []string `mapstructure:"partitions"`

	Lower           bool `mapstructure:"lower"`
	TypedRelations  bool `mapstructure:"typed_relations"`
	RelationMasking bool `mapstructure:"relation_masking"`
	BinaryLabels    bool `mapstructure:"binary_labels"`

	// SampleSize enables stratified sampling when not nil
	SampleSize *int `mapstructure:"sample_size"`

	BatchSize   int     `mapstructure:"batch_size"`
	WordDropout float64 `mapstructure:"word_dropout"`
	Seed        uint64  `mapstructure:"seed"`
}

// Load reads the configuration file at path, if any, applies defaults and
// RELBATCH_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys without a default are only seen by Unmarshal when bound.
	if err := v.BindEnv("data.sample_size"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.path", file.DataDir)
	v.SetDefault("data.vocab", filepath.Join(file.VocabDir, "vocab.txt"))
	v.SetDefault("data.partitions", []string{"train", "dev", "test"})
	v.SetDefault("data.lower", false)
	v.SetDefault("data.typed_relations", false)
	v.SetDefault("data.relation_masking", false)
	v.SetDefault("data.binary_labels", false)
	v.SetDefault("data.batch_size", 50)
	v.SetDefault("data.word_dropout", 0.04)
	v.SetDefault("data.seed", 1234)
}

// Validate rejects option values the pipeline cannot run with.
func (c *Config) Validate() error {
	d := c.Data
	if d.BatchSize < 1 {
		return fmt.Errorf("data.batch_size must be >= 1, got %d", d.BatchSize)
	}
	if d.WordDropout < 0 || d.WordDropout > 1 {
		return fmt.Errorf("data.word_dropout must be in [0, 1], got %v", d.WordDropout)
	}
	if d.SampleSize != nil && *d.SampleSize < 1 {
		return fmt.Errorf("data.sample_size must be >= 1, got %d", *d.SampleSize)
	}
	if len(d.Partitions) == 0 {
		return errors.New("data.partitions must name at least the training partition")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// TrainPartition is the partition the label graph is built from.
func (d DataConfig) TrainPartition() string {
	return d.Partitions[0]
}
