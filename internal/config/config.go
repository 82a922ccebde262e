// Package config loads the tool configuration of the pipeline with viper.
// Everything ends up in an explicit struct handed to the stages; nothing is
// read from ambient process state afterwards.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/yrtrans/transhub/pkg/pipeline"
)

// Config carries every tunable of a pipeline run.
type Config struct {
	AlignerExec string
	SortExec    string
	CounterExec string
	DiffExec    string
	Threads     int
	Timeout     time.Duration
	FeatureType string
	FoldChange  float64
	LogLevel    string
	ExtraEnv    []string
}

// Load reads the configuration file and fills in the defaults. When path is
// empty it looks for transhub.yaml in the working directory and under
// ~/.transhub; a missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := pipeline.DefaultTools()

	v.SetDefault("aligner_exec", def.Aligner)
	v.SetDefault("sort_exec", def.SortTool)
	v.SetDefault("counter_exec", def.Counter)
	v.SetDefault("diffexpr_exec", def.DiffTool)
	v.SetDefault("threads", def.Threads)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("feature_type", def.FeatureType)
	v.SetDefault("fold_change_threshold", def.FoldChange)
	v.SetDefault("log_level", "info")
	v.SetDefault("extra_env", []string{})

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "unable to read config file")
		}
	} else {
		v.SetConfigName("transhub")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.transhub")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "unable to read config file")
			}
		}
	}

	return &Config{
		AlignerExec: v.GetString("aligner_exec"),
		SortExec:    v.GetString("sort_exec"),
		CounterExec: v.GetString("counter_exec"),
		DiffExec:    v.GetString("diffexpr_exec"),
		Threads:     v.GetInt("threads"),
		Timeout:     v.GetDuration("timeout"),
		FeatureType: v.GetString("feature_type"),
		FoldChange:  v.GetFloat64("fold_change_threshold"),
		LogLevel:    v.GetString("log_level"),
		ExtraEnv:    v.GetStringSlice("extra_env"),
	}, nil
}

// Tools converts the configuration into the explicit stage configuration.
func (c *Config) Tools() pipeline.Tools {
	return pipeline.Tools{
		Aligner:     c.AlignerExec,
		SortTool:    c.SortExec,
		Counter:     c.CounterExec,
		DiffTool:    c.DiffExec,
		Threads:     c.Threads,
		Timeout:     c.Timeout,
		FeatureType: c.FeatureType,
		FoldChange:  c.FoldChange,
		ExtraEnv:    c.ExtraEnv,
	}
}

// SlogLevel maps the configured log level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
