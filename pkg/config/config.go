// Package config loads tracker settings from a YAML file.
// Every field has a sensible default; a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kittclouds/loretrack/pkg/tracker"
)

// MentionsConfig controls prose mention scanning.
type MentionsConfig struct {
	Enabled            bool     `yaml:"enabled" json:"enabled"`
	PromotionThreshold int      `yaml:"promotion_threshold" json:"promotionThreshold"`
	StopWords          []string `yaml:"stop_words,omitempty" json:"stopWords,omitempty"`
}

// Config models a loretrack YAML config file. The JSON tags serve hosts
// that push configuration over a JSON boundary instead.
type Config struct {
	// LegacyBrackets enables the [entity] grammar alongside the
	// path-addressed one.
	LegacyBrackets bool           `yaml:"legacy_brackets" json:"legacyBrackets"`
	Mentions       MentionsConfig `yaml:"mentions" json:"mentions"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LegacyBrackets: true,
		Mentions: MentionsConfig{
			Enabled:            true,
			PromotionThreshold: 2,
		},
	}
}

// Load reads a config file, falling back to Default when path is empty
// or the file does not exist.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Mentions.PromotionThreshold < 1 {
		cfg.Mentions.PromotionThreshold = 1
	}
	return cfg, nil
}

// TrackerOptions converts the config into tracker Options.
func (c Config) TrackerOptions() tracker.Options {
	return tracker.Options{
		Brackets:         c.LegacyBrackets,
		Mentions:         c.Mentions.Enabled,
		MentionThreshold: c.Mentions.PromotionThreshold,
		StopWords:        c.Mentions.StopWords,
	}
}
