// Package config handles configuration loading and validation for codetodo.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/codetodo/internal/core/annotation"
	"github.com/colonyops/codetodo/internal/core/discovery"
	"github.com/colonyops/codetodo/internal/core/scan"
	"github.com/colonyops/codetodo/internal/core/styles"
)

// DefaultContextLines is used when --context is given without a value.
const DefaultContextLines = 5

// Config holds the application configuration.
type Config struct {
	// Keywords maps each recognized keyword to its severity. Higher severity
	// sorts first.
	Keywords         map[string]int `yaml:"keywords"`
	Grammar          string         `yaml:"grammar"`
	Sort             string         `yaml:"sort"`
	Blacklist        []string       `yaml:"blacklist"`
	IgnoreDirs       []string       `yaml:"ignore_dirs"`
	TextOnly         *bool          `yaml:"text_only"`
	ContextLines     int            `yaml:"context_lines"`
	Workers          int            `yaml:"workers"` // 0 = number of CPUs
	ProgressInterval time.Duration  `yaml:"progress_interval"`
	Theme            string         `yaml:"theme"`
	Markdown         MarkdownConfig `yaml:"markdown"`
}

// MarkdownConfig holds options for the markdown task-list output.
type MarkdownConfig struct {
	// Render pretty-prints markdown when writing to a terminal.
	Render *bool `yaml:"render"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	keywords := make(map[string]int)
	for kw, sev := range annotation.DefaultSeverity() {
		keywords[string(kw)] = sev
	}

	return Config{
		Keywords:         keywords,
		Grammar:          string(annotation.GrammarCurrent),
		Sort:             string(annotation.OrderPriority),
		Blacklist:        slices.Clone(discovery.DefaultBlacklist),
		IgnoreDirs:       slices.Clone(discovery.DefaultIgnoreDirs),
		TextOnly:         ptr(true),
		ContextLines:     DefaultContextLines,
		Workers:          0,
		ProgressInterval: scan.DefaultInterval,
		Theme:            styles.DefaultTheme,
		Markdown: MarkdownConfig{
			Render: ptr(true),
		},
	}
}

// Load reads configuration from the given path and validates it. If
// configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation. It lets `config validate` report every
// problem instead of failing on the first load.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			// keywords replace the defaults instead of merging into them
			cfg.Keywords = nil

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if len(c.Keywords) == 0 {
		c.Keywords = defaults.Keywords
	}
	if c.Grammar == "" {
		c.Grammar = defaults.Grammar
	}
	if c.Sort == "" {
		c.Sort = defaults.Sort
	}
	if c.Blacklist == nil {
		c.Blacklist = defaults.Blacklist
	}
	if c.IgnoreDirs == nil {
		c.IgnoreDirs = defaults.IgnoreDirs
	}
	if c.TextOnly == nil {
		c.TextOnly = defaults.TextOnly
	}
	if c.ProgressInterval == 0 {
		c.ProgressInterval = defaults.ProgressInterval
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Markdown.Render == nil {
		c.Markdown.Render = defaults.Markdown.Render
	}
}

// KeywordList returns the configured keywords sorted by name.
func (c *Config) KeywordList() []annotation.Keyword {
	out := make([]annotation.Keyword, 0, len(c.Keywords))
	for kw := range c.Keywords {
		out = append(out, annotation.Keyword(kw))
	}
	slices.Sort(out)
	return out
}

// Severity returns the keyword severity map used for ranking.
func (c *Config) Severity() map[annotation.Keyword]int {
	out := make(map[annotation.Keyword]int, len(c.Keywords))
	for kw, sev := range c.Keywords {
		out[annotation.Keyword(kw)] = sev
	}
	return out
}

// GrammarValue returns the parsed grammar. Validate guarantees it is valid.
func (c *Config) GrammarValue() annotation.Grammar {
	g, _ := annotation.ParseGrammar(c.Grammar)
	return g
}

// SortOrder returns the parsed sort order. Validate guarantees it is valid.
func (c *Config) SortOrder() annotation.SortOrder {
	o, _ := annotation.ParseSortOrder(c.Sort)
	return o
}

func ptr[T any](v T) *T {
	return &v
}
