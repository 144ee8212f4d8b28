package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/codetodo/internal/core/annotation"
	"github.com/colonyops/codetodo/internal/core/styles"
	"github.com/colonyops/codetodo/internal/core/validate"
)

// Validate checks that the configuration is valid. All problems are reported
// together as criterio field errors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateKeywords(),
		criterio.Run("grammar", c.Grammar, validateGrammar),
		criterio.Run("sort", c.Sort, validateSort),
		validate.PatternsField("blacklist", c.Blacklist),
		validate.PatternsField("ignore_dirs", c.IgnoreDirs),
		criterio.Run("context_lines", c.ContextLines, validate.NonNegative),
		criterio.Run("workers", c.Workers, validate.NonNegative),
		criterio.Run("progress_interval", int(c.ProgressInterval), validate.NonNegative),
		criterio.Run("theme", c.Theme, validateTheme),
	)
}

// ValidateDeep runs Validate and additionally checks that configPath, when
// set and present, is a regular file.
func (c *Config) ValidateDeep(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.Validate(),
	)
}

func (c *Config) validateKeywords() error {
	if len(c.Keywords) == 0 {
		return criterio.NewFieldErrors("keywords", fmt.Errorf("at least one keyword is required"))
	}

	names := make([]string, 0, len(c.Keywords))
	for kw := range c.Keywords {
		names = append(names, kw)
	}
	sort.Strings(names)

	errs := make([]error, 0, len(names))
	for _, kw := range names {
		field := fmt.Sprintf("keywords[%q]", kw)
		errs = append(errs,
			validate.KeywordField(field, kw),
			criterio.Run(field, c.Keywords[kw], validateSeverity),
		)
	}
	return criterio.ValidateStruct(errs...)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func validateSeverity(v int) error {
	if v < 0 {
		return errors.New("severity must not be negative")
	}
	return nil
}

func validateGrammar(v string) error {
	_, err := annotation.ParseGrammar(v)
	return err
}

func validateSort(v string) error {
	_, err := annotation.ParseSortOrder(v)
	return err
}

func validateTheme(v string) error {
	if _, ok := styles.GetPalette(v); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", v, styles.ThemeNames())
	}
	return nil
}
