package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/pagegen"
)

const configFileName = ".pagegen.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = configFileName
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence; only flags that were explicitly set,
	// so unset flags never shadow file or env values)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	// Wire up the process logger now that all sources are merged
	level := getStringWithFallback("log-level", "log-level", "info")
	if getBoolWithFallback("verbose", "verbose", false) {
		level = "debug"
	}
	format := getStringWithFallback("log-format", "log-format", "text")
	slog.SetDefault(newLogger(level, format, os.Stderr))

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (PAGEGEN_* prefix)
	if err := k.Load(env.Provider("PAGEGEN_", ".", func(s string) string {
		// PAGEGEN_GENERATE_WORKBOOK -> generate.workbook
		// PAGEGEN_LINT_STRICT -> lint.strict
		// PAGEGEN_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "PAGEGEN_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// profileFromConfig resolves the active column profile. Custom profiles live
// under the profiles: key of the config file; the builtin redirect profile
// covers everything else.
func profileFromConfig() (pagegen.Profile, error) {
	name := getStringWithFallback("profile", "profile", "redirect")

	profile := pagegen.DefaultProfile()
	key := "profiles." + name
	if k.Exists(key) {
		profile.Name = name
		if cols := k.Strings(key + ".columns"); len(cols) > 0 {
			profile.Columns = cols
		}
		if k.Exists(key + ".header-row") {
			profile.HeaderRow = k.Int(key + ".header-row")
		}
		if v := k.String(key + ".slug-column"); v != "" {
			profile.SlugColumn = v
		}
	} else if name != profile.Name {
		return pagegen.Profile{}, fmt.Errorf("unknown profile %q (define it under profiles: in %s)", name, configFileName)
	}

	// The header-row flag overrides whatever the profile says
	if hr := getIntWithFallback("header-row", "generate.header-row", 0); hr > 0 {
		profile.HeaderRow = hr
	}

	return profile, nil
}

// buildGenerateConfig constructs the library's Config struct from koanf state.
func buildGenerateConfig() (pagegen.Config, error) {
	profile, err := profileFromConfig()
	if err != nil {
		return pagegen.Config{}, err
	}

	config := pagegen.Config{
		WorkbookPath:   getStringWithFallback("workbook", "generate.workbook", "pages.xlsx"),
		Sheet:          getStringWithFallback("sheet", "generate.sheet", "Sheet1"),
		TemplatePath:   getStringWithFallback("template", "generate.template", "template.html"),
		OutputDir:      getStringWithFallback("output-dir", "generate.output-dir", "dist/pages"),
		Profile:        profile,
		Mode:           pagegen.AddressingMode(getStringWithFallback("mode", "generate.mode", "slug")),
		Domain:         getStringWithFallback("domain", "generate.domain", ""),
		ImagesFolder:   getStringWithFallback("images-folder", "generate.images-folder", "images"),
		RelativePrefix: getStringWithFallback("relative-prefix", "generate.relative-prefix", ".."),
		SkipEmpty:      getBoolWithFallback("skip-empty", "generate.skip-empty", false),
		MeasureImages:  getBoolWithFallback("measure-images", "generate.measure-images", false),
		FetchTimeout:   getDurationWithFallback("fetch-timeout", "generate.fetch-timeout", 10*time.Second),
		FetchRetries:   getIntWithFallback("fetch-retries", "generate.fetch-retries", 0),
		Minify:         getBoolWithFallback("minify", "generate.minify", false),
		Delay:          getDurationWithFallback("delay", "generate.delay", 0),
		Archive:        getBoolWithFallback("archive", "generate.archive", false),
		ArchivePath:    getStringWithFallback("archive-path", "generate.archive-path", "pages.zip"),
	}

	return config, nil
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig(profile pagegen.Profile) pagegen.LintConfig {
	// Handle paths: check flag key first, then config key
	var templatePaths []string
	if paths := k.Strings("paths"); len(paths) > 0 {
		templatePaths = paths
	} else if paths := k.Strings("lint.paths"); len(paths) > 0 {
		templatePaths = paths
	} else {
		templatePaths = []string{"templates/**/*.html"}
	}

	return pagegen.LintConfig{
		TemplatePaths:      templatePaths,
		Profile:            profile,
		OutputDir:          getStringWithFallback("output-dir", "generate.output-dir", "dist/pages"),
		MeasureTokens:      getBoolWithFallback("measure-images", "generate.measure-images", false),
		Verbose:            getBoolWithFallback("verbose", "verbose", false),
		Strict:             getBoolWithFallback("strict", "lint.strict", false),
		Threshold:          getFloat64WithFallback("threshold", "lint.threshold", 0.0),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		ShowStats:          true,
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getFloat64WithFallback checks the flag key first, then the config file key, then returns the default.
func getFloat64WithFallback(flagKey, configKey string, defaultVal float64) float64 {
	if k.Exists(flagKey) {
		return k.Float64(flagKey)
	}
	if k.Exists(configKey) {
		return k.Float64(configKey)
	}
	return defaultVal
}

// getDurationWithFallback checks the flag key first, then the config file key, then returns the default.
// Durations are written as Go duration strings ("250ms", "10s").
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if k.Exists(flagKey) {
		return k.Duration(flagKey)
	}
	if k.Exists(configKey) {
		return k.Duration(configKey)
	}
	return defaultVal
}
