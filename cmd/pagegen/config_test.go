package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/pagegen"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pagegen.yaml")
	configContent := `
profile: landing
verbose: true

generate:
  workbook: data/redirects.xlsx
  sheet: Redirects
  output-dir: public/pages
  mode: flat
  delay: 250ms

lint:
  strict: true
  threshold: 80.0
  paths:
    - "custom/**/*.html"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "landing", k.String("profile"))
	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "data/redirects.xlsx", k.String("generate.workbook"))
	assert.Equal(t, "Redirects", k.String("generate.sheet"))
	assert.Equal(t, "public/pages", k.String("generate.output-dir"))
	assert.Equal(t, "flat", k.String("generate.mode"))
	assert.Equal(t, 250*time.Millisecond, k.Duration("generate.delay"))
	assert.True(t, k.Bool("lint.strict"))
	assert.InDelta(t, 80.0, k.Float64("lint.threshold"), 0.01)
	assert.Equal(t, []string{"custom/**/*.html"}, k.Strings("lint.paths"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Pointing at a non-existent config file is not an error
	require.NoError(t, loadConfigFromPath("/nonexistent/.pagegen.yaml"))

	config, err := buildGenerateConfig()
	require.NoError(t, err)
	assert.Equal(t, "pages.xlsx", config.WorkbookPath)
	assert.Equal(t, "Sheet1", config.Sheet)
	assert.Equal(t, "template.html", config.TemplatePath)
	assert.Equal(t, "dist/pages", config.OutputDir)
	assert.Equal(t, pagegen.ModeSlug, config.Mode)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pagegen.yaml")
	configContent := `
generate:
  workbook: from-file.xlsx
lint:
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	// Set env vars that should override config file
	t.Setenv("PAGEGEN_GENERATE_WORKBOOK", "from-env.xlsx")
	t.Setenv("PAGEGEN_LINT_STRICT", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env.xlsx", k.String("generate.workbook"))
	assert.True(t, k.Bool("lint.strict"))
}

func TestBuildGenerateConfig_Defaults(t *testing.T) {
	resetKoanf()

	config, err := buildGenerateConfig()
	require.NoError(t, err)
	assert.Equal(t, "pages.xlsx", config.WorkbookPath)
	assert.Equal(t, "Sheet1", config.Sheet)
	assert.Equal(t, "template.html", config.TemplatePath)
	assert.Equal(t, "dist/pages", config.OutputDir)
	assert.Equal(t, pagegen.ModeSlug, config.Mode)
	assert.Equal(t, "", config.Domain)
	assert.Equal(t, "images", config.ImagesFolder)
	assert.Equal(t, "..", config.RelativePrefix)
	assert.False(t, config.SkipEmpty)
	assert.False(t, config.MeasureImages)
	assert.Equal(t, 10*time.Second, config.FetchTimeout)
	assert.Equal(t, 0, config.FetchRetries)
	assert.False(t, config.Minify)
	assert.Equal(t, time.Duration(0), config.Delay)
	assert.False(t, config.Archive)
	assert.Equal(t, "pages.zip", config.ArchivePath)

	// The builtin redirect profile rides along by default
	assert.Equal(t, "redirect", config.Profile.Name)
	assert.Equal(t, 1, config.Profile.HeaderRow)
	assert.Equal(t, "title", config.Profile.SlugColumn)
	assert.Equal(t, []string{"url", "title", "description", "image url", "site name"}, config.Profile.Columns)
}

func TestBuildLintConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildLintConfig(pagegen.DefaultProfile())
	assert.Equal(t, []string{"templates/**/*.html"}, config.TemplatePaths)
	assert.Equal(t, "redirect", config.Profile.Name)
	assert.Equal(t, "dist/pages", config.OutputDir)
	assert.False(t, config.MeasureTokens)
	assert.False(t, config.Strict)
	assert.InDelta(t, 0.0, config.Threshold, 0.01)
	assert.Equal(t, 0, config.MaxIssuesPerLinter)
	assert.Equal(t, 0, config.MaxSameIssues)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
}

func TestBuildGenerateConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pagegen.yaml")
	configContent := `
generate:
  workbook: data/pages.xlsx
  sheet: Export
  template: templates/redirect.html
  output-dir: out/pages
  mode: flat
  domain: https://cdn.example.com
  images-folder: img
  skip-empty: true
  measure-images: true
  fetch-timeout: 3s
  fetch-retries: 2
  minify: true
  delay: 100ms
  archive: true
  archive-path: out/pages.zip
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildGenerateConfig()
	require.NoError(t, err)
	assert.Equal(t, "data/pages.xlsx", config.WorkbookPath)
	assert.Equal(t, "Export", config.Sheet)
	assert.Equal(t, "templates/redirect.html", config.TemplatePath)
	assert.Equal(t, "out/pages", config.OutputDir)
	assert.Equal(t, pagegen.ModeFlat, config.Mode)
	assert.Equal(t, "https://cdn.example.com", config.Domain)
	assert.Equal(t, "img", config.ImagesFolder)
	assert.True(t, config.SkipEmpty)
	assert.True(t, config.MeasureImages)
	assert.Equal(t, 3*time.Second, config.FetchTimeout)
	assert.Equal(t, 2, config.FetchRetries)
	assert.True(t, config.Minify)
	assert.Equal(t, 100*time.Millisecond, config.Delay)
	assert.True(t, config.Archive)
	assert.Equal(t, "out/pages.zip", config.ArchivePath)
}

func TestBuildLintConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pagegen.yaml")
	configContent := `
generate:
  output-dir: out/pages
  measure-images: true
lint:
  strict: true
  threshold: 75.5
  paths:
    - "src/**/*.html"
  max-issues-per-linter: 10
  max-same-issues: 3
  print-lines: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildLintConfig(pagegen.DefaultProfile())
	assert.True(t, config.Strict)
	assert.InDelta(t, 75.5, config.Threshold, 0.01)
	assert.Equal(t, []string{"src/**/*.html"}, config.TemplatePaths)
	assert.Equal(t, "out/pages", config.OutputDir)
	assert.True(t, config.MeasureTokens)
	assert.Equal(t, 10, config.MaxIssuesPerLinter)
	assert.Equal(t, 3, config.MaxSameIssues)
	assert.False(t, config.PrintIssuedLines)
}

func TestProfileFromConfig_CustomProfile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pagegen.yaml")
	configContent := `
profile: landing

profiles:
  landing:
    header-row: 2
    slug-column: headline
    columns:
      - headline
      - body
      - image url
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	profile, err := profileFromConfig()
	require.NoError(t, err)
	assert.Equal(t, "landing", profile.Name)
	assert.Equal(t, 2, profile.HeaderRow)
	assert.Equal(t, "headline", profile.SlugColumn)
	assert.Equal(t, []string{"headline", "body", "image url"}, profile.Columns)
}

func TestProfileFromConfig_UnknownProfile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pagegen.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("profile: mystery\n"), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	_, err := profileFromConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown profile "mystery"`)
}

func TestProfileFromConfig_HeaderRowOverride(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".pagegen.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("generate:\n  header-row: 3\n"), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	profile, err := profileFromConfig()
	require.NoError(t, err)
	assert.Equal(t, "redirect", profile.Name)
	assert.Equal(t, 3, profile.HeaderRow, "header-row setting overrides the profile default")
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Verify file was created
	data, err := os.ReadFile(".pagegen.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "profile: redirect")
	assert.Contains(t, string(data), "generate:")
	assert.Contains(t, string(data), "lint:")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".pagegen.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".pagegen.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".pagegen.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "profile: redirect")
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}

func TestGetFloat64WithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.InDelta(t, 3.14, getFloat64WithFallback("flag-key", "config.key", 3.14), 0.01)
}

func TestGetDurationWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 10*time.Second, getDurationWithFallback("flag-key", "config.key", 10*time.Second))

	// Config key set as a duration string
	require.NoError(t, k.Set("config.key", "250ms"))
	assert.Equal(t, 250*time.Millisecond, getDurationWithFallback("flag-key", "config.key", 10*time.Second))
}
