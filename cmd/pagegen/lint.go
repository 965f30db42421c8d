package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/pagegen"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint template token usage against the column profile",
	Long: `Check that [column name] tokens in template files match columns the
profile provides. Detects unknown tokens and columns no template uses.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		profile, err := profileFromConfig()
		if err != nil {
			return err
		}
		return runLint(profile)
	},
}

func init() {
	f := lintCmd.Flags()
	f.StringSlice("paths", []string{"templates/**/*.html"}, "File patterns to scan for token references")
	f.String("output-dir", "dist/pages", "Rendered output directory to exclude from scanning")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Float64("threshold", 0.0, "Minimum column coverage percentage for strict mode")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (pagelint) suffix on issues")
	f.Bool("measure-images", false, "Treat the builtin dimension tokens as resolvable")
}

// runLint is shared between `pagegen lint` and `pagegen generate --lint`.
func runLint(profile pagegen.Profile) error {
	lintConfig := buildLintConfig(profile)

	lintResult, err := pagegen.Lint(lintConfig)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := pagegen.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		pagegen.WriteOutput(os.Stdout, lintResult, format, lintConfig)
	}

	// Exit code logic - "Soft Gate" approach
	strict := getBoolWithFallback("strict", "lint.strict", false)
	if strict {
		// Strict mode: any issue (error or warning) fails the build
		if len(lintResult.Issues) > 0 {
			os.Exit(1)
		}

		// Also check the coverage threshold if specified
		threshold := getFloat64WithFallback("threshold", "lint.threshold", 0.0)
		if threshold > 0 && lintResult.CoveragePercentage < threshold {
			if !quiet {
				fmt.Fprintf(os.Stderr, "\nStrict mode: column coverage %.1f%% is below threshold %.1f%%\n",
					lintResult.CoveragePercentage, threshold)
			}
			os.Exit(1)
		}
	} else if lintResult.ErrorCount > 0 {
		// Default "Soft Gate" mode: only errors fail the build
		os.Exit(1)
	}

	return nil
}
