package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yacobolo/pagegen"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Render worksheet rows into static HTML pages",
	Long: `Load a worksheet, validate its header against the column profile, and
write one page per data row. Image cells are rewritten onto the configured
images folder before tokens are substituted.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("workbook", "pages.xlsx", "Workbook (xlsx) to read rows from")
	f.String("sheet", "Sheet1", "Worksheet name")
	f.String("template", "template.html", "Template file with [column name] tokens")
	f.String("output-dir", "dist/pages", "Output directory for rendered pages")
	f.String("mode", "slug", "Page addressing: slug|flat")
	f.Int("header-row", 0, "1-based header row (overrides the profile)")
	f.String("domain", "", "Absolute base for image paths (wins over relative prefix)")
	f.String("images-folder", "images", "Folder name image cells are rewritten onto")
	f.String("relative-prefix", "..", "Relative base for image paths")
	f.Bool("skip-empty", false, "Skip rows with an empty required cell")
	f.Bool("measure-images", false, "Resolve [image width]/[image height] by fetching images")
	f.Duration("fetch-timeout", 10*time.Second, "Per-request timeout for image fetches")
	f.Int("fetch-retries", 0, "Extra attempts after a failed image fetch")
	f.Bool("minify", false, "Minify rendered HTML before writing")
	f.Duration("delay", 0, "Pause between rows")
	f.Bool("archive", false, "Zip the output tree after rendering")
	f.String("archive-path", "pages.zip", "Archive destination")
	f.Bool("lint", false, "Run the template linter after generation")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	config, err := buildGenerateConfig()
	if err != nil {
		return err
	}

	result, err := pagegen.Generate(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)

	if !quiet {
		fmt.Printf("Rendered %d pages in %s\n", len(result.Pages), config.OutputDir)
		if len(result.Skipped) > 0 {
			fmt.Printf("  Rows skipped: %d\n", len(result.Skipped))
		}
		if result.ArchivePath != "" {
			fmt.Printf("  Archive: %s\n", result.ArchivePath)
		}

		for _, w := range result.Warnings {
			fmt.Printf("  Warning: %s\n", w)
		}
	}

	// Run lint after generate if --lint flag set
	lint, _ := cmd.Flags().GetBool("lint")
	if lint {
		return runLint(config.Profile)
	}

	return nil
}
