package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .pagegen.yaml config file",
	Long:  `Create a .pagegen.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(configFileName); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
		}

		if err := os.WriteFile(configFileName, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created " + configFileName)
		return nil
	},
}

const defaultConfig = `# pagegen configuration
# Docs: https://github.com/yacobolo/pagegen

# Shared settings
profile: redirect
verbose: false

# Generation settings
generate:
  workbook: pages.xlsx
  sheet: Sheet1
  template: template.html
  output-dir: dist/pages
  mode: slug               # slug | flat
  images-folder: images
  relative-prefix: ".."
  # domain: https://cdn.example.com
  skip-empty: false
  measure-images: false
  fetch-timeout: 10s
  fetch-retries: 0
  minify: false
  delay: 0s
  archive: false
  archive-path: pages.zip

# Linting settings
lint:
  paths:
    - "templates/**/*.html"
  strict: false
  threshold: 0.0
  output-format: issues    # issues | summary | full | json
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true

# Column profiles. The builtin redirect profile expects:
#   url, title, description, image url, site name
# Custom profiles are defined here and selected with --profile:
#
# profiles:
#   landing:
#     header-row: 2
#     slug-column: headline
#     columns:
#       - headline
#       - body
#       - image url
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
