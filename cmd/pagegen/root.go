package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pagegen",
	Short: "Spreadsheet-driven static page generator and template linter",
	Long: `Render one HTML page per worksheet row.
Templates reference columns as [column name] tokens; each token is
replaced with the row's cell value, verbatim.`,
	// Default behavior: run generate when no subcommand is given.
	// We must call loadConfig here because PreRunE of generateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGenerate(generateCmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().String("profile", "redirect", "Column profile name")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".pagegen.yaml", "Config file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text|json")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
