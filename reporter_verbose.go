package pagegen

import (
	"fmt"
	"io"
)

// VerboseReporter handles detailed statistics and suggestions
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs detailed linting statistics
func (r *VerboseReporter) PrintStatistics(result LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Template Lint Statistics", r.useColors))
	fmt.Fprintln(r.w, "------------------------")

	fmt.Fprintf(r.w, "Profile Columns:  %d\n", result.TotalColumns)
	fmt.Fprintf(r.w, "Columns Covered:  %d (%.1f%%)\n", result.ColumnsCovered, result.CoveragePercentage)
	fmt.Fprintf(r.w, "Unused Columns:   %d\n", len(result.UnusedColumns))
	fmt.Fprintf(r.w, "Files Scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Tokens Found:     %d\n", result.TokensFound)
}

// PrintCoverage shows a visual coverage bar for the profile's columns
func (r *VerboseReporter) PrintCoverage(result LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Column Coverage", r.useColors))
	fmt.Fprintln(r.w, "-------------------")
	printProgressBar(r.w, result.CoveragePercentage)
}

// PrintUnusedColumns lists profile columns no template references
func (r *VerboseReporter) PrintUnusedColumns(result LintResult) {
	if len(result.UnusedColumns) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Unused Columns", r.useColors))
	fmt.Fprintln(r.w, "-------------")

	for _, col := range result.UnusedColumns {
		fmt.Fprintf(r.w, "• %q (%s) - add [%s] to a template to surface it\n", col, categorizeColumn(col), col)
	}
}

// PrintWarnings shows linter warnings
func (r *VerboseReporter) PrintWarnings(result LintResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// printProgressBar prints a visual progress bar
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
