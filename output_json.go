package pagegen

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version       string      `json:"version"`
	Timestamp     string      `json:"timestamp"`
	Summary       JSONSummary `json:"summary"`
	Stats         JSONStats   `json:"stats"`
	Issues        []JSONIssue `json:"issues"`
	UnusedColumns []string    `json:"unused_columns"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats contains token and coverage statistics
type JSONStats struct {
	TokensFound        int     `json:"tokens_found"`
	TotalColumns       int     `json:"total_columns"`
	ColumnsCovered     int     `json:"columns_covered"`
	ColumnsUnused      int     `json:"columns_unused"`
	CoveragePercentage float64 `json:"coverage_percentage"`
}

// JSONIssue represents a single linting issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the lint result as JSON
func WriteJSON(w io.Writer, result *LintResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts LintResult to JSONOutput
func buildJSONOutput(result *LintResult) JSONOutput {
	// Count errors and warnings
	var errors, warnings int
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	// Convert issues
	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	unused := result.UnusedColumns
	if unused == nil {
		unused = []string{}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errors,
			Warnings:     warnings,
			FilesScanned: result.FilesScanned,
		},
		Stats: JSONStats{
			TokensFound:        result.TokensFound,
			TotalColumns:       result.TotalColumns,
			ColumnsCovered:     result.ColumnsCovered,
			ColumnsUnused:      len(result.UnusedColumns),
			CoveragePercentage: result.CoveragePercentage,
		},
		Issues:        jsonIssues,
		UnusedColumns: unused,
	}
}
