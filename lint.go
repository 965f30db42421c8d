package pagegen

import "fmt"

const linterName = "pagelint"

// LintConfig holds linting configuration
type LintConfig struct {
	TemplatePaths []string // Patterns to scan (e.g., "templates/**/*.html")
	Profile       Profile  // Columns templates may reference
	OutputDir     string   // Rendered output to exclude from scanning
	MeasureTokens bool     // Whether the builtin dimension tokens are resolvable
	Verbose       bool
	Strict        bool    // Exit with code 1 if any issue is found
	Threshold     float64 // Minimum column coverage percentage (for strict mode)

	// golangci-style configuration
	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	ShowStats          bool // Show statistics summary (auto-enabled with Verbose)
	PrintIssuedLines   bool // Show source lines with issues (default: true)
	PrintLinterName    bool // Show (pagelint) suffix (default: true)
	UseColors          bool // Enable color output (default: auto-detect)
}

// LintResult contains linting analysis results
type LintResult struct {
	// Statistics
	TotalColumns       int     // Columns the profile provides
	ColumnsCovered     int     // Columns referenced by at least one token
	CoveragePercentage float64 // Covered share of the profile (e.g., 80%)

	// Issues in golangci-lint format
	Issues           []Issue            // All issues found
	IssuesByCategory map[string][]Issue // Grouped by severity for stats

	// Detailed findings (used for verbose mode)
	UnusedColumns  []string // Profile columns no template references
	FilesScanned   int
	TokensFound    int // Total token references found
	ErrorCount     int // Count of unknown tokens
	TruncatedCount int // Issues removed due to limits

	// Summary
	Warnings    []string
	Suggestions []string
}

// Lint checks template files against a column profile
func Lint(config LintConfig) (*LintResult, error) {
	// Step 1: Resolve the profile
	profile := config.Profile
	if profile.Name == "" {
		profile = DefaultProfile()
	}

	// Step 2: Scan template files for token references
	references, stats, err := ScanTemplates(config.TemplatePaths, config.OutputDir, config.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to scan templates: %w", err)
	}

	// Step 3: Analyze references against the profile
	result := analyzeTokens(references, profile, config.MeasureTokens)
	result.FilesScanned = stats.FilesScanned

	// Step 4: Generate suggestions
	result.Suggestions = generateSuggestions(result)

	// Step 5: Apply issue limiting if configured
	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}

	return result, nil
}

// analyzeTokens compares found references with the profile's columns
func analyzeTokens(references []TokenReference, profile Profile, measureTokens bool) *LintResult {
	result := &LintResult{
		TotalColumns: len(profile.Columns),
	}

	known := make(map[string]bool, len(profile.Columns))
	for _, col := range profile.Columns {
		known[col] = true
	}
	builtin := map[string]bool{
		TokenImageWidth:  true,
		TokenImageHeight: true,
	}

	covered := make(map[string]bool)
	var issues []Issue

	for _, ref := range references {
		result.TokensFound++

		// Profile columns win over the builtin measurement tokens, the same
		// way substitution resolves them.
		if known[ref.Token] {
			covered[ref.Token] = true
			continue
		}

		if builtin[ref.Token] {
			if !measureTokens {
				issues = append(issues, Issue{
					FromLinter:  linterName,
					Text:        fmt.Sprintf(IssueMeasureOff, ref.Token),
					Severity:    SeverityWarning,
					SourceLines: []string{ref.Location.Text},
					Pos: IssuePos{
						Filename: ref.Location.File,
						Line:     ref.Location.Line,
						Column:   ref.Location.Column,
					},
				})
			}
			continue
		}

		result.ErrorCount++
		issues = append(issues, Issue{
			FromLinter:  linterName,
			Text:        fmt.Sprintf(IssueUnknownToken, ref.Token),
			Severity:    SeverityError,
			SourceLines: []string{ref.Location.Text},
			Pos: IssuePos{
				Filename: ref.Location.File,
				Line:     ref.Location.Line,
				Column:   ref.Location.Column,
			},
		})
	}

	result.ColumnsCovered = len(covered)
	for _, col := range profile.Columns {
		if !covered[col] {
			result.UnusedColumns = append(result.UnusedColumns, col)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("column %q is never referenced by any template", col))
		}
	}
	if result.TotalColumns > 0 {
		result.CoveragePercentage = float64(result.ColumnsCovered) / float64(result.TotalColumns) * 100
	}

	result.Issues = issues

	// Group issues by severity
	result.IssuesByCategory = make(map[string][]Issue)
	for _, issue := range issues {
		result.IssuesByCategory[issue.Severity] = append(result.IssuesByCategory[issue.Severity], issue)
	}

	return result
}

// generateSuggestions creates actionable recommendations
func generateSuggestions(result *LintResult) []string {
	var suggestions []string

	if result.ErrorCount > 0 {
		suggestions = append(suggestions, "Fix unknown tokens: they must match worksheet column names exactly, including case and spaces")
	}

	if len(result.UnusedColumns) > 0 {
		suggestions = append(suggestions, "Reference unused columns in a template or drop them from the profile")
	}

	if result.TotalColumns > 0 && result.CoveragePercentage < 50 {
		suggestions = append(suggestions, "Low coverage detected - most profile columns never reach a page")
	}

	return suggestions
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config LintConfig) ([]Issue, int) {
	originalCount := len(issues)

	// Apply max-issues-per-linter
	if config.MaxIssuesPerLinter > 0 && len(issues) > config.MaxIssuesPerLinter {
		issues = issues[:config.MaxIssuesPerLinter]
	}

	// Apply max-same-issues (deduplication by message text)
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	truncatedCount := originalCount - len(issues)
	return issues, truncatedCount
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
