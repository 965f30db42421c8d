package pagegen

// Issue represents a single linting violation in golangci-lint format
type Issue struct {
	FromLinter  string       `json:"FromLinter"`  // "pagelint"
	Text        string       `json:"Text"`        // "unknown token \"page title\" not provided by any worksheet column"
	Severity    string       `json:"Severity"`    // "", "warning", "error"
	SourceLines []string     `json:"SourceLines"` // Lines of the template with the issue
	Pos         IssuePos     `json:"Pos"`         // File location
	LineRange   *LineRange   `json:"LineRange"`   // Optional range
	Replacement *Replacement `json:"Replacement"` // Optional fix suggestion
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "templates/redirect.html"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, at the opening bracket)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// Replacement provides automated fix suggestion (future --fix flag)
type Replacement struct {
	NewText      string // "[site name]"
	InlineLength int    // Length of text to replace
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// IssueType constants matching linter categories
const (
	IssueUnknownToken = "unknown token %q not provided by any worksheet column"
	IssueMeasureOff   = "token %q requires image measurement, which is disabled"
)
