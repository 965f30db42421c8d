package pagegen

import "time"

// AddressingMode selects how rendered pages are laid out under the output
// directory.
type AddressingMode string

// Addressing modes for rendered pages.
const (
	// ModeSlug writes each page to <output-dir>/<slug>/index.html, where the
	// slug is derived from the profile's slug column.
	ModeSlug AddressingMode = "slug"
	// ModeFlat writes each page to <output-dir>/<profile>-NNNN.html, numbered
	// by data row so no two rows share an output path.
	ModeFlat AddressingMode = "flat"
)

// Profile names the columns a worksheet must provide for one template kind.
type Profile struct {
	Name       string   // "redirect"
	HeaderRow  int      // 1-based row holding the column names
	Columns    []string // required column names, order defines substitution order
	SlugColumn string   // column the slug is derived from (slug mode)
}

// DefaultProfile returns the built-in redirect profile.
func DefaultProfile() Profile {
	return Profile{
		Name:       "redirect",
		HeaderRow:  1,
		Columns:    []string{"url", "title", "description", "image url", "site name"},
		SlugColumn: "title",
	}
}

// Config holds generation configuration.
type Config struct {
	WorkbookPath string  // "pages.xlsx"
	Sheet        string  // "Sheet1"
	TemplatePath string  // "template.html"
	OutputDir    string  // "dist/pages"
	Profile      Profile // column profile for the template kind

	Mode AddressingMode // slug (default) or flat

	// Image path rewriting. Cells in image columns become
	// "<Domain>/<ImagesFolder>/<cell>" when Domain is set, otherwise
	// "<RelativePrefix>/<ImagesFolder>/<cell>".
	Domain         string // "https://cdn.example.com"
	ImagesFolder   string // "images"
	RelativePrefix string // ".." (default)

	SkipEmpty     bool          // skip rows with an empty required cell instead of substituting ""
	MeasureImages bool          // resolve [image width]/[image height] via the inspector
	FetchTimeout  time.Duration // per-request timeout for image fetches (default 10s)
	FetchRetries  int           // extra fetch attempts after a failure (default 0)
	Minify        bool          // minify rendered HTML before writing
	Delay         time.Duration // pause between rows (default 0)

	Archive     bool   // pack the output tree into a zip after rendering
	ArchivePath string // "pages.zip" (default)
}

// RenderedPage records one written page.
type RenderedPage struct {
	Row  int    `json:"row"`  // 1-based worksheet row the page came from
	Slug string `json:"slug"` // empty in flat mode
	Path string `json:"path"` // path relative to the output directory
}

// SkippedRow records a data row that produced no page.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// RunResult contains generation stats.
type RunResult struct {
	RunID       string
	Profile     string         // profile the run was validated against
	Mode        AddressingMode // addressing mode the pages were written in
	Pages       []RenderedPage
	Skipped     []SkippedRow
	ArchivePath string // empty when archiving is disabled
	Warnings    []string
}

// ColumnCategory groups header columns by the role their values play in a
// rendered page.
type ColumnCategory string

const (
	CategoryImage ColumnCategory = "Image"
	CategoryLink  ColumnCategory = "Link"
	CategoryText  ColumnCategory = "Text"
	CategoryMeta  ColumnCategory = "Meta"
)

// CategorizedColumn is one header column together with its derived role.
type CategorizedColumn struct {
	Name     string
	Index    int
	Category ColumnCategory
}

// OutputFormat represents the linter output format.
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics and column coverage only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues + statistics + coverage (interactive development)
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)
