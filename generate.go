package pagegen

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Generator runs the workbook-to-pages pipeline for one configuration.
// Rows are processed strictly in sheet order, one at a time.
type Generator struct {
	cfg       Config
	log       *slog.Logger
	inspector ImageInspector
}

// Option customizes a Generator.
type Option func(*Generator)

// WithLogger routes pipeline logging to log instead of slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithInspector swaps the HTTP image inspector for another implementation.
func WithInspector(in ImageInspector) Option {
	return func(g *Generator) {
		if in != nil {
			g.inspector = in
		}
	}
}

// New builds a Generator, filling config defaults and applying options.
func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg: withDefaults(cfg),
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.inspector == nil {
		g.inspector = NewHTTPInspector(g.cfg.FetchTimeout, g.cfg.FetchRetries)
	}
	return g
}

// Generate runs the pipeline once with the default HTTP inspector.
func Generate(ctx context.Context, cfg Config) (*RunResult, error) {
	return New(cfg).Run(ctx)
}

func withDefaults(cfg Config) Config {
	if cfg.Sheet == "" {
		cfg.Sheet = "Sheet1"
	}
	if cfg.Profile.Name == "" {
		cfg.Profile = DefaultProfile()
	}
	if cfg.Profile.HeaderRow <= 0 {
		cfg.Profile.HeaderRow = 1
	}
	if cfg.Profile.SlugColumn == "" {
		cfg.Profile.SlugColumn = "title"
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeSlug
	}
	if cfg.ImagesFolder == "" {
		cfg.ImagesFolder = "images"
	}
	if cfg.RelativePrefix == "" {
		cfg.RelativePrefix = ".."
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.FetchRetries < 0 {
		cfg.FetchRetries = 0
	}
	if cfg.ArchivePath == "" {
		cfg.ArchivePath = "pages.zip"
	}
	return cfg
}

// Run executes the pipeline stages in order and returns the run outcome.
func (g *Generator) Run(ctx context.Context) (*RunResult, error) {
	cfg := g.cfg
	result := &RunResult{
		RunID:   uuid.NewString(),
		Profile: cfg.Profile.Name,
		Mode:    cfg.Mode,
	}
	log := g.log.With("run_id", result.RunID)

	// Step 1: Load the workbook
	wb, err := LoadWorkbook(cfg.WorkbookPath, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	log.Debug("workbook loaded",
		"path", cfg.WorkbookPath, "sheet", cfg.Sheet, "rows", len(wb.Rows))

	// Step 2: Validate the header against the profile
	header, err := wb.HeaderAt(cfg.Profile.HeaderRow)
	if err != nil {
		return nil, err
	}
	if err := header.Validate(cfg.Profile); err != nil {
		return nil, err
	}
	if cfg.Mode == ModeSlug {
		if _, ok := header.Index(cfg.Profile.SlugColumn); !ok {
			return nil, &MissingColumnError{Column: cfg.Profile.SlugColumn, Header: header.Names}
		}
	}

	// Step 3: Load the template and decide on measurement
	tpl, err := loadTemplate(cfg.TemplatePath)
	if err != nil {
		return nil, err
	}
	imageCols := ImageColumns(header)
	measure := cfg.MeasureImages && hasDimensionTokens(tpl)
	if hasDimensionTokens(tpl) && !cfg.MeasureImages {
		warn := "template uses dimension tokens but image measurement is off; tokens are left in place"
		result.Warnings = append(result.Warnings, warn)
		log.Warn(warn, "template", cfg.TemplatePath)
	}
	if measure && len(imageCols) == 0 {
		return nil, fmt.Errorf("%w: image measurement needs an image column, header %q has none",
			ErrMissingColumn, header.Names)
	}

	// Step 4: Rewrite image paths in place, exactly once
	rows := wb.DataRows(cfg.Profile.HeaderRow)
	RewriteImagePaths(rows, imageCols, imageBase(cfg))

	// Step 5: Render one page per data row
	for i, row := range rows {
		if i > 0 && cfg.Delay > 0 {
			select {
			case <-time.After(cfg.Delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		ordinal := i + 1
		sheetRow := cfg.Profile.HeaderRow + ordinal

		if cfg.SkipEmpty {
			if col, empty := firstEmptyRequired(header, cfg.Profile, row); empty {
				g.skip(result, log, sheetRow, fmt.Sprintf("empty required cell %q", col))
				continue
			}
		}

		slug := ""
		if cfg.Mode == ModeSlug {
			idx, _ := header.Index(cfg.Profile.SlugColumn)
			slug = Slugify(cell(row, idx))
			if slug == "" {
				g.skip(result, log, sheetRow, fmt.Sprintf("empty slug from column %q", cfg.Profile.SlugColumn))
				continue
			}
		}

		content := substituteTokens(tpl, header, row)
		if measure {
			src := cell(row, imageCols[0])
			if src == "" {
				g.skip(result, log, sheetRow, "no image to measure")
				continue
			}
			dims, err := g.inspector.Measure(ctx, src)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				g.skip(result, log, sheetRow, err.Error())
				continue
			}
			content = substituteDimensions(content, dims)
		}
		if cfg.Minify {
			minified, err := minifyHTML(content)
			if err != nil {
				return nil, err
			}
			content = minified
		}

		path := pagePath(cfg, slug, ordinal)
		if err := writePage(path, content); err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(cfg.OutputDir, path)
		if err != nil {
			rel = path
		}
		result.Pages = append(result.Pages, RenderedPage{
			Row:  sheetRow,
			Slug: slug,
			Path: filepath.ToSlash(rel),
		})
		log.Debug("page written", "row", sheetRow, "path", path)
	}

	// Step 6: Write the run manifest, then archive the output tree
	if err := WriteManifest(cfg.OutputDir, result); err != nil {
		return nil, err
	}
	if cfg.Archive {
		if err := BuildArchive(cfg.OutputDir, cfg.ArchivePath); err != nil {
			return nil, err
		}
		result.ArchivePath = cfg.ArchivePath
		log.Debug("archive written", "path", cfg.ArchivePath)
	}

	log.Info("generation finished",
		"pages", len(result.Pages), "skipped", len(result.Skipped))
	return result, nil
}

func (g *Generator) skip(result *RunResult, log *slog.Logger, row int, reason string) {
	result.Skipped = append(result.Skipped, SkippedRow{Row: row, Reason: reason})
	log.Warn("row skipped", "row", row, "reason", reason)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
