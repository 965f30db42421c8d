package pagegen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

// Builtin tokens resolved by image measurement rather than a worksheet
// column. A real column with the same name shadows them.
const (
	TokenImageWidth  = "image width"
	TokenImageHeight = "image height"
)

var htmlMinifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	return m
}()

// loadTemplate reads the raw template file. Templates are plain text to the
// generator; tokens are the only structure it knows about.
func loadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	return string(data), nil
}

// substituteTokens replaces every [column name] token with the row's cell
// value, walking columns in header order. Duplicate header names resolve to
// their first occurrence, and a missing cell substitutes the empty string.
func substituteTokens(tpl string, h *Header, row []string) string {
	out := tpl
	for _, name := range h.Names {
		idx, ok := h.Index(name)
		if !ok {
			continue
		}
		value := ""
		if idx < len(row) {
			value = row[idx]
		}
		out = strings.ReplaceAll(out, "["+name+"]", value)
	}
	return out
}

// substituteDimensions fills in the builtin width and height tokens.
func substituteDimensions(s string, d Dimensions) string {
	s = strings.ReplaceAll(s, "["+TokenImageWidth+"]", strconv.Itoa(d.Width))
	s = strings.ReplaceAll(s, "["+TokenImageHeight+"]", strconv.Itoa(d.Height))
	return s
}

// hasDimensionTokens reports whether the template references the builtin
// measurement tokens.
func hasDimensionTokens(tpl string) bool {
	return strings.Contains(tpl, "["+TokenImageWidth+"]") ||
		strings.Contains(tpl, "["+TokenImageHeight+"]")
}

// firstEmptyRequired returns the first required column whose cell is empty
// in row, in profile order. Used by the skip-empty policy.
func firstEmptyRequired(h *Header, profile Profile, row []string) (string, bool) {
	for _, col := range profile.Columns {
		idx, ok := h.Index(col)
		if !ok {
			continue
		}
		if idx >= len(row) || row[idx] == "" {
			return col, true
		}
	}
	return "", false
}

// pagePath resolves where a page lands under the output directory. Slug mode
// nests an index.html per slug; flat mode numbers pages by data row so no
// two rows can collide on one path.
func pagePath(cfg Config, slug string, ordinal int) string {
	if cfg.Mode == ModeFlat {
		return filepath.Join(cfg.OutputDir, fmt.Sprintf("%s-%04d.html", cfg.Profile.Name, ordinal))
	}
	return filepath.Join(cfg.OutputDir, slug, "index.html")
}

// writePage creates the parent directory and writes the page atomically, so
// a crash mid-run never leaves a half-written page behind.
func writePage(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// minifyHTML collapses whitespace and comments in a rendered page.
func minifyHTML(content string) (string, error) {
	out, err := htmlMinifier.String("text/html", content)
	if err != nil {
		return "", fmt.Errorf("minifying page: %w", err)
	}
	return out, nil
}
