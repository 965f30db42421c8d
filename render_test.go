package pagegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstituteTokens(t *testing.T) {
	h := NewHeader([]string{"url", "title", "description"})

	tests := []struct {
		name     string
		template string
		row      []string
		expected string
	}{
		{
			name:     "all tokens replaced",
			template: `<a href="[url]">[title]</a>`,
			row:      []string{"https://a.example", "First", "d"},
			expected: `<a href="https://a.example">First</a>`,
		},
		{
			name:     "repeated token replaced everywhere",
			template: `[title] [title]`,
			row:      []string{"u", "First", "d"},
			expected: `First First`,
		},
		{
			name:     "empty cell substitutes empty string",
			template: `<p>[description]</p>`,
			row:      []string{"u", "t", ""},
			expected: `<p></p>`,
		},
		{
			name:     "missing cell substitutes empty string",
			template: `<p>[description]</p>`,
			row:      []string{"u"},
			expected: `<p></p>`,
		},
		{
			name:     "unknown token left in place",
			template: `[title] [author]`,
			row:      []string{"u", "First", "d"},
			expected: `First [author]`,
		},
		{
			name:     "no tokens",
			template: `static page`,
			row:      []string{"u", "t", "d"},
			expected: `static page`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, substituteTokens(tt.template, h, tt.row))
		})
	}
}

func TestSubstituteTokensDuplicateColumn(t *testing.T) {
	// Duplicate names resolve to their first occurrence, everywhere.
	h := NewHeader([]string{"title", "url", "title"})
	row := []string{"First", "https://a.example", "Shadowed"}

	got := substituteTokens("[title]", h, row)
	assert.Equal(t, "First", got)
}

func TestSubstituteDimensions(t *testing.T) {
	got := substituteDimensions(`<img width="[image width]" height="[image height]">`, Dimensions{Width: 640, Height: 480})
	assert.Equal(t, `<img width="640" height="480">`, got)
}

func TestHasDimensionTokens(t *testing.T) {
	assert.True(t, hasDimensionTokens(`<img width="[image width]">`))
	assert.True(t, hasDimensionTokens(`<img height="[image height]">`))
	assert.False(t, hasDimensionTokens(`<img src="[image url]">`))
	assert.False(t, hasDimensionTokens(`plain`))
}

func TestFirstEmptyRequired(t *testing.T) {
	h := NewHeader([]string{"url", "title", "description", "image url", "site name"})
	profile := DefaultProfile()

	tests := []struct {
		name      string
		row       []string
		wantCol   string
		wantFound bool
	}{
		{
			name: "all filled",
			row:  []string{"u", "t", "d", "i", "s"},
		},
		{
			name:      "first empty in profile order",
			row:       []string{"", "t", "", "i", "s"},
			wantCol:   "url",
			wantFound: true,
		},
		{
			name:      "short row counts as empty",
			row:       []string{"u", "t", "d"},
			wantCol:   "image url",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, found := firstEmptyRequired(h, profile, tt.row)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestPagePath(t *testing.T) {
	slugCfg := Config{OutputDir: "dist", Mode: ModeSlug, Profile: DefaultProfile()}
	flatCfg := Config{OutputDir: "dist", Mode: ModeFlat, Profile: DefaultProfile()}

	assert.Equal(t, filepath.Join("dist", "my-page", "index.html"), pagePath(slugCfg, "my-page", 1))
	assert.Equal(t, filepath.Join("dist", "redirect-0001.html"), pagePath(flatCfg, "my-page", 1))
	assert.Equal(t, filepath.Join("dist", "redirect-0042.html"), pagePath(flatCfg, "", 42))
}

func TestPagePathFlatIsDistinctPerRow(t *testing.T) {
	cfg := Config{OutputDir: "dist", Mode: ModeFlat, Profile: DefaultProfile()}

	seen := make(map[string]bool)
	for ordinal := 1; ordinal <= 50; ordinal++ {
		p := pagePath(cfg, "same-slug", ordinal)
		assert.False(t, seen[p], "path %s produced twice", p)
		seen[p] = true
	}
}

func TestWritePage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my-page", "index.html")

	require.NoError(t, writePage(path, "<html>one</html>"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>one</html>", string(data))

	// Overwrites on a second run
	require.NoError(t, writePage(path, "<html>two</html>"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>two</html>", string(data))
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>[title]</h1>"), 0644))

	tpl, err := loadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "<h1>[title]</h1>", tpl)

	_, err = loadTemplate(filepath.Join(dir, "missing.html"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestMinifyHTML(t *testing.T) {
	in := "<html>\n  <body>\n    <h1>First</h1>\n  </body>\n</html>\n"

	out, err := minifyHTML(in)
	require.NoError(t, err)

	assert.Less(t, len(out), len(in))
	assert.Contains(t, out, "First")
	assert.False(t, strings.Contains(out, "\n  "), "indentation survived minification")
}
