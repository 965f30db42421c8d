package pagegen

import (
	"archive/zip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archiveEntries(t *testing.T, path string) []string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func readArchiveEntry(t *testing.T, path, name string) string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("entry %s not found in %s", name, path)
	return ""
}

func TestWriteManifest(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "pages")
	result := &RunResult{
		RunID:   "run-123",
		Profile: "redirect",
		Mode:    ModeSlug,
		Pages: []RenderedPage{
			{Row: 2, Slug: "first", Path: "first/index.html"},
		},
		Skipped: []SkippedRow{
			{Row: 3, Reason: `empty slug from column "title"`},
		},
	}

	require.NoError(t, WriteManifest(outDir, result))

	data, err := os.ReadFile(filepath.Join(outDir, ManifestName))
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "run-123", m.RunID)
	assert.WithinDuration(t, time.Now().UTC(), m.Timestamp, time.Minute)
	assert.Equal(t, "redirect", m.Profile)
	assert.Equal(t, ModeSlug, m.Mode)
	require.Len(t, m.Pages, 1)
	assert.Equal(t, 2, m.Pages[0].Row)
	require.Len(t, m.Skipped, 1)
	assert.Equal(t, 3, m.Skipped[0].Row)
}

func TestWriteManifestEmptyRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "pages")

	require.NoError(t, WriteManifest(outDir, &RunResult{RunID: "run-0"}))

	data, err := os.ReadFile(filepath.Join(outDir, ManifestName))
	require.NoError(t, err)

	// Pages serializes as an empty array, never null.
	assert.Contains(t, string(data), `"pages": []`)
	assert.NotContains(t, string(data), `"skipped"`)
}

func TestBuildArchive(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "pages")

	require.NoError(t, os.MkdirAll(filepath.Join(outDir, "first"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(outDir, "second"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "first", "index.html"), []byte("<html>1</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "second", "index.html"), []byte("<html>2</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, ManifestName), []byte("{}"), 0644))

	archivePath := filepath.Join(dir, "pages.zip")
	require.NoError(t, BuildArchive(outDir, archivePath))

	names := archiveEntries(t, archivePath)
	// Entries are rooted at the output directory's name, so unpacking a level
	// up recreates pages/...
	assert.ElementsMatch(t, []string{
		"pages/first/index.html",
		"pages/manifest.json",
		"pages/second/index.html",
	}, names)

	assert.Equal(t, "<html>1</html>", readArchiveEntry(t, archivePath, "pages/first/index.html"))
}

func TestBuildArchiveOverwrites(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "pages")
	require.NoError(t, os.MkdirAll(outDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "index.html"), []byte("fresh"), 0644))

	archivePath := filepath.Join(dir, "pages.zip")
	require.NoError(t, os.WriteFile(archivePath, []byte("stale bytes, not a zip"), 0644))

	require.NoError(t, BuildArchive(outDir, archivePath))

	names := archiveEntries(t, archivePath)
	assert.Equal(t, []string{"pages/index.html"}, names)
}

func TestBuildArchiveSkipsItself(t *testing.T) {
	// An archive placed inside the output directory must not swallow its own
	// previous run.
	dir := t.TempDir()
	outDir := filepath.Join(dir, "pages")
	require.NoError(t, os.MkdirAll(outDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "index.html"), []byte("page"), 0644))

	archivePath := filepath.Join(outDir, "pages.zip")
	require.NoError(t, BuildArchive(outDir, archivePath))
	require.NoError(t, BuildArchive(outDir, archivePath))

	names := archiveEntries(t, archivePath)
	assert.Equal(t, []string{"pages/index.html"}, names)
}
