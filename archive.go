package pagegen

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/natefinch/atomic"
)

// ManifestName is the run record written into the output directory.
const ManifestName = "manifest.json"

// Manifest describes one finished run. It is written before archiving so it
// travels inside the zip.
type Manifest struct {
	RunID     string         `json:"run_id"`
	Timestamp time.Time      `json:"timestamp"`
	Profile   string         `json:"profile"`
	Mode      AddressingMode `json:"mode"`
	Pages     []RenderedPage `json:"pages"`
	Skipped   []SkippedRow   `json:"skipped,omitempty"`
}

// WriteManifest records the run result under the output directory.
func WriteManifest(outDir string, result *RunResult) error {
	pages := result.Pages
	if pages == nil {
		pages = []RenderedPage{}
	}
	m := Manifest{
		RunID:     result.RunID,
		Timestamp: time.Now().UTC(),
		Profile:   result.Profile,
		Mode:      result.Mode,
		Pages:     pages,
		Skipped:   result.Skipped,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	if err := atomic.WriteFile(filepath.Join(outDir, ManifestName), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// BuildArchive zips the output tree into path, overwriting any archive
// already there. Entry names start with the output directory's own name, so
// unpacking next to it reproduces the tree.
func BuildArchive(outDir, path string) error {
	matches, err := doublestar.FilepathGlob(filepath.Join(outDir, "**"))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", outDir, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if filepath.Clean(m) == filepath.Clean(path) {
			// never pack a previous archive into itself
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", path, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	base := filepath.Base(filepath.Clean(outDir))
	for _, file := range files {
		rel, err := filepath.Rel(outDir, file)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", file, err)
		}
		if err := addArchiveEntry(zw, filepath.ToSlash(filepath.Join(base, rel)), file); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive %s: %w", path, err)
	}
	return nil
}

func addArchiveEntry(zw *zip.Writer, name, file string) error {
	src, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	defer src.Close()

	dst, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copying %s: %w", file, err)
	}
	return nil
}
