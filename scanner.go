package pagegen

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// TokenReference represents a [token] found in a template file
type TokenReference struct {
	Token       string       // Name between the brackets: "site name"
	Location    FileLocation // Where it was found
	LineContent string       // The trimmed line for context
}

// FileLocation tracks where a token reference was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column (exact start of the opening bracket)
	Text   string // Full line content for source display
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

var (
	// tokenPattern matches [token] references. Nested or empty brackets do
	// not form tokens, matching what substitution would actually replace.
	tokenPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)

	// Comment lines to skip
	htmlCommentPattern = regexp.MustCompile(`^\s*<!--`)

	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// isRenderedOutput checks if a path lies under the generator's output
// directory. Rendered pages have their tokens substituted away, so scanning
// them would only produce noise.
func isRenderedOutput(path, outputDir string) bool {
	if outputDir == "" {
		return false
	}
	rel, err := filepath.Rel(outputDir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile determines if a file should be excluded from scanning
// Returns true if the file should be skipped, false otherwise
//
// Two-layer filtering:
// 1. Output check (fast): Skip files under the generator's output directory
// 2. Gitignore check: Skip gitignored files (only for relative paths)
func shouldSkipFile(path, outputDir string) bool {
	// Layer 1: Fast check for rendered output
	if isRenderedOutput(path, outputDir) {
		return true
	}

	// Layer 2: Check against .gitignore if available
	// Only apply gitignore to relative paths (paths within the project)
	// Absolute paths (like /tmp/...) should not be affected by project gitignore
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// ScanTemplates scans files matching the given patterns for token references
func ScanTemplates(scanPatterns []string, outputDir string, verbose bool) ([]TokenReference, ScanStats, error) {
	files, stats, err := expandGlobPatterns(scanPatterns, outputDir)
	if err != nil {
		return nil, stats, err
	}

	// Print one-line summary in verbose mode
	if verbose && stats.FilesSkipped > 0 {
		println("✓ Scanned", stats.FilesScanned, "files (skipped", stats.FilesSkipped, "rendered/ignored files)")
	}

	var allRefs []TokenReference
	for _, file := range files {
		refs, err := scanFile(file)
		if err != nil {
			// Log warning but continue
			continue
		}
		allRefs = append(allRefs, refs...)
	}

	return allRefs, stats, nil
}

// expandGlobPatterns expands glob patterns to actual file paths, tracking
// discovery statistics along the way
func expandGlobPatterns(patterns []string, outputDir string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if !seen[match] {
				info, err := os.Stat(match)
				if err == nil && !info.IsDir() {
					stats.FilesDiscovered++

					if shouldSkipFile(match, outputDir) {
						stats.FilesSkipped++
					} else {
						allFiles = append(allFiles, match)
						seen[match] = true
						stats.FilesScanned++
					}
				}
			}
		}
	}

	return allFiles, stats, nil
}

// scanFile scans a single file for token references
func scanFile(filePath string) ([]TokenReference, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var refs []TokenReference
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		lineRefs := extractTokensFromLine(line, lineNum, filePath)
		refs = append(refs, lineRefs...)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// extractTokensFromLine extracts all token references from a line
func extractTokensFromLine(line string, lineNum int, file string) []TokenReference {
	// Skip lines opening an HTML comment
	if htmlCommentPattern.MatchString(line) {
		return nil
	}

	var refs []TokenReference

	matches := tokenPattern.FindAllStringSubmatchIndex(line, -1)
	for _, match := range matches {
		if len(match) < 4 {
			continue
		}

		refs = append(refs, TokenReference{
			Token: line[match[2]:match[3]],
			Location: FileLocation{
				File:   file,
				Line:   lineNum,
				Column: match[0] + 1, // 1-indexed, at the opening bracket
				Text:   line,
			},
			LineContent: strings.TrimSpace(line),
		})
	}

	return refs
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
