package pagegen

import "strings"

// Slugify derives a page directory name from a cell value: lowercased, with
// every space replaced by a hyphen. No other characters are touched, so what
// the sheet calls "My Page" lands at my-page/index.html.
//
// An empty result means the row cannot be addressed in slug mode and is
// skipped by the pipeline.
func Slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
