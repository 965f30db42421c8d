package pagegen

import (
	"sort"
	"strings"
)

// columnCategories maps well-known column names to categories
var columnCategories = map[string]ColumnCategory{
	// Link
	"url":       CategoryLink,
	"link":      CategoryLink,
	"canonical": CategoryLink,
	"href":      CategoryLink,

	// Text
	"title":       CategoryText,
	"subtitle":    CategoryText,
	"headline":    CategoryText,
	"description": CategoryText,
	"body":        CategoryText,
	"content":     CategoryText,
	"summary":     CategoryText,

	// Meta
	"site name":    CategoryMeta,
	"author":       CategoryMeta,
	"keywords":     CategoryMeta,
	"locale":       CategoryMeta,
	"type":         CategoryMeta,
	"robots":       CategoryMeta,
	"twitter card": CategoryMeta,
	"published":    CategoryMeta,
	"modified":     CategoryMeta,
}

// isImageColumn reports whether a header name denotes an image column.
// Path rewriting keys off this exact rule: the name contains "image",
// case-sensitively, anywhere in the cell.
func isImageColumn(name string) bool {
	return strings.Contains(name, "image")
}

// categorizeColumn determines the category of a header column
func categorizeColumn(name string) ColumnCategory {
	// Image check comes first so the category view always agrees with
	// the columns RewriteImagePaths touches.
	if isImageColumn(name) {
		return CategoryImage
	}

	// Check exact match
	if cat, exists := columnCategories[name]; exists {
		return cat
	}

	// Check for url/link-ish names
	if strings.Contains(name, "url") ||
		strings.Contains(name, "link") ||
		strings.Contains(name, "href") {
		return CategoryLink
	}

	// Default to Text for unknown columns
	return CategoryText
}

// categorizeColumns groups header columns by category
func categorizeColumns(h *Header) map[ColumnCategory][]CategorizedColumn {
	result := make(map[ColumnCategory][]CategorizedColumn)

	for i, name := range h.Names {
		cat := categorizeColumn(name)
		col := CategorizedColumn{
			Name:     name,
			Index:    i,
			Category: cat,
		}
		result[cat] = append(result[cat], col)
	}

	// Sort columns within each category
	for cat := range result {
		sort.Slice(result[cat], func(i, j int) bool {
			return result[cat][i].Name < result[cat][j].Name
		})
	}

	return result
}
