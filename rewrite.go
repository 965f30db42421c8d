package pagegen

// ImageColumns returns the header positions whose values hold image paths,
// in header order.
func ImageColumns(h *Header) []int {
	var cols []int
	for i, name := range h.Names {
		if isImageColumn(name) {
			cols = append(cols, i)
		}
	}
	return cols
}

// imageBase resolves the prefix image cells are rewritten onto. An absolute
// domain wins over the relative prefix.
func imageBase(cfg Config) string {
	if cfg.Domain != "" {
		return cfg.Domain + "/" + cfg.ImagesFolder
	}
	return cfg.RelativePrefix + "/" + cfg.ImagesFolder
}

// RewriteImagePaths prefixes every non-empty cell of the given columns with
// base, in place. Empty cells stay empty so a missing image never turns into
// a dangling path.
//
// The rewrite is not idempotent: applying it twice stacks the prefix. The
// pipeline runs it exactly once, between validation and rendering.
func RewriteImagePaths(rows [][]string, cols []int, base string) {
	for _, row := range rows {
		for _, c := range cols {
			if c >= len(row) || row[c] == "" {
				continue
			}
			row[c] = base + "/" + row[c]
		}
	}
}
