package pagegen

// Header maps column names to their positions in the sheet.
//
// When the same name appears twice, the first occurrence wins and later
// duplicates are unreachable by name. Lookups are exact: no trimming, no
// case folding.
type Header struct {
	Names []string

	index map[string]int
}

// NewHeader builds a Header from one raw worksheet row.
func NewHeader(cells []string) *Header {
	h := &Header{
		Names: cells,
		index: make(map[string]int, len(cells)),
	}
	for i, name := range cells {
		if _, seen := h.index[name]; !seen {
			h.index[name] = i
		}
	}
	return h
}

// Index returns the position of the named column.
func (h *Header) Index(name string) (int, bool) {
	i, ok := h.index[name]
	return i, ok
}

// Validate checks that every column the profile requires is present.
// It stops at the first missing column and reports it together with the
// full observed header, so a typo is diagnosable from the error alone.
func (h *Header) Validate(profile Profile) error {
	for _, col := range profile.Columns {
		if _, ok := h.index[col]; !ok {
			return &MissingColumnError{Column: col, Header: h.Names}
		}
	}
	return nil
}
