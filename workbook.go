package pagegen

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Workbook holds one fully loaded worksheet. Rows are padded to a uniform
// width: excelize trims trailing empty cells per row, which would make the
// column count depend on how far each row happens to be filled in.
type Workbook struct {
	Path  string
	Sheet string
	Rows  [][]string
}

// LoadWorkbook reads the named sheet of an xlsx file into memory.
func LoadWorkbook(path, sheet string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, path)
		}
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		return nil, fmt.Errorf("%w: %q (workbook has %q)", ErrSheetNotFound, sheet, f.GetSheetList())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}

	return &Workbook{Path: path, Sheet: sheet, Rows: rows}, nil
}

// HeaderAt returns the header found at the given 1-based row index.
func (w *Workbook) HeaderAt(row int) (*Header, error) {
	if row < 1 || row > len(w.Rows) {
		return nil, fmt.Errorf("%w: row %d requested, sheet %q has %d rows",
			ErrHeaderRowMissing, row, w.Sheet, len(w.Rows))
	}
	return NewHeader(w.Rows[row-1]), nil
}

// DataRows returns every row strictly below the 1-based header row.
func (w *Workbook) DataRows(headerRow int) [][]string {
	if headerRow < 0 || headerRow >= len(w.Rows) {
		return nil
	}
	return w.Rows[headerRow:]
}
