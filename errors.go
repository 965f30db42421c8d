package pagegen

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the pipeline. Wrap sites add context with
// fmt.Errorf("%w: ...") so callers can branch with errors.Is.
var (
	// ErrWorkbookNotFound indicates the workbook file does not exist.
	ErrWorkbookNotFound = errors.New("workbook not found")
	// ErrSheetNotFound indicates the workbook has no sheet with the configured name.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrTemplateNotFound indicates the template file does not exist.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrHeaderRowMissing indicates the sheet has fewer rows than the
	// configured header row index.
	ErrHeaderRowMissing = errors.New("header row out of range")
	// ErrMissingColumn indicates a required column is absent from the header.
	ErrMissingColumn = errors.New("required column missing")
	// ErrUnmeasurable indicates an image could not be fetched or decoded.
	ErrUnmeasurable = errors.New("image not measurable")
)

// MissingColumnError reports the first required column absent from a header.
// It carries the full observed header so the diagnostic shows what the sheet
// actually contains, not just what it lacks.
type MissingColumnError struct {
	Column string   // the missing required column
	Header []string // every column name observed in the header row
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in header %q", e.Column, e.Header)
}

// Unwrap makes errors.Is(err, ErrMissingColumn) work on wrapped values.
func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}
