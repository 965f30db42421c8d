package pagegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeaderFirstOccurrenceWins(t *testing.T) {
	h := NewHeader([]string{"title", "url", "title", "image url"})

	idx, ok := h.Index("title")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = h.Index("image url")
	require.True(t, ok)
	assert.Equal(t, 3, idx)
}

func TestHeaderIndexIsExact(t *testing.T) {
	h := NewHeader([]string{"url", "title"})

	_, ok := h.Index("Title")
	assert.False(t, ok, "lookups are case sensitive")

	_, ok = h.Index(" title")
	assert.False(t, ok, "lookups do not trim")

	_, ok = h.Index("description")
	assert.False(t, ok)
}

func TestHeaderValidate(t *testing.T) {
	profile := DefaultProfile()

	tests := []struct {
		name        string
		header      []string
		wantMissing string
	}{
		{
			name:   "all columns present",
			header: []string{"url", "title", "description", "image url", "site name"},
		},
		{
			name:   "extra columns are fine",
			header: []string{"id", "url", "title", "description", "image url", "site name", "notes"},
		},
		{
			name:        "missing image url",
			header:      []string{"url", "title", "description", "site name"},
			wantMissing: "image url",
		},
		{
			name:        "reports first missing column in profile order",
			header:      []string{"title", "description"},
			wantMissing: "url",
		},
		{
			name:        "empty header",
			header:      []string{},
			wantMissing: "url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader(tt.header)
			err := h.Validate(profile)

			if tt.wantMissing == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingColumn)

			var missing *MissingColumnError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.wantMissing, missing.Column)
			assert.Equal(t, tt.header, missing.Header, "error carries the observed header")
		})
	}
}

func TestMissingColumnErrorMessage(t *testing.T) {
	err := &MissingColumnError{Column: "url", Header: []string{"title", "description"}}
	assert.Equal(t, `required column "url" not found in header ["title" "description"]`, err.Error())
}
