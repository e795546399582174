/*
Package ingest decodes uploaded CSV files into typed core records.

PURPOSE:
  The core never inspects raw rows; this package validates required
  columns once at the boundary and hands over typed records.

VALIDATION:
  Missing required columns reject the WHOLE batch (ValidationError) before
  any state mutation. Per-field parse failures degrade the single field to
  its unknown/zero branch and never reject the batch.

ENCODING:
  Legacy POS exports are not always UTF-8. Files that fail UTF-8
  validation are re-decoded as Latin-1 rather than rejected.
*/
package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/greenshelf/advisory-engine/engine"
)

// readRows reads all CSV rows, tolerating Latin-1 input and ragged rows.
func readRows(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err == nil {
			raw = decoded
		}
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

// columnIndex validates the header against required column names and
// returns a name -> position map. Header matching is case-insensitive.
func columnIndex(dataset string, rows [][]string, required []string) (map[string]int, error) {
	if len(rows) == 0 {
		return nil, engine.ErrEmptyBatch
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &engine.ValidationError{Dataset: dataset, Missing: missing}
	}
	return idx, nil
}

// cell returns the trimmed value at column name, or "" when the row is too
// short or the column optional and absent.
func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFloat degrades an unparsable value to the fallback.
func parseFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

// parseInt degrades an unparsable value to the fallback.
func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

// optionalFloat returns nil for absent or unparsable values.
func optionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
