package storage

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"tra-stations/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadOptions configures how delimited text is loaded.
type ReadOptions struct {
	Delimiter rune
	// InferNumeric loads a column as numbers when every non-empty cell parses as one.
	InferNumeric bool
	// TextColumns are never inferred as numeric.
	TextColumns []string
}

// CSVReader loads UTF-8 delimited text files into record sets.
type CSVReader struct {
	opts ReadOptions
}

// NewCSVReader creates a CSVReader with the given options.
func NewCSVReader(opts ReadOptions) *CSVReader {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	return &CSVReader{opts: opts}
}

// Load reads the file at path. The first row is the header; empty cells
// load as missing.
func (r *CSVReader) Load(path string) (*models.RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	rs, err := r.Read(f)
	if err != nil {
		return nil, &models.IOError{Op: "read", Path: path, Err: err}
	}
	return rs, nil
}

// Read parses delimited text from src. Short rows are padded with missing
// values; a row longer than the header is an error.
func (r *CSVReader) Read(src io.Reader) (*models.RecordSet, error) {
	br := bufio.NewReader(src)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = r.opts.Delimiter
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("csv: file is empty")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}
	body := rows[1:]
	for n, row := range body {
		if len(row) > len(header) {
			return nil, fmt.Errorf("csv: record %d: expected %d fields, saw %d", n+1, len(header), len(row))
		}
	}

	numeric := make([]bool, len(header))
	if r.opts.InferNumeric {
		for i, col := range header {
			numeric[i] = !r.isTextColumn(col) && numericColumn(body, i)
		}
	}

	rs := models.NewRecordSet(header)
	for _, row := range body {
		if isBlankRow(row) {
			continue
		}
		rec := models.NewRecord()
		for i, col := range header {
			rec.Set(col, cellValue(row, i, numeric[i]))
		}
		rs.Records = append(rs.Records, rec)
	}
	return rs, nil
}

func (r *CSVReader) isTextColumn(col string) bool {
	for _, c := range r.opts.TextColumns {
		if c == col {
			return true
		}
	}
	return false
}

func checkHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		if h == "" {
			return fmt.Errorf("csv: header column %d is empty", i+1)
		}
		if _, dup := seen[h]; dup {
			return fmt.Errorf("csv: duplicate header column %q", h)
		}
		seen[h] = struct{}{}
	}
	return nil
}

// numericColumn reports whether column i has at least one value and every
// non-empty value parses as a float.
func numericColumn(rows [][]string, i int) bool {
	found := false
	for _, row := range rows {
		if i >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		if _, ok := parseFinite(cell); !ok {
			return false
		}
		found = true
	}
	return found
}

func cellValue(row []string, i int, numeric bool) models.Value {
	if i >= len(row) || strings.TrimSpace(row[i]) == "" {
		return models.MissingValue()
	}
	if numeric {
		if n, ok := parseFinite(strings.TrimSpace(row[i])); ok {
			return models.NumberValue(n)
		}
	}
	return models.TextValue(row[i])
}

// parseFinite parses cell as a float. Spellings such as "inf" or "NaN" are
// not numbers here and stay text.
func parseFinite(cell string) (float64, bool) {
	n, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
