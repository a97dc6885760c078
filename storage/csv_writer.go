package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"tra-stations/models"
)

// CSVWriter writes a record set as UTF-8 delimited text: one header row,
// one row per record, missing values as empty cells.
type CSVWriter struct {
	path      string
	delimiter rune
	bom       bool
}

// NewCSVWriter creates a writer targeting path. Nothing is created until Write.
func NewCSVWriter(path string, delimiter rune, bom bool) *CSVWriter {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVWriter{path: path, delimiter: delimiter, bom: bom}
}

func (c *CSVWriter) Name() string { return "csv" }

// Write creates (or truncates) the file and writes every record.
// Intermediate directories are created automatically.
func (c *CSVWriter) Write(rs *models.RecordSet) error {
	if err := c.write(rs); err != nil {
		return &models.SerializationError{Format: c.Name(), Path: c.path, Err: err}
	}
	return nil
}

func (c *CSVWriter) write(rs *models.RecordSet) error {
	if err := ensureDir(c.path); err != nil {
		return err
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("csv: create file: %w", err)
	}
	defer f.Close()

	if c.bom {
		if _, err := f.Write(utf8BOM); err != nil {
			return fmt.Errorf("csv: write BOM: %w", err)
		}
	}

	w := csv.NewWriter(f)
	w.Comma = c.delimiter

	if err := w.Write(rs.Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for i, rec := range rs.Records {
		if err := w.Write(rs.Row(rec)); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return f.Close()
}

// Close is a no-op; the file is closed by Write.
func (c *CSVWriter) Close() error { return nil }

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}
