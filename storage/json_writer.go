package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"tra-stations/models"
)

// JSONWriter writes a record set as a JSON array with one object per
// record. Keys follow the column order, missing values are null and
// non-ASCII text is written verbatim.
type JSONWriter struct {
	path string
}

func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

func (j *JSONWriter) Name() string { return "json" }

func (j *JSONWriter) Write(rs *models.RecordSet) error {
	if err := j.write(rs); err != nil {
		return &models.SerializationError{Format: j.Name(), Path: j.path, Err: err}
	}
	return nil
}

func (j *JSONWriter) write(rs *models.RecordSet) error {
	if err := ensureDir(j.path); err != nil {
		return err
	}

	f, err := os.Create(j.path)
	if err != nil {
		return fmt.Errorf("json: create file: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	records := make([]*models.Record, len(rs.Records))
	for i, rec := range rs.Records {
		records[i] = rs.Project(rec)
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("json: encode: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("json: flush: %w", err)
	}
	return f.Close()
}

func (j *JSONWriter) Close() error { return nil }
