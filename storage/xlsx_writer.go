package storage

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"tra-stations/models"
)

const xlsxSheet = "Stations"

// XLSXWriter writes a record set to a single-sheet spreadsheet. Numbers
// are stored as numeric cells; missing values leave the cell empty.
type XLSXWriter struct {
	path string
}

func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

func (x *XLSXWriter) Name() string { return "xlsx" }

func (x *XLSXWriter) Write(rs *models.RecordSet) error {
	if err := x.write(rs); err != nil {
		return &models.SerializationError{Format: x.Name(), Path: x.path, Err: err}
	}
	return nil
}

func (x *XLSXWriter) write(rs *models.RecordSet) error {
	if err := ensureDir(x.path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	header := make([]any, len(rs.Columns))
	for i, c := range rs.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}

	for i, rec := range rs.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i, err)
		}
		row := make([]any, len(rs.Columns))
		for j, c := range rs.Columns {
			row[j] = xlsxCell(rec.Get(c))
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save: %w", err)
	}
	return nil
}

func xlsxCell(v models.Value) any {
	if n, ok := v.AsNumber(); ok {
		return n
	}
	if s, ok := v.AsText(); ok {
		return s
	}
	return nil
}

func (x *XLSXWriter) Close() error { return nil }
