package models

import (
	"bytes"
	"encoding/json"
)

// Field names added by the pipeline.
const (
	FieldTM2X      = "tm2_x"
	FieldTM2Y      = "tm2_y"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
)

// Record is an ordered mapping from field name to Value.
type Record struct {
	fields []string
	values map[string]Value
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// Get returns the value of field, or a missing Value if the field is unset.
func (r *Record) Get(field string) Value {
	return r.values[field]
}

// Set stores v under field. A new field is appended; an existing one keeps its position.
func (r *Record) Set(field string, v Value) {
	if _, ok := r.values[field]; !ok {
		r.fields = append(r.fields, field)
	}
	r.values[field] = v
}

// Fields returns the field names in insertion order.
func (r *Record) Fields() []string {
	return append([]string(nil), r.fields...)
}

func (r *Record) Len() int { return len(r.fields) }

// MarshalJSON emits an object with keys in field order and without
// escaping HTML or non-ASCII characters.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(f)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[f].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RecordSet is a table: a header order plus its records.
type RecordSet struct {
	Columns []string
	Records []*Record
}

// NewRecordSet creates an empty RecordSet with the given header.
func NewRecordSet(columns []string) *RecordSet {
	return &RecordSet{Columns: append([]string(nil), columns...)}
}

// HasColumn reports whether name is part of the header.
func (rs *RecordSet) HasColumn(name string) bool {
	for _, c := range rs.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends name to the header once.
func (rs *RecordSet) AddColumn(name string) {
	if !rs.HasColumn(name) {
		rs.Columns = append(rs.Columns, name)
	}
}

func (rs *RecordSet) Len() int { return len(rs.Records) }

// Row renders a record as cells in header order.
func (rs *RecordSet) Row(r *Record) []string {
	row := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		row[i] = r.Get(c).String()
	}
	return row
}

// Project returns a copy of r whose fields follow the header order exactly,
// with columns the record never set filled as missing.
func (rs *RecordSet) Project(r *Record) *Record {
	out := NewRecord()
	for _, c := range rs.Columns {
		out.Set(c, r.Get(c))
	}
	return out
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
