package models

import (
	"math"
	"strconv"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	Missing Kind = iota
	Text
	Number
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "missing"
	}
}

// Value is a single cell: text, number, or missing.
// The zero Value is missing, which is distinct from 0 and from "".
type Value struct {
	kind Kind
	text string
	num  float64
}

func MissingValue() Value { return Value{} }

func TextValue(s string) Value { return Value{kind: Text, text: s} }

// NumberValue wraps f. NaN is stored as missing.
func NumberValue(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: Number, num: f}
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsMissing() bool { return v.kind == Missing }

// AsText returns the text and true when v holds text.
func (v Value) AsText() (string, bool) {
	return v.text, v.kind == Text
}

// AsNumber returns the number and true when v holds a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == Number
}

// String renders the value for delimited output. Numbers use the shortest
// decimal form that round-trips; missing renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case Text:
		return v.text
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Text:
		return v.text == o.text
	case Number:
		return v.num == o.num
	default:
		return true
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Text:
		return marshalNoEscape(v.text)
	case Number:
		if math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	default:
		return []byte("null"), nil
	}
}
