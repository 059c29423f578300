package core

import (
	"fmt"
	"strconv"
	"time"
)

// TypedValue is a decoded, type-tagged scalar cell value. The active
// variant always matches the Kind of the Field it was decoded for -
// a mismatch is a driver defect.
type TypedValue struct {
	kind FieldType
	str  string
	num  int64
	flt  float64
	ts   time.Time
}

func NewString(v string) *TypedValue {
	return &TypedValue{kind: FieldString, str: v}
}

func NewInteger(v int64) *TypedValue {
	return &TypedValue{kind: FieldInteger, num: v}
}

func NewFloat(v float64) *TypedValue {
	return &TypedValue{kind: FieldFloat, flt: v}
}

// NewTime holds a time of day; the date part of v is ignored on
// formatting.
func NewTime(v time.Time) *TypedValue {
	return &TypedValue{kind: FieldTime, ts: v}
}

func NewDate(v time.Time) *TypedValue {
	return &TypedValue{kind: FieldDate, ts: v}
}

// NewDateTime holds a timestamp together with its fixed UTC offset.
func NewDateTime(v time.Time) *TypedValue {
	return &TypedValue{kind: FieldDateTime, ts: v}
}

func (v *TypedValue) Kind() FieldType {
	return v.kind
}

// Time returns the temporal payload of Time/Date/DateTime values.
func (v *TypedValue) Time() time.Time {
	return v.ts
}

// String renders the canonical textual form of the value: decimal text
// for numbers, HH:MM:SS, YYYY-MM-DD and YYYY-MM-DD HH:MM:SS +HH:MM for
// the temporal kinds.
func (v *TypedValue) String() string {
	switch v.kind {
	case FieldString:
		return v.str
	case FieldInteger:
		return strconv.FormatInt(v.num, 10)
	case FieldFloat:
		return strconv.FormatFloat(v.flt, 'f', -1, 64)
	case FieldTime:
		return v.ts.Format("15:04:05")
	case FieldDate:
		return v.ts.Format("2006-01-02")
	case FieldDateTime:
		return v.ts.Format("2006-01-02 15:04:05 -07:00")
	default:
		return ""
	}
}

// Float64 coerces the value to a float for chart shaping. Numeric
// kinds convert directly, strings are parsed, temporal kinds are
// refused.
func (v *TypedValue) Float64() (float64, error) {
	switch v.kind {
	case FieldInteger:
		return float64(v.num), nil
	case FieldFloat:
		return v.flt, nil
	case FieldString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v.str)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s value cannot be used as a number", v.kind)
	}
}

// Value pairs a decoded cell with the Field it was decoded for. A nil
// Inner represents SQL NULL.
type Value struct {
	Inner *TypedValue
	Field *Field
}

// String renders the cell for tabular output. Absent values render as
// an empty string, never as a literal "null".
func (v Value) String() string {
	if v.Inner == nil {
		return ""
	}
	return v.Inner.String()
}

// Row is an ordered, Field-aligned record: position i holds the Value
// decoded for the owning Query's Fields[i]. Rendering relies on this
// alignment.
type Row []Value
