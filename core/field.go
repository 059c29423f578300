package core

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldType is the logical type declared for a column. It dictates how
// drivers decode the native value and which TypedValue variant they
// produce.
type FieldType int

const (
	FieldString FieldType = iota
	FieldInteger
	FieldFloat
	FieldTime
	FieldDate
	FieldDateTime
)

func (t FieldType) String() string {
	switch t {
	case FieldString:
		return "string"
	case FieldInteger:
		return "integer"
	case FieldFloat:
		return "float"
	case FieldTime:
		return "time"
	case FieldDate:
		return "date"
	case FieldDateTime:
		return "datetime"
	default:
		return ""
	}
}

func (t *FieldType) UnmarshalYAML(node *yaml.Node) error {
	var kind string
	if err := node.Decode(&kind); err != nil {
		return err
	}

	switch strings.ToLower(kind) {
	case "string":
		*t = FieldString
	case "integer":
		*t = FieldInteger
	case "float":
		*t = FieldFloat
	case "time":
		*t = FieldTime
	case "date":
		*t = FieldDate
	case "datetime":
		*t = FieldDateTime
	default:
		return fmt.Errorf("unknown field type %q", kind)
	}

	return nil
}

// Field describes a single column of a configured query: the source
// column name, the label used in reports and the logical type.
// Identity for lookups is the Field name, matched case-sensitive.
type Field struct {
	Field string    `yaml:"field"`
	Title string    `yaml:"title"`
	Kind  FieldType `yaml:"kind"`
}
