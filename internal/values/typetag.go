package values

import "strings"

// TypeTag enumerates the value types a binding can declare.
type TypeTag uint8

const (
	TagBoolean TypeTag = iota
	TagInteger
	TagFloat
	TagString
	TagArray
	TagDict
)

func (t TypeTag) String() string {
	switch t {
	case TagBoolean:
		return "boolean"
	case TagInteger:
		return "integer"
	case TagFloat:
		return "float"
	case TagString:
		return "string"
	case TagArray:
		return "array"
	case TagDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the known tags.
func (t TypeTag) Valid() bool { return t <= TagDict }

// ParseTypeTag maps a declared type name (or a short alias) to its tag.
func ParseTypeTag(s string) (TypeTag, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "boolean", "bool":
		return TagBoolean, true
	case "integer", "int":
		return TagInteger, true
	case "float":
		return TagFloat, true
	case "string", "str":
		return TagString, true
	case "array":
		return TagArray, true
	case "dict":
		return TagDict, true
	default:
		return 0, false
	}
}
