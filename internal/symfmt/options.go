package symfmt

import (
	"fmt"
	"strings"
)

// Format selects how a listing is encoded.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat reads pretty|json|msgpack.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "pretty", "":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	}
	return FormatPretty, fmt.Errorf("unsupported format %q (must be pretty, json or msgpack)", s)
}

// Opts configures listing output.
type Opts struct {
	Format Format
	Color  bool
	Width  int // value column width in cells, 0 = unlimited
	Stats  bool
}
