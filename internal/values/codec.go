package values

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidValueFormat reports raw text that cannot be read as the declared type.
var ErrInvalidValueFormat = errors.New("invalid value format")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidValueFormat, fmt.Sprintf(format, args...))
}

// Encode normalizes raw into the canonical stored text for tag.
// Encoding a canonical string again yields the same string.
func Encode(tag TypeTag, raw string) (string, error) {
	switch tag {
	case TagBoolean:
		return encodeBool(raw)
	case TagInteger:
		return encodeInt(raw)
	case TagFloat:
		return encodeFloat(raw)
	case TagString:
		return encodeString(raw)
	case TagArray:
		return encodeArray(raw)
	case TagDict:
		return encodeDict(raw)
	default:
		return "", invalidf("unknown type tag %d", tag)
	}
}

func encodeBool(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		return "true", nil
	case "false", "0":
		return "false", nil
	}
	return "", invalidf("%q is not a boolean", raw)
}

func encodeInt(raw string) (string, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return "", invalidf("%q is not an integer", raw)
	}
	return strconv.FormatInt(n, 10), nil
}

func encodeFloat(raw string) (string, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", invalidf("%q is not a finite float", raw)
	}
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

func encodeString(raw string) (string, error) {
	text := raw
	if trimmed := strings.TrimSpace(raw); len(trimmed) >= 2 && trimmed[0] == '"' {
		unq, err := strconv.Unquote(trimmed)
		if err != nil {
			return "", invalidf("malformed string literal %s", trimmed)
		}
		text = unq
	}
	return strconv.Quote(text), nil
}

func encodeArray(raw string) (string, error) {
	inner, err := unwrap(raw, '[', ']')
	if err != nil {
		return "", err
	}
	parts, err := splitTopLevel(inner, ',')
	if err != nil {
		return "", err
	}
	var list *ExprList
	for _, p := range parts {
		tag, err := inferTag(p)
		if err != nil {
			return "", err
		}
		list = list.Append(Expr{Type: tag, Value: p})
	}
	arr, err := FromExprList(list)
	if err != nil {
		return "", err
	}
	return arr.String(), nil
}

func encodeDict(raw string) (string, error) {
	inner, err := unwrap(raw, '{', '}')
	if err != nil {
		return "", err
	}
	pairs, err := splitTopLevel(inner, ',')
	if err != nil {
		return "", err
	}
	seen := make(map[string]struct{}, len(pairs))
	var sb strings.Builder
	sb.WriteByte('{')
	for i, pair := range pairs {
		kv, err := splitTopLevel(pair, ':')
		if err != nil {
			return "", err
		}
		if len(kv) != 2 {
			return "", invalidf("dict entry %q must be key: value", pair)
		}
		key, err := dictKey(kv[0])
		if err != nil {
			return "", err
		}
		if _, dup := seen[key]; dup {
			return "", invalidf("duplicate dict key %q", key)
		}
		seen[key] = struct{}{}
		tag, err := inferTag(kv[1])
		if err != nil {
			return "", err
		}
		val, err := Encode(tag, kv[1])
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(key))
		sb.WriteString(": ")
		sb.WriteString(val)
	}
	sb.WriteByte('}')
	return sb.String(), nil
}

func dictKey(s string) (string, error) {
	if strings.HasPrefix(s, `"`) {
		key, err := strconv.Unquote(s)
		if err != nil {
			return "", invalidf("malformed dict key %s", s)
		}
		return key, nil
	}
	if s == "" || strings.ContainsAny(s, " \t\"[]{}") {
		return "", invalidf("bad dict key %q", s)
	}
	return s, nil
}

// inferTag guesses the type of a single untyped element of an array or dict literal.
func inferTag(elem string) (TypeTag, error) {
	switch {
	case elem == "":
		return 0, invalidf("empty element")
	case elem[0] == '[':
		return TagArray, nil
	case elem[0] == '{':
		return TagDict, nil
	case elem[0] == '"':
		return TagString, nil
	case strings.EqualFold(elem, "true") || strings.EqualFold(elem, "false"):
		return TagBoolean, nil
	}
	if _, err := strconv.ParseInt(elem, 10, 64); err == nil {
		return TagInteger, nil
	}
	if _, err := strconv.ParseFloat(elem, 64); err == nil {
		return TagFloat, nil
	}
	return 0, invalidf("cannot infer type of %q", elem)
}

func unwrap(raw string, open, closing byte) (string, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 2 || s[0] != open || s[len(s)-1] != closing {
		return "", invalidf("%q must be enclosed in %c%c", raw, open, closing)
	}
	return s[1 : len(s)-1], nil
}

// splitTopLevel splits s on sep, ignoring separators nested in brackets,
// braces or string literals. Parts are trimmed; an all-blank input has no parts.
func splitTopLevel(s string, sep byte) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var (
		parts   []string
		stack   []byte
		inStr   bool
		escaped bool
		start   int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '[':
			stack = append(stack, ']')
		case '{':
			stack = append(stack, '}')
		case ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return nil, invalidf("unbalanced %c in %q", c, s)
			}
			stack = stack[:len(stack)-1]
		default:
			if c == sep && len(stack) == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if inStr {
		return nil, invalidf("unterminated string in %q", s)
	}
	if len(stack) != 0 {
		return nil, invalidf("unclosed bracket in %q", s)
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	for _, p := range parts {
		if p == "" {
			return nil, invalidf("empty element in %q", s)
		}
	}
	return parts, nil
}
