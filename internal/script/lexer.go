package script

import "fmt"

// splitFields breaks a script line into whitespace separated fields.
// A quoted string or a bracketed/braced group is one field even when it
// contains spaces. An unquoted '#' starts a comment.
func splitFields(line string) ([]string, error) {
	var (
		fields  []string
		stack   []byte
		inStr   bool
		escaped bool
		start   = -1
	)
	flush := func(end int) {
		if start >= 0 {
			fields = append(fields, line[start:end])
			start = -1
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
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
		if len(stack) == 0 && (c == ' ' || c == '\t' || c == '\r') {
			flush(i)
			continue
		}
		if len(stack) == 0 && c == '#' && start < 0 {
			return fields, nil
		}
		if start < 0 {
			start = i
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
				return nil, fmt.Errorf("unbalanced %q", c)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if inStr {
		return nil, fmt.Errorf("unterminated string")
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("missing %q", stack[len(stack)-1])
	}
	flush(len(line))
	return fields, nil
}
