package values

import (
	"fmt"
	"strings"
)

const defaultArrayCap = 4

// Array is a growable sequence of canonical element strings.
type Array struct {
	data []string
	n    int
}

// NewArray creates an empty array with optional capacity hint.
func NewArray(capacity int) *Array {
	if capacity <= 0 {
		capacity = defaultArrayCap
	}
	return &Array{data: make([]string, capacity)}
}

// FromExprList encodes every expression of list, in order, into a new array.
// An ArrayPayload contributes its array's canonical text as the element;
// a RefPayload must already carry the referenced binding's value.
func FromExprList(list *ExprList) (*Array, error) {
	arr := NewArray(list.Len())
	var firstErr error
	list.Walk(func(i int, e Expr) bool {
		elem, err := encodeExpr(e)
		if err != nil {
			firstErr = fmt.Errorf("element %d: %w", i, err)
			return false
		}
		arr.Append(elem)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return arr, nil
}

func encodeExpr(e Expr) (string, error) {
	switch p := e.Data.(type) {
	case ArrayPayload:
		if p.Array == nil {
			return "", invalidf("nil array payload")
		}
		return p.Array.String(), nil
	case RefPayload:
		if e.Value == "" {
			return "", invalidf("unresolved reference to %q", p.Name)
		}
	}
	return Encode(e.Type, e.Value)
}

// Append stores elem at the end, doubling capacity when full.
func (a *Array) Append(elem string) {
	if a.n == len(a.data) {
		grown := make([]string, max(2*len(a.data), defaultArrayCap))
		copy(grown, a.data[:a.n])
		a.data = grown
	}
	a.data[a.n] = elem
	a.n++
}

// Len reports the number of populated elements.
func (a *Array) Len() int { return a.n }

// Cap reports the number of allocated slots.
func (a *Array) Cap() int { return len(a.data) }

// Get returns the element at index i.
func (a *Array) Get(i int) (string, bool) {
	if i < 0 || i >= a.n {
		return "", false
	}
	return a.data[i], true
}

// Elements returns a copy of the populated elements.
func (a *Array) Elements() []string {
	out := make([]string, a.n)
	copy(out, a.data[:a.n])
	return out
}

// String renders the canonical array text, e.g. [1, 2, 3].
func (a *Array) String() string {
	return "[" + strings.Join(a.data[:a.n], ", ") + "]"
}
