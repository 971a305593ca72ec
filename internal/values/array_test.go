package values

import (
	"errors"
	"strconv"
	"testing"
)

func TestFromExprListPreservesOrder(t *testing.T) {
	list := NewExprList(
		Expr{Type: TagInteger, Value: "1"},
		Expr{Type: TagInteger, Value: "2"},
		Expr{Type: TagInteger, Value: "3"},
	)
	arr, err := FromExprList(list)
	if err != nil {
		t.Fatalf("FromExprList: %v", err)
	}
	if arr.Len() != 3 {
		t.Fatalf("expected length 3, got %d", arr.Len())
	}
	for i, want := range []string{"1", "2", "3"} {
		got, ok := arr.Get(i)
		if !ok || got != want {
			t.Fatalf("element %d = %q (%v), want %q", i, got, ok, want)
		}
	}
	if arr.String() != "[1, 2, 3]" {
		t.Fatalf("unexpected canonical text %q", arr.String())
	}
}

func TestFromExprListPayloads(t *testing.T) {
	inner := NewArray(0)
	inner.Append("true")

	var list *ExprList
	list = list.Append(Expr{Type: TagArray, Data: ArrayPayload{Array: inner}})
	list = list.Append(Expr{Type: TagString, Value: "ok", Data: RefPayload{Name: "greeting"}})

	arr, err := FromExprList(list)
	if err != nil {
		t.Fatalf("FromExprList: %v", err)
	}
	if got := arr.Elements(); len(got) != 2 || got[0] != "[true]" || got[1] != `"ok"` {
		t.Fatalf("unexpected elements %q", got)
	}

	unresolved := NewExprList(Expr{Type: TagInteger, Data: RefPayload{Name: "n"}})
	if _, err := FromExprList(unresolved); !errors.Is(err, ErrInvalidValueFormat) {
		t.Fatalf("expected ErrInvalidValueFormat for unresolved reference, got %v", err)
	}
}

func TestFromExprListReportsBadElement(t *testing.T) {
	list := NewExprList(
		Expr{Type: TagInteger, Value: "1"},
		Expr{Type: TagInteger, Value: "two"},
	)
	if _, err := FromExprList(list); !errors.Is(err, ErrInvalidValueFormat) {
		t.Fatalf("expected ErrInvalidValueFormat, got %v", err)
	}
}

func TestArrayGrowth(t *testing.T) {
	arr := NewArray(1)
	if arr.Len() != 0 || arr.Cap() != 1 {
		t.Fatalf("fresh array len=%d cap=%d", arr.Len(), arr.Cap())
	}
	grows := 0
	prevCap := arr.Cap()
	for i := 0; i < 100; i++ {
		arr.Append(strconv.Itoa(i))
		if arr.Cap() < arr.Len() {
			t.Fatalf("capacity %d below length %d", arr.Cap(), arr.Len())
		}
		if arr.Cap() != prevCap {
			grows++
			prevCap = arr.Cap()
		}
	}
	if grows > 8 {
		t.Fatalf("capacity grew %d times for 100 appends; expected amortized doubling", grows)
	}
	if _, ok := arr.Get(100); ok {
		t.Fatalf("Get past length must fail")
	}
	last, _ := arr.Get(99)
	if last != "99" {
		t.Fatalf("last element = %q", last)
	}
}

func TestExprListAppend(t *testing.T) {
	list := NewExprList()
	if list.Len() != 0 {
		t.Fatalf("empty list length %d", list.Len())
	}
	same := list.Append(Expr{Type: TagBoolean, Value: "true"})
	if same != list {
		t.Fatalf("Append must return the same list")
	}
	list.Append(Expr{Type: TagString, Value: "x"})
	got := list.Slice()
	if len(got) != 2 || got[0].Value != "true" || got[1].Value != "x" {
		t.Fatalf("unexpected contents %+v", got)
	}

	seen := 0
	list.Walk(func(i int, _ Expr) bool {
		seen++
		return i < 0
	})
	if seen != 1 {
		t.Fatalf("Walk must stop when fn returns false, visited %d", seen)
	}

	var nilList *ExprList
	if nilList.Len() != 0 || len(nilList.Slice()) != 0 {
		t.Fatalf("nil list must behave as empty")
	}
}
