package values

// Payload is extra data the parser attaches to an expression.
// The set of payload kinds is closed: ArrayPayload and RefPayload.
type Payload interface {
	isPayload()
}

// ArrayPayload carries an already built array literal.
type ArrayPayload struct {
	Array *Array
}

// RefPayload marks an expression that names another binding.
type RefPayload struct {
	Name string
}

func (ArrayPayload) isPayload() {}
func (RefPayload) isPayload()   {}

// Expr is one parsed expression value.
type Expr struct {
	Type  TypeTag
	Value string
	Data  Payload // nil when the expression carries nothing extra
}

type exprNode struct {
	expr Expr
	next *exprNode
}

// ExprList is an append-only, singly linked sequence of expressions.
// The zero value is an empty list.
type ExprList struct {
	head *exprNode
	tail *exprNode
	n    int
}

// NewExprList creates a list holding the given expressions in order.
func NewExprList(exprs ...Expr) *ExprList {
	var l *ExprList
	for _, e := range exprs {
		l = l.Append(e)
	}
	if l == nil {
		l = &ExprList{}
	}
	return l
}

// Append adds e at the tail and returns the list.
// Appending to a nil list allocates a new one.
func (l *ExprList) Append(e Expr) *ExprList {
	if l == nil {
		l = &ExprList{}
	}
	node := &exprNode{expr: e}
	if l.tail == nil {
		l.head = node
	} else {
		l.tail.next = node
	}
	l.tail = node
	l.n++
	return l
}

// Len reports the number of expressions.
func (l *ExprList) Len() int {
	if l == nil {
		return 0
	}
	return l.n
}

// Walk calls fn for every expression in order until fn returns false.
func (l *ExprList) Walk(fn func(i int, e Expr) bool) {
	if l == nil {
		return
	}
	i := 0
	for node := l.head; node != nil; node = node.next {
		if !fn(i, node.expr) {
			return
		}
		i++
	}
}

// Slice copies the expressions out in order.
func (l *ExprList) Slice() []Expr {
	out := make([]Expr, 0, l.Len())
	l.Walk(func(_ int, e Expr) bool {
		out = append(out, e)
		return true
	})
	return out
}
