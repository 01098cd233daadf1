// interfaces.go contains the Node interface every AST node implements and
// the Visitor interface that the evaluator satisfies.

package ast

// Visitor is the interface for operating on every kind of expression node.
// The evaluator implements it; the JSON printer and Close walk the tree
// with plain type switches instead. Each Visit method corresponds to
// exactly one Node type.
//
// Unlike a typical any-returning visitor, these methods return (Result,
// error) directly: Go's native error propagation already does the "stop
// and report" job the original engine did by hand, so there is no need to
// route through a panic/recover pair or an untyped return value.
type Visitor interface {
	VisitConstNum(n *ConstNum) (Result, error)
	VisitConstStr(n *ConstStr) (Result, error)
	VisitVar(n *Var) (Result, error)
	VisitUnaryOp(n *UnaryOp) (Result, error)
	VisitBinaryOp(n *BinaryOp) (Result, error)
	VisitCall(n *Call) (Result, error)
}

// Node is the base interface for every AST node. Accept dispatches the
// node to the matching method on v.
type Node interface {
	Accept(v Visitor) (Result, error)
}
