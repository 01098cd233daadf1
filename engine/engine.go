// Package engine is snexpr's embeddable entry point: the thin facade a
// host program links against instead of wiring the lexer, parser and
// evaluator together by hand. The teacher CLI this repository grew from
// does that wiring inline in each cmd_*.go file because it never needed to
// be embedded in anything else; an expression library does, so that
// wiring is pulled out here once.
package engine

import (
	"snexpr/ast"
	"snexpr/function"
	"snexpr/interpreter"
	"snexpr/lexer"
	"snexpr/parser"
	"snexpr/vartable"
)

// Create compiles text into a single expression tree, resolving variable
// references against vars (created lazily) and call expressions against
// funcs. funcs may be nil for expressions that never call a host function.
func Create(text string, vars *vartable.Table, funcs *function.Registry) (ast.Node, error) {
	tokens, err := lexer.New(text).Scan()
	if err != nil {
		return nil, err
	}
	if funcs == nil {
		funcs = function.NewRegistry()
	}
	return parser.New(tokens, vars, funcs).Parse()
}

// Eval evaluates a tree previously returned by Create and returns its
// result, or the first EvalError encountered.
func Eval(n ast.Node) (ast.Result, error) {
	return interpreter.Eval(n)
}

// Destroy runs every Call node's registered cleanup callback exactly once
// and, if vars is non-nil, clears the variable table. Call it once an AST
// (and the values it produced through vars) are no longer needed.
func Destroy(n ast.Node, vars *vartable.Table) {
	ast.Close(n)
	if vars != nil {
		vars.Reset()
	}
}

// NewVarTable returns an empty variable table ready to be passed to
// Create and primed with values via Table.LookupOrCreate.
func NewVarTable() *vartable.Table {
	return vartable.New()
}

// NewFuncRegistry builds a function registry from host-provided entries,
// ready to be passed to Create.
func NewFuncRegistry(entries ...*function.Entry) *function.Registry {
	return function.NewRegistry(entries...)
}
