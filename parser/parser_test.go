package parser

import (
	"testing"

	"snexpr/ast"
	"snexpr/function"
	"snexpr/lexer"
	"snexpr/token"
	"snexpr/vartable"
)

func parse(t *testing.T, source string, funcs *function.Registry) (ast.Node, *vartable.Table) {
	t.Helper()
	toks, err := lexer.New(source).Scan()
	if err != nil {
		t.Fatalf("lexer.Scan(%q) returned error: %v", source, err)
	}
	vars := vartable.New()
	if funcs == nil {
		funcs = function.NewRegistry()
	}
	n, err := New(toks, vars, funcs).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", source, err)
	}
	return n, vars
}

func parseErr(t *testing.T, source string, funcs *function.Registry) error {
	t.Helper()
	toks, err := lexer.New(source).Scan()
	if err != nil {
		t.Fatalf("lexer.Scan(%q) returned error: %v", source, err)
	}
	if funcs == nil {
		funcs = function.NewRegistry()
	}
	_, err = New(toks, vartable.New(), funcs).Parse()
	if err == nil {
		t.Fatalf("Parse(%q) = nil error, want one", source)
	}
	return err
}

func asBinary(t *testing.T, n ast.Node, kind token.TokenType) *ast.BinaryOp {
	t.Helper()
	b, ok := n.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("node = %T, want *ast.BinaryOp", n)
	}
	if b.Kind != kind {
		t.Fatalf("BinaryOp.Kind = %v, want %v", b.Kind, kind)
	}
	return b
}

func asUnary(t *testing.T, n ast.Node, kind token.TokenType) *ast.UnaryOp {
	t.Helper()
	u, ok := n.(*ast.UnaryOp)
	if !ok {
		t.Fatalf("node = %T, want *ast.UnaryOp", n)
	}
	if u.Kind != kind {
		t.Fatalf("UnaryOp.Kind = %v, want %v", u.Kind, kind)
	}
	return u
}

func asConstNum(t *testing.T, n ast.Node, want float64) {
	t.Helper()
	c, ok := n.(*ast.ConstNum)
	if !ok {
		t.Fatalf("node = %T, want *ast.ConstNum", n)
	}
	if c.Value != want {
		t.Errorf("ConstNum.Value = %v, want %v", c.Value, want)
	}
}

func asVar(t *testing.T, n ast.Node, name string) {
	t.Helper()
	v, ok := n.(*ast.Var)
	if !ok {
		t.Fatalf("node = %T, want *ast.Var", n)
	}
	if v.Ref.Name != name {
		t.Errorf("Var.Ref.Name = %q, want %q", v.Ref.Name, name)
	}
}

func asCall(t *testing.T, n ast.Node, name string) *ast.Call {
	t.Helper()
	c, ok := n.(*ast.Call)
	if !ok {
		t.Fatalf("node = %T, want *ast.Call", n)
	}
	if c.Entry.Name != name {
		t.Errorf("Call.Entry.Name = %q, want %q", c.Entry.Name, name)
	}
	return c
}

func TestParsePrecedenceMultiplyBeforeAdd(t *testing.T) {
	n, _ := parse(t, "1+2*3", nil)
	add := asBinary(t, n, token.ADD)
	asConstNum(t, add.Left, 1)
	mul := asBinary(t, add.Right, token.MULT)
	asConstNum(t, mul.Left, 2)
	asConstNum(t, mul.Right, 3)
}

func TestParseLeftAssociativeSubtraction(t *testing.T) {
	n, _ := parse(t, "10-2-3", nil)
	outer := asBinary(t, n, token.SUB)
	inner := asBinary(t, outer.Left, token.SUB)
	asConstNum(t, inner.Left, 10)
	asConstNum(t, inner.Right, 2)
	asConstNum(t, outer.Right, 3)
}

func TestParseRightAssociativeAssignment(t *testing.T) {
	n, vars := parse(t, "a=b=3", nil)
	outer := asBinary(t, n, token.ASSIGN)
	asVar(t, outer.Left, "a")
	inner := asBinary(t, outer.Right, token.ASSIGN)
	asVar(t, inner.Left, "b")
	asConstNum(t, inner.Right, 3)
	if vars.Len() != 2 {
		t.Errorf("vars.Len() = %d, want 2", vars.Len())
	}
}

func TestParseUnaryChainStacksTightestFirst(t *testing.T) {
	n, _ := parse(t, "--1", nil)
	outer := asUnary(t, n, token.UNARY_MINUS)
	inner := asUnary(t, outer.Operand, token.UNARY_MINUS)
	asConstNum(t, inner.Operand, 1)
}

func TestParseUnaryBindsTighterThanBinary(t *testing.T) {
	// "-1+2" must bind as (-1)+2, not -(1+2).
	n, _ := parse(t, "-1+2", nil)
	add := asBinary(t, n, token.ADD)
	neg := asUnary(t, add.Left, token.UNARY_MINUS)
	asConstNum(t, neg.Operand, 1)
	asConstNum(t, add.Right, 2)
}

func registryWithFoo() *function.Registry {
	return function.NewRegistry(&function.Entry{
		Name: "foo",
		Callback: func(e *function.Entry, args []float64, ctx []byte) (float64, error) {
			sum := 0.0
			for _, a := range args {
				sum += a
			}
			return sum, nil
		},
	})
}

func TestParseCallWithArgs(t *testing.T) {
	n, _ := parse(t, "foo(1,2)", registryWithFoo())
	call := asCall(t, n, "foo")
	if len(call.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2", len(call.Args))
	}
	asConstNum(t, call.Args[0], 1)
	asConstNum(t, call.Args[1], 2)
}

func TestParseZeroArgCall(t *testing.T) {
	n, _ := parse(t, "foo()", registryWithFoo())
	call := asCall(t, n, "foo")
	if len(call.Args) != 0 {
		t.Fatalf("len(Args) = %d, want 0", len(call.Args))
	}
}

func TestParseCommaOutsideCallSequencesLeftToRight(t *testing.T) {
	n, _ := parse(t, "foo(1,2), 3", registryWithFoo())
	top := asBinary(t, n, token.COMMA)
	asCall(t, top.Left, "foo")
	asConstNum(t, top.Right, 3)
}

func TestParseMacroDefinitionAndExpansion(t *testing.T) {
	n, _ := parse(t, "$(SQR,$1*$1), SQR(5)", nil)
	top := asBinary(t, n, token.COMMA)
	asConstNum(t, top.Left, 0) // the $(...) definition itself yields 0

	expansion := asBinary(t, top.Right, token.COMMA)
	assign := asBinary(t, expansion.Left, token.ASSIGN)
	asVar(t, assign.Left, "$1")
	asConstNum(t, assign.Right, 5)

	square := asBinary(t, expansion.Right, token.MULT)
	asVar(t, square.Left, "$1")
	asVar(t, square.Right, "$1")
}

func TestParseAssignmentTargetMustBeVariable(t *testing.T) {
	err := parseErr(t, "1=2", nil)
	se, ok := err.(SyntaxError)
	if !ok {
		t.Fatalf("error = %T, want SyntaxError", err)
	}
	if se.Message != "left side of assignment must be a variable" {
		t.Errorf("Message = %q", se.Message)
	}
}

// A second '.' past the first makes expr_parse_number's accumulator give
// up and report NaN; a NUMBER token carrying that NaN must be rejected as
// a syntax error rather than silently becoming a ConstNum, since "is this
// a legal number" can only be checked once the literal is fully scanned.
func TestParseMultiDotNumberIsMalformed(t *testing.T) {
	err := parseErr(t, "2.3.4", nil)
	se, ok := err.(SyntaxError)
	if !ok {
		t.Fatalf("error = %T, want SyntaxError", err)
	}
	if se.Message != `malformed number "2.3.4"` {
		t.Errorf("Message = %q", se.Message)
	}
}

func TestParseUnmatchedOpenParen(t *testing.T) {
	parseErr(t, "(1+2", nil)
}

func TestParseUnmatchedCloseParen(t *testing.T) {
	parseErr(t, "1+2)", nil)
}

func TestParseCallToUnregisteredNameIsInvalid(t *testing.T) {
	err := parseErr(t, "bar(1)", nil)
	se, ok := err.(SyntaxError)
	if !ok {
		t.Fatalf("error = %T, want SyntaxError", err)
	}
	if se.Message != `invalid function name "bar"` {
		t.Errorf("Message = %q", se.Message)
	}
}
