// Package parser turns a snexpr token stream into a single expression
// tree using the Shunting-Yard algorithm, extended with call frames for
// function and macro invocations and a live macro table built up as
// "$(name, body...)" definitions are encountered in the token stream.
package parser

import (
	"fmt"
	"math"

	"snexpr/ast"
	"snexpr/function"
	"snexpr/operator"
	"snexpr/token"
	"snexpr/vartable"
)

// itemKind distinguishes what a parser operator-stack entry represents.
type itemKind int

const (
	itemOperator itemKind = iota // a real operator lexeme, e.g. "+", "-u", "="
	itemGroup                    // a plain grouping "(" with no call attached
	itemCallOpen                 // a call frame's opening "(", naming the function or macro
)

// stackItem is one entry on the parser's operator stack. Only op is
// meaningful for itemOperator; only name and operandsBase are meaningful
// for itemCallOpen and itemGroup respectively.
type stackItem struct {
	kind         itemKind
	op           token.TokenType
	name         string
	operandsBase int // itemGroup only: operand stack depth when the group opened
}

// argFrame tracks one currently open call's argument list. operatorsBase
// is the operator stack depth immediately after the call's opening marker
// was pushed, used to recognize a comma that separates arguments (as
// opposed to one acting as the generic sequencing operator) from inside
// the call with no operator pending above the marker.
type argFrame struct {
	operatorsBase int
	operandsBase  int
	args          []ast.Node
}

// Parser consumes a token stream and produces a single ast.Node, resolving
// variable references against vars and call sites against funcs (plain
// calls) or against its own macro table (calls to a name previously
// defined with "$(...)").
type Parser struct {
	tokens []token.Token
	pos    int

	vars  *vartable.Table
	funcs *function.Registry

	macros map[string][]ast.Node

	operands  []ast.Node
	operators []stackItem
	frames    []*argFrame
}

// New returns a Parser ready to consume tokens against vars and funcs.
func New(tokens []token.Token, vars *vartable.Table, funcs *function.Registry) *Parser {
	return &Parser{
		tokens: tokens,
		vars:   vars,
		funcs:  funcs,
		macros: make(map[string][]ast.Node),
	}
}

// Parse consumes the entire token stream and returns the single resulting
// expression tree, or the first SyntaxError encountered.
func (p *Parser) Parse() (ast.Node, error) {
	for {
		tok := p.tokens[p.pos]
		switch tok.TokenType {
		case token.EOF:
			return p.finish(tok)
		case token.NUMBER:
			value := tok.Literal.(float64)
			if math.IsNaN(value) {
				return nil, p.syntaxErrorAt(tok, fmt.Sprintf("malformed number %q", tok.Lexeme))
			}
			p.operands = append(p.operands, &ast.ConstNum{Value: value})
			p.pos++
		case token.STRING:
			p.operands = append(p.operands, &ast.ConstStr{Value: tok.Literal.(string)})
			p.pos++
		case token.IDENTIFIER:
			if err := p.identifier(tok); err != nil {
				return nil, err
			}
		case token.LPA:
			p.operators = append(p.operators, stackItem{kind: itemGroup, operandsBase: len(p.operands)})
			p.pos++
		case token.RPA:
			if err := p.closeParen(tok); err != nil {
				return nil, err
			}
		default:
			// Every remaining token type names a real operator, unary or
			// binary, comma included.
			if err := p.pushOperator(tok); err != nil {
				return nil, err
			}
			p.pos++
		}
	}
}

// identifier resolves an IDENTIFIER token by looking one token ahead: if
// the very next token is a literal '(' and the name is callable (the
// macro-definition keyword "$", a live macro, or a registered function),
// it opens a call frame. If the next token is '(' but the name is not
// callable that is a hard error, never a fallback to treating it as a
// variable. In every other case the identifier is a plain variable
// reference, auto-vivified in vars if this is its first mention.
func (p *Parser) identifier(tok token.Token) error {
	name := tok.Literal.(string)
	next := p.tokens[p.pos+1]
	if next.TokenType == token.LPA {
		if !p.callable(name) {
			return p.syntaxErrorAt(tok, fmt.Sprintf("invalid function name %q", name))
		}
		p.openCall(name)
		p.pos += 2 // consume the identifier and its '('
		return nil
	}
	v := p.vars.LookupOrCreate(name)
	p.operands = append(p.operands, &ast.Var{Ref: v})
	p.pos++
	return nil
}

// callable reports whether name can open a call frame.
func (p *Parser) callable(name string) bool {
	if name == "$" {
		return true
	}
	if _, ok := p.macros[name]; ok {
		return true
	}
	_, ok := p.funcs.Lookup(name)
	return ok
}

// openCall pushes a call frame's opening marker. operatorsBase is
// recorded after the marker itself is pushed, so that a comma arriving
// immediately afterward (no operator pending) sees the operator stack
// depth unchanged from this frame's base and is recognized as an argument
// separator rather than the sequencing operator.
func (p *Parser) openCall(name string) {
	p.operators = append(p.operators, stackItem{kind: itemCallOpen, name: name})
	p.frames = append(p.frames, &argFrame{
		operatorsBase: len(p.operators),
		operandsBase:  len(p.operands),
	})
}

// pushOperator implements one Shunting-Yard step for tok. A comma is
// special-cased first: as long as the operator stack sits exactly at the
// innermost open call frame's base (nothing pending above the frame's
// opening marker), the comma separates arguments and the single operand
// above it is moved into that frame's argument list rather than becoming
// part of the expression tree. Otherwise tok pops and binds every
// operator already on the stack that operator.Prec says should resolve
// before tok can be pushed.
func (p *Parser) pushOperator(tok token.Token) error {
	for {
		if tok.TokenType == token.COMMA && len(p.frames) > 0 {
			frame := p.frames[len(p.frames)-1]
			if len(p.operators) == frame.operatorsBase {
				if len(p.operands) == 0 {
					return p.syntaxErrorAt(tok, "missing argument")
				}
				arg := p.operands[len(p.operands)-1]
				p.operands = p.operands[:len(p.operands)-1]
				frame.args = append(frame.args, arg)
				return nil
			}
		}
		if len(p.operators) == 0 {
			break
		}
		top := p.operators[len(p.operators)-1]
		if top.kind != itemOperator || !operator.Prec(tok.TokenType, top.op) {
			break
		}
		if err := p.bind(top.op, tok); err != nil {
			return err
		}
		p.operators = p.operators[:len(p.operators)-1]
	}
	p.operators = append(p.operators, stackItem{kind: itemOperator, op: tok.TokenType})
	return nil
}

// bind pops the operand(s) op needs — one for a unary kind, two for a
// binary one — and replaces them with the resulting node. tok is only
// used to position a reported error.
func (p *Parser) bind(op token.TokenType, tok token.Token) error {
	if operator.IsUnary(op) {
		if len(p.operands) < 1 {
			return p.syntaxErrorAt(tok, "missing operand")
		}
		operand := p.operands[len(p.operands)-1]
		p.operands[len(p.operands)-1] = &ast.UnaryOp{Kind: op, Operand: operand}
		return nil
	}
	if len(p.operands) < 2 {
		return p.syntaxErrorAt(tok, "missing operand")
	}
	right := p.operands[len(p.operands)-1]
	left := p.operands[len(p.operands)-2]
	if op == token.ASSIGN {
		if _, ok := left.(*ast.Var); !ok {
			return p.syntaxErrorAt(tok, "left side of assignment must be a variable")
		}
	}
	p.operands = p.operands[:len(p.operands)-2]
	p.operands = append(p.operands, &ast.BinaryOp{Kind: op, Left: left, Right: right})
	return nil
}

// closeParen handles a ')' token: it pops and binds operators down to the
// nearest open '(' or call frame marker, then resolves that marker. A
// plain group leaves its single operand in place; a call frame collects
// its trailing argument (the one not already diverted by comma handling)
// and resolves to a macro definition, a macro expansion, or a function
// call.
func (p *Parser) closeParen(tok token.Token) error {
	for len(p.operators) > 0 {
		top := p.operators[len(p.operators)-1]
		if top.kind != itemOperator {
			break
		}
		if err := p.bind(top.op, tok); err != nil {
			return err
		}
		p.operators = p.operators[:len(p.operators)-1]
	}
	if len(p.operators) == 0 {
		return p.syntaxErrorAt(tok, "unmatched closing parenthesis")
	}
	top := p.operators[len(p.operators)-1]
	p.operators = p.operators[:len(p.operators)-1]
	p.pos++

	switch top.kind {
	case itemGroup:
		if len(p.operands) != top.operandsBase+1 {
			return p.syntaxErrorAt(tok, "empty parenthesized expression")
		}
		return nil
	case itemCallOpen:
		return p.closeCall(top.name, tok)
	default:
		return p.syntaxErrorAt(tok, "unmatched closing parenthesis")
	}
}

// closeCall resolves a finished call frame named name. "$" is the
// macro-definition keyword; a name already in the macro table expands
// that macro; anything else resolves against the function registry.
func (p *Parser) closeCall(name string, tok token.Token) error {
	frame := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]

	// The argument between the last comma (if any) and ')' is never
	// diverted by comma handling, since there's no comma after it.
	if len(p.operands) == frame.operandsBase+1 {
		frame.args = append(frame.args, p.operands[len(p.operands)-1])
		p.operands = p.operands[:len(p.operands)-1]
	} else if len(p.operands) != frame.operandsBase {
		return p.syntaxErrorAt(tok, "malformed argument list")
	}

	if name == "$" {
		return p.defineMacro(frame.args, tok)
	}
	if body, ok := p.macros[name]; ok {
		p.expandMacro(body, frame.args)
		return nil
	}
	return p.callFunction(name, frame.args, tok)
}

// defineMacro records a "$(name, body...)" definition. args[0] must be a
// bare variable reference naming the macro; args[1:] are stored verbatim
// as the macro's body statements and replayed, unevaluated, at every
// expansion site. The definition expression itself contributes nothing
// to the surrounding expression, so a harmless zero is pushed in its
// place.
func (p *Parser) defineMacro(args []ast.Node, tok token.Token) error {
	if len(args) < 1 {
		return p.syntaxErrorAt(tok, "too few arguments for $() function")
	}
	v, ok := args[0].(*ast.Var)
	if !ok {
		return p.syntaxErrorAt(tok, "first argument to $() must be a variable")
	}
	p.macros[v.Ref.Name] = args
	p.operands = append(p.operands, &ast.ConstNum{Value: 0})
	return nil
}

// expandMacro inlines a macro invocation. The result is a right-nested
// chain of comma expressions: one "$N = argN" assignment per call
// argument (assigning $1, $2, ... in order), followed by the macro's own
// body statements in order, with the final statement's value flowing out
// as the whole chain's result. body[0] is the name placeholder consumed
// by defineMacro and plays no further part here.
//
// Body nodes are reused across every expansion of the same macro rather
// than deep-copied, since nothing here mutates them in place; ast.Close
// deduplicates by node identity so a shared Call's cleanup still runs
// exactly once.
func (p *Parser) expandMacro(body []ast.Node, callArgs []ast.Node) {
	stmts := body[1:]
	var result ast.Node
	if len(stmts) == 0 {
		result = &ast.ConstNum{Value: 0}
	} else {
		result = stmts[len(stmts)-1]
		for i := len(stmts) - 2; i >= 0; i-- {
			result = &ast.BinaryOp{Kind: token.COMMA, Left: stmts[i], Right: result}
		}
	}
	for j := len(callArgs) - 1; j >= 0; j-- {
		v := p.vars.LookupOrCreate(fmt.Sprintf("$%d", j+1))
		assign := &ast.BinaryOp{Kind: token.ASSIGN, Left: &ast.Var{Ref: v}, Right: callArgs[j]}
		result = &ast.BinaryOp{Kind: token.COMMA, Left: assign, Right: result}
	}
	p.operands = append(p.operands, result)
}

// callFunction resolves a plain (non-macro) call against the function
// registry and allocates its private context block, if its entry wants
// one.
func (p *Parser) callFunction(name string, args []ast.Node, tok token.Token) error {
	entry, ok := p.funcs.Lookup(name)
	if !ok {
		return p.syntaxErrorAt(tok, fmt.Sprintf("unknown function %q", name))
	}
	var context []byte
	if entry.ContextSize > 0 {
		context = make([]byte, entry.ContextSize)
	}
	p.operands = append(p.operands, &ast.Call{Entry: entry, Args: args, Context: context})
	return nil
}

// finish drains the operator stack at end of input and returns the single
// resulting expression tree. A paren or call marker still on the stack
// means some '(' was never closed. Empty input yields the constant 0; more
// than one operand left over means the input was malformed in some other
// way.
func (p *Parser) finish(tok token.Token) (ast.Node, error) {
	for len(p.operators) > 0 {
		top := p.operators[len(p.operators)-1]
		if top.kind != itemOperator {
			return nil, p.syntaxErrorAt(tok, "unmatched opening parenthesis")
		}
		if err := p.bind(top.op, tok); err != nil {
			return nil, err
		}
		p.operators = p.operators[:len(p.operators)-1]
	}
	if len(p.operands) == 0 {
		return &ast.ConstNum{Value: 0}, nil
	}
	if len(p.operands) != 1 {
		return nil, p.syntaxErrorAt(tok, "malformed expression")
	}
	return p.operands[0], nil
}

func (p *Parser) syntaxErrorAt(tok token.Token, message string) error {
	return CreateSyntaxError(tok.Line, tok.Column, message)
}
