// Package operator holds the fixed operator table shared by the lexer and
// the parser: which lexemes are operators, their precedence, and the
// left/right-associativity rule the Shunting-Yard parser needs when
// deciding whether to pop an operator already on its stack.
package operator

import "snexpr/token"

// entry pairs a lexeme with the token type it produces. Unary forms of
// "-", "!" and "^" are listed under their internal marker lexeme ("-u" etc)
// because the lexer has already rewritten the source text by the time it
// reaches the parser; see the lexer package for where that rewrite happens.
type entry struct {
	lexeme string
	kind   token.TokenType
}

// table is the fixed, ordered operator list. Lookup matches lexemes
// exactly and each lexeme appears once, so order does not change its
// result; longest-match scanning is done by the lexer. Precedence lives in
// prec.
var table = []entry{
	{"-u", token.UNARY_MINUS},
	{"!u", token.UNARY_BANG},
	{"^u", token.UNARY_BITNOT},
	{"**", token.POWER},
	{"*", token.MULT},
	{"/", token.DIV},
	{"%", token.REMAINDER},
	{"+", token.ADD},
	{"-", token.SUB},
	{"<<", token.SHL},
	{">>", token.SHR},
	{"<", token.LESS},
	{"<=", token.LESS_EQUAL},
	{">", token.LARGER},
	{">=", token.LARGER_EQUAL},
	{"==", token.EQUAL_EQUAL},
	{"!=", token.NOT_EQUAL},
	{"&", token.BITAND},
	{"|", token.BITOR},
	{"^", token.BITXOR},
	{"&&", token.AND},
	{"||", token.OR},
	{"=", token.ASSIGN},
	{",", token.COMMA},
}

// prec assigns the binding strength of every operator kind; lower numbers
// bind tighter. The unary kinds sit at 0, tighter than any binary kind.
// Non-operator kinds are absent, and Prec reports false for them.
var prec = map[token.TokenType]int{
	token.UNARY_MINUS:  0,
	token.UNARY_BANG:   0,
	token.UNARY_BITNOT: 0,
	token.POWER:        1,
	token.MULT:         2,
	token.DIV:          2,
	token.REMAINDER:    2,
	token.ADD:          3,
	token.SUB:          3,
	token.SHL:          4,
	token.SHR:          4,
	token.LESS:         5,
	token.LESS_EQUAL:   5,
	token.LARGER:       5,
	token.LARGER_EQUAL: 5,
	token.EQUAL_EQUAL:  5,
	token.NOT_EQUAL:    5,
	token.BITAND:       6,
	token.BITOR:        7,
	token.BITXOR:       8,
	token.AND:          9,
	token.OR:           10,
	token.ASSIGN:       11,
	token.COMMA:        12,
}

// rightAssociative holds the three binary kinds that do NOT pop an
// equal-precedence operator already on the parser's stack: assignment and
// power associate to the right, and comma chains right-nest so that macro
// expansion (which builds nested comma pairs) composes correctly.
var rightAssociative = map[token.TokenType]bool{
	token.ASSIGN: true,
	token.POWER:  true,
	token.COMMA:  true,
}

// IsUnary reports whether kind names one of the three unary operators.
func IsUnary(kind token.TokenType) bool {
	return kind == token.UNARY_MINUS || kind == token.UNARY_BANG || kind == token.UNARY_BITNOT
}

// IsBinary reports whether kind names an operator that takes two operands.
// Literal, variable and call kinds are never binary.
func IsBinary(kind token.TokenType) bool {
	_, isBinaryPrec := prec[kind]
	return isBinaryPrec && !IsUnary(kind)
}

// Lookup resolves lexeme (optionally constrained to unary-only or
// binary-only forms) to its token kind. wantUnary is 1 to require a unary
// match, 0 to require a binary match, or -1 for "don't care" (an exact
// lexeme/kind-class match is still required — e.g. "-u" only matches the
// unary entry, bare "-" only the binary one).
func Lookup(lexeme string, wantUnary int) (token.TokenType, bool) {
	for _, e := range table {
		if e.lexeme != lexeme {
			continue
		}
		if wantUnary == -1 || boolToInt(IsUnary(e.kind)) == wantUnary {
			return e.kind, true
		}
	}
	return "", false
}

// UnaryKindForByte reports the unary token kind a single operator byte
// produces when the lexer is in operand-expected position. Only these three
// bytes can ever open a unary expression; any other operator-looking byte
// encountered there is a syntax error (a missing operand).
func UnaryKindForByte(b byte) (token.TokenType, bool) {
	switch b {
	case '-':
		return token.UNARY_MINUS, true
	case '!':
		return token.UNARY_BANG, true
	case '^':
		return token.UNARY_BITNOT, true
	default:
		return "", false
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Prec implements the Shunting-Yard "should the operator already on the
// stack be popped and bound before pushing the new one" test. It returns
// true when stacked (the operator already on the operator stack) should be
// bound first.
//
// The associativity check is made against the INCOMING operator, not the
// stacked one: that is what makes "a=b=3" bind as "a=(b=3)" (incoming "="
// is not left-associative, so an equal-precedence stacked "=" is left
// alone) while "10-2-3" binds as "(10-2)-3" (incoming "-" is
// left-associative, so the equal-precedence stacked "-" pops first).
func Prec(incoming, stacked token.TokenType) bool {
	stackedPrec, ok := prec[stacked]
	if !ok {
		return false
	}
	incomingPrec, ok := prec[incoming]
	if !ok {
		return false
	}
	incomingLeftAssociative := IsBinary(incoming) && !rightAssociative[incoming]
	return (incomingLeftAssociative && incomingPrec >= stackedPrec) || incomingPrec > stackedPrec
}
