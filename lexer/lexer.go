// Package lexer turns expression source text into a token stream.
//
// Unlike a context-free scanner, this tokenizer is driven by an expected-
// token-class mask that the previous token updates: the same source byte
// ('-', '!', '^') produces a different token depending on whether an
// operand or an operator is legal at that position. That lets the parser
// treat "-u" (unary minus) and "-" (subtraction) as entirely distinct
// operators without ever having to resolve the ambiguity itself.
package lexer

import (
	"math"

	"snexpr/operator"
	"snexpr/token"
)

// Flags is the expected-token-class mask. Every token scanned updates it
// to describe which classes are legal immediately afterward.
type Flags uint16

const (
	flagTopLevelOperator Flags = 1 << iota // a binary operator (or end of input/group) is legal here
	flagOpenParen                          // '(' is legal here
	flagCloseParen                         // ')' is legal here
	flagNumber                             // a number literal is legal here
	flagString                             // a string literal is legal here
	flagWord                               // an identifier is legal here
)

// flagDefault is the state before any token has been scanned: an operand
// (but not a close paren, since nothing has opened yet) is expected.
const flagDefault = flagOpenParen | flagNumber | flagString | flagWord

// flagOperand is the state after any operator (unary or binary): another
// operand is expected, but parens may not yet close.
const flagOperand = flagOpenParen | flagNumber | flagString | flagWord

// Lexer scans source text into a flat token slice, resolving unary-vs-
// binary operator ambiguity as it goes.
type Lexer struct {
	source []byte
	pos    int
	line   int
	column int
	tokens []token.Token
	flags  Flags
}

// New returns a Lexer ready to scan source.
func New(source string) *Lexer {
	return &Lexer{
		source: []byte(source),
		line:   1,
		column: 1,
		flags:  flagDefault,
	}
}

// Scan tokenizes the entire source and returns the resulting token stream,
// terminated by a single EOF token. It stops and returns the first LexError
// encountered; the parser never sees a partial token stream.
func (l *Lexer) Scan() ([]token.Token, error) {
	for l.pos < len(l.source) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, token.CreateToken(token.EOF, l.line, l.column))
	return l.tokens, nil
}

// next scans exactly one lexical item, which may or may not produce a
// token (comments and plain whitespace never do).
func (l *Lexer) next() error {
	b := l.source[l.pos]
	switch {
	case b == '#':
		l.skipComment()
	case b == '\n':
		l.scanNewline()
	case isHorizontalSpace(b):
		l.skipHorizontalSpace()
	case isDigit(b):
		return l.scanNumber()
	case b == '"' || b == '\'':
		return l.scanString()
	case isFirstVarChar(b):
		l.scanIdentifier()
	case b == '(' || b == ')':
		return l.scanParen()
	default:
		return l.scanOperator()
	}
	return nil
}

// skipComment consumes a '#' through end of line (exclusive); comments
// carry no token and do not affect flags.
func (l *Lexer) skipComment() {
	j := l.pos
	for j < len(l.source) && l.source[j] != '\n' {
		j++
	}
	l.advance(j - l.pos)
}

// scanNewline consumes a newline and any whitespace that follows it. A
// newline immediately after a complete operand, when more input follows on
// the next line (and that input isn't a closing paren), is an implicit
// comma: it lets a sequence of statements be written one per line instead
// of strung together with explicit ','.
func (l *Lexer) scanNewline() {
	line, column := l.line, l.column
	j := l.pos + 1
	for j < len(l.source) && isSpaceByte(l.source[j]) {
		j++
	}
	moreInput := j < len(l.source) && l.source[j] != ')'
	if l.flags&flagTopLevelOperator != 0 && moreInput {
		l.tokens = append(l.tokens, token.CreateToken(token.COMMA, line, column))
		l.flags = flagOperand
		l.advance(1)
		return
	}
	l.advance(j - l.pos)
}

func (l *Lexer) skipHorizontalSpace() {
	j := l.pos
	for j < len(l.source) && isHorizontalSpace(l.source[j]) {
		j++
	}
	l.advance(j - l.pos)
}

// scanNumber parses a run of digits and at most a meaningful single '.'.
// Parsing is byte-for-byte rather than via strconv, matching the upstream
// engine: a lone "." or any additional "." past the first yields NaN
// instead of a syntax error, and leading zeros are simply accumulated.
func (l *Lexer) scanNumber() error {
	if l.flags&flagNumber == 0 {
		return l.errorf("unexpected number")
	}
	line, column := l.line, l.column
	j := l.pos
	for j < len(l.source) && (l.source[j] == '.' || isDigit(l.source[j])) {
		j++
	}
	text := string(l.source[l.pos:j])
	l.tokens = append(l.tokens, token.CreateLiteralToken(token.NUMBER, parseNumber(text), text, line, column))
	l.flags = flagTopLevelOperator | flagCloseParen
	l.advance(j - l.pos)
	return nil
}

// parseNumber mirrors the original engine's hand-rolled accumulator:
// digits accumulate into the integer part until the first '.', after which
// they accumulate into the fraction; a second '.' is invalid, and a string
// with no digits at all is NaN rather than an error.
func parseNumber(text string) float64 {
	var value float64
	frac := 0
	digits := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '.' && frac == 0 {
			frac++
			continue
		}
		if c >= '0' && c <= '9' {
			digits++
			if frac > 0 {
				frac++
			}
			value = value*10 + float64(c-'0')
			continue
		}
		return math.NaN()
	}
	for frac > 1 {
		value /= 10
		frac--
	}
	if digits == 0 {
		return math.NaN()
	}
	return value
}

// scanString consumes a quoted literal. The matching delimiter is
// whichever of '"' or '\'' opened it; there is no escape syntax, so the
// literal runs until the next occurrence of that same byte. A literal with
// no closing delimiter is a LexError.
func (l *Lexer) scanString() error {
	if l.flags&flagString == 0 {
		return l.errorf("unexpected string")
	}
	if l.pos == len(l.source)-1 {
		return l.errorf("invalid start of string")
	}
	line, column := l.line, l.column
	quote := l.source[l.pos]
	j := l.pos + 1
	for j < len(l.source) && l.source[j] != quote {
		j++
	}
	if j == len(l.source) {
		return l.errorf("unterminated string")
	}
	end := j + 1 // include the closing quote
	raw := l.source[l.pos:end]
	content := string(raw[1 : len(raw)-1])
	l.tokens = append(l.tokens, token.CreateLiteralToken(token.STRING, content, string(raw), line, column))
	l.flags = flagTopLevelOperator | flagCloseParen
	l.advance(end - l.pos)
	return nil
}

// scanIdentifier consumes a variable or function name. The lexer doesn't
// know yet whether the name will turn out to be a variable reference or a
// call, so flags allow both an operator/close and a following '(' next.
func (l *Lexer) scanIdentifier() {
	line, column := l.line, l.column
	j := l.pos
	for j < len(l.source) && isVarChar(l.source[j]) {
		j++
	}
	text := string(l.source[l.pos:j])
	l.tokens = append(l.tokens, token.CreateLiteralToken(token.IDENTIFIER, text, text, line, column))
	l.flags = flagTopLevelOperator | flagOpenParen | flagCloseParen
	l.advance(j - l.pos)
}

func (l *Lexer) scanParen() error {
	line, column := l.line, l.column
	if l.source[l.pos] == '(' {
		if l.flags&flagOpenParen == 0 {
			return l.errorf("unexpected parenthesis")
		}
		l.tokens = append(l.tokens, token.CreateToken(token.LPA, line, column))
		l.flags = flagOperand | flagCloseParen
	} else {
		if l.flags&flagCloseParen == 0 {
			return l.errorf("unexpected parenthesis")
		}
		l.tokens = append(l.tokens, token.CreateToken(token.RPA, line, column))
		l.flags = flagTopLevelOperator | flagCloseParen
	}
	l.advance(1)
	return nil
}

// scanOperator consumes an operator lexeme. In operand-expected position
// only a bare '-', '!' or '^' is legal, and it is classified immediately as
// the corresponding unary operator. In operator-expected position the scan
// takes the longest prefix that names a real binary operator.
func (l *Lexer) scanOperator() error {
	line, column := l.line, l.column
	if l.flags&flagTopLevelOperator == 0 {
		kind, ok := operator.UnaryKindForByte(l.source[l.pos])
		if !ok {
			return l.errorf("missing expected operand")
		}
		l.tokens = append(l.tokens, token.CreateToken(kind, line, column))
		l.flags = flagOperand
		l.advance(1)
		return nil
	}

	n, ok := longestOperatorMatch(l.source[l.pos:])
	if !ok {
		return l.errorf("unknown operator")
	}
	text := string(l.source[l.pos : l.pos+n])
	kind, _ := operator.Lookup(text, 0)
	l.tokens = append(l.tokens, token.CreateToken(kind, line, column))
	l.flags = flagOperand
	l.advance(n)
	return nil
}

// longestOperatorMatch scans the longest prefix of src that names a binary
// operator. It keeps extending past a successful match in case a longer
// lexeme also matches (so "<<" wins over "<"), but once an extension fails
// after some match has already succeeded, it stops and reports the last
// successful length — it does not back off looking for some other, shorter
// match instead.
func longestOperatorMatch(src []byte) (length int, ok bool) {
	matched := 0
	i := 0
	for i < len(src) && !isVarChar(src[i]) && !isSpaceByte(src[i]) && src[i] != '(' && src[i] != ')' {
		if _, found := operator.Lookup(string(src[:i+1]), 0); found {
			matched = i + 1
		} else if matched > 0 {
			break
		}
		i++
	}
	return matched, matched > 0
}

// advance moves pos forward by n bytes, tracking line/column as it goes so
// every emitted token can report where it started.
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.source[l.pos+i] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos += n
}

func (l *Lexer) errorf(message string) error {
	return CreateLexError(l.line, l.column, message)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isSpaceByte reports whether b is whitespace, including newline.
func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}

// isHorizontalSpace reports whether b is whitespace other than newline.
func isHorizontalSpace(b byte) bool {
	return b != '\n' && isSpaceByte(b)
}

// isFirstVarChar reports whether b can open an identifier: any byte from
// '@' up (excluding the operator bytes '^' and '|'), or '$' (used for both
// macro parameter names and the macro-definition call itself).
func isFirstVarChar(b byte) bool {
	return (b >= '@' && b != '^' && b != '|') || b == '$'
}

// isVarChar reports whether b can continue an identifier once started:
// everything isFirstVarChar allows, plus '#' and digits.
func isVarChar(b byte) bool {
	return isFirstVarChar(b) || b == '#' || isDigit(b)
}
