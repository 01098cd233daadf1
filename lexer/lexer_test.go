package lexer

import (
	"reflect"
	"testing"

	"snexpr/token"
)

func scanOK(t *testing.T, source string, expected []token.Token) {
	t.Helper()
	got, err := New(source).Scan()
	if err != nil {
		t.Fatalf("Scan(%q) returned error: %v", source, err)
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Scan(%q) = %#v, want %#v", source, got, expected)
	}
}

func TestScanArithmetic(t *testing.T) {
	scanOK(t, "1+2", []token.Token{
		token.CreateLiteralToken(token.NUMBER, 1.0, "1", 1, 1),
		token.CreateToken(token.ADD, 1, 2),
		token.CreateLiteralToken(token.NUMBER, 2.0, "2", 1, 3),
		token.CreateToken(token.EOF, 1, 4),
	})
}

func TestScanUnaryVsBinaryMinus(t *testing.T) {
	scanOK(t, "-1+-2", []token.Token{
		token.CreateToken(token.UNARY_MINUS, 1, 1),
		token.CreateLiteralToken(token.NUMBER, 1.0, "1", 1, 2),
		token.CreateToken(token.ADD, 1, 3),
		token.CreateToken(token.UNARY_MINUS, 1, 4),
		token.CreateLiteralToken(token.NUMBER, 2.0, "2", 1, 5),
		token.CreateToken(token.EOF, 1, 6),
	})
}

func TestScanString(t *testing.T) {
	scanOK(t, `"abc"`, []token.Token{
		token.CreateLiteralToken(token.STRING, "abc", `"abc"`, 1, 1),
		token.CreateToken(token.EOF, 1, 6),
	})
}

func TestScanCallSite(t *testing.T) {
	scanOK(t, "foo(1,2)", []token.Token{
		token.CreateLiteralToken(token.IDENTIFIER, "foo", "foo", 1, 1),
		token.CreateToken(token.LPA, 1, 4),
		token.CreateLiteralToken(token.NUMBER, 1.0, "1", 1, 5),
		token.CreateToken(token.COMMA, 1, 6),
		token.CreateLiteralToken(token.NUMBER, 2.0, "2", 1, 7),
		token.CreateToken(token.RPA, 1, 8),
		token.CreateToken(token.EOF, 1, 9),
	})
}

func TestScanImplicitNewlineComma(t *testing.T) {
	scanOK(t, "1\n2", []token.Token{
		token.CreateLiteralToken(token.NUMBER, 1.0, "1", 1, 1),
		token.CreateToken(token.COMMA, 1, 2),
		token.CreateLiteralToken(token.NUMBER, 2.0, "2", 2, 1),
		token.CreateToken(token.EOF, 2, 2),
	})
}

func TestScanNewlineBeforeCloseParenIsNotAComma(t *testing.T) {
	scanOK(t, "(1\n)", []token.Token{
		token.CreateToken(token.LPA, 1, 1),
		token.CreateLiteralToken(token.NUMBER, 1.0, "1", 1, 2),
		token.CreateToken(token.RPA, 2, 1),
		token.CreateToken(token.EOF, 2, 2),
	})
}

func TestScanCommentDoesNotSuppressImplicitComma(t *testing.T) {
	scanOK(t, "1 # c\n2", []token.Token{
		token.CreateLiteralToken(token.NUMBER, 1.0, "1", 1, 1),
		token.CreateToken(token.COMMA, 1, 6),
		token.CreateLiteralToken(token.NUMBER, 2.0, "2", 2, 1),
		token.CreateToken(token.EOF, 2, 2),
	})
}

func TestScanDollarIdentifier(t *testing.T) {
	scanOK(t, "$1", []token.Token{
		token.CreateLiteralToken(token.IDENTIFIER, "$1", "$1", 1, 1),
		token.CreateToken(token.EOF, 1, 3),
	})
}

func TestScanMissingOperandError(t *testing.T) {
	_, err := New("+1").Scan()
	if err == nil {
		t.Fatal("expected an error for a leading binary operator")
	}
	lexErr, ok := err.(LexError)
	if !ok {
		t.Fatalf("error = %T, want LexError", err)
	}
	if lexErr.Message != "missing expected operand" {
		t.Errorf("Message = %q, want %q", lexErr.Message, "missing expected operand")
	}
}

func TestScanUnterminatedStringStart(t *testing.T) {
	_, err := New(`"`).Scan()
	if err == nil {
		t.Fatal("expected an error for a single quote with nothing after it")
	}
}

func TestScanNumberQuirks(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"007", 7},
		{"1.5", 1.5},
	}
	for _, tt := range tests {
		toks, err := New(tt.text).Scan()
		if err != nil {
			t.Fatalf("Scan(%q) returned error: %v", tt.text, err)
		}
		if got := toks[0].Literal.(float64); got != tt.want {
			t.Errorf("Scan(%q) literal = %v, want %v", tt.text, got, tt.want)
		}
	}
}
