package lexer

import "fmt"

// LexError is raised for malformed input the tokenizer itself can reject
// without any knowledge of grammar: a digit where no number is legal, an
// unterminated string start, a parenthesis that isn't legal here, an
// operator character with no operand before it, or an operator lexeme the
// table doesn't recognize.
type LexError struct {
	Line    int
	Column  int
	Message string
}

func CreateLexError(line, column int, message string) LexError {
	return LexError{
		Line:    line,
		Column:  column,
		Message: message,
	}
}

func (e LexError) Error() string {
	return fmt.Sprintf("💥 snexpr lex error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}
