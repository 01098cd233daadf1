package interpreter

import "fmt"

// EvalError is raised by the evaluator itself: division by zero, an
// operand that isn't the type an operator strictly requires, or a host
// callback that failed. Unlike LexError and SyntaxError, an EvalError
// carries no source position — by the time a tree is being evaluated, the
// nodes it's built from no longer remember where their tokens came from.
type EvalError struct {
	Message string
}

func CreateEvalError(message string) EvalError {
	return EvalError{Message: message}
}

func (e EvalError) Error() string {
	return fmt.Sprintf("💥 snexpr eval error: %s", e.Message)
}
