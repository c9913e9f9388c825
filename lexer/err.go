package lexer

import (
	"github.com/ezrec/asm8/token"
	"github.com/ezrec/asm8/translate"
)

var f = translate.From

// ErrLex is returned when no lexical rule accepts the remaining input.
type ErrLex struct {
	Loc  token.Location
	Text string
}

func (err *ErrLex) Error() string {
	return f("%v: unexpected character %q", err.Loc, err.Text)
}

// ErrExpression is returned when a bracketed expression cannot be evaluated.
type ErrExpression struct {
	Text string
	Err  error
}

func (err *ErrExpression) Error() string {
	if err.Err == nil {
		return f("%v is not a valid expression", err.Text)
	}
	return f("%v is not a valid expression: %v", err.Text, err.Err)
}

func (err *ErrExpression) Unwrap() error {
	return err.Err
}
