package token

import (
	"github.com/ezrec/asm8/translate"
)

var f = translate.From

// ErrNotConstant is returned when a token does not evaluate to a number.
type ErrNotConstant string

func (err ErrNotConstant) Error() string {
	return f("'%v' is not a constant", string(err))
}

// ErrNotString is returned when a token is not a quoted literal.
type ErrNotString string

func (err ErrNotString) Error() string {
	return f("'%v' is not a string", string(err))
}
