// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ast

import (
	"github.com/ezrec/asm8/token"
)

// Severity of a diagnostic.
type Severity int

//go:generate go tool stringer -linecomment -type=Severity
const (
	SEVERITY_ERROR   = Severity(0) // error
	SEVERITY_WARNING = Severity(1) // warning
)

// Diagnostic is an error or warning attached to a span of tokens.
type Diagnostic struct {
	Severity Severity
	Err      error
	Tokens   []token.Token
}

// Error makes an error diagnostic.
func Error(err error, tokens ...token.Token) Diagnostic {
	return Diagnostic{Severity: SEVERITY_ERROR, Err: err, Tokens: tokens}
}

// Warning makes a warning diagnostic.
func Warning(err error, tokens ...token.Token) Diagnostic {
	return Diagnostic{Severity: SEVERITY_WARNING, Err: err, Tokens: tokens}
}

// Loc is the location of the first token of the span.
func (d Diagnostic) Loc() (loc token.Location) {
	if len(d.Tokens) > 0 {
		loc = d.Tokens[0].Loc
	}
	return
}

// Text is the source text of the span.
func (d Diagnostic) Text() string {
	return token.Join(token.Trim(d.Tokens))
}

func (d Diagnostic) Error() string {
	if len(d.Tokens) == 0 {
		return f("%v: %v", d.Severity, d.Err)
	}
	return f("%v: %v: %v '%v'", d.Loc(), d.Severity, d.Err, d.Text())
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}
