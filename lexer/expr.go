// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package lexer

import (
	"slices"
	"sync"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/asm8/match"
	"github.com/ezrec/asm8/token"
)

// Operators accepted inside a bracketed expression.
var Operators = []string{"+", "-", "*", "/", "%", "<<", ">>", "&", "|", "^"}

// starlark spells integer division differently.
var starlarkOp = map[string]string{
	"/": "//",
}

// expression is the evaluator of a reduced `(a op b)` token.
type expression struct {
	lex   *token.Syntax
	left  token.Token
	op    string
	right token.Token

	once  sync.Once
	value int64
	err   error
}

// Evaluate computes the expression once, with Starlark integer semantics.
func (e *expression) Evaluate() (value int64, err error) {
	e.once.Do(func() {
		e.value, e.err = e.evaluate()
	})
	return e.value, e.err
}

func (e *expression) evaluate() (value int64, err error) {
	a, err := e.left.ValueIn(e.lex)
	if err != nil {
		return
	}
	b, err := e.right.ValueIn(e.lex)
	if err != nil {
		return
	}

	op, ok := starlarkOp[e.op]
	if !ok {
		op = e.op
	}

	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"a": starlark.MakeInt64(a),
		"b": starlark.MakeInt64(b),
	}
	prog := "rc = a " + op + " b\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = &ErrExpression{Text: e.String(), Err: err}
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = &ErrExpression{Text: e.String()}
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = &ErrExpression{Text: e.String()}
		return
	}

	return
}

func (e *expression) String() string {
	return "(" + e.left.Text + e.op + e.right.Text + ")"
}

// reducers are the bracketed expression patterns, one per operator.
var reducers = func() (patterns []*match.Pattern) {
	for _, op := range Operators {
		patterns = append(patterns, match.Spaced(match.Lit("("), match.Constant, match.Lit(op), match.Constant, match.Lit(")")))
	}
	return
}()

// Reduce collapses bracketed binary expressions over constants into single
// expression tokens, repeating until no pattern matches. Nested expressions
// reduce from the inside out.
func Reduce(lex *token.Syntax, tokens []token.Token) []token.Token {
	if lex == nil {
		lex = &token.Default
	}

	for {
		var best match.Result
		var bestOp string
		found := false
		for n, pattern := range reducers {
			result, ok := pattern.MatchAnywhere(tokens)
			if !ok {
				continue
			}
			if !found || result.Start < best.Start {
				best = result
				bestOp = Operators[n]
				found = true
			}
		}
		if !found {
			return tokens
		}

		span := tokens[best.Start:best.End()]
		first := span[0]
		last := span[len(span)-1]
		loc := first.Loc
		if last.Loc.Line == loc.Line && last.Loc.End > loc.End {
			loc.End = last.Loc.End
		}
		reduced := token.Token{
			Kind: token.KIND_EXPRESSION,
			Text: token.Join(span),
			Loc:  loc,
			Id:   first.Id,
			Expr: &expression{
				lex:   lex,
				left:  best.Tokens[1],
				op:    bestOp,
				right: best.Tokens[3],
			},
		}

		tokens = slices.Replace(slices.Clone(tokens), best.Start, best.End(), reduced)
	}
}
