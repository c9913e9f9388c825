// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package preproc

import (
	"log"

	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/match"
	"github.com/ezrec/asm8/token"
)

var equateFull = match.Spaced(match.FoldLit(".equ"), match.Word, match.Lit(","), match.Constant)

// Equates collects `.equ NAME, CONST` lines, then replaces every later use
// of NAME with a fresh copy of the constant located at the use. Predefined
// values may be redefined once by the source.
func (pp *Preprocessor) Equates(r *Result) {
	values := make(map[string]string, len(pp.Defines))
	for name, value := range pp.Defines {
		values[name] = value
	}
	defined := map[string]bool{}

	kept := make([]token.Token, 0, len(r.Tokens))
	rest := r.Tokens
	for len(rest) > 0 {
		var line, newline []token.Token
		line, newline, rest = nextLine(rest)
		if !startsWith(line, ".equ") {
			kept = append(kept, line...)
			kept = append(kept, newline...)
			continue
		}

		kept = append(kept, newline...)
		result, ok := equateFull.MatchExact(line)
		if !ok {
			r.report(ast.Error(ast.ErrEquateSyntax, line...))
			continue
		}
		name := result.Tokens[1].Text
		r.record(ast.PRE_EQUATE, name, line)
		if defined[name] {
			r.report(ast.Error(ast.ErrEquateDuplicate, line...))
			continue
		}
		defined[name] = true
		values[name] = result.Tokens[3].Text
		if pp.Verbose {
			log.Printf("preproc: .equ %v = %v", name, values[name])
		}
	}

	out := make([]token.Token, 0, len(kept))
	for n, tok := range kept {
		value, ok := values[tok.Text]
		if !ok || tok.Kind != token.KIND_WORD || parameterRef(kept, n) {
			out = append(out, tok)
			continue
		}
		subst, err := pp.pseudo(value, tok.Loc)
		if err != nil {
			r.report(ast.Error(ast.ErrSubstitutionInvalid, tok))
			out = append(out, tok)
			continue
		}
		out = append(out, subst...)
	}

	r.Tokens = out
}

// parameterRef returns true if the word at n is a `\name` macro parameter.
func parameterRef(tokens []token.Token, n int) bool {
	return n > 0 && tokens[n-1].Kind == token.KIND_SYMBOL && tokens[n-1].Text == `\`
}
