// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package preproc

import (
	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/token"
)

// Comments removes everything from the comment marker to the end of the
// line. Newlines are kept.
func (pp *Preprocessor) Comments(r *Result) {
	marker := pp.syntax().Comment
	if len(marker) == 0 {
		return
	}

	out := make([]token.Token, 0, len(r.Tokens))
	rest := r.Tokens
	for len(rest) > 0 {
		var line, newline []token.Token
		line, newline, rest = nextLine(rest)
		for n, tok := range line {
			if tok.Kind == token.KIND_SYMBOL && tok.Text == marker {
				r.record(ast.PRE_COMMENT, "", line[n:])
				line = line[:n]
				break
			}
		}
		out = append(out, line...)
		out = append(out, newline...)
	}

	r.Tokens = out
}
