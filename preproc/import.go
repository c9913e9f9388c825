// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package preproc

import (
	"log"

	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/match"
	"github.com/ezrec/asm8/token"
)

var (
	importStart = match.Tight(match.Lit("#"), match.FoldLit("import"))
	importFull  = match.Spaced(match.Lit("#"), match.FoldLit("import"), match.Any(token.KIND_STRING))
)

// Imports splices `#import "name"` lines. The imported tree must be free of
// errors and already assembled; its sections are appended after the
// sections of the importing file by the parser. The import tokens are
// removed whether or not the import succeeds.
func (pp *Preprocessor) Imports(r *Result) {
	var out []token.Token

	rest := r.Tokens
	for len(rest) > 0 {
		var line, newline []token.Token
		line, newline, rest = nextLine(rest)

		for {
			found, ok := importStart.MatchAnywhere(line)
			if !ok || pp.commented(line[:found.Start]) {
				break
			}
			at := line[found.Start:]
			name := ""
			full, ok := importFull.MatchStart(at)
			if ok {
				trailing := token.Trim(at[full.End():])
				if len(trailing) == 0 || pp.commented(trailing[:1]) {
					name, _ = full.Tokens[2].Unquote()
				}
			}

			consumed := at
			r.record(ast.PRE_IMPORT, name, consumed)
			line = line[:found.Start]

			if len(name) == 0 {
				r.report(ast.Error(ast.ErrImportSyntax, consumed...))
				break
			}

			tree, err := pp.lookup(name)
			if err != nil {
				r.report(ast.Error(err, consumed...))
				break
			}

			if pp.Verbose {
				log.Printf("preproc: import %v", name)
			}
			r.Imports = append(r.Imports, tree)
		}

		out = append(out, line...)
		out = append(out, newline...)
	}

	r.Tokens = out
}

// lookup gates an import on the state of its tree.
func (pp *Preprocessor) lookup(name string) (tree *ast.Tree, err error) {
	var ok bool
	if pp.Files != nil {
		tree, ok = pp.Files.Lookup(name)
	}
	switch {
	case !ok || tree == nil:
		err = ast.ErrImportMissing
	case len(tree.Errors()) > 0:
		err = ast.ErrImportBroken
	case !tree.Assembled:
		err = ast.ErrImportUnbuilt
	}
	if err != nil {
		tree = nil
	}
	return
}

// commented returns true if the tokens contain the comment marker.
func (pp *Preprocessor) commented(tokens []token.Token) bool {
	marker := pp.syntax().Comment
	if len(marker) == 0 {
		return false
	}
	for _, tok := range tokens {
		if tok.Kind == token.KIND_SYMBOL && tok.Text == marker {
			return true
		}
	}
	return false
}
