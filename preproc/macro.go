// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package preproc

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/match"
	"github.com/ezrec/asm8/token"
)

// MACRO_DEPTH_LIMIT is the deepest a macro may invoke other macros.
const MACRO_DEPTH_LIMIT = 16

// Macro is a macro definition.
type Macro struct {
	Name   string
	Params []string
	Body   []token.Token // Body lines, newlines included.
	Tokens []token.Token // The whole definition.
}

var macroHeader = match.Spaced(match.FoldLit(".macro"), match.Word)

// Macros collects `.macro NAME p1, p2` ... `.endm` definitions and expands
// every later invocation in place. `\param` in a body is replaced by the
// argument text and `\@` by a number unique to the expansion. Expanded text
// is scanned again for invocations.
func (pp *Preprocessor) Macros(r *Result) {
	macros := map[string]*Macro{}

	var out []token.Token
	rest := r.Tokens
	for len(rest) > 0 {
		var line, newline []token.Token
		line, newline, rest = nextLine(rest)

		switch {
		case startsWith(line, ".macro"):
			var macro *Macro
			macro, rest = pp.define(r, line, newline, rest)
			if macro == nil {
				out = append(out, newline...)
				continue
			}
			if _, dup := macros[macro.Name]; dup {
				r.report(ast.Error(ast.ErrMacroDuplicate, line...))
				out = append(out, newline...)
				continue
			}
			if pp.Verbose {
				log.Printf("preproc: .macro %v %v", macro.Name, strings.Join(macro.Params, ", "))
			}
			macros[macro.Name] = macro
			out = append(out, newline...)
		case startsWith(line, ".endm"):
			r.report(ast.Error(ast.ErrMacroLonelyEndm, line...))
			out = append(out, newline...)
		default:
			out = append(out, pp.expand(r, macros, line, 0)...)
			out = append(out, newline...)
		}
	}

	r.Tokens = out
}

// define reads a definition whose header is line, consuming its body and
// .endm from rest. On error the definition tokens are dropped and macro is
// nil.
func (pp *Preprocessor) define(r *Result, line, newline, rest []token.Token) (macro *Macro, remain []token.Token) {
	all := append(append([]token.Token{}, line...), newline...)

	header, ok := macroHeader.MatchStart(line)
	var params []string
	if ok {
		params, ok = pp.parameters(r, line[header.End():])
	}

	var body []token.Token
	nested := false
	closed := false
	remain = rest
	for len(remain) > 0 {
		var bodyLine, bodyNewline []token.Token
		bodyLine, bodyNewline, remain = nextLine(remain)
		all = append(all, bodyLine...)
		all = append(all, bodyNewline...)
		if startsWith(bodyLine, ".endm") {
			closed = true
			break
		}
		if startsWith(bodyLine, ".macro") {
			r.report(ast.Error(ast.ErrMacroNesting, bodyLine...))
			nested = true
		}
		body = append(body, bodyLine...)
		body = append(body, bodyNewline...)
	}

	switch {
	case !closed:
		r.report(ast.Error(ast.ErrMacroLonely, line...))
		return
	case !ok:
		r.report(ast.Error(ast.ErrMacroSyntax, line...))
		return
	case nested:
		return
	}

	macro = &Macro{
		Name:   header.Tokens[1].Text,
		Params: params,
		Body:   body,
		Tokens: all,
	}
	r.record(ast.PRE_MACRO, macro.Name, all)

	return
}

// parameters parses `p1, p2, ...`. A trailing comma is a warning.
func (pp *Preprocessor) parameters(r *Result, tokens []token.Token) (params []string, ok bool) {
	ok = true
	if len(token.Trim(tokens)) == 0 {
		return
	}

	parts := split(tokens)
	for n, arg := range parts {
		arg = token.Trim(arg)
		if len(arg) == 0 && n > 0 && n == len(parts)-1 {
			r.report(ast.Warning(ast.ErrMacroTrailingComma, tokens...))
			break
		}
		if len(arg) != 1 || (arg[0].Kind != token.KIND_WORD && arg[0].Kind != token.KIND_REGISTER) {
			ok = false
			return
		}
		params = append(params, arg[0].Text)
	}
	return
}

// split divides tokens at commas outside of parentheses.
func split(tokens []token.Token) (parts [][]token.Token) {
	depth := 0
	start := 0
	for n, tok := range tokens {
		if tok.Kind != token.KIND_SYMBOL {
			continue
		}
		switch tok.Text {
		case "(":
			depth++
		case ")":
			depth--
		case ",":
			if depth == 0 {
				parts = append(parts, tokens[start:n])
				start = n + 1
			}
		}
	}
	parts = append(parts, tokens[start:])
	return
}

// invocation finds the macro invoked by a line: the first word, after an
// optional `label:`.
func invocation(macros map[string]*Macro, line []token.Token) (macro *Macro, at int) {
	at = lead(line)
	if at < 0 {
		return
	}
	if line[at].Kind == token.KIND_WORD && at+1 < len(line) && line[at+1].Text == ":" {
		at += 2
		for at < len(line) && line[at].Kind.Space() {
			at++
		}
		if at >= len(line) {
			return
		}
	}
	if line[at].Kind != token.KIND_WORD {
		return
	}
	macro = macros[line[at].Text]
	return
}

// expand replaces a macro invocation in line with the macro body.
func (pp *Preprocessor) expand(r *Result, macros map[string]*Macro, line []token.Token, depth int) (out []token.Token) {
	macro, at := invocation(macros, line)
	if macro == nil {
		return line
	}

	call := line[at:]
	if depth >= MACRO_DEPTH_LIMIT {
		r.report(ast.Error(ast.ErrMacroDepth, call...))
		return line[:at]
	}

	var args [][]token.Token
	if len(token.Trim(call[1:])) > 0 {
		for _, arg := range split(call[1:]) {
			args = append(args, token.Trim(arg))
		}
	}
	if len(args) != len(macro.Params) {
		r.report(ast.Error(ast.ErrMacroArity, call...))
		return line[:at]
	}

	text, err := pp.substitute(macro, args, pp.context().NextExpansion())
	if err != nil {
		r.report(ast.Error(err, call...))
		return line[:at]
	}

	body, err := pp.pseudo(text, call[0].Loc)
	if err != nil {
		r.report(ast.Error(ast.ErrSubstitutionInvalid, call...))
		return line[:at]
	}
	r.record(ast.PRE_EXPANSION, macro.Name, call)

	out = append(out, line[:at]...)
	for len(body) > 0 {
		var bodyLine, bodyNewline []token.Token
		bodyLine, bodyNewline, body = nextLine(body)
		out = append(out, pp.expand(r, macros, bodyLine, depth+1)...)
		out = append(out, bodyNewline...)
	}

	return
}

// substitute renders the body text with parameters replaced.
func (pp *Preprocessor) substitute(macro *Macro, args [][]token.Token, serial int) (text string, err error) {
	var sb strings.Builder
	body := macro.Body
	for n := 0; n < len(body); n++ {
		tok := body[n]
		if tok.Kind != token.KIND_SYMBOL || tok.Text != `\` || n+1 >= len(body) {
			sb.WriteString(tok.Text)
			continue
		}
		next := body[n+1]
		switch {
		case next.Text == "@":
			fmt.Fprintf(&sb, "_%d", serial)
		case next.Kind == token.KIND_WORD || next.Kind == token.KIND_REGISTER:
			index := -1
			for p, param := range macro.Params {
				if param == next.Text {
					index = p
				}
			}
			if index < 0 {
				err = ast.ErrMacroParameter
				return
			}
			sb.WriteString(token.Join(args[index]))
		default:
			sb.WriteString(tok.Text)
			continue
		}
		n++
	}
	text = sb.String()
	return
}
