// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package lexer turns assembly source text into tokens.
package lexer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ezrec/asm8/token"
)

// rule is a single lexical rule, tried in priority order.
type rule struct {
	kind token.Kind
	re   *regexp.Regexp
	// signed rules only apply where a sign cannot be a binary operator.
	signed bool
	// number rules must not run into identifier characters.
	number bool
}

// scanner holds the compiled rules of a syntax.
type scanner struct {
	syntax *token.Syntax
	rules  []rule
}

var (
	reWhitespace = regexp.MustCompile(`^[ \t\r\f\v]+`)
	reNewline    = regexp.MustCompile(`^\n`)
	reDec        = regexp.MustCompile(`^[-+][0-9][0-9_]*`)
	reUDec       = regexp.MustCompile(`^[0-9][0-9_]*`)
	reChar       = regexp.MustCompile(`^'(\\.|[^'\\\n])'`)
	reString     = regexp.MustCompile(`^"(\\.|[^"\\\n])*"`)
	reWord       = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*`)
	reIdentChar  = regexp.MustCompile(`^[A-Za-z0-9_]`)
)

// prefixed compiles a radix rule for a set of prefixes.
func prefixed(prefixes []string, digits string) *regexp.Regexp {
	if len(prefixes) == 0 {
		return nil
	}
	quoted := make([]string, len(prefixes))
	for n, prefix := range prefixes {
		quoted[n] = regexp.QuoteMeta(prefix)
	}
	return regexp.MustCompile(`^(?i:` + strings.Join(quoted, "|") + `)` + digits)
}

func newScanner(syntax *token.Syntax) (sc *scanner) {
	sc = &scanner{syntax: syntax}

	sc.rules = append(sc.rules,
		rule{kind: token.KIND_WHITESPACE, re: reWhitespace},
		rule{kind: token.KIND_NEWLINE, re: reNewline},
	)
	if re := prefixed(syntax.BinPrefix, `[01][01_]*`); re != nil {
		sc.rules = append(sc.rules, rule{kind: token.KIND_BIN, re: re, number: true})
	}
	if re := prefixed(syntax.HexPrefix, `[0-9A-Fa-f][0-9A-Fa-f_]*`); re != nil {
		sc.rules = append(sc.rules, rule{kind: token.KIND_HEX, re: re, number: true})
	}
	sc.rules = append(sc.rules,
		rule{kind: token.KIND_DEC, re: reDec, signed: true, number: true},
		rule{kind: token.KIND_UDEC, re: reUDec, number: true},
		rule{kind: token.KIND_CHAR, re: reChar},
		rule{kind: token.KIND_STRING, re: reString},
		rule{kind: token.KIND_WORD, re: reWord},
	)

	return
}

// signAllowed is true when a leading +/- belongs to a constant rather than
// being a binary operator following an operand.
func signAllowed(tokens []token.Token) bool {
	for n := len(tokens) - 1; n >= 0; n-- {
		tok := tokens[n]
		switch {
		case tok.Kind == token.KIND_WHITESPACE:
			continue
		case tok.Kind.Constant(), tok.Kind == token.KIND_WORD, tok.Kind == token.KIND_REGISTER:
			return false
		case tok.Kind == token.KIND_SYMBOL && tok.Text == ")":
			return false
		default:
			return true
		}
	}
	return true
}

// symbol matches a multi-character or single-character symbol.
func (sc *scanner) symbol(text string) (length int) {
	for _, sym := range sc.syntax.MultiSymbols {
		if strings.HasPrefix(text, sym) {
			return len(sym)
		}
	}
	c := text[0]
	if c > ' ' && c < 0x7f && !reIdentChar.MatchString(text[:1]) {
		return 1
	}
	return 0
}

// Tokenize scans text into tokens. On text that no rule accepts, it returns
// the tokens scanned so far with an ErrLex.
func Tokenize(ctx *token.Context, syntax *token.Syntax, text string, file string) (tokens []token.Token, err error) {
	if syntax == nil {
		syntax = &token.Default
	}
	tokens, err = scan(syntax, text, token.Location{File: file, Line: 1, Column: 1}, nil)
	if err != nil {
		return
	}
	tokens = Reduce(syntax, tokens)
	return
}

// PseudoTokenize scans a fragment being spliced into the stream. The tokens
// take synthetic ids from ctx and carry the location at, so diagnostics
// still point at the real source.
func PseudoTokenize(ctx *token.Context, syntax *token.Syntax, text string, at token.Location) (tokens []token.Token, err error) {
	if syntax == nil {
		syntax = &token.Default
	}
	tokens, err = scan(syntax, text, at, ctx.NextSynthetic)
	if err != nil {
		return
	}
	tokens = Reduce(syntax, tokens)
	return
}

// scan runs the rules over text. Without nextId, token ids are stream
// positions and locations are tracked; with it, every token is pinned to the
// start location.
func scan(syntax *token.Syntax, text string, start token.Location, nextId func() int) (tokens []token.Token, err error) {
	sc := newScanner(syntax)

	line := start.Line
	column := start.Column
	comment := false
	for len(text) > 0 {
		kind := token.KIND_SYMBOL
		length := 0

		for _, r := range sc.rules {
			if r.signed && !signAllowed(tokens) {
				continue
			}
			loc := r.re.FindStringIndex(text)
			if loc == nil {
				continue
			}
			if r.number && loc[1] < len(text) && reIdentChar.MatchString(text[loc[1]:loc[1]+1]) {
				continue
			}
			kind = r.kind
			length = loc[1]
			break
		}

		if length == 0 {
			length = sc.symbol(text)
			kind = token.KIND_SYMBOL
		}

		if length == 0 && comment {
			// Comment text is free form; it is stripped before parsing.
			_, length = utf8.DecodeRuneInString(text)
		}

		if length == 0 {
			err = &ErrLex{Loc: token.Location{File: start.File, Line: line, Column: column, End: column + 1}, Text: firstRune(text)}
			return
		}

		lexeme := text[:length]
		if kind == token.KIND_WORD {
			if _, ok := syntax.Register(lexeme); ok {
				kind = token.KIND_REGISTER
			}
		}

		loc := token.Location{File: start.File, Line: line, Column: column, End: column + length}
		id := len(tokens)
		if nextId != nil {
			loc = start
			id = nextId()
		}
		tokens = append(tokens, token.Token{
			Kind: kind,
			Text: lexeme,
			Loc:  loc,
			Id:   id,
		})

		if kind == token.KIND_SYMBOL && lexeme == syntax.Comment {
			comment = true
		}

		if kind == token.KIND_NEWLINE {
			comment = false
			line++
			column = 1
		} else {
			column += length
		}
		text = text[length:]
	}

	return
}

func firstRune(text string) string {
	for _, r := range text {
		return string(r)
	}
	return ""
}
