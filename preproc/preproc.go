// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package preproc rewrites a token stream before parsing: it splices
// imports, strips comments, substitutes .equ constants and expands macros.
//
// Every pass records what it consumed as an ast.Preresolved entry, and
// reports problems as diagnostics rather than stopping.
package preproc

import (
	"log"
	"slices"

	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/lexer"
	"github.com/ezrec/asm8/token"
)

// Resolver finds the tree of an already compiled file by name.
type Resolver interface {
	Lookup(name string) (tree *ast.Tree, ok bool)
}

// Result of pre-processing one file.
type Result struct {
	File        string
	Tokens      []token.Token
	Preresolved []ast.Preresolved
	Diagnostics []ast.Diagnostic
	Imports     []*ast.Tree // Imported trees, in import order.
}

func (r *Result) report(diags ...ast.Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, diags...)
}

func (r *Result) record(kind ast.PreKind, name string, tokens []token.Token) {
	r.Preresolved = append(r.Preresolved, ast.Preresolved{Kind: kind, Name: name, Tokens: slices.Clone(tokens)})
}

// Preprocessor holds the configuration of the passes.
type Preprocessor struct {
	Verbose bool
	Syntax  *token.Syntax
	Context *token.Context
	Files   Resolver          // Import lookup; nil resolves nothing.
	Defines map[string]string // Predefined .equ values.
}

func (pp *Preprocessor) syntax() *token.Syntax {
	if pp.Syntax == nil {
		return &token.Default
	}
	return pp.Syntax
}

func (pp *Preprocessor) context() *token.Context {
	if pp.Context == nil {
		pp.Context = &token.Context{}
	}
	return pp.Context
}

// Run applies every pass in order, then reduces expressions formed by the
// substitutions.
func (pp *Preprocessor) Run(file string, tokens []token.Token) (r *Result) {
	r = &Result{File: file, Tokens: tokens}

	pp.Imports(r)
	pp.Comments(r)
	pp.Equates(r)
	pp.Macros(r)

	r.Tokens = lexer.Reduce(pp.syntax(), r.Tokens)

	if pp.Verbose {
		log.Printf("preproc: %v: %d tokens, %d pre-resolved, %d diagnostics", file, len(r.Tokens), len(r.Preresolved), len(r.Diagnostics))
	}

	return
}

// pseudo tokenizes substituted text at a source location.
func (pp *Preprocessor) pseudo(text string, at token.Location) (tokens []token.Token, err error) {
	return lexer.PseudoTokenize(pp.context(), pp.syntax(), text, at)
}

// nextLine splits tokens into a line, its terminating newline (if any) and
// the rest.
func nextLine(tokens []token.Token) (line []token.Token, newline []token.Token, rest []token.Token) {
	line, rest = token.Line(tokens)
	if len(rest) > 0 {
		newline = rest[:1]
		rest = rest[1:]
	}
	return
}

// lead returns the index of the first non-whitespace token, or -1.
func lead(line []token.Token) int {
	for n, tok := range line {
		if !tok.Kind.Space() {
			return n
		}
	}
	return -1
}

// startsWith returns true if the first non-whitespace token is the word.
func startsWith(line []token.Token, word string) bool {
	n := lead(line)
	return n >= 0 && line[n].Kind == token.KIND_WORD && line[n].Is(word)
}
