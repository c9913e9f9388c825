// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package match is a declarative pattern matcher over token streams.
//
// A Pattern is an ordered list of Components, each accepting exactly one
// token. Patterns are stateless and shared: the same machinery recognizes
// addressing modes, directives, macro invocations and imports. A failed match
// is simply false; callers decide whether that is an error.
package match

import (
	"github.com/ezrec/asm8/token"
)

// Component accepts or rejects a single token.
type Component interface {
	Accept(tok token.Token) bool
}

// Pattern is an ordered list of components.
type Pattern struct {
	Components []Component
	SkipSpace  bool // Whitespace between components is ignored.
}

// Spaced returns a pattern that skips whitespace between components.
func Spaced(components ...Component) *Pattern {
	return &Pattern{Components: components, SkipSpace: true}
}

// Tight returns a pattern whose components must be adjacent.
func Tight(components ...Component) *Pattern {
	return &Pattern{Components: components}
}

// Result of a successful match.
type Result struct {
	Start  int           // Index of the first consumed input token.
	Length int           // Number of input tokens consumed, including skipped whitespace.
	Tokens []token.Token // Matched token for each component.
}

// End is the index after the last consumed input token.
func (r Result) End() int {
	return r.Start + r.Length
}

// skip advances over whitespace when the pattern permits it.
func (p *Pattern) skip(tokens []token.Token, n int) int {
	if !p.SkipSpace {
		return n
	}
	for n < len(tokens) && tokens[n].Kind.Space() {
		n++
	}
	return n
}

// MatchStart matches the pattern against the beginning of tokens.
func (p *Pattern) MatchStart(tokens []token.Token) (result Result, ok bool) {
	matched := make([]token.Token, 0, len(p.Components))

	n := 0
	for _, comp := range p.Components {
		n = p.skip(tokens, n)
		if n >= len(tokens) {
			return
		}
		if !comp.Accept(tokens[n]) {
			return
		}
		matched = append(matched, tokens[n])
		n++
	}

	result = Result{Start: 0, Length: n, Tokens: matched}
	ok = true
	return
}

// MatchExact matches the pattern against the whole of tokens. Trailing
// whitespace is permitted when the pattern skips whitespace.
func (p *Pattern) MatchExact(tokens []token.Token) (result Result, ok bool) {
	result, ok = p.MatchStart(tokens)
	if !ok {
		return
	}

	if p.skip(tokens, result.Length) != len(tokens) {
		result = Result{}
		ok = false
	}

	return
}

// MatchAnywhere finds the first position in tokens where the pattern matches.
// A pattern that skips whitespace never starts a match on whitespace.
func (p *Pattern) MatchAnywhere(tokens []token.Token) (result Result, ok bool) {
	for start := range tokens {
		if p.SkipSpace && len(p.Components) > 0 && tokens[start].Kind.Space() {
			continue
		}
		result, ok = p.MatchStart(tokens[start:])
		if ok {
			result.Start = start
			return
		}
	}
	return
}

// MatchAll returns every non-overlapping match in tokens, in order.
func (p *Pattern) MatchAll(tokens []token.Token) (results []Result) {
	start := 0
	for start < len(tokens) {
		result, ok := p.MatchAnywhere(tokens[start:])
		if !ok {
			break
		}
		result.Start += start
		results = append(results, result)
		start = result.End()
		if result.Length == 0 {
			start++
		}
	}
	return
}
