// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package parser builds the syntax tree of a pre-processed token stream and
// links label references.
package parser

import (
	"log"
	"strings"

	"github.com/ezrec/asm8/ast"
	"github.com/ezrec/asm8/isa"
	"github.com/ezrec/asm8/match"
	"github.com/ezrec/asm8/preproc"
	"github.com/ezrec/asm8/token"
)

// ERROR_LIMIT is the number of errors after which a file is abandoned.
const ERROR_LIMIT = 10

var (
	labelPattern  = match.Tight(match.Word, match.Lit(":"))
	globalPattern = match.Spaced(match.Any(token.KIND_WORD), match.Word)
	setPCPattern  = match.Spaced(match.Lit("*"), match.Lit("="), match.Constant)
	orgPattern    = match.Spaced(match.FoldLit(".org"), match.Constant)
)

// Parser builds syntax trees for an architecture.
type Parser struct {
	Verbose bool
	Arch    *isa.Architecture
}

// state is the per-file parse state.
type state struct {
	*Parser
	tree   *ast.Tree
	nodes  []ast.Node
	parent ast.LabelId // Most recent non-sub label.
	errors int
	done   bool
}

// Parse is Parser.Parse for an architecture.
func Parse(arch *isa.Architecture, r *preproc.Result) *ast.Tree {
	ps := &Parser{Arch: arch}
	return ps.Parse(r)
}

// Parse builds the tree of a pre-processed file. Problems are reported in
// the tree diagnostics; a tree is always returned.
func (ps *Parser) Parse(r *preproc.Result) (tree *ast.Tree) {
	tree = ast.NewTree(r.File)
	tree.Preresolved = r.Preresolved
	tree.Report(r.Diagnostics...)

	st := &state{Parser: ps, tree: tree, parent: ast.NO_LABEL}

	rest := r.Tokens
	for len(rest) > 0 && !st.done {
		var line []token.Token
		line, rest = token.Line(rest)
		if len(rest) > 0 {
			rest = rest[1:]
		}
		st.line(line)
	}

	st.bundle()

	for _, imported := range r.Imports {
		tree.Graft(imported)
	}

	Link(ps.Arch, tree)

	if ps.Verbose {
		log.Printf("parser: %v: %d sections, %d labels, %d diagnostics", tree.File, len(tree.Root.Nodes), tree.Labels.Len(), len(tree.Diagnostics))
	}

	return
}

func (st *state) report(diag ast.Diagnostic) {
	if st.done {
		return
	}
	st.tree.Report(diag)
	if diag.Severity != ast.SEVERITY_ERROR {
		return
	}
	st.errors++
	if st.errors >= ERROR_LIMIT {
		st.tree.Report(ast.Error(ast.ErrTooManyErrors, diag.Tokens...))
		st.done = true
	}
}

func (st *state) add(node ast.Node) {
	st.nodes = append(st.nodes, node)
}

// line parses the labels and the statement of one line.
func (st *state) line(line []token.Token) {
	for {
		line = token.Trim(line)
		if len(line) == 0 {
			return
		}
		result, ok := labelPattern.MatchStart(line)
		if !ok {
			break
		}
		st.label(line[:result.End()], result.Tokens[0])
		line = line[result.End():]
	}

	st.statement(line)
}

// label declares a label. Sub-labels are scoped to the open parent.
func (st *state) label(tokens []token.Token, name token.Token) {
	label := ast.Label{Name: name.Text, Parent: ast.NO_LABEL, Token: name}
	sub := st.Arch.Syntax.IsSubLabel(name.Text)
	if sub {
		if st.parent == ast.NO_LABEL {
			st.report(ast.Error(ast.ErrSubLabelOrphan, tokens...))
			return
		}
		label.Parent = st.parent
	}

	id := st.tree.Labels.Add(label)
	if !sub {
		st.parent = id
	}
	st.add(ast.NewLabel(tokens, id))
}

// statement parses everything but labels.
func (st *state) statement(line []token.Token) {
	head := line[0]
	args := line[1:]

	if head.Kind == token.KIND_SYMBOL && head.Text == "*" {
		result, ok := setPCPattern.MatchExact(line)
		if !ok {
			st.report(ast.Error(ast.ErrSetPCSyntax, line...))
			return
		}
		st.add(ast.NewSetPC(line, result.Tokens[2]))
		return
	}

	if head.Kind != token.KIND_WORD {
		st.report(ast.Error(ast.ErrUnexpectedToken, line...))
		return
	}

	if section, ok := ast.SectionByDirective(head.Text); ok {
		if len(token.Trim(args)) != 0 {
			st.report(ast.Error(ast.ErrUnexpectedToken, args...))
			return
		}
		st.add(ast.NewSectionStart(line, section))
		return
	}

	if head.Is(".global") || head.Is(".globl") {
		result, ok := globalPattern.MatchExact(line)
		if !ok {
			st.report(ast.Error(ast.ErrGlobalSyntax, line...))
			return
		}
		st.add(ast.NewGlobal(line, result.Tokens[1]))
		return
	}

	if head.Is(".org") {
		result, ok := orgPattern.MatchExact(line)
		if !ok {
			st.report(ast.Error(ast.ErrSetPCSyntax, line...))
			return
		}
		st.add(ast.NewSetPC(line, result.Tokens[1]))
		return
	}

	if dir, ok := st.Arch.Directive(head.Text); ok {
		st.data(line, dir, args)
		return
	}

	if strings.HasPrefix(head.Text, ".") {
		st.report(ast.Error(ast.ErrUnexpectedToken, line...))
		return
	}

	entry, operand, err := st.Arch.Recognize(head.Text, args)
	if err != nil {
		st.report(ast.Error(err, line...))
		return
	}
	st.add(ast.NewInstruction(line, entry.Mnemonic, entry.Mode, operand, st.parent))
}

// data parses a data directive. Without values, one element is reserved.
func (st *state) data(line []token.Token, dir *isa.DataDirective, args []token.Token) {
	if len(token.Trim(args)) == 0 {
		st.add(ast.NewReserve(line, dir, 1))
		return
	}

	var values []token.Token
	for _, value := range splitValues(args) {
		value = token.Trim(value)
		if len(value) != 1 {
			st.report(ast.Error(ast.ErrDataSyntax, line...))
			return
		}
		switch tok := value[0]; {
		case tok.Kind.Constant(), tok.Kind == token.KIND_WORD:
		case tok.Kind == token.KIND_STRING:
			if _, err := tok.Unquote(); err != nil {
				st.report(ast.Error(ast.ErrDataSyntax, tok))
				return
			}
		default:
			st.report(ast.Error(ast.ErrDataSyntax, line...))
			return
		}
		values = append(values, value[0])
	}

	st.add(ast.NewData(line, dir, values, st.parent))
}

// splitValues divides a value list at commas.
func splitValues(tokens []token.Token) (values [][]token.Token) {
	start := 0
	for n, tok := range tokens {
		if tok.Kind == token.KIND_SYMBOL && tok.Text == "," {
			values = append(values, tokens[start:n])
			start = n + 1
		}
	}
	values = append(values, tokens[start:])
	return
}

// bundle groups the parsed nodes into sections. Each section directive
// starts a new section; nodes before the first one are text. Nodes a
// section does not allow are reported and dropped.
func (st *state) bundle() {
	current := ast.NewSection(ast.SECTION_TEXT, nil)
	flush := func() {
		if len(current.Nodes) > 0 {
			st.tree.Root.Nodes = append(st.tree.Root.Nodes, current)
		}
	}

	for _, node := range st.nodes {
		if node.Kind == ast.KIND_SECTION_START {
			flush()
			current = ast.NewSection(node.Section, nil)
		}
		if !current.Section.Allows(node.Kind) {
			st.tree.Report(ast.Error(&ast.ErrSection{Kind: node.Kind, Section: current.Section}, node.Tokens...))
			continue
		}
		current.Nodes = append(current.Nodes, node)
	}
	flush()
}
