package ast

import (
	"errors"

	"github.com/ezrec/asm8/translate"
)

var f = translate.From

var (
	// Pre-processor errors
	ErrImportSyntax        = errors.New(f("#import syntax"))
	ErrImportMissing       = errors.New(f("#import file not found"))
	ErrImportUnbuilt       = errors.New(f("#import file not assembled"))
	ErrImportBroken        = errors.New(f("#import file has errors"))
	ErrEquateSyntax        = errors.New(f(".equ syntax"))
	ErrEquateDuplicate     = errors.New(f(".equ duplicated"))
	ErrMacroSyntax         = errors.New(f(".macro syntax"))
	ErrMacroNesting        = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate      = errors.New(f(".macro duplicated"))
	ErrMacroLonely         = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm     = errors.New(f(".endm without .macro"))
	ErrMacroArity          = errors.New(f("macro argument count mismatch"))
	ErrMacroTrailingComma  = errors.New(f("trailing comma after last macro parameter"))
	ErrMacroDepth          = errors.New(f("macro expansion too deep"))
	ErrMacroParameter      = errors.New(f("unknown macro parameter"))
	ErrSubstitutionInvalid = errors.New(f("substituted text does not tokenize"))

	// Parser errors
	ErrUnexpectedToken = errors.New(f("unexpected token"))
	ErrTooManyErrors   = errors.New(f("too many errors"))
	ErrSubLabelOrphan  = errors.New(f("sub-label without a parent label"))
	ErrSectionIllegal  = errors.New(f("element not allowed in section"))
	ErrGlobalSyntax    = errors.New(f(".global syntax"))
	ErrGlobalMissing   = errors.New(f(".global names an undeclared label"))
	ErrSetPCSyntax     = errors.New(f("* = syntax"))
	ErrDataSyntax      = errors.New(f("data directive syntax"))
	ErrInstruction     = errors.New(f("instruction invalid"))

	// Linker errors
	ErrLabelDuplicate = errors.New(f("label duplicated"))
)

// ErrLabelMissing is a reference to an undeclared label.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

// ErrSection is an element placed in a section that does not allow it.
type ErrSection struct {
	Kind    Kind
	Section SectionKind
}

func (err *ErrSection) Error() string {
	return f("%v not allowed in %v", err.Kind, err.Section.Directive())
}

func (err *ErrSection) Unwrap() error {
	return ErrSectionIllegal
}
