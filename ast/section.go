// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ast

import (
	"strings"
)

// SectionKind is the kind of an output section.
type SectionKind int

//go:generate go tool stringer -linecomment -type=SectionKind
const (
	SECTION_TEXT   = SectionKind(0) // text
	SECTION_DATA   = SectionKind(1) // data
	SECTION_RODATA = SectionKind(2) // rodata
	SECTION_BSS    = SectionKind(3) // bss
)

var sectionKinds = []SectionKind{SECTION_TEXT, SECTION_DATA, SECTION_RODATA, SECTION_BSS}

// Directive is the source directive that starts the section.
func (s SectionKind) Directive() string {
	return "." + s.String()
}

// SectionByDirective looks up a section by its directive, ie ".bss".
func SectionByDirective(directive string) (section SectionKind, ok bool) {
	for _, section = range sectionKinds {
		if strings.EqualFold(directive, section.Directive()) {
			ok = true
			return
		}
	}
	return
}

// Allows returns true if a node kind may be placed in the section.
func (s SectionKind) Allows(kind Kind) bool {
	switch kind {
	case KIND_LABEL, KIND_SECTION_START, KIND_GLOBAL, KIND_SET_PC:
		return true
	case KIND_INSTRUCTION:
		return s == SECTION_TEXT
	case KIND_INITIALIZED_DATA:
		return s != SECTION_BSS
	case KIND_UNINITIALIZED_DATA:
		return s != SECTION_RODATA
	}
	return false
}
