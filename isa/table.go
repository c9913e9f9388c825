// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"iter"
	"slices"
	"strings"
)

// Table is the immutable mnemonic x mode -> opcode table.
type Table struct {
	entries  []Entry
	byName   map[string][]int
	byOpcode map[byte]int
}

// NewTable builds a table, rejecting duplicate opcodes and modes that are
// not part of the architecture.
func NewTable(modes []*Mode, mnemonics []Mnemonic) (table *Table, err error) {
	table = &Table{
		byName:   make(map[string][]int, len(mnemonics)),
		byOpcode: make(map[byte]int, 256),
	}

	for _, mn := range mnemonics {
		name := strings.ToUpper(mn.Name)
		if _, dup := table.byName[name]; dup {
			err = ErrMnemonicDuplicate(name)
			return
		}
		table.byName[name] = nil
		// Keep entries in mode priority order.
		for _, mode := range modes {
			opcode, ok := mn.Opcodes[mode]
			if !ok {
				continue
			}
			if prior, dup := table.byOpcode[opcode]; dup {
				err = &ErrOpcodeDuplicate{Opcode: opcode, First: table.entries[prior], Second: Entry{Mnemonic: name, Mode: mode, Opcode: opcode}}
				return
			}
			index := len(table.entries)
			table.entries = append(table.entries, Entry{Mnemonic: name, Mode: mode, Opcode: opcode})
			table.byName[name] = append(table.byName[name], index)
			table.byOpcode[opcode] = index
		}
		for mode := range mn.Opcodes {
			if !slices.Contains(modes, mode) {
				err = &ErrModeUnknown{Mnemonic: name, Mode: mode.Name}
				return
			}
		}
	}

	return
}

// MustTable is NewTable for static data.
func MustTable(modes []*Mode, mnemonics []Mnemonic) *Table {
	table, err := NewTable(modes, mnemonics)
	if err != nil {
		panic(err)
	}
	return table
}

// Known returns true if the mnemonic is in the table.
func (t *Table) Known(mnemonic string) bool {
	_, ok := t.byName[strings.ToUpper(mnemonic)]
	return ok
}

// Lookup finds the opcode of a mnemonic in an addressing mode.
func (t *Table) Lookup(mnemonic string, mode *Mode) (entry Entry, ok bool) {
	for _, index := range t.byName[strings.ToUpper(mnemonic)] {
		if t.entries[index].Mode == mode {
			return t.entries[index], true
		}
	}
	return
}

// Decode finds the mnemonic and mode of an opcode.
func (t *Table) Decode(opcode byte) (entry Entry, ok bool) {
	index, ok := t.byOpcode[opcode]
	if ok {
		entry = t.entries[index]
	}
	return
}

// Modes returns the modes a mnemonic supports, in priority order.
func (t *Table) Modes(mnemonic string) (modes []*Mode) {
	for _, index := range t.byName[strings.ToUpper(mnemonic)] {
		modes = append(modes, t.entries[index].Mode)
	}
	return
}

// Entries iterates over every entry of the table.
func (t *Table) Entries() iter.Seq[Entry] {
	return slices.Values(t.entries)
}

// Len is the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
