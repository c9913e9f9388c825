// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package listing holds the row-per-address transcripts produced by the
// assembler and the disassembler, and the map from addresses back to
// source lines.
package listing

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/asm8/isa"
	"github.com/ezrec/asm8/token"
)

// Row describes one address of a transcript. The first byte of an
// instruction or data element carries the text; the remaining bytes are
// filler rows.
type Row struct {
	Address  uint64
	Labels   []string
	Mnemonic string
	Mode     *isa.Mode // Nil for data.
	Operand  string
	Bytes    []byte // All bytes of the element, on the leading row.
	Loc      token.Location
	Filler   bool
}

// Text is the mnemonic and operand.
func (row Row) Text() string {
	if len(row.Operand) == 0 {
		return row.Mnemonic
	}
	return row.Mnemonic + " " + row.Operand
}

// Transcript is an ordered list of rows.
type Transcript []Row

// Append adds the rows of an element: a leading row and one filler row for
// each further byte.
func (t Transcript) Append(row Row) Transcript {
	t = append(t, row)
	for n := 1; n < len(row.Bytes); n++ {
		t = append(t, Row{
			Address: row.Address + uint64(n),
			Bytes:   row.Bytes[n : n+1],
			Loc:     row.Loc,
			Filler:  true,
		})
	}
	return t
}

// Find returns the leading row of the element covering an address.
func (t Transcript) Find(addr uint64) (row *Row, index int, ok bool) {
	for n := range t {
		lead := &t[n]
		if lead.Filler {
			continue
		}
		size := uint64(len(lead.Bytes))
		if size == 0 {
			size = 1
		}
		if addr >= lead.Address && addr < lead.Address+size {
			return lead, int(addr - lead.Address), true
		}
	}
	return
}

// Rows iterates over the leading rows only.
func (t Transcript) Rows() (rows []Row) {
	for _, row := range t {
		if !row.Filler {
			rows = append(rows, row)
		}
	}
	return
}

// WriteTo writes the transcript as text, one line per leading row.
func (t Transcript) WriteTo(w io.Writer) (n int64, err error) {
	for _, row := range t.Rows() {
		var hex []string
		for _, b := range row.Bytes {
			hex = append(hex, fmt.Sprintf("%02X", b))
		}
		labels := ""
		if len(row.Labels) != 0 {
			labels = strings.Join(row.Labels, ":, ") + ":"
		}
		var wrote int
		wrote, err = fmt.Fprintf(w, "%04X  %-9s  %-16s %s\n", row.Address, strings.Join(hex, " "), labels, row.Text())
		n += int64(wrote)
		if err != nil {
			return
		}
	}
	return
}

// AssemblyMap maps each assembled byte address to its source line.
type AssemblyMap map[uint64]token.Location

// Lookup finds the source of an address.
func (am AssemblyMap) Lookup(addr uint64) (loc token.Location, ok bool) {
	loc, ok = am[addr]
	return
}

// Addresses returns the sorted addresses assembled from a source line.
func (am AssemblyMap) Addresses(file string, line int) (addrs []uint64) {
	for addr, loc := range am {
		if loc.File == file && loc.Line == line {
			addrs = append(addrs, addr)
		}
	}
	slices.Sort(addrs)
	return
}

// Span returns the lowest mapped address and the address after the highest.
func (am AssemblyMap) Span() (start, end uint64, ok bool) {
	if len(am) == 0 {
		return
	}
	addrs := slices.Sorted(maps.Keys(am))
	return addrs[0], addrs[len(addrs)-1] + 1, true
}
