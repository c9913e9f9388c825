// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ast

import (
	"iter"

	"github.com/ezrec/asm8/token"
)

// Label is a declared label.
type Label struct {
	Name    string      // Declared name. Sub-labels keep their scoping prefix.
	Parent  LabelId     // Parent of a sub-label, or NO_LABEL.
	Token   token.Token // Declaring token.
	Global  bool        // Exported by .global.
	Dropped bool        // Removed as a duplicate.

	Address uint64 // Assigned by the first assembly pass.
	Placed  bool
}

// LabelTable holds the labels of a tree.
type LabelTable struct {
	labels []Label
}

// Add appends a label, returning its id.
func (lt *LabelTable) Add(label Label) LabelId {
	lt.labels = append(lt.labels, label)
	return LabelId(len(lt.labels) - 1)
}

// Get returns a label by id, or nil.
func (lt *LabelTable) Get(id LabelId) *Label {
	if id < 0 || int(id) >= len(lt.labels) {
		return nil
	}
	return &lt.labels[id]
}

// Len is the number of labels, dropped ones included.
func (lt *LabelTable) Len() int {
	return len(lt.labels)
}

// All iterates over every live label.
func (lt *LabelTable) All() iter.Seq2[LabelId, *Label] {
	return func(yield func(LabelId, *Label) bool) {
		for n := range lt.labels {
			if lt.labels[n].Dropped {
				continue
			}
			if !yield(LabelId(n), &lt.labels[n]) {
				return
			}
		}
	}
}

// FullName is the parent name joined with the label name.
func (lt *LabelTable) FullName(id LabelId) string {
	label := lt.Get(id)
	if label == nil {
		return ""
	}
	if parent := lt.Get(label.Parent); parent != nil {
		return parent.Name + label.Name
	}
	return label.Name
}

// Lookup finds a live label by its scope and name. Global labels have the
// NO_LABEL parent.
func (lt *LabelTable) Lookup(parent LabelId, name string) (id LabelId, ok bool) {
	for n, label := range lt.All() {
		if label.Parent == parent && label.Name == name {
			return n, true
		}
	}
	return NO_LABEL, false
}

// LookupFull finds a live label by its full name, ie "main.loop".
func (lt *LabelTable) LookupFull(name string) (id LabelId, ok bool) {
	for n := range lt.All() {
		if lt.FullName(n) == name {
			return n, true
		}
	}
	return NO_LABEL, false
}

// At returns the names of the placed labels at an address, in table order.
func (lt *LabelTable) At(address uint64) (names []string) {
	for n, label := range lt.All() {
		if label.Placed && label.Address == address {
			names = append(names, lt.FullName(n))
		}
	}
	return
}
