// Package internal holds helpers shared by the asm8 packages.
package internal

import (
	"iter"
)

// Concat2 chains key-value sequences end to end.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}
