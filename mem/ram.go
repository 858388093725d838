// Package mem implements the word-addressed store the CPU executes out
// of. The store is a flat sequence of words; there is no banking,
// mirroring, or memory-mapped IO.
package mem

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned for any access outside [0, Size).
var ErrOutOfRange = errors.New("mem: address out of range")

// A RAM is a linear store of fixed-width words. Writes are reduced
// modulo 2^wordLength before they land; reads return words as stored.
// The zero-address word is a perfectly ordinary word, including when
// the stack pointer wraps through it.
type RAM struct {
	wordLength int
	modulus    int
	contents   []uint16
}

// New returns a zero-filled RAM of size words, each wordLength bits
// wide. initial, which may be nil, seeds the head of the store; its
// tail stays zeroed. Word widths up to 16 bits are supported.
func New(wordLength, size int, initial []uint16) (*RAM, error) {
	if wordLength < 1 || wordLength > 16 {
		return nil, fmt.Errorf("mem: unsupported word length %d", wordLength)
	}
	if size < 1 {
		return nil, fmt.Errorf("mem: invalid size %d", size)
	}
	if len(initial) > size {
		return nil, fmt.Errorf("mem: initial contents (%d words) exceed size %d", len(initial), size)
	}
	r := &RAM{
		wordLength: wordLength,
		modulus:    1 << wordLength,
		contents:   make([]uint16, size),
	}
	if err := r.Load(0, initial); err != nil {
		return nil, err
	}
	return r, nil
}

// Size is the length of the store in words.
func (r *RAM) Size() int { return len(r.contents) }

// WordLength is the width of each word in bits.
func (r *RAM) WordLength() int { return r.wordLength }

// Get returns the word at pos.
func (r *RAM) Get(pos int) (uint16, error) {
	if pos < 0 || pos >= len(r.contents) {
		return 0, fmt.Errorf("%w: %#x", ErrOutOfRange, pos)
	}
	return r.contents[pos], nil
}

// Set writes value at pos, truncated to the word width. Negative
// values wrap: -1 stores the all-ones word.
func (r *RAM) Set(pos, value int) error {
	if pos < 0 || pos >= len(r.contents) {
		return fmt.Errorf("%w: %#x", ErrOutOfRange, pos)
	}
	r.contents[pos] = r.sanitize(value)
	return nil
}

// Load copies words into the store starting at addr, sanitizing each
// one. The whole slice must fit.
func (r *RAM) Load(addr int, words []uint16) error {
	if addr < 0 || addr+len(words) > len(r.contents) {
		return fmt.Errorf("%w: %#x+%d", ErrOutOfRange, addr, len(words))
	}
	for i, w := range words {
		r.contents[addr+i] = r.sanitize(int(w))
	}
	return nil
}

// sanitize reduces value into [0, 2^wordLength) with floored modulo,
// so negative values wrap around from the top.
func (r *RAM) sanitize(value int) uint16 {
	v := value % r.modulus
	if v < 0 {
		v += r.modulus
	}
	return uint16(v)
}
