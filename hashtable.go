// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"math/bits"
)

/* For compression we need to find byte sequences that match the current
 * byte sequences. The hash table stores the positions of four-byte words
 * and supports looking all positions up that share the hash of a given
 * word. Collisions are tolerated; the caller verifies candidates against
 * the dictionary.
 */

// wordLen is the number of bytes hashed into a single table slot.
const wordLen = 4

// hashPrime is used for multiplicative hashing of the four-byte words.
const hashPrime = 9920624304325388887

// hashTable stores the positions of the four-byte words written to it.
// Positions older than the dictionary capacity are evicted lazily during
// lookup. The chain slice records for each stored position the distance
// to the previous position with the same hash.
type hashTable struct {
	dictCap int
	// exponent of the table size
	bits uint
	// slots contain position+1; 0 marks an empty slot
	table []int64
	// distance to the previous position with the same hash
	chain []uint32
	// position of the next byte written
	hoff int64
	// rolling word of the last bytes written
	word uint32
	// number of bytes collected in word
	wlen int
}

// hashTableExponent derives the table size exponent from the dictionary
// capacity.
func hashTableExponent(dictCap uint32) int {
	e := 30 - bits.LeadingZeros32(dictCap)
	switch {
	case e < 10:
		e = 10
	case e > 24:
		e = 24
	}
	return e
}

// newHashTable creates a hash table for the given dictionary capacity.
func newHashTable(dictCap int) (t *hashTable, err error) {
	if dictCap < 1 {
		return nil, errors.New(
			"lzma: dictionary capacity must be larger than zero")
	}
	bits := uint(hashTableExponent(uint32(dictCap)))
	t = &hashTable{
		dictCap: dictCap,
		bits:    bits,
		table:   make([]int64, 1<<bits),
		chain:   make([]uint32, dictCap),
	}
	return t, nil
}

// Reset puts the hash table in its initial state.
func (t *hashTable) Reset() {
	for i := range t.table {
		t.table[i] = 0
	}
	for i := range t.chain {
		t.chain[i] = 0
	}
	t.hoff = 0
	t.word = 0
	t.wlen = 0
}

// Pos returns the position of the next byte to be written.
func (t *hashTable) Pos() int64 { return t.hoff }

// hash computes the slot index for the given word.
func (t *hashTable) hash(w uint32) uint64 {
	return (uint64(w) * hashPrime) >> (64 - t.bits)
}

// put stores position p for the word ending at p+wordLen-1.
func (t *hashTable) put(w uint32, p int64) {
	h := t.hash(w)
	q := t.table[h] - 1
	t.table[h] = p + 1
	c := &t.chain[p%int64(t.dictCap)]
	if q < 0 || p-q > int64(t.dictCap) {
		*c = 0
		return
	}
	*c = uint32(p - q)
}

// WriteByte adds a single byte to the hash table.
func (t *hashTable) WriteByte(c byte) error {
	t.word = t.word<<8 | uint32(c)
	if t.wlen < wordLen {
		t.wlen++
	}
	t.hoff++
	if t.wlen == wordLen {
		t.put(t.word, t.hoff-wordLen)
	}
	return nil
}

// Write adds the slice to the hash table. It never returns an error.
func (t *hashTable) Write(p []byte) (n int, err error) {
	for _, c := range p {
		t.WriteByte(c)
	}
	return len(p), nil
}

// Matches fills positions with the stored positions for the given word
// and returns their number. The word must have wordLen bytes. Newer
// positions appear first.
func (t *hashTable) Matches(word []byte, positions []int64) int {
	if len(word) != wordLen || len(positions) == 0 {
		return 0
	}
	w := uint32(word[0])<<24 | uint32(word[1])<<16 |
		uint32(word[2])<<8 | uint32(word[3])
	p := t.table[t.hash(w)] - 1
	n := 0
	for p >= 0 && t.hoff-p <= int64(t.dictCap) {
		positions[n] = p
		n++
		if n == len(positions) {
			break
		}
		d := t.chain[p%int64(t.dictCap)]
		if d == 0 {
			break
		}
		p -= int64(d)
	}
	return n
}
