// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// moveBits defines the number of bits used for the updates of probability
// values.
const moveBits = 5

// probBits defines the number of bits of a probability value.
const probBits = 11

// probInit defines 0.5 as initial value for prob values.
const probInit prob = 1 << (probBits - 1)

// Type prob represents probabilities for the range coder. Only the lower
// eleven bits are used.
type prob uint16

// dec decreases the probability. The decrease is proportional to the
// probability value.
func (p *prob) dec() {
	*p -= *p >> moveBits
}

// inc increases the probability. The increase is proportional to the
// difference of 1 and the probability value.
func (p *prob) inc() {
	*p += ((1 << probBits) - *p) >> moveBits
}

// bound computes the new bound for the given range using the probability
// value.
func (p prob) bound(r uint32) uint32 {
	return (r >> probBits) * uint32(p)
}
