// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// states is the number of states of the operation state machine.
const states = 12

// maxPosBits defines the number of bits of the position value that are
// used to compute the posState value. The value is used to select the tree
// codec for length encoding and decoding.
const maxPosBits = 4

// state1Probs groups the probabilities indexed by the operation state
// alone.
type state1Probs struct {
	isRep   prob
	isRepG0 prob
	isRepG1 prob
	isRepG2 prob
}

// state2Probs groups the probabilities indexed by the operation state
// combined with the posState value.
type state2Probs struct {
	isMatch     prob
	isRepG0Long prob
}

// state maintains the complete adaptive model of the LZMA stream: the
// operation state machine, the four most recently used match distances and
// the probability tables of all symbol codecs.
type state struct {
	Properties  Properties
	s1          [states]state1Probs
	s2          [states << maxPosBits]state2Probs
	litCodec    literalCodec
	lenCodec    lengthCodec
	repLenCodec lengthCodec
	distCodec   distCodec
	rep         [4]uint32
	state       uint32
	posBitMask  uint32
}

// init initializes the state for the given properties.
func (s *state) init(p Properties) {
	s.Properties = p
	s.reset()
}

// reset sets the state back to its initial values while keeping the
// properties. All probabilities become uniform, the operation state
// becomes zero and the rep distances are cleared.
func (s *state) reset() {
	p := s.Properties
	*s = state{
		Properties: p,
		posBitMask: (1 << uint(p.PB)) - 1,
	}
	for i := range s.s1 {
		s.s1[i] = state1Probs{probInit, probInit, probInit, probInit}
	}
	for i := range s.s2 {
		s.s2[i] = state2Probs{probInit, probInit}
	}
	s.litCodec.init(p.LC, p.LP)
	s.lenCodec.init()
	s.repLenCodec.init()
	s.distCodec.init()
}

// deepCopy initializes the state as a deep copy of the source.
func (s *state) deepCopy(src *state) {
	if s == src {
		return
	}
	*s = *src
	s.litCodec.deepCopy(&src.litCodec)
	s.lenCodec.deepCopy(&src.lenCodec)
	s.repLenCodec.deepCopy(&src.repLenCodec)
	s.distCodec.deepCopy(&src.distCodec)
}

// updateStateLiteral updates the state for a literal.
func (s *state) updateStateLiteral() {
	switch {
	case s.state < 4:
		s.state = 0
		return
	case s.state < 10:
		s.state -= 3
		return
	}
	s.state -= 6
}

// updateStateMatch updates the state for a match.
func (s *state) updateStateMatch() {
	if s.state < 7 {
		s.state = 7
	} else {
		s.state = 10
	}
}

// updateStateRep updates the state for a repetition.
func (s *state) updateStateRep() {
	if s.state < 7 {
		s.state = 8
	} else {
		s.state = 11
	}
}

// updateStateShortRep updates the state for a short repetition.
func (s *state) updateStateShortRep() {
	if s.state < 7 {
		s.state = 9
	} else {
		s.state = 11
	}
}

// states computes the indexes into the probability banks for the given
// position of the uncompressed stream.
func (s *state) states(pos int64) (state1, state2, posState uint32) {
	state1 = s.state
	posState = uint32(pos) & s.posBitMask
	state2 = (s.state << maxPosBits) | posState
	return
}

// litState computes the literal state from the previous byte and the
// position of the uncompressed stream.
func (s *state) litState(prev byte, pos int64) uint32 {
	lc, lp := uint(s.Properties.LC), uint(s.Properties.LP)
	return ((uint32(pos) & ((1 << lp) - 1)) << lc) |
		(uint32(prev) >> (8 - lc))
}
