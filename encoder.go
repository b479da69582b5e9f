// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"fmt"
	"io"
)

// opLenMargin provides an upper limit for the number of bytes a single
// operation can add to the compressed stream. The number covers the
// worst case of a match plus the five bytes written by closing the range
// encoder.
const opLenMargin = 16

// compressFlags control the compression process.
type compressFlags uint32

// Values for compressFlags.
const (
	// all data should be compressed, even if compressibility is not met
	all compressFlags = 1 << iota
)

// encoderFlags provide the flags for the encoder.
type encoderFlags uint32

// Flags for the encoder.
const (
	// eosMarker requests an EOS marker to be written
	eosMarker encoderFlags = 1 << iota
)

// encoder compresses data buffered in the encoder dictionary and writes
// it into a byte writer.
type encoder struct {
	dict   *encoderDict
	state  *state
	re     *rangeEncoder
	start  int64
	marker bool
	closed bool
}

// newEncoder creates a new encoder. The flags argument supports the
// eosMarker flag, controlling whether a terminating end-of-stream marker
// must be written.
func newEncoder(bw io.Writer, state *state, dict *encoderDict,
	flags encoderFlags) (e *encoder, err error) {

	e = &encoder{
		dict:   dict,
		state:  state,
		re:     newRangeEncoder(bw),
		marker: flags&eosMarker != 0,
		start:  dict.Pos(),
	}
	return e, nil
}

// Reopen reopens the encoder for a new segment written to bw. The state
// and the dictionary are not touched.
func (e *encoder) Reopen(bw io.Writer) {
	e.re = newRangeEncoder(bw)
	e.start = e.dict.Pos()
	e.closed = false
}

// writeLiteral writes a literal into the LZMA stream
func (e *encoder) writeLiteral(l lit) error {
	var err error
	_, state2, _ := e.state.states(e.dict.Pos())
	if err = e.re.EncodeBit(0, &e.state.s2[state2].isMatch); err != nil {
		return err
	}
	litState := e.state.litState(e.dict.ByteAt(1), e.dict.Pos())
	match := e.dict.ByteAt(int(e.state.rep[0]) + 1)
	err = e.state.litCodec.Encode(e.re, l.b, e.state.state, match, litState)
	if err != nil {
		return err
	}
	e.state.updateStateLiteral()
	return nil
}

// iverson implements the Iverson operator as proposed by Donald Knuth in
// his book Concrete Mathematics.
func iverson(ok bool) uint32 {
	if ok {
		return 1
	}
	return 0
}

// writeMatch writes a repetition operation into the operation stream
func (e *encoder) writeMatch(m match) error {
	var err error
	if !(minDistance <= m.distance && m.distance <= maxDistance) {
		panic(fmt.Errorf("match distance %d out of range", m.distance))
	}
	dist := uint32(m.distance - minDistance)
	if !(minMatchLen <= m.n && m.n <= maxMatchLen) &&
		!(dist == e.state.rep[0] && m.n == 1) {
		panic(fmt.Errorf(
			"match length %d out of range; dist %d rep[0] %d",
			m.n, dist, e.state.rep[0]))
	}
	state, state2, posState := e.state.states(e.dict.Pos())
	if err = e.re.EncodeBit(1, &e.state.s2[state2].isMatch); err != nil {
		return err
	}
	g := 0
	for ; g < 4; g++ {
		if e.state.rep[g] == dist {
			break
		}
	}
	b := iverson(g < 4)
	if err = e.re.EncodeBit(b, &e.state.s1[state].isRep); err != nil {
		return err
	}
	n := uint32(m.n - minMatchLen)
	if b == 0 {
		// simple match
		e.state.rep[3], e.state.rep[2], e.state.rep[1], e.state.rep[0] =
			e.state.rep[2], e.state.rep[1], e.state.rep[0], dist
		e.state.updateStateMatch()
		if err = e.state.lenCodec.Encode(e.re, n, posState); err != nil {
			return err
		}
		return e.state.distCodec.Encode(e.re, dist, n)
	}
	b = iverson(g != 0)
	if err = e.re.EncodeBit(b, &e.state.s1[state].isRepG0); err != nil {
		return err
	}
	if b == 0 {
		// g == 0
		b = iverson(m.n != 1)
		if err = e.re.EncodeBit(b,
			&e.state.s2[state2].isRepG0Long); err != nil {
			return err
		}
		if b == 0 {
			e.state.updateStateShortRep()
			return nil
		}
	} else {
		// g in {1,2,3}
		b = iverson(g != 1)
		if err = e.re.EncodeBit(b, &e.state.s1[state].isRepG1); err != nil {
			return err
		}
		if b == 1 {
			// g in {2,3}
			b = iverson(g != 2)
			err = e.re.EncodeBit(b, &e.state.s1[state].isRepG2)
			if err != nil {
				return err
			}
			if b == 1 {
				e.state.rep[3] = e.state.rep[2]
			}
			e.state.rep[2] = e.state.rep[1]
		}
		e.state.rep[1] = e.state.rep[0]
		e.state.rep[0] = dist
	}
	e.state.updateStateRep()
	return e.state.repLenCodec.Encode(e.re, n, posState)
}

// writeOp writes an operation value into the stream. It checks whether
// there is still enough buffered data for the operation and discards the
// bytes consumed from the dictionary buffer.
func (e *encoder) writeOp(op operation) error {
	var err error
	switch x := op.(type) {
	case match:
		err = e.writeMatch(x)
	case lit:
		err = e.writeLiteral(x)
	default:
		panic("unknown operation type")
	}
	if err != nil {
		return err
	}
	e.dict.DiscardOp(op)
	return nil
}

// compress compresses data from the dictionary buffer. If the flag all
// is set, all data in the dictionary buffer will be compressed.
// Otherwise the function keeps a margin of bytes back, so matches at
// the buffer boundary are not cut short.
func (e *encoder) compress(flags compressFlags) error {
	n := 0
	if flags&all == 0 {
		n = maxMatchLen - 1
	}
	d := e.dict
	for d.Buffered() > n {
		op := d.NextOp(e.state.rep[0])
		if err := e.writeOp(op); err != nil {
			return err
		}
	}
	return nil
}

// compressN compresses exactly n bytes from the dictionary buffer, or
// all buffered bytes if less are available. Matches crossing the limit
// are cut short.
func (e *encoder) compressN(n int) error {
	d := e.dict
	for n > 0 && d.Buffered() > 0 {
		op := d.NextOp(e.state.rep[0])
		if op.Len() > n {
			if m, ok := op.(match); ok && n >= minMatchLen {
				m.n = n
				op = m
			} else {
				op = lit{d.Literal()}
			}
		}
		if err := e.writeOp(op); err != nil {
			return err
		}
		n -= op.Len()
	}
	return nil
}

// eosMatch is a pseudo operation that indicates the end of the stream.
var eosMatch = match{distance: maxDistance, n: minMatchLen}

// Write writes data into the encoder dictionary and compresses it to
// make space in the buffer for more data.
func (e *encoder) Write(p []byte) (n int, err error) {
	for {
		k, err := e.dict.Write(p[n:])
		n += k
		if err == errNoSpace {
			if err = e.compress(0); err != nil {
				return n, err
			}
			continue
		}
		return n, err
	}
}

// Compressed returns the number of bytes that the encoder has consumed
// from the dictionary buffer since it has been created or reopened.
func (e *encoder) Compressed() int64 {
	return e.dict.Pos() - e.start
}

// Close terminates the LZMA stream. If requested the end-of-stream
// marker will be written and the range encoder flushed.
func (e *encoder) Close() error {
	if e.closed {
		return errClosed
	}
	if err := e.compress(all); err != nil {
		return err
	}
	if e.marker {
		if err := e.writeMatch(eosMatch); err != nil {
			return err
		}
	}
	err := e.re.Close()
	e.closed = true
	return err
}
