// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"fmt"
	"io"
)

// decoder decodes a raw LZMA stream without any header.
type decoder struct {
	// dictionary; the rear pointer of the buffer will be used for
	// reading the data
	dict *decoderDict
	// decoder state
	state *state
	// range decoder
	rd *rangeDecoder
	// start stores the head value of the dictionary for the LZMA
	// stream
	start int64
	// size of uncompressed data
	size int64
	// end-of-stream encountered
	eos bool
	// EOS marker found
	eosMarker bool
}

// newDecoder creates a new decoder instance. The parameter size provides
// the expected byte size of the decompressed data. If the size is
// unknown use a negative value. In that case the decoder will look for a
// terminating end-of-stream marker.
func newDecoder(br io.ByteReader, state *state, dict *decoderDict,
	size int64) (d *decoder, err error) {

	rd := new(rangeDecoder)
	if err = rd.init(br); err != nil {
		return nil, err
	}
	d = &decoder{
		state: state,
		dict:  dict,
		rd:    rd,
		size:  size,
		start: dict.pos(),
	}
	return d, nil
}

// Reopen restarts the decoder with a new byte reader and a new size.
// Reopen resets the Decompressed counter to zero.
func (d *decoder) Reopen(br io.ByteReader, size int64) error {
	rd := new(rangeDecoder)
	if err := rd.init(br); err != nil {
		return err
	}
	d.rd = rd
	d.start = d.dict.pos()
	d.size = size
	d.eos = false
	d.eosMarker = false
	return nil
}

// decodeLiteral decodes a single literal from the LZMA stream.
func (d *decoder) decodeLiteral() (op operation, err error) {
	s := d.state
	litState := s.litState(d.dict.byteAt(1), d.dict.pos())
	match := d.dict.byteAt(int(s.rep[0]) + 1)
	b, err := s.litCodec.Decode(d.rd, s.state, match, litState)
	if err != nil {
		return nil, err
	}
	s.updateStateLiteral()
	return lit{b}, nil
}

// errEOS indicates that an EOS marker has been found.
var errEOS = errors.New("lzma: EOS marker found")

// readOp decodes the next operation from the compressed stream. It
// returns the operation. If an end-of-stream marker is identified the
// errEOS error is returned.
func (d *decoder) readOp() (op operation, err error) {
	s := d.state
	state, state2, posState := s.states(d.dict.pos())

	b, err := d.rd.DecodeBit(&s.s2[state2].isMatch)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return d.decodeLiteral()
	}
	b, err = d.rd.DecodeBit(&s.s1[state].isRep)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		// simple match
		s.rep[3], s.rep[2], s.rep[1] = s.rep[2], s.rep[1], s.rep[0]

		s.updateStateMatch()
		// The length decoder returns the length offset.
		n, err := s.lenCodec.Decode(d.rd, posState)
		if err != nil {
			return nil, err
		}
		// The dist decoder returns the distance offset. The
		// actual distance is 1 higher.
		s.rep[0], err = s.distCodec.Decode(d.rd, n)
		if err != nil {
			return nil, err
		}
		if s.rep[0] == eosDist {
			d.eosMarker = true
			return nil, errEOS
		}
		op = match{n: int(n) + minMatchLen,
			distance: int64(s.rep[0]) + minDistance}
		return op, nil
	}
	b, err = d.rd.DecodeBit(&s.s1[state].isRepG0)
	if err != nil {
		return nil, err
	}
	dist := s.rep[0]
	if b == 0 {
		// rep match 0
		b, err = d.rd.DecodeBit(&s.s2[state2].isRepG0Long)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			s.updateStateShortRep()
			op = match{n: 1, distance: int64(dist) + minDistance}
			return op, nil
		}
	} else {
		b, err = d.rd.DecodeBit(&s.s1[state].isRepG1)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			dist = s.rep[1]
		} else {
			b, err = d.rd.DecodeBit(&s.s1[state].isRepG2)
			if err != nil {
				return nil, err
			}
			if b == 0 {
				dist = s.rep[2]
			} else {
				dist = s.rep[3]
				s.rep[3] = s.rep[2]
			}
			s.rep[2] = s.rep[1]
		}
		s.rep[1] = s.rep[0]
		s.rep[0] = dist
	}
	s.updateStateRep()
	n, err := s.repLenCodec.Decode(d.rd, posState)
	if err != nil {
		return nil, err
	}
	op = match{n: int(n) + minMatchLen,
		distance: int64(dist) + minDistance}
	return op, nil
}

// apply takes the operation and transforms the decoder dictionary
// accordingly.
func (d *decoder) apply(op operation) error {
	var err error
	switch x := op.(type) {
	case match:
		err = d.dict.writeMatch(int(x.distance), x.n)
	case lit:
		err = d.dict.WriteByte(x.b)
	default:
		panic("op is neither a match nor a literal")
	}
	return err
}

// Errors that may be returned while decoding data.
var (
	errDataAfterEOS = errors.New("lzma: data after end of stream marker")
	errSize         = errors.New("lzma: wrong uncompressed data size")
)

// decompress fills the dictionary unless no space for new data is
// available. If the end of the LZMA stream has been reached io.EOF will
// be returned.
func (d *decoder) decompress() error {
	if d.eos {
		return io.EOF
	}
	for d.dict.Available() >= maxMatchLen {
		op, err := d.readOp()
		switch err {
		case nil:
			// break
		case errEOS:
			d.eos = true
			if !d.rd.possiblyAtEnd() {
				return errDataAfterEOS
			}
			if d.size >= 0 && d.size != d.Decompressed() {
				return errSize
			}
			return io.EOF
		case io.EOF:
			d.eos = true
			return io.ErrUnexpectedEOF
		default:
			return err
		}
		if err = d.apply(op); err != nil {
			return err
		}
		if d.size >= 0 && d.Decompressed() >= d.size {
			d.eos = true
			if d.Decompressed() > d.size {
				return errSize
			}
			if !d.rd.possiblyAtEnd() {
				switch _, err = d.readOp(); err {
				case nil:
					err = errSize
				case io.EOF:
					err = io.ErrUnexpectedEOF
				case errEOS:
					err = errDataAfterEOS
				}
				return err
			}
			return io.EOF
		}
	}
	return nil
}

// Read reads data from the buffer. If no more data is available io.EOF
// is returned.
func (d *decoder) Read(p []byte) (n int, err error) {
	var k int
	for {
		// Read of decoder dict never returns an error.
		k, err = d.dict.Read(p[n:])
		if err != nil {
			panic(fmt.Errorf("dictionary read error %s", err))
		}
		if k == 0 && d.eos {
			return n, io.EOF
		}
		n += k
		if n >= len(p) {
			return n, nil
		}
		if err = d.decompress(); err != nil && err != io.EOF {
			return n, err
		}
	}
}

// Decompressed returns the number of bytes decompressed by the decoder.
func (d *decoder) Decompressed() int64 {
	return d.dict.pos() - d.start
}
