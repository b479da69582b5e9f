// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"fmt"
	"io"
)

// Limits for the sizes of LZMA2 chunks.
const (
	// maximum size of the compressed data of a chunk
	maxChunkSize = 1 << 16
	// maximum size of the uncompressed data of a compressed chunk
	maxUncompressedChunkSize = 1 << 21
)

// Possible values of the masked control byte in the LZMA2 chunk header.
// Note that the control byte of a compressed chunk contains the high bits
// of the uncompressed size, so it has to be masked by cMask.
const (
	cEOS  = byte(0)
	cUD   = byte(0b01)
	cU    = byte(0b10)
	cC    = byte(0b100) << 5
	cCS   = byte(0b101) << 5
	cCSP  = byte(0b110) << 5
	cCSPD = byte(0b111) << 5
	cMask = cCSPD
)

// getBE16 converts the big-endian representation to an uint16 value.
func getBE16(p []byte) uint16 {
	return uint16(p[0])<<8 | uint16(p[1])
}

// putBE16 stores the uint16 value in big-endian byte order.
func putBE16(p []byte, x uint16) {
	p[0] = byte(x >> 8)
	p[1] = byte(x)
}

// chunkState reflects the status of a chunk stream. It tracks whether
// properties have been transmitted and whether the probability state of
// the last compressed chunk is still valid.
type chunkState byte

const (
	// start of the stream; requires a dictionary reset
	sS chunkState = iota
	// uncompressed chunks seen, but no properties so far
	s1
	// the last chunk was compressed; state and properties are valid
	s2
	// uncompressed chunk after properties have been seen; the
	// probability state has been invalidated
	s3
	// end of stream
	sF
	// error state
	sErr
)

// next computes the successor state for the given control byte. If the
// control byte is not acceptable in the current state sErr is returned.
func (s chunkState) next(c byte) chunkState {
	if s == sF || s == sErr {
		return sErr
	}
	if c&(1<<7) == 0 {
		switch c {
		case cEOS:
			return sF
		case cUD:
			if s == sS || s == s1 {
				return s1
			}
			return s3
		case cU:
			switch s {
			case s1:
				return s1
			case s2, s3:
				return s3
			}
		}
	} else {
		switch c & cMask {
		case cC:
			// valid probability state required
			if s == s2 {
				return s2
			}
		case cCS:
			if s == s2 || s == s3 {
				return s2
			}
		case cCSP:
			if s != sS {
				return s2
			}
		case cCSPD:
			return s2
		}
	}
	return sErr
}

// chunkHeader represents a chunk header.
type chunkHeader struct {
	control byte
	// size of the compressed chunk data
	compressedSize int
	// size of the uncompressed data
	size       int
	properties Properties
}

// parseChunkHeader reads the next chunk header from the reader. The
// control byte in the returned header is masked for compressed chunks.
func parseChunkHeader(r io.Reader) (h chunkHeader, err error) {
	p := make([]byte, 1, 6)
	if _, err = io.ReadFull(r, p); err != nil {
		return h, err
	}
	h.control = p[0]
	if h.control&(1<<7) == 0 {
		switch h.control {
		case cEOS:
			return h, nil
		case cU, cUD:
			break
		default:
			return h, ErrMalformedControl
		}
		if _, err = io.ReadFull(r, p[1:3]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return h, err
		}
		h.size = int(getBE16(p[1:3])) + 1
	} else {
		h.control &= cMask
		switch h.control {
		case cC, cCS:
			p = p[0:5]
		case cCSP, cCSPD:
			p = p[0:6]
		default:
			return h, ErrMalformedControl
		}
		if _, err = io.ReadFull(r, p[1:]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return h, err
		}
		h.size = int(p[0]&(1<<5-1))<<16 + int(getBE16(p[1:3])) + 1
		h.compressedSize = int(getBE16(p[3:5])) + 1
		if h.control == cCSP || h.control == cCSPD {
			if err = h.properties.fromByte(p[5]); err != nil {
				return h, err
			}
		}
	}
	return h, nil
}

// append appends the binary representation of the chunk header to p. An
// error is returned if the values in the chunk header are inconsistent.
func (h chunkHeader) append(p []byte) (q []byte, err error) {
	if h.control == cEOS {
		return append(p, cEOS), nil
	}
	var d [6]byte
	d[0] = h.control
	if h.control == cU || h.control == cUD {
		if !(1 <= h.size && h.size <= maxChunkSize) {
			return p, fmt.Errorf(
				"lzma: chunk header size %d out of range"+
					" for uncompressed chunk", h.size)
		}
		putBE16(d[1:], uint16(h.size-1))
		return append(p, d[:3]...), nil
	}
	if !(1 <= h.size && h.size <= maxUncompressedChunkSize) {
		return p, fmt.Errorf(
			"lzma: chunk header uncompressed size %d out of range",
			h.size)
	}
	if !(1 <= h.compressedSize && h.compressedSize <= maxChunkSize) {
		return p, fmt.Errorf(
			"lzma: chunk header compressed size %d out of range",
			h.compressedSize)
	}
	us := h.size - 1
	d[0] |= byte(us >> 16)
	putBE16(d[1:], uint16(us))
	putBE16(d[3:], uint16(h.compressedSize-1))
	switch h.control {
	case cC, cCS:
		return append(p, d[:5]...), nil
	case cCSP, cCSPD:
		d[5] = h.properties.byte()
		return append(p, d[:6]...), nil
	}
	return p, ErrMalformedControl
}
