// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"errors"
	"io"
)

// Reader2Config stores the parameters for a reader of LZMA2 chunk
// streams.
type Reader2Config struct {
	// DictSize provides the dictionary size in bytes. If it is zero
	// 8 MiB will be used.
	DictSize int
	// Standalone expects the stream to start with the encoded
	// dictionary size byte. Container formats storing the dictionary
	// size themselves leave it off.
	Standalone bool
}

// fill converts the zero values of the configuration to the default
// values.
func (c *Reader2Config) fill() {
	if c.DictSize == 0 {
		c.DictSize = 8 * 1024 * 1024
	}
}

// Verify checks the reader configuration for errors. Zero values will be
// replaced by default values.
func (c *Reader2Config) Verify() error {
	c.fill()
	if !(MinDictSize <= int64(c.DictSize) &&
		int64(c.DictSize) <= MaxDictSize) {
		return errors.New("lzma: dictionary size is out of range")
	}
	return nil
}

// chunkReader decodes a sequence of LZMA2 chunks. The readChunk method
// must only be called if the dictionary buffer has been drained.
type chunkReader struct {
	r      io.Reader
	dict   *decoderDict
	state  state
	d      *decoder
	cstate chunkState
	err    error
}

// init initializes the chunk reader. The dictionary buffer is made large
// enough to hold the uncompressed data of any single chunk.
func (cr *chunkReader) init(z io.Reader, dictSize int) error {
	bufSize := 2 * dictSize
	if bufSize < maxUncompressedChunkSize+maxMatchLen {
		bufSize = maxUncompressedChunkSize + maxMatchLen
	}
	dict, err := newDecoderDict(dictSize, bufSize)
	if err != nil {
		return err
	}
	*cr = chunkReader{
		r:      z,
		dict:   dict,
		cstate: sS,
	}
	return nil
}

// controlError maps a reset discipline violation to the error reported
// to the caller.
func (cr *chunkReader) controlError(c byte) error {
	if cr.cstate == sF {
		return errClosed
	}
	if (c == cC || c == cCS) && (cr.cstate == sS || cr.cstate == s1) {
		return ErrPropsMissing
	}
	return ErrUnexpectedChunk
}

// readChunk reads a single chunk and decodes its data into the
// dictionary. At the end of the stream io.EOF is returned.
func (cr *chunkReader) readChunk() error {
	h, err := parseChunkHeader(cr.r)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	ns := cr.cstate.next(h.control)
	if ns == sErr {
		return cr.controlError(h.control)
	}
	cr.cstate = ns
	if ns == sF {
		return io.EOF
	}

	if h.control == cUD || h.control == cCSPD {
		cr.dict.Reset()
	}

	if h.control == cU || h.control == cUD {
		// uncompressed data is copied directly into the dictionary
		_, err = io.CopyN(cr.dict, cr.r, int64(h.size))
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}

	switch h.control {
	case cCSP, cCSPD:
		cr.state.init(h.properties)
	case cCS:
		cr.state.reset()
	}

	br := newByteReader(io.LimitReader(cr.r, int64(h.compressedSize)))
	if cr.d == nil {
		cr.d, err = newDecoder(br, &cr.state, cr.dict, int64(h.size))
		if err != nil {
			return err
		}
	} else if err = cr.d.Reopen(br, int64(h.size)); err != nil {
		return err
	}

	// The dictionary buffer is large enough for the whole chunk, so
	// decompress cannot stall.
	for {
		err = cr.d.decompress()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if cr.d.eosMarker {
		return ErrUnexpectedEOS
	}
	// the chunk must consume its declared compressed size exactly
	if _, err = br.ReadByte(); err != io.EOF {
		return ErrEncoding
	}
	return nil
}

// Read reads the uncompressed data from the chunk reader.
func (cr *chunkReader) Read(p []byte) (n int, err error) {
	if cr.err != nil && cr.dict.buffered() == 0 {
		return 0, cr.err
	}
	for {
		// Read of the decoder dict never returns an error.
		k, _ := cr.dict.Read(p[n:])
		n += k
		if n == len(p) {
			return n, nil
		}
		if cr.err != nil {
			return n, cr.err
		}
		if err = cr.readChunk(); err != nil {
			cr.err = err
			if cr.dict.buffered() > 0 {
				continue
			}
			return n, err
		}
	}
}

// Reader2 decompresses a stream of LZMA2 chunks.
type Reader2 struct {
	cr chunkReader
}

// NewReader2 creates an LZMA2 reader without the standalone dictionary
// size byte. The dictionary size must be provided by the caller, as done
// by container formats storing it themselves.
func NewReader2(z io.Reader, dictSize int) (r *Reader2, err error) {
	return NewReader2Config(z, Reader2Config{DictSize: dictSize})
}

// NewReader2Config creates an LZMA2 reader using the configuration
// parameter.
func NewReader2Config(z io.Reader, cfg Reader2Config) (r *Reader2, err error) {
	if cfg.Standalone {
		var p [1]byte
		if _, err = io.ReadFull(z, p[:]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		size, err := DecodeDictSize(p[0])
		if err != nil {
			return nil, err
		}
		if int64(int(size)) != size {
			return nil, errors.New(
				"lzma: dictionary size exceeds maximum " +
					"integer value")
		}
		cfg.DictSize = int(size)
	}
	if err = cfg.Verify(); err != nil {
		return nil, err
	}
	r = new(Reader2)
	if err = r.cr.init(z, cfg.DictSize); err != nil {
		return nil, err
	}
	return r, nil
}

// Read reads the uncompressed data from the reader.
func (r *Reader2) Read(p []byte) (n int, err error) {
	return r.cr.Read(p)
}

// Decode2 decompresses a complete LZMA2 chunk stream given as a byte
// slice.
func Decode2(stream []byte, cfg Reader2Config) (data []byte, err error) {
	r, err := NewReader2Config(bytes.NewReader(stream), cfg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
