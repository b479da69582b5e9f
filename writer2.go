// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Writer2Config provides the configuration parameters for an LZMA2
// writer.
type Writer2Config struct {
	// Properties for the encoding. If the it is nil the value
	// {LC: 3, LP: 0, PB: 2} will be chosen.
	Properties *Properties
	// The size of the dictionary. If DictSize is zero, the value
	// 8 MiB will be chosen.
	DictSize int
	// Size of the lookahead buffer; value 0 indicates default size
	// 65536
	BufSize int
	// Standalone prepends the encoded dictionary size byte to the
	// chunk stream. Container formats storing the dictionary size
	// themselves leave it off.
	Standalone bool
}

// fill converts zero-value fields to their explicit default values.
func (c *Writer2Config) fill() {
	if c.Properties == nil {
		c.Properties = &Properties{LC: 3, LP: 0, PB: 2}
	}
	if c.DictSize == 0 {
		c.DictSize = 8 * 1024 * 1024
	}
	if c.BufSize == 0 {
		c.BufSize = maxChunkSize
	}
}

// Verify checks the Writer2Config for errors. Verify will replace zero
// values with default values.
func (c *Writer2Config) Verify() error {
	c.fill()
	var err error
	if c == nil {
		return errors.New("lzma: Writer2Config is nil")
	}
	if c.Properties == nil {
		return errors.New("lzma: Writer2Config has no Properties set")
	}
	if err = c.Properties.Verify(); err != nil {
		return err
	}
	if !(MinDictSize <= int64(c.DictSize) &&
		int64(c.DictSize) <= MaxDictSize) {
		return errors.New("lzma: dictionary size is out of range")
	}
	if !(maxMatchLen <= c.BufSize) {
		return errors.New("lzma: lookahead buffer size too small")
	}
	return nil
}

// Writer2 supports the creation of an LZMA2 stream. But note that
// written data is buffered, so call Flush or Close to write data to the
// underlying writer.
type Writer2 struct {
	w io.Writer

	encoder *encoder

	cbuf bytes.Buffer
	hdr  [6]byte

	// size of the uncompressed data of the chunk in preparation
	chunkSize int
	// dirReset is true if a dictionary reset has been signaled
	dirReset bool
	// spReset is true if the probability state of the last compressed
	// chunk is still valid for the decoder
	spReset bool

	err error
}

// NewWriter2 creates an LZMA2 chunk sequence writer with the default
// parameters and options.
func NewWriter2(lzma2 io.Writer) (w *Writer2, err error) {
	return NewWriter2Config(lzma2, Writer2Config{})
}

// NewWriter2Config creates a new LZMA2 writer using the given
// configuration.
func NewWriter2Config(lzma2 io.Writer, cfg Writer2Config) (w *Writer2, err error) {
	if err = cfg.Verify(); err != nil {
		return nil, err
	}
	if cfg.Standalone {
		c := EncodeDictSize(int64(cfg.DictSize))
		if _, err = lzma2.Write([]byte{c}); err != nil {
			return nil, err
		}
	}

	chunkSize := maxChunkSize
	if chunkSize > cfg.DictSize {
		chunkSize = cfg.DictSize
	}

	var s state
	s.init(*cfg.Properties)
	dict, err := newEncoderDict(cfg.DictSize, cfg.BufSize)
	if err != nil {
		return nil, err
	}
	w = &Writer2{
		w:         lzma2,
		chunkSize: chunkSize,
	}
	if w.encoder, err = newEncoder(&w.cbuf, &s, dict, 0); err != nil {
		return nil, err
	}
	return w, nil
}

// writeChunk writes a single chunk of at most chunkSize uncompressed
// bytes. If the compressed form including its header is not smaller than
// the raw data an uncompressed chunk is written instead and the
// probability state is invalidated.
func (w *Writer2) writeChunk() error {
	e := w.encoder
	n := e.dict.Buffered()
	if n > w.chunkSize {
		n = w.chunkSize
	}
	if n == 0 {
		return nil
	}

	reset := !w.spReset
	if reset {
		e.state.reset()
	}
	w.cbuf.Reset()
	e.Reopen(&w.cbuf)
	if err := e.compressN(n); err != nil {
		return err
	}
	if err := e.re.Close(); err != nil {
		return err
	}

	k := w.cbuf.Len()
	hdrLen := 5
	if reset {
		hdrLen++
	}
	var h chunkHeader
	if hdrLen+k < 3+n {
		// compressed chunk
		h = chunkHeader{size: n, compressedSize: k}
		switch {
		case reset && !w.dirReset:
			h.control = cCSPD
			h.properties = e.state.Properties
			w.dirReset = true
		case reset:
			h.control = cCSP
			h.properties = e.state.Properties
		default:
			h.control = cC
		}
		w.spReset = true
		p, err := h.append(w.hdr[:0])
		if err != nil {
			return err
		}
		if _, err = w.w.Write(p); err != nil {
			return err
		}
		_, err = w.w.Write(w.cbuf.Bytes())
		return err
	}

	// uncompressed chunk; the future compressed chunk has to reset
	// the probability state
	h = chunkHeader{size: n}
	if !w.dirReset {
		h.control = cUD
		w.dirReset = true
	} else {
		h.control = cU
	}
	w.spReset = false
	p, err := h.append(w.hdr[:0])
	if err != nil {
		return err
	}
	if _, err = w.w.Write(p); err != nil {
		return err
	}
	// The chunk data has already been moved into the dictionary, so
	// it has to be copied back out.
	c, err := e.dict.CopyN(w.w, n)
	if err != nil {
		return err
	}
	if c != n {
		panic(fmt.Errorf("lzma: copied %d bytes, expected %d", c, n))
	}
	return nil
}

// Write writes the data into the writer. The data is buffered and
// converted into chunks when the buffer capacity is exhausted.
func (w *Writer2) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	for {
		k, err := w.encoder.dict.Write(p[n:])
		n += k
		if err == errNoSpace {
			if err = w.writeChunk(); err != nil {
				w.err = err
				return n, err
			}
			continue
		}
		if err != nil {
			w.err = err
		}
		return n, err
	}
}

// Flush writes all buffered data out as chunks.
func (w *Writer2) Flush() error {
	if w.err != nil {
		return w.err
	}
	for w.encoder.dict.Buffered() > 0 {
		if err := w.writeChunk(); err != nil {
			w.err = err
			return err
		}
	}
	return nil
}

// Close terminates the LZMA2 stream with an end-of-stream chunk and
// prevents any further writes.
func (w *Writer2) Close() error {
	if w.err != nil {
		return w.err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if _, err := w.w.Write([]byte{cEOS}); err != nil {
		w.err = err
		return err
	}
	w.err = errClosed
	return nil
}

// Encode2 compresses the given data into a complete LZMA2 chunk stream.
func Encode2(data []byte, cfg Writer2Config) (stream []byte, err error) {
	var buf bytes.Buffer
	w, err := NewWriter2Config(&buf, cfg)
	if err != nil {
		return nil, err
	}
	if _, err = w.Write(data); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
