// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"io"
	"testing"

	"github.com/kr/pretty"
)

func TestChunkHeaderMarshalling(t *testing.T) {
	tests := []chunkHeader{
		{control: cEOS},
		{control: cUD, size: 1},
		{control: cU, size: maxChunkSize},
		{control: cC, size: 5, compressedSize: 5},
		{control: cCS, size: maxUncompressedChunkSize,
			compressedSize: maxChunkSize},
		{control: cCSP, size: 1 << 17, compressedSize: 100,
			properties: Properties{LC: 3, LP: 0, PB: 2}},
		{control: cCSPD, size: 1, compressedSize: 1,
			properties: Properties{LC: 1, LP: 1, PB: 1}},
	}
	for _, h := range tests {
		p, err := h.append(nil)
		if err != nil {
			t.Fatalf("append error %s", err)
		}
		g, err := parseChunkHeader(bytes.NewReader(p))
		if err != nil {
			t.Fatalf("parseChunkHeader error %s", err)
		}
		if h.control == cU || h.control == cUD {
			// the compressed size is not transmitted for
			// uncompressed chunks
			g.compressedSize = 0
		}
		if g != h {
			t.Fatalf("chunk header differs %v",
				pretty.Diff(h, g))
		}
	}
}

func TestChunkHeaderErrors(t *testing.T) {
	tests := []chunkHeader{
		{control: cU, size: 0},
		{control: cU, size: maxChunkSize + 1},
		{control: cC, size: maxUncompressedChunkSize + 1,
			compressedSize: 1},
		{control: cC, size: 1, compressedSize: maxChunkSize + 1},
	}
	for _, h := range tests {
		if _, err := h.append(nil); err == nil {
			t.Errorf("append accepts chunk header %# v",
				pretty.Formatter(h))
		}
	}

	// control bytes 0x03..0x7f are invalid
	for _, c := range []byte{0x03, 0x10, 0x7f} {
		_, err := parseChunkHeader(bytes.NewReader([]byte{c, 0, 0}))
		if err != ErrMalformedControl {
			t.Errorf("parseChunkHeader(%#02x) error %v; want %v",
				c, err, ErrMalformedControl)
		}
	}

	// truncated header
	_, err := parseChunkHeader(bytes.NewReader([]byte{cUD, 0}))
	if err != io.ErrUnexpectedEOF {
		t.Errorf("parseChunkHeader error %v; want %v", err,
			io.ErrUnexpectedEOF)
	}
}

func TestChunkStates(t *testing.T) {
	tests := []struct {
		s    chunkState
		c    byte
		next chunkState
	}{
		{sS, cEOS, sF},
		{sS, cUD, s1},
		{sS, cU, sErr},
		{sS, cC, sErr},
		{sS, cCSP, sErr},
		{sS, cCSPD, s2},
		{s1, cU, s1},
		{s1, cUD, s1},
		{s1, cC, sErr},
		{s1, cCS, sErr},
		{s1, cCSP, s2},
		{s1, cCSPD, s2},
		{s2, cC, s2},
		{s2, cCS, s2},
		{s2, cCSP, s2},
		{s2, cCSPD, s2},
		{s2, cU, s3},
		{s2, cUD, s3},
		{s2, cEOS, sF},
		{s3, cC, sErr},
		{s3, cCS, s2},
		{s3, cCSP, s2},
		{s3, cCSPD, s2},
		{s3, cU, s3},
		{s3, cUD, s3},
		{sF, cUD, sErr},
	}
	for _, c := range tests {
		next := c.s.next(c.c)
		if next != c.next {
			t.Errorf("state %d control %#02x: got state %d;"+
				" want %d", c.s, c.c, next, c.next)
		}
	}
}
