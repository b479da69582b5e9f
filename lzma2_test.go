// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"
)

func TestEncode2Decode2(t *testing.T) {
	rnd := rand.New(rand.NewSource(17))
	random := make([]byte, 80000)
	rnd.Read(random)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"single", []byte{'x'}},
		{"hello", []byte("hello, world")},
		{"repetitive", bytes.Repeat([]byte("abcabcabcabc"), 1000)},
		{"random", random},
		{"text", sampleText(200000)},
		{"chunkminus", sampleText(maxChunkSize - 1)},
		{"chunk", sampleText(maxChunkSize)},
		{"chunkplus", sampleText(maxChunkSize + 1)},
		{"randomchunk", random[:maxChunkSize+1]},
	}
	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			stream, err := Encode2(c.data, Writer2Config{})
			if err != nil {
				t.Fatalf("Encode2 error %s", err)
			}
			data, err := Decode2(stream, Reader2Config{})
			if err != nil {
				t.Fatalf("Decode2 error %s", err)
			}
			if !bytes.Equal(data, c.data) {
				t.Fatalf("decoded data differs from original")
			}
		})
	}
}

func TestEncode2Repetitive(t *testing.T) {
	data := []byte(strings.Repeat("abcabcabcabc", 1000))
	stream, err := Encode2(data, Writer2Config{})
	if err != nil {
		t.Fatalf("Encode2 error %s", err)
	}
	if len(stream) >= 200 {
		t.Fatalf("stream length %d for %d repetitive bytes;"+
			" want less than 200", len(stream), len(data))
	}
}

func TestEncode2Deterministic(t *testing.T) {
	data := sampleText(300000)
	a, err := Encode2(data, Writer2Config{})
	if err != nil {
		t.Fatalf("Encode2 error %s", err)
	}
	b, err := Encode2(data, Writer2Config{})
	if err != nil {
		t.Fatalf("Encode2 error %s", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("Encode2 is not deterministic")
	}
}

// chunkCount walks the chunk headers of a stream and returns the number
// of chunks before the end-of-stream marker.
func chunkCount(t *testing.T, stream []byte) int {
	t.Helper()
	r := bytes.NewReader(stream)
	n := 0
	for {
		h, err := parseChunkHeader(r)
		if err != nil {
			t.Fatalf("parseChunkHeader error %s", err)
		}
		if h.control == cEOS {
			if r.Len() != 0 {
				t.Fatalf("%d bytes after end of stream",
					r.Len())
			}
			return n
		}
		n++
		skip := int64(h.size)
		if h.control&(1<<7) != 0 {
			skip = int64(h.compressedSize)
		}
		if _, err = r.Seek(skip, io.SeekCurrent); err != nil {
			t.Fatalf("Seek error %s", err)
		}
	}
}

func TestWriter2Chunks(t *testing.T) {
	data := []byte(strings.Repeat("abcdefgh", 5<<17))
	stream, err := Encode2(data, Writer2Config{})
	if err != nil {
		t.Fatalf("Encode2 error %s", err)
	}
	n := chunkCount(t, stream)
	if n < 3 {
		t.Fatalf("stream for %d bytes has %d chunks; want at"+
			" least 3", len(data), n)
	}
	// the first chunk must reset the dictionary
	h, err := parseChunkHeader(bytes.NewReader(stream))
	if err != nil {
		t.Fatalf("parseChunkHeader error %s", err)
	}
	if h.control != cUD && h.control != cCSPD {
		t.Fatalf("first chunk control %#02x doesn't reset the"+
			" dictionary", h.control)
	}
	decoded, err := Decode2(stream, Reader2Config{})
	if err != nil {
		t.Fatalf("Decode2 error %s", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("decoded data differs from original")
	}
}

func TestWriter2Flush(t *testing.T) {
	buf := new(bytes.Buffer)
	w, err := NewWriter2(buf)
	if err != nil {
		t.Fatalf("NewWriter2 error %s", err)
	}
	data := sampleText(100000)
	if _, err = w.Write(data[:33333]); err != nil {
		t.Fatalf("w.Write error %s", err)
	}
	if err = w.Flush(); err != nil {
		t.Fatalf("w.Flush error %s", err)
	}
	if _, err = w.Write(data[33333:]); err != nil {
		t.Fatalf("w.Write error %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("w.Close error %s", err)
	}
	if _, err = w.Write([]byte{1}); err != errClosed {
		t.Fatalf("Write after Close error %v; want %v", err,
			errClosed)
	}
	decoded, err := Decode2(buf.Bytes(), Reader2Config{})
	if err != nil {
		t.Fatalf("Decode2 error %s", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("decoded data differs from original")
	}
}

func TestStandalone(t *testing.T) {
	data := sampleText(50000)
	cfg := Writer2Config{DictSize: 1 << 16, Standalone: true}
	stream, err := Encode2(data, cfg)
	if err != nil {
		t.Fatalf("Encode2 error %s", err)
	}
	if stream[0] != EncodeDictSize(1<<16) {
		t.Fatalf("stream starts with %#02x; want dictionary size"+
			" code %#02x", stream[0], EncodeDictSize(1<<16))
	}
	// the reader takes the dictionary size from the stream
	decoded, err := Decode2(stream, Reader2Config{Standalone: true})
	if err != nil {
		t.Fatalf("Decode2 error %s", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("decoded data differs from original")
	}
}

func TestReader2Reject(t *testing.T) {
	tests := []struct {
		name   string
		stream []byte
		err    error
	}{
		{"no dict reset", []byte{cU, 0, 0, 'x', cEOS},
			ErrUnexpectedChunk},
		{"props missing", []byte{0x80, 0, 0, 0, 0, cEOS},
			ErrPropsMissing},
		{"malformed control", []byte{0x7f, 0, 0}, ErrMalformedControl},
		{"empty stream", nil, io.ErrUnexpectedEOF},
		{"truncated data", []byte{cUD, 0, 9, 'x'},
			io.ErrUnexpectedEOF},
	}
	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode2(c.stream, Reader2Config{})
			if err != c.err {
				t.Fatalf("Decode2 error %v; want %v", err,
					c.err)
			}
		})
	}
}

func TestReader2Corruption(t *testing.T) {
	orig := sampleText(200000)
	stream, err := Encode2(orig, Writer2Config{})
	if err != nil {
		t.Fatalf("Encode2 error %s", err)
	}
	for _, i := range []int{len(stream) / 3, len(stream) / 2} {
		bad := make([]byte, len(stream))
		copy(bad, stream)
		bad[i] ^= 0x40
		data, err := Decode2(bad, Reader2Config{})
		if err == nil && bytes.Equal(data, orig) {
			t.Fatalf("flipped bit at offset %d not detected", i)
		}
	}
}

func TestWriter2SmallDict(t *testing.T) {
	// dictionary smaller than the chunk size limit
	data := sampleText(300000)
	cfg := Writer2Config{DictSize: MinDictSize}
	stream, err := Encode2(data, cfg)
	if err != nil {
		t.Fatalf("Encode2 error %s", err)
	}
	decoded, err := Decode2(stream, Reader2Config{DictSize: MinDictSize})
	if err != nil {
		t.Fatalf("Decode2 error %s", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("decoded data differs from original")
	}
}
