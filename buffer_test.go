// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"testing"
)

func mustBuffer(t *testing.T, capacity int) *buffer {
	t.Helper()
	b := new(buffer)
	if err := initBuffer(b, capacity); err != nil {
		t.Fatalf("initBuffer(b, %d) error %s", capacity, err)
	}
	return b
}

func TestBufferWrap(t *testing.T) {
	b := mustBuffer(t, 10)
	p := []byte("abcdefg")
	if n, err := b.Write(p); err != nil || n != len(p) {
		t.Fatalf("Write returned %d, %v; want %d, nil", n, err, len(p))
	}
	q := make([]byte, 4)
	if n, err := b.Read(q); err != nil || n != 4 {
		t.Fatalf("Read returned %d, %v; want 4, nil", n, err)
	}
	if !bytes.Equal(q, p[:4]) {
		t.Fatalf("Read returned %q; want %q", q, p[:4])
	}
	// the second write wraps around the end of the backing slice
	r := []byte("hijklmn")
	if n, err := b.Write(r); err != nil || n != len(r) {
		t.Fatalf("Write returned %d, %v; want %d, nil", n, err, len(r))
	}
	if b.Buffered() != 10 {
		t.Fatalf("Buffered() returned %d; want 10", b.Buffered())
	}
	s := make([]byte, 10)
	if n, err := b.Read(s); err != nil || n != 10 {
		t.Fatalf("Read returned %d, %v; want 10, nil", n, err)
	}
	want := []byte("efghijklmn")
	if !bytes.Equal(s, want) {
		t.Fatalf("Read returned %q; want %q", s, want)
	}
}

func TestBufferNoSpace(t *testing.T) {
	b := mustBuffer(t, 4)
	n, err := b.Write([]byte("abcde"))
	if err != errNoSpace {
		t.Fatalf("Write error %v; want %v", err, errNoSpace)
	}
	if n != 4 {
		t.Fatalf("Write returned %d; want 4", n)
	}
	if err := b.WriteByte('a'); err != errNoSpace {
		t.Fatalf("WriteByte error %v; want %v", err, errNoSpace)
	}
}

func TestBufferPeek(t *testing.T) {
	b := mustBuffer(t, 8)
	if _, err := b.Write([]byte("abcd")); err != nil {
		t.Fatalf("Write error %s", err)
	}
	p := make([]byte, 6)
	n, err := b.Peek(p)
	if err != nil {
		t.Fatalf("Peek error %s", err)
	}
	if n != 4 {
		t.Fatalf("Peek returned %d bytes; want 4", n)
	}
	if b.Buffered() != 4 {
		t.Fatalf("Peek consumed data; Buffered() is %d", b.Buffered())
	}
}

func TestBufferEqualBytes(t *testing.T) {
	b := mustBuffer(t, 16)
	if _, err := b.Write([]byte("abcabcabc")); err != nil {
		t.Fatalf("Write error %s", err)
	}
	// drain so front and rear differ
	if _, err := b.Read(make([]byte, 9)); err != nil {
		t.Fatalf("Read error %s", err)
	}
	n := b.EqualBytes(6, 3, 10)
	if n != 3 {
		t.Fatalf("EqualBytes(6, 3, 10) returned %d; want 3", n)
	}
	n = b.EqualBytes(9, 9, 5)
	if n != 5 {
		t.Fatalf("EqualBytes(9, 9, 5) returned %d; want 5", n)
	}
}
