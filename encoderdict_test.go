// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"testing"
)

func TestEncoderDictNextOp(t *testing.T) {
	d, err := newEncoderDict(1024, 1024)
	if err != nil {
		t.Fatalf("newEncoderDict error %s", err)
	}
	if _, err = d.Write([]byte("abcabcabd")); err != nil {
		t.Fatalf("Write error %s", err)
	}
	var ops []operation
	for d.Buffered() > 0 {
		op := d.NextOp(0)
		ops = append(ops, op)
		d.DiscardOp(op)
	}
	want := []operation{
		lit{'a'}, lit{'b'}, lit{'c'},
		match{distance: 3, n: 5},
		lit{'d'},
	}
	if len(ops) != len(want) {
		t.Fatalf("got %d operations; want %d: %v", len(ops),
			len(want), ops)
	}
	for i, op := range ops {
		if op != want[i] {
			t.Errorf("operation %d is %v; want %v", i, op,
				want[i])
		}
	}
	if d.Pos() != 9 {
		t.Errorf("Pos() returned %d; want 9", d.Pos())
	}
}

func TestEncoderDictCopyN(t *testing.T) {
	d, err := newEncoderDict(32, 32)
	if err != nil {
		t.Fatalf("newEncoderDict error %s", err)
	}
	p := []byte("0123456789")
	if _, err = d.Write(p); err != nil {
		t.Fatalf("Write error %s", err)
	}
	for d.Buffered() > 0 {
		op := d.NextOp(0)
		d.DiscardOp(op)
	}
	buf := new(bytes.Buffer)
	n, err := d.CopyN(buf, 10)
	if err != nil {
		t.Fatalf("CopyN error %s", err)
	}
	if n != 10 {
		t.Fatalf("CopyN copied %d bytes; want 10", n)
	}
	if !bytes.Equal(buf.Bytes(), p) {
		t.Fatalf("CopyN copied %q; want %q", buf.Bytes(), p)
	}
	if b := d.ByteAt(1); b != '9' {
		t.Errorf("ByteAt(1) returned %q; want '9'", b)
	}
	if b := d.ByteAt(10); b != '0' {
		t.Errorf("ByteAt(10) returned %q; want '0'", b)
	}
	if b := d.ByteAt(11); b != 0 {
		t.Errorf("ByteAt(11) returned %d; want 0", b)
	}
}
