// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"testing"
)

func TestLengthCodec(t *testing.T) {
	// lengths cover the low, mid and high trees
	lengths := []uint32{
		minMatchLen, minMatchLen + 7, minMatchLen + 8,
		minMatchLen + 23, minMatchLen + 24, maxMatchLen,
	}

	var buf bytes.Buffer
	e := newRangeEncoder(&buf)
	var ec lengthCodec
	ec.init()
	for i, l := range lengths {
		posState := uint32(i) & 3
		if err := ec.Encode(e, l-minMatchLen, posState); err != nil {
			t.Fatalf("Encode(%d) error %s", l, err)
		}
	}
	if err := e.Close(); err != nil {
		t.Fatalf("e.Close() error %s", err)
	}

	var d rangeDecoder
	if err := d.init(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("d.init error %s", err)
	}
	var dc lengthCodec
	dc.init()
	for i, l := range lengths {
		posState := uint32(i) & 3
		x, err := dc.Decode(&d, posState)
		if err != nil {
			t.Fatalf("Decode error %s", err)
		}
		if x+minMatchLen != l {
			t.Fatalf("Decode returned %d; want %d",
				x+minMatchLen, l)
		}
	}
}

func TestLengthCodecRange(t *testing.T) {
	var buf bytes.Buffer
	e := newRangeEncoder(&buf)
	var c lengthCodec
	c.init()
	if err := c.Encode(e, maxMatchLen-minMatchLen+1, 0); err == nil {
		t.Fatalf("Encode accepts length beyond %d", maxMatchLen)
	}
}
