// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "testing"

func TestHeaderMarshalling(t *testing.T) {
	tests := []header{
		{properties: defaultProperties, dictCap: 8 * 1024 * 1024,
			size: -1},
		{properties: Properties{LC: 0, LP: 1, PB: 0},
			dictCap: MinDictSize, size: 1024},
	}
	for _, h := range tests {
		data, err := h.marshalBinary()
		if err != nil {
			t.Fatalf("marshalBinary error %s", err)
		}
		if len(data) != headerLen {
			t.Fatalf("header length %d; want %d", len(data),
				headerLen)
		}
		var g header
		if err = g.unmarshalBinary(data); err != nil {
			t.Fatalf("unmarshalBinary error %s", err)
		}
		if g != h {
			t.Fatalf("unmarshalBinary returned %v; want %v", g, h)
		}
	}
}

func TestValidHeader(t *testing.T) {
	h := header{
		properties: defaultProperties,
		dictCap:    8 * 1024 * 1024,
		size:       -1,
	}
	data, err := h.marshalBinary()
	if err != nil {
		t.Fatalf("marshalBinary error %s", err)
	}
	if !ValidHeader(data) {
		t.Errorf("ValidHeader rejects header %v", h)
	}
	data[0] = 225
	if ValidHeader(data) {
		t.Errorf("ValidHeader accepts invalid properties byte")
	}
}
