// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "testing"

func TestPropertiesByte(t *testing.T) {
	props := []Properties{
		{LC: 3, LP: 0, PB: 2},
		{LC: 0, LP: 0, PB: 0},
		{LC: 1, LP: 3, PB: 4},
	}
	for _, p := range props {
		var q Properties
		if err := q.fromByte(p.byte()); err != nil {
			t.Fatalf("fromByte(%d) error %s", p.byte(), err)
		}
		if q != p {
			t.Fatalf("fromByte(byte()) returned %v; want %v", q, p)
		}
	}
	var p Properties
	if err := p.fromByte(225); err == nil {
		t.Errorf("fromByte(225) accepts invalid properties byte")
	}
}

func TestPropertiesVerify(t *testing.T) {
	if err := (Properties{LC: 3, LP: 2, PB: 2}).Verify(); err == nil {
		t.Errorf("Verify accepts lc+lp > 4")
	}
	if err := (Properties{LC: -1, LP: 0, PB: 2}).Verify(); err == nil {
		t.Errorf("Verify accepts negative lc")
	}
	if err := (Properties{LC: 2, LP: 2, PB: 4}).Verify(); err != nil {
		t.Errorf("Verify error %s", err)
	}
}

func TestDictSizeCodes(t *testing.T) {
	sizes := []int64{MinDictSize, 1 << 16, 3 << 19, 1 << 24, MaxDictSize}
	for _, s := range sizes {
		c := EncodeDictSize(s)
		n, err := DecodeDictSize(c)
		if err != nil {
			t.Fatalf("DecodeDictSize(%d) error %s", c, err)
		}
		if n < s {
			t.Fatalf("code %d decodes to %d; smaller than %d",
				c, n, s)
		}
	}
	if _, err := DecodeDictSize(41); err == nil {
		t.Errorf("DecodeDictSize(41) accepts invalid code")
	}
}
