// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "testing"

func TestHashTableMatches(t *testing.T) {
	ht, err := newHashTable(32)
	if err != nil {
		t.Fatalf("newHashTable(32) error %s", err)
	}
	if _, err := ht.Write([]byte("abcdabcdabcd")); err != nil {
		t.Fatalf("Write error %s", err)
	}
	positions := make([]int64, 4)
	n := ht.Matches([]byte("abcd"), positions)
	if n != 3 {
		t.Fatalf("Matches returned %d positions; want 3", n)
	}
	want := []int64{8, 4, 0}
	for i, p := range positions[:n] {
		if p != want[i] {
			t.Errorf("position %d: got %d; want %d", i, p, want[i])
		}
	}

	ht.Reset()
	if n = ht.Matches([]byte("abcd"), positions); n != 0 {
		t.Fatalf("Matches after Reset returned %d positions; want 0",
			n)
	}
}

func TestHashTableEviction(t *testing.T) {
	ht, err := newHashTable(8)
	if err != nil {
		t.Fatalf("newHashTable(8) error %s", err)
	}
	// the first occurrence of the word falls out of the dictionary
	if _, err := ht.Write([]byte("abcd0123456789abcd")); err != nil {
		t.Fatalf("Write error %s", err)
	}
	positions := make([]int64, 4)
	n := ht.Matches([]byte("abcd"), positions)
	if n != 1 {
		t.Fatalf("Matches returned %d positions; want 1", n)
	}
	if positions[0] != 14 {
		t.Fatalf("Matches returned position %d; want 14", positions[0])
	}
}

func TestHashTableExponent(t *testing.T) {
	tests := []struct {
		dictCap uint32
		e       int
	}{
		{1, 10}, {1 << 12, 11}, {1 << 16, 15}, {1 << 20, 19},
		{1 << 26, 24}, {1<<32 - 1, 24},
	}
	for _, c := range tests {
		e := hashTableExponent(c.dictCap)
		if e != c.e {
			t.Errorf("hashTableExponent(%d) returned %d; want %d",
				c.dictCap, e, c.e)
		}
	}
}
