// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "errors"

// Minimum and maximum size of the dictionary.
const (
	MinDictSize = 1 << 12
	MaxDictSize = 1<<32 - 1
)

// maxDictSizeCode is the largest valid dictionary size code.
const maxDictSizeCode = 40

// decodeDictSize decodes the dictionary size code without range checking.
func decodeDictSize(c byte) int64 {
	return (2 | int64(c)&1) << (11 + (c>>1)&0x1f)
}

// DecodeDictSize decodes the encoded dictionary size as used by the
// standalone LZMA2 header. The function returns an error if the code is
// out of range.
func DecodeDictSize(c byte) (n int64, err error) {
	if c >= maxDictSizeCode {
		if c == maxDictSizeCode {
			return MaxDictSize, nil
		}
		return 0, errors.New("lzma: invalid dictionary size code")
	}
	return decodeDictSize(c), nil
}

// EncodeDictSize encodes a dictionary size. The function returns the code
// for the smallest dictionary size that is greater than or equal to n. If
// n exceeds the maximum supported dictionary size, the maximum code is
// returned.
func EncodeDictSize(n int64) byte {
	a, b := byte(0), byte(maxDictSizeCode)
	for a < b {
		c := a + (b-a)>>1
		m := decodeDictSize(c)
		if n <= m {
			if n == m {
				return c
			}
			b = c
		} else {
			a = c + 1
		}
	}
	return a
}
