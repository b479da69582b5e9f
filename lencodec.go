// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "errors"

// minMatchLen and maxMatchLen give the minimum and maximum values for
// encoding and decoding length values. minMatchLen is also used as base
// for the encoded length values.
const (
	minMatchLen = 2
	maxMatchLen = minMatchLen + 16 + 256 - 1
)

// lengthCodec supports the encoding of the length value. Lengths are
// encoded as offsets from minMatchLen in three tiers: 3 bits for offsets
// below 8, 3 bits for offsets below 16 and 8 bits for the rest. Two
// choice bits select the tier.
type lengthCodec struct {
	choice [2]prob
	low    [1 << maxPosBits]treeCodec
	mid    [1 << maxPosBits]treeCodec
	high   treeCodec
}

// init initializes a new length codec.
func (c *lengthCodec) init() {
	for i := range c.choice {
		c.choice[i] = probInit
	}
	for i := range c.low {
		c.low[i] = makeTreeCodec(3)
	}
	for i := range c.mid {
		c.mid[i] = makeTreeCodec(3)
	}
	c.high = makeTreeCodec(8)
}

// deepCopy initializes the length codec as a deep copy of the source.
func (c *lengthCodec) deepCopy(src *lengthCodec) {
	if c == src {
		return
	}
	c.choice = src.choice
	for i := range c.low {
		c.low[i].deepCopy(&src.low[i].probTree)
	}
	for i := range c.mid {
		c.mid[i].deepCopy(&src.mid[i].probTree)
	}
	c.high.deepCopy(&src.high.probTree)
}

// Encode encodes the length offset. The length offset l can be computed by
// subtracting minMatchLen (2) from the actual length.
//
//	l = length - minMatchLen
func (c *lengthCodec) Encode(e *rangeEncoder, l uint32, posState uint32,
) (err error) {
	if l > maxMatchLen-minMatchLen {
		return errors.New("lzma: length out of range")
	}
	if l < 8 {
		if err = e.EncodeBit(0, &c.choice[0]); err != nil {
			return
		}
		return c.low[posState].Encode(e, l)
	}
	if err = e.EncodeBit(1, &c.choice[0]); err != nil {
		return
	}
	if l < 16 {
		if err = e.EncodeBit(0, &c.choice[1]); err != nil {
			return
		}
		return c.mid[posState].Encode(e, l-8)
	}
	if err = e.EncodeBit(1, &c.choice[1]); err != nil {
		return
	}
	return c.high.Encode(e, l-16)
}

// Decode reads the length offset. Add minMatchLen to the length offset l
// to compute the actual length.
func (c *lengthCodec) Decode(d *rangeDecoder, posState uint32,
) (l uint32, err error) {
	var b uint32
	if b, err = d.DecodeBit(&c.choice[0]); err != nil {
		return
	}
	if b == 0 {
		l, err = c.low[posState].Decode(d)
		return
	}
	if b, err = d.DecodeBit(&c.choice[1]); err != nil {
		return
	}
	if b == 0 {
		l, err = c.mid[posState].Decode(d)
		l += 8
		return
	}
	l, err = c.high.Decode(d)
	l += 16
	return
}
