// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "math/bits"

// Constants used by the distance codec.
const (
	// minimum supported distance
	minDistance = 1
	// maximum supported distance, value is used for the eos marker
	maxDistance = 1 << 32
	// number of length states used for distance slot selection
	lenStates = 4
	// first distance slot with an individual position model
	startPosModel = 4
	// first distance slot using direct bits
	endPosModel = 14
	// number of bits of a distance slot
	posSlotBits = 6
	// number of adaptively coded align bits
	alignBits = 4
)

// eosDist is the distance offset that marks the end of the stream.
const eosDist = 1<<32 - 1

// distCodec provides encoding and decoding of distance offset values. A
// distance offset is the match distance minus one; the offset eosDist
// marks the end of the stream.
type distCodec struct {
	posSlotCodecs [lenStates]treeCodec
	posModel      [endPosModel - startPosModel]treeReverseCodec
	alignCodec    treeReverseCodec
}

// init initializes the distance codec.
func (c *distCodec) init() {
	for i := range c.posSlotCodecs {
		c.posSlotCodecs[i] = makeTreeCodec(posSlotBits)
	}
	for i := range c.posModel {
		posSlot := startPosModel + i
		bits := (posSlot >> 1) - 1
		c.posModel[i] = makeTreeReverseCodec(bits)
	}
	c.alignCodec = makeTreeReverseCodec(alignBits)
}

// deepCopy initializes the distance codec as a deep copy of the source.
func (c *distCodec) deepCopy(src *distCodec) {
	if c == src {
		return
	}
	for i := range c.posSlotCodecs {
		c.posSlotCodecs[i].deepCopy(&src.posSlotCodecs[i].probTree)
	}
	for i := range c.posModel {
		c.posModel[i].deepCopy(&src.posModel[i].probTree)
	}
	c.alignCodec.deepCopy(&src.alignCodec.probTree)
}

// lenState converts the length offset l into a supported lenState value.
func lenState(l uint32) uint32 {
	if l >= lenStates {
		l = lenStates - 1
	}
	return l
}

// distSlot computes the distance slot for a distance offset. The slot is a
// log2-like bucket: slots below startPosModel equal the offset itself; for
// larger offsets the slot encodes the position of the leading bit and the
// bit below it.
func distSlot(dist uint32) (slot uint32, nbits uint32) {
	if dist < startPosModel {
		return dist, 0
	}
	nbits = uint32(30 - bits.LeadingZeros32(dist))
	slot = startPosModel - 2 + (nbits << 1)
	slot += (dist >> uint(nbits)) & 1
	return slot, nbits
}

// Encode encodes the distance offset dist using the length offset l to
// select the slot codec. Slots below startPosModel carry the complete
// offset; middle slots add a reverse bit tree; large slots add direct bits
// and the adaptively coded align bits.
func (c *distCodec) Encode(e *rangeEncoder, dist uint32, l uint32,
) (err error) {
	slot, nbits := distSlot(dist)
	if err = c.posSlotCodecs[lenState(l)].Encode(e, slot); err != nil {
		return
	}
	switch {
	case slot < startPosModel:
		return nil
	case slot < endPosModel:
		tc := &c.posModel[slot-startPosModel]
		return tc.Encode(e, dist)
	}
	dc := directCodec(nbits - alignBits)
	if err = dc.Encode(e, dist>>alignBits); err != nil {
		return
	}
	return c.alignCodec.Encode(e, dist)
}

// Decode decodes a distance offset using the length offset l. The offset
// eosDist indicates the end of the stream. Add one to the distance offset
// to get the actual match distance.
func (c *distCodec) Decode(d *rangeDecoder, l uint32,
) (dist uint32, err error) {
	slot, err := c.posSlotCodecs[lenState(l)].Decode(d)
	if err != nil {
		return
	}

	// the slot equals the distance offset
	if slot < startPosModel {
		return slot, nil
	}

	// the slot provides the two top bits of the offset
	nbits := (slot >> 1) - 1
	dist = (2 | (slot & 1)) << nbits

	var u uint32
	if slot < endPosModel {
		tc := &c.posModel[slot-startPosModel]
		if u, err = tc.Decode(d); err != nil {
			return 0, err
		}
		return dist + u, nil
	}

	// large slots use direct bits and the align bit model
	dc := directCodec(nbits - alignBits)
	if u, err = dc.Decode(d); err != nil {
		return 0, err
	}
	dist += u << alignBits
	if u, err = c.alignCodec.Decode(d); err != nil {
		return 0, err
	}
	return dist + u, nil
}
