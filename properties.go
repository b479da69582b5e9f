// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"fmt"
)

// Limits for the properties.
const (
	MinLC = 0
	MaxLC = 8
	MinLP = 0
	MaxLP = 4
	MinPB = 0
	MaxPB = 4
)

// Properties provide the LZMA properties: the number of literal context
// bits (LC), literal position bits (LP) and position bits (PB).
type Properties struct {
	LC int
	LP int
	PB int
}

// String returns the properties in the form "LC LP PB".
func (p Properties) String() string {
	return fmt.Sprintf("LC %d LP %d PB %d", p.LC, p.LP, p.PB)
}

// Verify checks the properties for correctness. The sum of LC and LP must
// not exceed 4; this restriction comes from the LZMA SDK and keeps the
// memory requirements of the literal codec bounded.
func (p Properties) Verify() error {
	if !(MinLC <= p.LC && p.LC <= MaxLC) {
		return errors.New("lzma: LC out of range 0..8")
	}
	if !(MinLP <= p.LP && p.LP <= MaxLP) {
		return errors.New("lzma: LP out of range 0..4")
	}
	if !(MinPB <= p.PB && p.PB <= MaxPB) {
		return errors.New("lzma: PB out of range 0..4")
	}
	if p.LC+p.LP > 4 {
		return errors.New("lzma: sum of LC and LP exceeds 4")
	}
	return nil
}

// byte returns the byte that encodes the properties.
func (p Properties) byte() byte {
	return byte((p.PB*5+p.LP)*9 + p.LC)
}

// fromByte sets the properties from the encoded byte.
func (p *Properties) fromByte(b byte) error {
	if b > (4*5+4)*9+8 {
		return errors.New("lzma: invalid properties byte")
	}
	p.LC = int(b % 9)
	b /= 9
	p.LP = int(b % 5)
	p.PB = int(b / 5)
	return nil
}

// defaultProperties are used if no properties have been provided.
var defaultProperties = Properties{LC: 3, LP: 0, PB: 2}
