// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "errors"

// Errors reported while decoding LZMA2 chunk streams. The range coder has
// no resynchronization mechanism, so all of them are terminal for the
// stream at hand.
var (
	// ErrMalformedControl reports a chunk control byte that doesn't
	// describe any chunk type.
	ErrMalformedControl = errors.New("lzma: malformed chunk control byte")

	// ErrPropsMissing reports a compressed chunk that requires
	// properties although none have been provided by the stream so far.
	ErrPropsMissing = errors.New(
		"lzma: compressed chunk without properties")

	// ErrUnexpectedChunk reports a chunk that violates the reset
	// discipline of the chunk stream, for instance a compressed chunk
	// without a state reset directly after an uncompressed chunk.
	ErrUnexpectedChunk = errors.New("lzma: unexpected chunk control byte")

	// ErrDistance reports a match distance that exceeds the data
	// currently covered by the dictionary.
	ErrDistance = errors.New("lzma: match distance out of range")

	// ErrUnexpectedEOS reports an end-of-stream marker in a position
	// where the format doesn't permit one.
	ErrUnexpectedEOS = errors.New("lzma: unexpected end-of-stream marker")

	// ErrEncoding reports a compressed chunk whose payload is
	// inconsistent with the sizes declared in its header.
	ErrEncoding = errors.New("lzma: wrong encoding")
)

// errClosed is returned for operations on closed readers or writers.
var errClosed = errors.New("lzma: already closed")
