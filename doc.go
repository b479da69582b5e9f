// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lzma provides the LZMA and LZMA2 compression methods as used by
// the 7z, XZ and RAR5 container formats.
//
// The package supports two stream formats. The classic LZMA format starts
// with a 13-byte header carrying the properties byte, the dictionary size
// and the uncompressed size; it is handled by Reader and Writer. The LZMA2
// format splits the compressed data into chunks with explicit dictionary
// and state reset flags; it is handled by Reader2 and Writer2. Containers
// that store the parameters themselves can omit the headers.
//
// The one-shot functions Encode2 and Decode2 operate on byte slices.
package lzma
