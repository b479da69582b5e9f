// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"crypto/sha256"
	"io"
	"io/fs"
	"testing"

	"github.com/ulikunitz/zdata"
)

// corpusFiles reads all files of the given corpus file system.
func corpusFiles(fsys fs.FS) (files map[string][]byte, err error) {
	files = make(map[string][]byte)
	err = fs.WalkDir(fsys, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return err
			}
			files[path] = data
			return nil
		})
	return files, err
}

func TestSilesia(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping corpus test in short mode")
	}
	files, err := corpusFiles(zdata.Silesia)
	if err != nil {
		t.Fatalf("corpusFiles(zdata.Silesia) error %s", err)
	}
	if len(files) == 0 {
		t.Fatalf("corpus is empty")
	}
	cfg := Writer2Config{DictSize: 1 << 20}
	for name, data := range files {
		hOrig := sha256.Sum256(data)

		buf := new(bytes.Buffer)
		w, err := NewWriter2Config(buf, cfg)
		if err != nil {
			t.Fatalf("%s: NewWriter2Config error %s", name, err)
		}
		if _, err = w.Write(data); err != nil {
			t.Fatalf("%s: w.Write error %s", name, err)
		}
		if err = w.Close(); err != nil {
			t.Fatalf("%s: w.Close error %s", name, err)
		}
		t.Logf("%s: length %d compressed %d", name, len(data),
			buf.Len())

		r, err := NewReader2(buf, 1<<20)
		if err != nil {
			t.Fatalf("%s: NewReader2 error %s", name, err)
		}
		h := sha256.New()
		n, err := io.Copy(h, r)
		if err != nil {
			t.Fatalf("%s: io.Copy error %s", name, err)
		}
		if n != int64(len(data)) {
			t.Fatalf("%s: decoded %d bytes; want %d", name, n,
				len(data))
		}
		var hDecoded [sha256.Size]byte
		h.Sum(hDecoded[:0])
		if hDecoded != hOrig {
			t.Fatalf("%s: decoded data differs from original",
				name)
		}
	}
}
