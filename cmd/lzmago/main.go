// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lzmago compresses and decompresses files in the .lzma format
// and the raw LZMA2 chunk format.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/ogier/pflag"
)

const usageStr = `Usage: lzmago [OPTION]... [FILE]...
Compress or uncompress FILEs in the .lzma format (by default, compress
FILES in place).

  -2, --lzma2       use the LZMA2 chunk format and the .lz2 suffix
  -c, --stdout      write to standard output and don't delete input files
  -d, --decompress  force decompression
  -f, --force       force overwrite of output file
  -h, --help        give this help
  -k, --keep        keep (don't delete) input files
  -q, --quiet       suppress all warnings
  -0 ... -9         compression preset; default is 6

With no file, or when FILE is -, read standard input.
`

// preset collects a compression preset given as -0 to -9 flag.
type preset int

const defaultPreset preset = 6

// filterArg removes preset digits from a flag argument and records the
// last one.
func (p *preset) filterArg(arg string) string {
	if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
		return arg
	}
	buf := new(bytes.Buffer)
	buf.Grow(len(arg))
	for _, c := range arg {
		if '0' <= c && c <= '9' {
			*p = preset(c - '0')
			continue
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

// filter removes the preset digits from the command line before the
// flag package parses it.
func (p *preset) filter() {
	args := make([]string, 1, len(os.Args))
	args[0] = os.Args[0]
	for i, arg := range os.Args[1:] {
		if arg == "--" {
			args = append(args, os.Args[1+i:]...)
			break
		}
		arg = p.filterArg(arg)
		if arg != "-" {
			args = append(args, arg)
		}
	}
	os.Args = args
}

// dictSize maps a preset to a dictionary size.
func dictSize(p preset) int {
	dictSizeExps := []uint{18, 20, 21, 22, 22, 23, 23, 24, 25, 26}
	return 1 << dictSizeExps[p]
}

type options struct {
	lzma2      bool
	stdout     bool
	decompress bool
	force      bool
	keep       bool
	quiet      bool
	preset     preset
}

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	log.SetPrefix(fmt.Sprintf("%s: ", cmdName))
	log.SetFlags(0)

	pflag.CommandLine = pflag.NewFlagSet(cmdName, pflag.ExitOnError)
	pflag.SetInterspersed(true)
	pflag.Usage = func() { usage(os.Stderr); os.Exit(1) }
	var (
		help       = pflag.BoolP("help", "h", false, "")
		lzma2      = pflag.BoolP("lzma2", "2", false, "")
		stdout     = pflag.BoolP("stdout", "c", false, "")
		decompress = pflag.BoolP("decompress", "d", false, "")
		force      = pflag.BoolP("force", "f", false, "")
		keep       = pflag.BoolP("keep", "k", false, "")
		quiet      = pflag.BoolP("quiet", "q", false, "")
	)

	opts := options{preset: defaultPreset}
	opts.preset.filter()
	pflag.Parse()

	if *help {
		usage(os.Stdout)
		os.Exit(0)
	}
	opts.lzma2 = *lzma2
	opts.stdout = *stdout
	opts.decompress = *decompress
	opts.force = *force
	opts.keep = *keep
	opts.quiet = *quiet

	args := pflag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, path := range args {
		processFile(path, &opts)
	}
}
