// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/lzma"
)

// packer transforms the data of a single file.
type packer interface {
	outputPaths(path string) (outputPath, tmpPath string, err error)
	pack(w io.Writer, r io.Reader, p preset) (n int64, err error)
}

const (
	lzmaSuffix  = ".lzma"
	lzma2Suffix = ".lz2"
)

func packPaths(path, suffix string) (out, tmp string, err error) {
	if path == "-" {
		return "-", "-", nil
	}
	if path == "" {
		return "", "", errors.New("path is empty")
	}
	if strings.HasSuffix(path, suffix) {
		return "", "", fmt.Errorf("path %s has suffix %s -- ignored",
			path, suffix)
	}
	out = path + suffix
	tmp = out + ".pack"
	return out, tmp, nil
}

func unpackPaths(path, suffix string) (out, tmp string, err error) {
	if path == "-" {
		return "-", "-", nil
	}
	if !strings.HasSuffix(path, suffix) {
		return "", "", fmt.Errorf("path %s has no suffix %s",
			path, suffix)
	}
	if filepath.Base(path) == suffix {
		return "", "", fmt.Errorf(
			"path %s has only suffix %s as filename",
			path, suffix)
	}
	out = path[:len(path)-len(suffix)]
	tmp = out + ".unpack"
	return out, tmp, nil
}

// lzmaPacker compresses into the classic format.
type lzmaPacker struct{}

func (lzmaPacker) outputPaths(path string) (out, tmp string, err error) {
	return packPaths(path, lzmaSuffix)
}

func (lzmaPacker) pack(w io.Writer, r io.Reader, p preset) (n int64, err error) {
	bw := bufio.NewWriter(w)
	cfg := lzma.WriterConfig{DictCap: dictSize(p)}
	lw, err := cfg.NewWriter(bw)
	if err != nil {
		return 0, err
	}
	if n, err = io.Copy(lw, r); err != nil {
		return n, err
	}
	if err = lw.Close(); err != nil {
		return n, err
	}
	return n, bw.Flush()
}

type lzmaUnpacker struct{}

func (lzmaUnpacker) outputPaths(path string) (out, tmp string, err error) {
	return unpackPaths(path, lzmaSuffix)
}

func (lzmaUnpacker) pack(w io.Writer, r io.Reader, p preset) (n int64, err error) {
	lr, err := lzma.NewReader(bufio.NewReader(r))
	if err != nil {
		return 0, err
	}
	return io.Copy(w, lr)
}

// lzma2Packer compresses into a standalone LZMA2 chunk stream. The
// dictionary size is stored in the stream itself.
type lzma2Packer struct{}

func (lzma2Packer) outputPaths(path string) (out, tmp string, err error) {
	return packPaths(path, lzma2Suffix)
}

func (lzma2Packer) pack(w io.Writer, r io.Reader, p preset) (n int64, err error) {
	bw := bufio.NewWriter(w)
	cfg := lzma.Writer2Config{DictSize: dictSize(p), Standalone: true}
	lw, err := lzma.NewWriter2Config(bw, cfg)
	if err != nil {
		return 0, err
	}
	if n, err = io.Copy(lw, r); err != nil {
		return n, err
	}
	if err = lw.Close(); err != nil {
		return n, err
	}
	return n, bw.Flush()
}

type lzma2Unpacker struct{}

func (lzma2Unpacker) outputPaths(path string) (out, tmp string, err error) {
	return unpackPaths(path, lzma2Suffix)
}

func (lzma2Unpacker) pack(w io.Writer, r io.Reader, p preset) (n int64, err error) {
	cfg := lzma.Reader2Config{Standalone: true}
	lr, err := lzma.NewReader2Config(bufio.NewReader(r), cfg)
	if err != nil {
		return 0, err
	}
	return io.Copy(w, lr)
}

// signalHandler removes the temporary file if the program is
// interrupted.
func signalHandler(tmpPath string) chan<- struct{} {
	quit := make(chan struct{})
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt)
	go func() {
		select {
		case <-quit:
			signal.Stop(sigch)
			return
		case <-sigch:
			if tmpPath != "-" {
				os.Remove(tmpPath)
			}
			os.Exit(7)
		}
	}()
	return quit
}

func packFile(pck packer, path, tmpPath string, opts *options) (err error) {
	var r *os.File
	if path == "-" {
		r = os.Stdin
	} else {
		fi, err := os.Lstat(path)
		if err != nil {
			return err
		}
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("%s is not a regular file", path)
		}
		r, err = os.Open(path)
		if err != nil {
			return err
		}
	}
	defer func() {
		if err != nil {
			r.Close()
		} else {
			err = r.Close()
		}
	}()

	var w *os.File
	if tmpPath == "-" {
		w = os.Stdout
	} else {
		if opts.force {
			os.Remove(tmpPath)
		}
		w, err = os.OpenFile(tmpPath,
			os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				w.Close()
			} else {
				err = w.Close()
			}
		}()
	}

	_, err = pck.pack(w, r, opts.preset)
	return err
}

// userPathError represents a path error presentable to a user. In
// difference to os.PathError it removes the information of the
// operation returning the error.
type userPathError struct {
	Path string
	Err  error
}

func (e *userPathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// userError strips the operation from a path error because it is not
// relevant for users of the program.
func userError(err error) error {
	pe, ok := err.(*os.PathError)
	if !ok {
		return err
	}
	return &userPathError{Path: pe.Path, Err: pe.Err}
}

func warn(opts *options, err error) {
	if !opts.quiet {
		log.Print(userError(err))
	}
}

func processFile(path string, opts *options) {
	var pck packer
	switch {
	case opts.decompress && opts.lzma2:
		pck = lzma2Unpacker{}
	case opts.decompress:
		pck = lzmaUnpacker{}
	case opts.lzma2:
		pck = lzma2Packer{}
	default:
		pck = lzmaPacker{}
	}
	outputPath, tmpPath, err := pck.outputPaths(path)
	if err != nil {
		warn(opts, err)
		return
	}
	if opts.stdout {
		outputPath, tmpPath = "-", "-"
	}
	if outputPath != "-" {
		if _, err = os.Lstat(outputPath); err == nil && !opts.force {
			warn(opts, fmt.Errorf("file %s exists", outputPath))
			return
		}
	}
	defer func() {
		if tmpPath != "-" {
			os.Remove(tmpPath)
		}
	}()
	quit := signalHandler(tmpPath)
	defer close(quit)

	if err = packFile(pck, path, tmpPath, opts); err != nil {
		warn(opts, err)
		return
	}
	if tmpPath != "-" && outputPath != "-" {
		if err = os.Rename(tmpPath, outputPath); err != nil {
			warn(opts, err)
			return
		}
	}
	if !opts.keep && !opts.stdout && path != "-" {
		if err = os.Remove(path); err != nil {
			warn(opts, err)
		}
	}
}
