// mafkit: a toolkit for analyzing multiple alignment format (MAF) files.
// Copyright (c) 2021 the mafkit authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License along with this program. If not, see
// <https://github.com/compgen/mafkit/blob/master/LICENSE.txt>.

// Package split reroutes a stream of MAF blocks into per-chromosome
// output files bounded by a maximum reference-aligned length.
package split

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/compgen/mafkit/maf"
)

// DefaultMaxLength is the default maximum aligned length, in
// reference coordinates, per output file.
const DefaultMaxLength = 100000

// FileHeader is the comment line every split output file starts with.
const FileHeader = "##maf version=1\n"

// A Splitter decides output file boundaries for a stream of blocks:
// a new file starts on every new reference chromosome, and whenever
// the accumulated reference aligned length exceeds the configured
// maximum. It carries no file handles; see Writer.
type Splitter struct {
	maxLength int64
	chrom     string
	length    int64
	open      bool
}

// NewSplitter returns a Splitter with the given maximum aligned
// length per file.
func NewSplitter(maxLength int64) *Splitter {
	return &Splitter{maxLength: maxLength}
}

// Place decides where the block goes. When the block must start a new
// file, newFile is true and chrom and start name it. Blocks without
// aligned entries stay in the current file. The reference is the
// block's first aligned entry.
func (s *Splitter) Place(block *maf.Block) (chrom string, start int64, newFile bool) {
	aligned := block.AlignedEntries()
	if len(aligned) == 0 {
		return "", 0, false
	}
	refEntry := aligned[0]
	refChrom := maf.Chrom(refEntry.Seq)
	if !s.open || refChrom != s.chrom || s.length+refEntry.AlignedLength > s.maxLength {
		s.open = true
		s.chrom = refChrom
		s.length = refEntry.AlignedLength
		return refChrom, refEntry.Start, true
	}
	s.length += refEntry.AlignedLength
	return "", 0, false
}

// A Writer writes blocks to files named "<chrom>.<start>.maf" in an
// output directory, switching files as its Splitter dictates. Each
// file starts with the MAF version header.
type Writer struct {
	splitter *Splitter
	dir      string
	file     *os.File
	out      *bufio.Writer
	buf      []byte
}

// NewWriter returns a Writer placing files in the given directory.
func NewWriter(dir string, maxLength int64) *Writer {
	return &Writer{splitter: NewSplitter(maxLength), dir: dir}
}

// WriteBlock writes the block to the correct file, opening a new one
// if needed. A block without aligned entries before the first
// reference block is an error, since no file is open for it yet.
func (w *Writer) WriteBlock(block *maf.Block) error {
	if chrom, start, newFile := w.splitter.Place(block); newFile {
		if err := w.Close(); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(w.dir, fmt.Sprintf("%v.%v.maf", chrom, start)))
		if err != nil {
			return err
		}
		w.file = file
		w.out = bufio.NewWriter(file)
		if _, err := w.out.WriteString(FileHeader); err != nil {
			return err
		}
	}
	if w.out == nil {
		return errors.New("block without aligned entries before any reference block")
	}
	w.buf = block.Format(w.buf[:0])
	_, err := w.out.Write(w.buf)
	return err
}

// Close flushes and closes the current output file, if any.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	if err := w.out.Flush(); err != nil {
		return err
	}
	err := w.file.Close()
	w.file, w.out = nil, nil
	return err
}
