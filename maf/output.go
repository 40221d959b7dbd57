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

package maf

import (
	"io"
	"strconv"
)

func (s AlignedStatus) Char() byte {
	switch s {
	case StatusContiguous:
		return 'C'
	case StatusInsertion:
		return 'I'
	case StatusFirstInSequence:
		return 'N'
	case StatusFirstInSequenceBridged:
		return 'n'
	case StatusMissingData:
		return 'M'
	default:
		return 'T'
	}
}

func (s UnalignedStatus) Char() byte {
	switch s {
	case GapDeletion:
		return 'C'
	case GapInsertion:
		return 'I'
	case GapMissingData:
		return 'M'
	case GapNewSequence:
		return 'n'
	default:
		return 'T'
	}
}

// Format appends the canonical text rendering of the block to buf:
// the "a" header with metadata pairs in sorted key order, one line per
// entry with single-space field separation, and a terminating blank
// line. It is the exact inverse of the parser's field layout.
func (block *Block) Format(buf []byte) []byte {
	buf = append(buf, 'a')
	for _, key := range block.Metadata.SortedKeys() {
		buf = append(buf, ' ')
		buf = append(buf, key...)
		buf = append(buf, '=')
		buf = append(buf, block.Metadata[key]...)
	}
	buf = append(buf, '\n')
	for _, entry := range block.Entries {
		switch e := entry.(type) {
		case *AlignedEntry:
			buf = append(buf, 's', ' ')
			buf = append(buf, e.Seq...)
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, e.Start, 10)
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, e.AlignedLength, 10)
			buf = append(buf, ' ', e.Strand.Char(), ' ')
			buf = strconv.AppendInt(buf, e.SequenceSize, 10)
			buf = append(buf, ' ')
			buf = append(buf, e.Alignment...)
			buf = append(buf, '\n')
			if c := e.Context; c != nil {
				buf = append(buf, 'i', ' ')
				buf = append(buf, e.Seq...)
				buf = append(buf, ' ', c.LeftStatus.Char(), ' ')
				buf = strconv.AppendInt(buf, c.LeftCount, 10)
				buf = append(buf, ' ', c.RightStatus.Char(), ' ')
				buf = strconv.AppendInt(buf, c.RightCount, 10)
				buf = append(buf, '\n')
			}
		case *UnalignedEntry:
			buf = append(buf, 'e', ' ')
			buf = append(buf, e.Seq...)
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, e.Start, 10)
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, e.Size, 10)
			buf = append(buf, ' ', e.Strand.Char(), ' ')
			buf = strconv.AppendInt(buf, e.SequenceSize, 10)
			buf = append(buf, ' ', e.Status.Char(), '\n')
		}
	}
	return append(buf, '\n')
}

func (block *Block) String() string {
	return string(block.Format(nil))
}

// WriteItem writes the canonical text rendering of an item: blocks via
// Format, comments as a '#'-prefixed line.
func WriteItem(w io.Writer, item Item) error {
	switch it := item.(type) {
	case Comment:
		buf := make([]byte, 0, len(it)+2)
		buf = append(buf, '#')
		buf = append(buf, it...)
		buf = append(buf, '\n')
		_, err := w.Write(buf)
		return err
	case *Block:
		_, err := w.Write(it.Format(nil))
		return err
	}
	return nil
}
