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
	"strings"

	"github.com/compgen/mafkit/utils"
)

// Gap is the gap marker within alignment strings.
const Gap = '-'

// An Item is one unit of a MAF file: either a *Block or a Comment.
type Item interface {
	item()
}

// A Comment is a MAF comment line with the leading '#' stripped. The
// conventional "##maf version=1" file header parses as the Comment
// "#maf version=1".
type Comment string

func (Comment) item() {}

// A Block is one MAF alignment block: the paragraph from an "a" header
// line through the next blank line. The order of the entries is
// significant and preserved.
type Block struct {
	Entries  []Entry
	Metadata utils.StringMap
}

func (*Block) item() {}

// An Entry is one line group within a Block: either an *AlignedEntry
// ("s" line, plus optional "i" context) or an *UnalignedEntry ("e"
// line).
type Entry interface {
	entry()
}

// Strand indicates one of the two strands of a sequence.
type Strand byte

// The two strands.
const (
	Positive Strand = '+'
	Negative Strand = '-'
)

// Char returns the MAF character for the strand.
func (s Strand) Char() byte { return byte(s) }

// An AlignedStatus classifies what adjoins an aligned entry within its
// sequence ("i" line status characters).
type AlignedStatus int

// Valid AlignedStatus values, in the order of their MAF characters
// C, I, N, n, M, T.
const (
	// The sequence before or after is contiguous with this block.
	StatusContiguous AlignedStatus = iota
	// There are bases between the bases in this block and the one
	// before or after it.
	StatusInsertion
	// This is the first sequence from this source chromosome or
	// scaffold.
	StatusFirstInSequence
	// This is the first sequence from this source chromosome or
	// scaffold, but it is bridged by another alignment from a
	// different chromosome or scaffold.
	StatusFirstInSequenceBridged
	// There is missing data before or after this block.
	StatusMissingData
	// The sequence in this block has been used before in a previous
	// block, likely a tandem duplication.
	StatusAlreadyUsed
)

// An UnalignedStatus describes the relationship between an unaligned
// entry and the regions bridging it ("e" line status characters). Its
// character vocabulary overlaps with AlignedStatus but the meanings
// differ: 'C' means deletion here, not contiguous.
type UnalignedStatus int

// Valid UnalignedStatus values, in the order of their MAF characters
// C, I, M, n, T.
const (
	// The sequence before and after is contiguous, implying that this
	// region was either deleted in the source or inserted in the
	// reference sequence.
	GapDeletion UnalignedStatus = iota
	// There are non-aligning bases in the source species between
	// chained alignment blocks before and after this block.
	GapInsertion
	// There are non-aligning bases in the source, and more than 90%
	// of them are Ns.
	GapMissingData
	// The next aligning block starts in a new chromosome or scaffold
	// that is bridged by a chain between still other blocks.
	GapNewSequence
	// Not supposed to happen according to the format docs, but MULTIZ
	// outputs it.
	GapAlreadyUsed
)

// A Context carries the "i" line information attached to an aligned
// entry: what happens before and after the alignment within its
// sequence.
type Context struct {
	LeftStatus  AlignedStatus
	LeftCount   int64
	RightStatus AlignedStatus
	RightCount  int64
}

// An AlignedEntry is an alignment entry within a MAF block,
// corresponding to an "s" line and its optional "i" line.
type AlignedEntry struct {
	// The sequence of bases, including gaps.
	Alignment []byte
	// The sequence name, conventionally "genome.chromosome".
	Seq string
	// Start of the aligned region within this sequence, relative to
	// the strand.
	Start int64
	// Length of the aligned region, not counting gaps.
	AlignedLength int64
	// The total length of this sequence, including regions outside
	// this alignment.
	SequenceSize int64
	Strand       Strand
	// Context about what adjoins the alignment within this sequence,
	// or nil.
	Context *Context
	// Optional per-base quality scores ("q" lines). Declared for
	// completeness; no algorithm uses them, and the parser rejects
	// "q" lines.
	Qualities []byte
}

func (*AlignedEntry) entry() {}

// An UnalignedEntry indicates that a region is unaligned, but a chain
// bridges two alignment blocks on either side. Corresponds to an "e"
// line. It is never merged with anything.
type UnalignedEntry struct {
	Seq          string
	Start        int64
	Size         int64
	Strand       Strand
	SequenceSize int64
	Status       UnalignedStatus
}

func (*UnalignedEntry) entry() {}

// Genome returns the genome part of a MAF sequence name, the token
// before the first '.'.
func Genome(seq string) string {
	if i := strings.IndexByte(seq, '.'); i >= 0 {
		return seq[:i]
	}
	return seq
}

// Chrom returns the chromosome part of a MAF sequence name, everything
// after the first '.', so "genome.chr.name" yields "chr.name".
func Chrom(seq string) string {
	if i := strings.IndexByte(seq, '.'); i >= 0 {
		return seq[i+1:]
	}
	return ""
}

// AlignedEntries returns the aligned entries of the block, in order.
func (block *Block) AlignedEntries() []*AlignedEntry {
	var aligned []*AlignedEntry
	for _, entry := range block.Entries {
		if e, ok := entry.(*AlignedEntry); ok {
			aligned = append(aligned, e)
		}
	}
	return aligned
}

// EntriesByGenome groups the aligned entries of the block by genome
// name, preserving entry order within each genome.
func (block *Block) EntriesByGenome() map[string][]*AlignedEntry {
	groups := make(map[string][]*AlignedEntry)
	for _, entry := range block.Entries {
		if e, ok := entry.(*AlignedEntry); ok {
			genome := Genome(e.Seq)
			groups[genome] = append(groups[genome], e)
		}
	}
	return groups
}
