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

// Package filter restricts MAF blocks to the columns whose reference
// position falls within a set of genomic ranges, splitting each block
// into one narrower block per contiguous run of kept columns.
package filter

import (
	"fmt"

	"github.com/compgen/mafkit/maf"
	"github.com/compgen/mafkit/ranges"
)

// A run is a maximal contiguous span of alignment column indices to
// keep.
type run struct {
	start, length int
}

// filteredColumns computes the runs of columns to keep for the given
// reference entry. The range cursor and the column scan advance
// together in a merge-style sweep, linear in columns plus ranges. A
// run breaks whenever coverage lapses, whether between two ranges or
// on a reference gap column; two touching ranges keep a run alive.
func filteredColumns(refEntry *maf.AlignedEntry, index *ranges.Index) []run {
	chrom := maf.Chrom(refEntry.Seq)
	cursor := index.Overlapping(ranges.Range{
		Seq:   chrom,
		Start: refEntry.Start,
		End:   refEntry.Start + refEntry.AlignedLength,
	})
	var runs []run
	current, ok := cursor.Next()
	pos := refEntry.Start
	wasWithinRun := false
	for i := 0; i < len(refEntry.Alignment); i++ {
		for ok && current.Precedes(chrom, pos) {
			current, ok = cursor.Next()
		}
		if !ok || current.Succeeds(chrom, refEntry.Start+refEntry.AlignedLength) {
			break
		}
		withinRun := false
		if refEntry.Alignment[i] != maf.Gap {
			if current.Overlaps(chrom, pos) {
				if wasWithinRun {
					runs[len(runs)-1].length++
				} else {
					runs = append(runs, run{start: i, length: 1})
				}
				withinRun = true
			}
			pos++
		}
		wasWithinRun = withinRun
	}
	return runs
}

// filterEntry projects an aligned entry onto a run of columns. The new
// start skips the entry's aligned bases before the run, plus its
// leading gap bases inside the run: the run's reference-relative start
// may fall mid-gap for a non-reference entry. Context and qualities
// are dropped.
func filterEntry(entry *maf.AlignedEntry, r run) *maf.AlignedEntry {
	var beforeRun int64
	for _, c := range entry.Alignment[:r.start] {
		if c != maf.Gap {
			beforeRun++
		}
	}
	slice := entry.Alignment[r.start : r.start+r.length]
	var leadingGaps, alignedLength int64
	for _, c := range slice {
		if c != maf.Gap {
			alignedLength++
		}
	}
	for _, c := range slice {
		if c != maf.Gap {
			break
		}
		leadingGaps++
	}
	return &maf.AlignedEntry{
		Alignment:     slice,
		Seq:           entry.Seq,
		Start:         entry.Start + beforeRun + leadingGaps,
		AlignedLength: alignedLength,
		SequenceSize:  entry.SequenceSize,
		Strand:        entry.Strand,
	}
}

// filterBlock projects every aligned entry of the block onto a run.
func filterBlock(block *maf.Block, r run) *maf.Block {
	filtered := &maf.Block{Metadata: block.Metadata}
	for _, entry := range block.AlignedEntries() {
		filtered.Entries = append(filtered.Entries, filterEntry(entry, r))
	}
	return filtered
}

// FilterBlock restricts a block to the columns whose reference
// position is covered by the index, producing zero or more narrower
// blocks, one per contiguous run of kept columns. The block's first
// aligned entry acts as the reference and must be on the positive
// strand. Blocks without aligned entries yield no output.
func FilterBlock(block *maf.Block, index *ranges.Index) ([]*maf.Block, error) {
	aligned := block.AlignedEntries()
	if len(aligned) == 0 {
		return nil, nil
	}
	refEntry := aligned[0]
	if refEntry.Strand != maf.Positive {
		return nil, fmt.Errorf("cannot filter block with negative-strand reference entry %v", refEntry.Seq)
	}
	var blocks []*maf.Block
	for _, r := range filteredColumns(refEntry, index) {
		blocks = append(blocks, filterBlock(block, r))
	}
	return blocks, nil
}
