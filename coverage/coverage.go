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

// Package coverage counts, per genome, how many reference positions a
// genome aligns to across the blocks of a MAF file.
package coverage

import (
	"fmt"
	"io"
	"sort"

	"github.com/willf/bitset"

	"github.com/compgen/mafkit/maf"
	"github.com/compgen/mafkit/ranges"
)

// alignedBase reports whether an alignment byte counts as an aligned
// base rather than a gap.
func alignedBase(base byte) bool {
	switch base {
	case 'A', 'C', 'G', 'T', 'N', 'a', 'c', 'g', 't', 'n':
		return true
	default:
		return false
	}
}

// An Accumulator accumulates per-genome base coverage relative to a
// reference genome. Its state is scoped to one command invocation.
type Accumulator struct {
	refGenome string
	// Optional ranges to filter on. Alignment columns whose reference
	// position falls outside these ranges are ignored.
	index    *ranges.Index
	coverage map[string]int64
	// Reference sequence name -> sequence length, recorded on first
	// encounter. Used for the report denominator when not filtering.
	refLengths map[string]int64
}

// NewAccumulator returns an empty accumulator for the given reference
// genome. index may be nil to count over the whole reference.
func NewAccumulator(refGenome string, index *ranges.Index) *Accumulator {
	return &Accumulator{
		refGenome:  refGenome,
		index:      index,
		coverage:   make(map[string]int64),
		refLengths: make(map[string]int64),
	}
}

// Coverage returns the accumulated coverage for a genome.
func (acc *Accumulator) Coverage(genome string) (int64, bool) {
	cov, found := acc.coverage[genome]
	return cov, found
}

// AddBlock adds one block's worth of coverage. For every reference
// entry in the block, each reference column with an aligned base (and,
// when filtering, a reference position inside the configured ranges)
// adds one base of coverage to every genome that has an aligned base
// in that column in at least one of its entries. Duplicate entries of
// one genome count once per column, not once each.
func (acc *Accumulator) AddBlock(block *maf.Block) {
	entries := block.EntriesByGenome()
	for _, refEntry := range entries[acc.refGenome] {
		acc.addRefEntry(refEntry, entries)
	}
}

func (acc *Accumulator) addRefEntry(refEntry *maf.AlignedEntry, entries map[string][]*maf.AlignedEntry) {
	columns := uint(len(refEntry.Alignment))
	countable := bitset.New(columns)
	chrom := maf.Chrom(refEntry.Seq)
	// Offset within the reference sequence, not within the block
	// alignment: gaps do not advance it.
	var refOffset int64
	for i := 0; i < len(refEntry.Alignment); i++ {
		if !alignedBase(refEntry.Alignment[i]) {
			continue
		}
		var refPos int64
		if refEntry.Strand == maf.Positive {
			refPos = refEntry.Start + refOffset
		} else {
			refPos = refEntry.SequenceSize - refEntry.Start - refOffset
		}
		refOffset++
		if acc.index != nil && !acc.index.ContainsPoint(chrom, refPos) {
			continue
		}
		countable.Set(uint(i))
	}
	if countable.Any() {
		for genome, genomeEntries := range entries {
			presence := bitset.New(columns)
			for _, entry := range genomeEntries {
				for i := 0; i < len(entry.Alignment); i++ {
					if alignedBase(entry.Alignment[i]) {
						presence.Set(uint(i))
					}
				}
			}
			if cov := presence.IntersectionCardinality(countable); cov > 0 {
				acc.coverage[genome] += int64(cov)
			}
		}
	}
	if _, found := acc.refLengths[refEntry.Seq]; !found {
		acc.refLengths[refEntry.Seq] = refEntry.SequenceSize
	}
}

// Report writes the coverage table: a header comment, then one
// tab-separated line per covered genome with the reference genome, the
// query genome, the reference length, the coverage fraction, and the
// covered base count. The reference length is the sum of the recorded
// reference sequence sizes, or the total filter range width when
// filtering. Genomes are reported in sorted order.
func (acc *Accumulator) Report(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "# referenceSpecies/Chr\tquerySpecies/Chr\tlengthOfReference\tpercentCoverage\tbasesCoverage"); err != nil {
		return err
	}
	var total int64
	if acc.index != nil {
		total = acc.index.TotalWidth()
	} else {
		for _, length := range acc.refLengths {
			total += length
		}
	}
	genomes := make([]string, 0, len(acc.coverage))
	for genome := range acc.coverage {
		genomes = append(genomes, genome)
	}
	sort.Strings(genomes)
	for _, genome := range genomes {
		cov := acc.coverage[genome]
		if _, err := fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n",
			acc.refGenome, genome, total, float64(cov)/float64(total), cov); err != nil {
			return err
		}
	}
	return nil
}
