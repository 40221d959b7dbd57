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

// Package dups detects and merges duplicate per-genome entries within
// a MAF block.
package dups

import (
	"github.com/exascience/pargo/parallel"

	"github.com/compgen/mafkit/maf"
)

// Mode describes what the base call will be for a merged entry when
// merging two or more alignment entries from the same genome within a
// single block.
type Mode int

const (
	// Unanimity keeps a base as a nucleotide if all duplicates have
	// the same base in that column, and N otherwise.
	Unanimity Mode = iota
	// Consensus sets a base to the consensus of the duplicates within
	// the genome, using the most frequent base within the entire
	// column to break ties within the genome. If the tie survives
	// even the whole column, the base is set to N.
	Consensus
	// Mask sets every base of the merged entry to N.
	Mask
)

// baseCounts tallies A, C, G and T occurrences in one alignment
// column, case-insensitively.
type baseCounts struct {
	counts [4]int
}

var baseIndex = [256]int8{}

func init() {
	for i := range baseIndex {
		baseIndex[i] = -1
	}
	for i, b := range []byte{'a', 'c', 'g', 't'} {
		baseIndex[b] = int8(i)
		baseIndex[b-'a'+'A'] = int8(i)
	}
}

func (bc *baseCounts) add(base byte) {
	if i := baseIndex[base]; i >= 0 {
		bc.counts[i]++
	}
}

var baseLetters = [4]byte{'A', 'C', 'G', 'T'}

// countBases computes the per-column base tallies over the given
// entries. All entries are assumed to have the block's common
// alignment length; shorter entries contribute to their own columns
// only.
func countBases(entries []*maf.AlignedEntry) []baseCounts {
	if len(entries) == 0 {
		return nil
	}
	counts := make([]baseCounts, len(entries[0].Alignment))
	for _, entry := range entries {
		for i := 0; i < len(entry.Alignment) && i < len(counts); i++ {
			counts[i].add(entry.Alignment[i])
		}
	}
	return counts
}

// unanimousBase resolves a column tally to its single letter, or N on
// any disagreement or when no base is present at all.
func unanimousBase(bc baseCounts) byte {
	letter := byte('N')
	for i, count := range bc.counts {
		if count > 0 {
			if letter != 'N' {
				return 'N'
			}
			letter = baseLetters[i]
		}
	}
	return letter
}

// narrow restricts possible to the letters with the maximal count in
// bc among those still possible.
func narrow(bc baseCounts, possible *[4]bool) {
	max := -1
	for i, p := range possible {
		if p && bc.counts[i] > max {
			max = bc.counts[i]
		}
	}
	for i := range possible {
		if possible[i] && bc.counts[i] < max {
			possible[i] = false
		}
	}
}

// consensusBase resolves a column to the letter with the maximal count
// in the genome tally, breaking ties with the block-wide tally, and N
// if a tie survives both.
func consensusBase(bc, tieBreaker baseCounts) byte {
	possible := [4]bool{true, true, true, true}
	narrow(bc, &possible)
	narrow(tieBreaker, &possible)
	letter := byte('N')
	for i, p := range possible {
		if p {
			if letter != 'N' {
				return 'N'
			}
			letter = baseLetters[i]
		}
	}
	return letter
}

// HasDuplicates reports whether any genome has more than one aligned
// entry in the block.
func HasDuplicates(block *maf.Block) bool {
	for _, entries := range block.EntriesByGenome() {
		if len(entries) > 1 {
			return true
		}
	}
	return false
}

// Merge returns a block in which every genome with more than one
// aligned entry is replaced by a single merged entry whose bases are
// resolved per column according to the mode. The merged entry's
// coordinates, strand and length metadata are copied verbatim from the
// genome's first duplicate; when the duplicates disagree in start or
// length there is no principled representative, and the first one is
// kept as is. Non-duplicated entries and unaligned entries pass
// through unchanged; merged entries are appended in order of each
// genome's first occurrence. Blocks without duplicates are returned
// unmodified.
func Merge(block *maf.Block, mode Mode) *maf.Block {
	byGenome := block.EntriesByGenome()
	duplicated := make(map[string]bool)
	for genome, entries := range byGenome {
		if len(entries) > 1 {
			duplicated[genome] = true
		}
	}
	if len(duplicated) == 0 {
		return block
	}

	var blockCounts []baseCounts
	genomeCounts := make(map[string][]baseCounts)
	parallel.Do(
		func() {
			if mode == Consensus {
				blockCounts = countBases(block.AlignedEntries())
			}
		},
		func() {
			for genome := range duplicated {
				genomeCounts[genome] = countBases(byGenome[genome])
			}
		},
	)

	merged := &maf.Block{Metadata: block.Metadata}
	var order []string
	seen := make(map[string]bool)
	for _, entry := range block.Entries {
		aligned, ok := entry.(*maf.AlignedEntry)
		if !ok || !duplicated[maf.Genome(aligned.Seq)] {
			merged.Entries = append(merged.Entries, entry)
			continue
		}
		if genome := maf.Genome(aligned.Seq); !seen[genome] {
			seen[genome] = true
			order = append(order, genome)
		}
	}
	for _, genome := range order {
		merged.Entries = append(merged.Entries, mergeEntries(byGenome[genome], genomeCounts[genome], blockCounts, mode))
	}
	return merged
}

func mergeEntries(entries []*maf.AlignedEntry, counts, blockCounts []baseCounts, mode Mode) *maf.AlignedEntry {
	first := entries[0]
	result := *first
	result.Alignment = make([]byte, len(first.Alignment))
	for i := range result.Alignment {
		switch mode {
		case Mask:
			result.Alignment[i] = 'N'
		case Unanimity:
			result.Alignment[i] = unanimousBase(counts[i])
		default:
			result.Alignment[i] = consensusBase(counts[i], blockCounts[i])
		}
	}
	return &result
}
