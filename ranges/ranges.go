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

package ranges

import (
	"sort"

	psort "github.com/exascience/pargo/sort"

	"github.com/compgen/mafkit/bed"
)

// A Range is a half-open genomic interval [Start, End) on a named
// sequence.
type Range struct {
	Seq        string
	Start, End int64
}

// Overlaps reports whether the position on the given sequence falls
// within the range.
func (r Range) Overlaps(seq string, pos int64) bool {
	return r.Seq == seq && r.Start <= pos && pos < r.End
}

// Precedes reports whether the range lies entirely before the position
// in (seq, position) order.
func (r Range) Precedes(seq string, pos int64) bool {
	return r.Seq < seq || (r.Seq == seq && r.End <= pos)
}

// Succeeds reports whether the range lies entirely after the position
// in (seq, position) order.
func (r Range) Succeeds(seq string, pos int64) bool {
	return r.Seq > seq || (r.Seq == seq && r.Start > pos)
}

func rangeLess(r1, r2 Range) bool {
	if r1.Seq != r2.Seq {
		return r1.Seq < r2.Seq
	}
	if r1.Start != r2.Start {
		return r1.Start < r2.Start
	}
	return r1.End < r2.End
}

// SortRanges sorts a slice of Range by (Seq, Start, End).
func SortRanges(rs []Range) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rangeLess(rs[i], rs[j])
	})
}

type stableRangeSorter []Range

func (s stableRangeSorter) SequentialSort(i, j int) {
	SortRanges(s[i:j])
}

func (s stableRangeSorter) NewTemp() psort.StableSorter {
	return stableRangeSorter(make([]Range, len(s)))
}

func (s stableRangeSorter) Len() int {
	return len(s)
}

func (s stableRangeSorter) Less(i, j int) bool {
	return rangeLess(s[i], s[j])
}

func (s stableRangeSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(stableRangeSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// ParallelSortRanges sorts a slice of Range by (Seq, Start, End) using
// a parallel stable sort.
func ParallelSortRanges(rs []Range) {
	psort.StableSort(stableRangeSorter(rs))
}

// An Index is an immutable set of ranges kept in one canonical order,
// sorted by (Seq, Start, End) ascending, grouped per sequence. It
// supports both forward sweeps over a column scan and point queries.
//
// Point queries locate the range with the greatest start at or before
// a position. With overlapping input ranges on one sequence this can
// miss an earlier-starting range that extends past a later, shorter
// one, so the Index is not an overlap-multiplicity counter; it is only
// meant for coverage masks and sweeps over disjoint region sets.
type Index struct {
	bySeq map[string][]Range
	width int64
}

// NewIndex builds an Index from the given ranges. The input slice is
// not retained.
func NewIndex(rs []Range) *Index {
	sorted := make([]Range, len(rs))
	copy(sorted, rs)
	ParallelSortRanges(sorted)
	index := &Index{bySeq: make(map[string][]Range)}
	for _, r := range sorted {
		index.bySeq[r.Seq] = append(index.bySeq[r.Seq], r)
		index.width += r.End - r.Start
	}
	return index
}

// FromBed builds an Index from the regions of a BED file.
func FromBed(b *bed.Bed) *Index {
	var rs []Range
	for chrom, regions := range b.RegionMap {
		for _, region := range regions {
			rs = append(rs, Range{Seq: *chrom, Start: region.Start, End: region.End})
		}
	}
	return NewIndex(rs)
}

// Len returns the number of ranges in the index.
func (index *Index) Len() int {
	n := 0
	for _, rs := range index.bySeq {
		n += len(rs)
	}
	return n
}

// TotalWidth returns the summed width of all ranges.
func (index *Index) TotalWidth() int64 {
	return index.width
}

// ContainsPoint locates the range with the greatest (seq, start) not
// exceeding the position and tests it for overlap. See the Index
// documentation for the limitation with overlapping input ranges.
func (index *Index) ContainsPoint(seq string, pos int64) bool {
	rs := index.bySeq[seq]
	i := sort.Search(len(rs), func(i int) bool { return rs[i].Start > pos })
	if i == 0 {
		return false
	}
	return rs[i-1].Overlaps(seq, pos)
}

// A Cursor is a finite, non-restartable sequence of ranges produced by
// Overlapping.
type Cursor struct {
	ranges []Range
}

// Next returns the next range, or ok == false when the cursor is
// exhausted.
func (c *Cursor) Next() (r Range, ok bool) {
	if len(c.ranges) == 0 {
		return Range{}, false
	}
	r = c.ranges[0]
	c.ranges = c.ranges[1:]
	return r, true
}

// Overlapping returns a cursor over the ranges that can overlap the
// query: at most one range that starts strictly before the query, to
// catch a span extending into it, followed by every range whose start
// lies within the query's bounds.
func (index *Index) Overlapping(query Range) *Cursor {
	rs := index.bySeq[query.Seq]
	lo := sort.Search(len(rs), func(i int) bool { return rs[i].Start >= query.Start })
	hi := sort.Search(len(rs), func(i int) bool { return rs[i].Start > query.End })
	if lo > 0 {
		lo--
	}
	return &Cursor{ranges: rs[lo:hi]}
}
