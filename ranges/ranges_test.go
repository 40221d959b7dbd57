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
	"math/rand"
	"strconv"
	"testing"

	"github.com/compgen/mafkit/bed"
	"github.com/compgen/mafkit/utils"
)

func rangesEqual(rs1, rs2 []Range) bool {
	if len(rs1) != len(rs2) {
		return false
	}
	for i, r1 := range rs1 {
		if r1 != rs2[i] {
			return false
		}
	}
	return true
}

func drainCursor(c *Cursor) (rs []Range) {
	for {
		r, ok := c.Next()
		if !ok {
			return rs
		}
		rs = append(rs, r)
	}
}

func makeLargeRangeSlice() []Range {
	rs := make([]Range, 0x10000)
	for i := range rs {
		start := int64(rand.Intn(1000000))
		rs[i] = Range{
			Seq:   "chr" + strconv.Itoa(rand.Intn(20)),
			Start: start,
			End:   start + int64(rand.Intn(100)) + 1,
		}
	}
	return rs
}

func TestRangePredicates(t *testing.T) {
	r := Range{Seq: "chr1", Start: 10, End: 20}
	if !r.Overlaps("chr1", 10) || !r.Overlaps("chr1", 19) {
		t.Error("Overlaps inclusive bounds failed")
	}
	if r.Overlaps("chr1", 9) || r.Overlaps("chr1", 20) || r.Overlaps("chr2", 15) {
		t.Error("Overlaps exclusive bounds failed")
	}
	if !r.Precedes("chr1", 20) || r.Precedes("chr1", 19) {
		t.Error("Precedes position failed")
	}
	if !r.Precedes("chr2", 0) || r.Precedes("chr0", 100) {
		t.Error("Precedes sequence order failed")
	}
	if !r.Succeeds("chr1", 9) || r.Succeeds("chr1", 10) {
		t.Error("Succeeds position failed")
	}
	if !r.Succeeds("chr0", 100) || r.Succeeds("chr2", 0) {
		t.Error("Succeeds sequence order failed")
	}
}

func TestSortRanges(t *testing.T) {
	rs := []Range{
		{"chr2", 5, 10},
		{"chr1", 30, 40},
		{"chr1", 10, 25},
		{"chr1", 10, 20},
	}
	SortRanges(rs)
	if !rangesEqual(rs, []Range{
		{"chr1", 10, 20},
		{"chr1", 10, 25},
		{"chr1", 30, 40},
		{"chr2", 5, 10},
	}) {
		t.Errorf("SortRanges failed: %v", rs)
	}
}

func TestParallelSortRanges(t *testing.T) {
	rs1 := makeLargeRangeSlice()
	rs2 := make([]Range, len(rs1))
	copy(rs2, rs1)
	SortRanges(rs1)
	ParallelSortRanges(rs2)
	if !rangesEqual(rs1, rs2) {
		t.Error("ParallelSortRanges disagrees with SortRanges")
	}
}

func TestIndexLenAndWidth(t *testing.T) {
	index := NewIndex([]Range{
		{"chr1", 10, 20},
		{"chr1", 30, 40},
		{"chr2", 0, 5},
	})
	if index.Len() != 3 {
		t.Errorf("Len failed: %v", index.Len())
	}
	if index.TotalWidth() != 25 {
		t.Errorf("TotalWidth failed: %v", index.TotalWidth())
	}
}

func TestContainsPoint(t *testing.T) {
	index := NewIndex([]Range{
		{"chr1", 4432333, 4432335},
		{"chr1", 10, 20},
		{"chr2", 0, 5},
	})
	if !index.ContainsPoint("chr1", 4432333) || !index.ContainsPoint("chr1", 4432334) {
		t.Error("ContainsPoint 1 failed")
	}
	if index.ContainsPoint("chr1", 4432335) || index.ContainsPoint("chr1", 4432332) {
		t.Error("ContainsPoint 2 failed")
	}
	if !index.ContainsPoint("chr1", 10) || !index.ContainsPoint("chr1", 19) || index.ContainsPoint("chr1", 20) {
		t.Error("ContainsPoint 3 failed")
	}
	if index.ContainsPoint("chr2", 5) || !index.ContainsPoint("chr2", 0) {
		t.Error("ContainsPoint 4 failed")
	}
	if index.ContainsPoint("chr3", 0) {
		t.Error("ContainsPoint 5 failed")
	}
}

func TestOverlapping(t *testing.T) {
	index := NewIndex([]Range{
		{"chr1", 10, 20},
		{"chr1", 30, 40},
		{"chr1", 50, 60},
	})
	// One range starting before the query precedes the in-bounds
	// ranges.
	rs := drainCursor(index.Overlapping(Range{"chr1", 25, 55}))
	if !rangesEqual(rs, []Range{{"chr1", 10, 20}, {"chr1", 30, 40}, {"chr1", 50, 60}}) {
		t.Errorf("Overlapping 1 failed: %v", rs)
	}
	rs = drainCursor(index.Overlapping(Range{"chr1", 35, 45}))
	if !rangesEqual(rs, []Range{{"chr1", 30, 40}}) {
		t.Errorf("Overlapping 2 failed: %v", rs)
	}
	// A query before everything yields nothing.
	rs = drainCursor(index.Overlapping(Range{"chr1", 0, 5}))
	if rs != nil {
		t.Errorf("Overlapping 3 failed: %v", rs)
	}
	rs = drainCursor(index.Overlapping(Range{"chr2", 0, 100}))
	if rs != nil {
		t.Errorf("Overlapping 4 failed: %v", rs)
	}
}

func TestFromBed(t *testing.T) {
	b := bed.NewBed()
	b.AddRegion(&bed.Region{Chrom: utils.Intern("chr1"), Start: 10, End: 20})
	b.AddRegion(&bed.Region{Chrom: utils.Intern("chr2"), Start: 0, End: 5})
	index := FromBed(b)
	if index.Len() != 2 || index.TotalWidth() != 15 {
		t.Error("FromBed index shape failed")
	}
	if !index.ContainsPoint("chr1", 15) || index.ContainsPoint("chr2", 5) {
		t.Error("FromBed lookup failed")
	}
}
