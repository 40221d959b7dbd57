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
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/compgen/mafkit/utils"
)

func newTestReader(s string) *Reader {
	return NewReader(bufio.NewReader(strings.NewReader(s)))
}

func nextBlock(t *testing.T, r *Reader) *Block {
	t.Helper()
	item, err := r.NextItem()
	if err != nil {
		t.Fatal(err)
	}
	block, ok := item.(*Block)
	if !ok {
		t.Fatalf("expected a block, got %v", item)
	}
	return block
}

func expectEOF(t *testing.T, r *Reader) {
	t.Helper()
	if _, err := r.NextItem(); err != io.EOF {
		t.Errorf("expected end of input, got %v", err)
	}
}

func TestParseComments(t *testing.T) {
	reader := newTestReader("##maf version=1 scoring=tba.v8\n# tba.v8 (((human chimp) baboon) (mouse rat))\n")
	item, err := reader.NextItem()
	if err != nil {
		t.Fatal(err)
	}
	if item != Comment("#maf version=1 scoring=tba.v8") {
		t.Errorf("comment 1 failed: %q", item)
	}
	item, err = reader.NextItem()
	if err != nil {
		t.Fatal(err)
	}
	if item != Comment(" tba.v8 (((human chimp) baboon) (mouse rat))") {
		t.Errorf("comment 2 failed: %q", item)
	}
	expectEOF(t, reader)
}

const twoBlocks = `a score=23262.0
s hg16.chr7    27578828 38 + 158545518 AAA-GGGAATGTTAACCAAATGA---ATTGTCTCTTACGGTG
s panTro1.chr6 28741140 38 + 161576975 AAA-GGGAATGTTAACCAAATGA---ATTGTCTCTTACGGTG

a score=5062.0
s hg16.chr7    27699739 6 + 158545518 TAAAGA
s baboon         241163 6 -   4622798 TAAAGA
`

func TestParseBlocks(t *testing.T) {
	reader := newTestReader(twoBlocks)
	block := nextBlock(t, reader)
	if !block.Metadata.Equal(utils.StringMap{"score": "23262.0"}) {
		t.Error("block 1 metadata failed")
	}
	aligned := block.AlignedEntries()
	if len(aligned) != 2 {
		t.Fatalf("expected 2 aligned entries, got %v", len(aligned))
	}
	e := aligned[0]
	if e.Seq != "hg16.chr7" || e.Start != 27578828 || e.AlignedLength != 38 ||
		e.Strand != Positive || e.SequenceSize != 158545518 ||
		string(e.Alignment) != "AAA-GGGAATGTTAACCAAATGA---ATTGTCTCTTACGGTG" {
		t.Errorf("block 1 entry 1 failed: %v", e)
	}
	if aligned[1].Seq != "panTro1.chr6" || aligned[1].Start != 28741140 {
		t.Errorf("block 1 entry 2 failed: %v", aligned[1])
	}
	block = nextBlock(t, reader)
	if !block.Metadata.Equal(utils.StringMap{"score": "5062.0"}) {
		t.Error("block 2 metadata failed")
	}
	aligned = block.AlignedEntries()
	if len(aligned) != 2 {
		t.Fatalf("expected 2 aligned entries, got %v", len(aligned))
	}
	if aligned[1].Seq != "baboon" || aligned[1].Strand != Negative || aligned[1].SequenceSize != 4622798 {
		t.Errorf("block 2 entry 2 failed: %v", aligned[1])
	}
	expectEOF(t, reader)
}

func TestParseBlankMetadata(t *testing.T) {
	reader := newTestReader("a\ns hg16.chr7 0 3 + 100 ACT\n")
	block := nextBlock(t, reader)
	if len(block.Metadata) != 0 {
		t.Error("blank metadata failed")
	}
	expectEOF(t, reader)
}

func TestParseContext(t *testing.T) {
	reader := newTestReader(`a
s hg16.chr7    27578828 38 + 158545518 AAAGGGAATGTTAACCAAATGAATTGTCTCTTACGGTG
s panTro1.chr6 28741140 38 + 161576975 AAAGGGAATGTTAACCAAATGAATTGTCTCTTACGGTG
i panTro1.chr6 N 0 C 0
`)
	block := nextBlock(t, reader)
	aligned := block.AlignedEntries()
	if aligned[0].Context != nil {
		t.Error("entry without i line has a context")
	}
	c := aligned[1].Context
	if c == nil {
		t.Fatal("entry with i line has no context")
	}
	if c.LeftStatus != StatusFirstInSequence || c.LeftCount != 0 ||
		c.RightStatus != StatusContiguous || c.RightCount != 0 {
		t.Errorf("context failed: %v", c)
	}
}

func TestParseUnalignedEntry(t *testing.T) {
	reader := newTestReader(`a
s hg16.chr7 27578828 38 + 158545518 AAAGGGAATGTTAACCAAATGAATTGTCTCTTACGGTG
e mm4.chr6  53310102 13 + 151104725 I
`)
	block := nextBlock(t, reader)
	if len(block.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %v", len(block.Entries))
	}
	e, ok := block.Entries[1].(*UnalignedEntry)
	if !ok {
		t.Fatalf("expected an unaligned entry, got %v", block.Entries[1])
	}
	if e.Seq != "mm4.chr6" || e.Start != 53310102 || e.Size != 13 ||
		e.Strand != Positive || e.SequenceSize != 151104725 || e.Status != GapInsertion {
		t.Errorf("unaligned entry failed: %v", e)
	}
}

func TestUnalignedStatusVocabulary(t *testing.T) {
	// 'C' means deletion on e lines, unlike on i lines.
	for _, c := range []struct {
		char   string
		status UnalignedStatus
	}{
		{"C", GapDeletion},
		{"I", GapInsertion},
		{"M", GapMissingData},
		{"n", GapNewSequence},
		{"T", GapAlreadyUsed},
	} {
		reader := newTestReader("a\ne mm4.chr6 0 1 + 100 " + c.char + "\n")
		block := nextBlock(t, reader)
		if block.Entries[0].(*UnalignedEntry).Status != c.status {
			t.Errorf("unaligned status %v failed", c.char)
		}
	}
}

func TestParseEOFTerminatedBlock(t *testing.T) {
	// No trailing blank line or newline at all.
	reader := newTestReader("a score=1\ns hg16.chr7 0 3 + 100 ACT")
	block := nextBlock(t, reader)
	if string(block.AlignedEntries()[0].Alignment) != "ACT" {
		t.Error("EOF-terminated block failed")
	}
	expectEOF(t, reader)
}

func TestLocalParseErrors(t *testing.T) {
	// A parse error is local to one item: the items before it are
	// unaffected.
	reader := newTestReader("# fine\na score=1\nq hg16.chr7 999999\n")
	if _, err := reader.NextItem(); err != nil {
		t.Fatal(err)
	}
	_, err := reader.NextItem()
	if _, ok := err.(*QualityError); !ok {
		t.Errorf("expected a quality error, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	for _, c := range []struct {
		name  string
		input string
		check func(error) bool
	}{
		{"stray line", "s hg16.chr7 0 3 + 100 ACT\n", func(err error) bool {
			_, ok := err.(*UnexpectedLineError)
			return ok
		}},
		{"malformed metadata", "a score\n", func(err error) bool {
			e, ok := err.(*MetadataError)
			return ok && e.Token == "score"
		}},
		{"unknown line kind", "a\nz hg16.chr7\n", func(err error) bool {
			e, ok := err.(*LineKindError)
			return ok && e.Kind == "z"
		}},
		{"quality line", "a\nq hg16.chr7 99999\n", func(err error) bool {
			_, ok := err.(*QualityError)
			return ok
		}},
		{"bad strand", "a\ns hg16.chr7 0 3 x 100 ACT\n", func(err error) bool {
			e, ok := err.(*FieldError)
			return ok && e.Kind == "s" && e.Field == "strand" && e.Value == "x"
		}},
		{"bad start", "a\ns hg16.chr7 zero 3 + 100 ACT\n", func(err error) bool {
			e, ok := err.(*FieldError)
			return ok && e.Field == "start" && e.Value == "zero"
		}},
		{"missing alignment", "a\ns hg16.chr7 0 3 + 100\n", func(err error) bool {
			e, ok := err.(*FieldError)
			return ok && e.Field == "alignment" && e.Value == ""
		}},
		{"bad aligned status", "a\ns hg16.chr7 0 3 + 100 ACT\ni hg16.chr7 X 0 C 0\n", func(err error) bool {
			e, ok := err.(*FieldError)
			return ok && e.Kind == "i" && e.Field == "left status" && e.Value == "X"
		}},
		{"bad unaligned status", "a\ne mm4.chr6 0 1 + 100 N\n", func(err error) bool {
			e, ok := err.(*FieldError)
			return ok && e.Kind == "e" && e.Field == "status" && e.Value == "N"
		}},
		{"i line first in block", "a\ni hg16.chr7 C 0 C 0\n", func(err error) bool {
			_, ok := err.(*UnexpectedLineError)
			return ok
		}},
		{"i line for other sequence", "a\ns hg16.chr7 0 3 + 100 ACT\ni mm4.chr6 C 0 C 0\n", func(err error) bool {
			_, ok := err.(*UnexpectedLineError)
			return ok
		}},
		{"i line after e line", "a\ns hg16.chr7 0 3 + 100 ACT\ne mm4.chr6 0 1 + 100 I\ni mm4.chr6 C 0 C 0\n", func(err error) bool {
			_, ok := err.(*UnexpectedLineError)
			return ok
		}},
	} {
		_, err := newTestReader(c.input).NextItem()
		if err == nil || !c.check(err) {
			t.Errorf("%v failed: %v", c.name, err)
		}
	}
}

func TestGenomeChrom(t *testing.T) {
	if Genome("hg16.chr7") != "hg16" || Chrom("hg16.chr7") != "chr7" {
		t.Error("Genome/Chrom 1 failed")
	}
	if Genome("hg16.chr7.scaffold1") != "hg16" || Chrom("hg16.chr7.scaffold1") != "chr7.scaffold1" {
		t.Error("Genome/Chrom 2 failed")
	}
	if Genome("baboon") != "baboon" || Chrom("baboon") != "" {
		t.Error("Genome/Chrom 3 failed")
	}
}

func TestEntriesByGenome(t *testing.T) {
	reader := newTestReader(`a
s hg16.chr7 0 3 + 100 ACT
s mm4.chr6  0 3 + 100 ACT
s mm4.chr7  5 3 + 100 AGT
`)
	groups := nextBlock(t, reader).EntriesByGenome()
	if len(groups) != 2 || len(groups["hg16"]) != 1 || len(groups["mm4"]) != 2 {
		t.Error("EntriesByGenome grouping failed")
	}
	if groups["mm4"][0].Seq != "mm4.chr6" || groups["mm4"][1].Seq != "mm4.chr7" {
		t.Error("EntriesByGenome order failed")
	}
}

const canonicalBlock = `a score=5062.0
s hg16.chr7 27699739 6 + 158545518 TAAAGA
i hg16.chr7 N 0 C 0
s baboon 241163 6 - 4622798 TAAAGA
e mm4.chr6 53310102 13 + 151104725 I

`

func TestFormat(t *testing.T) {
	reader := newTestReader(canonicalBlock)
	block := nextBlock(t, reader)
	if block.String() != canonicalBlock {
		t.Errorf("Format failed:\n%v", block.String())
	}
}

func TestFormatSortsMetadata(t *testing.T) {
	block := &Block{Metadata: utils.StringMap{"score": "1.0", "pass": "2"}}
	if block.String() != "a pass=2 score=1.0\n\n" {
		t.Errorf("metadata order failed: %q", block.String())
	}
}

func TestRoundTrip(t *testing.T) {
	reader := newTestReader(canonicalBlock)
	block := nextBlock(t, reader)
	reader = newTestReader(block.String())
	again := nextBlock(t, reader)
	if again.String() != block.String() {
		t.Error("round trip failed")
	}
}

func TestWriteItem(t *testing.T) {
	var sb strings.Builder
	if err := WriteItem(&sb, Comment("maf version=1")); err != nil {
		t.Fatal(err)
	}
	block := nextBlock(t, newTestReader(canonicalBlock))
	if err := WriteItem(&sb, block); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "#maf version=1\n"+canonicalBlock {
		t.Errorf("WriteItem failed:\n%v", sb.String())
	}
}
