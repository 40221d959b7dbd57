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
	"strconv"
	"strings"

	"github.com/compgen/mafkit/utils"
)

// A Reader reads MAF items from a line stream.
type Reader struct {
	rd *bufio.Reader
}

// NewReader returns a Reader over the given buffered reader.
func NewReader(rd *bufio.Reader) *Reader {
	return &Reader{rd: rd}
}

// readLine returns the next logical line with the trailing CR/LF
// stripped, or io.EOF when the input is exhausted.
func (r *Reader) readLine() (string, error) {
	line, err := r.rd.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	line = line[:len(line)-1]
	return strings.TrimSuffix(line, "\r"), nil
}

// NextItem returns the next item out of the input. It returns io.EOF
// when the input is exhausted, and a typed parse error for malformed
// input. A parse error is local to the offending item: previously
// returned items are unaffected, and subsequent lines are not
// consumed.
func (r *Reader) NextItem() (Item, error) {
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch line[0] {
		case '#':
			return Comment(line[1:]), nil
		case 'a':
			return r.parseBlock(line)
		default:
			return nil, &UnexpectedLineError{Line: line, Reason: "expected a comment or a block header"}
		}
	}
}

// parseBlock consumes the paragraph opened by the given "a" header
// line, up to the next blank line or the end of the input.
func (r *Reader) parseBlock(header string) (*Block, error) {
	metadata, err := metadataFromHeader(header)
	if err != nil {
		return nil, err
	}
	block := &Block{Metadata: metadata}
	for {
		line, err := r.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			break
		}
		switch fields[0] {
		case "s":
			err = addAlignedEntry(block, fields)
		case "i":
			err = attachContext(block, fields)
		case "e":
			err = addUnalignedEntry(block, fields)
		case "q":
			err = &QualityError{Line: line}
		default:
			err = &LineKindError{Kind: fields[0]}
		}
		if err != nil {
			return nil, err
		}
	}
	return block, nil
}

// metadataFromHeader parses a block header of the form
// "a key1=value1 key2=value2".
func metadataFromHeader(header string) (utils.StringMap, error) {
	metadata := make(utils.StringMap)
	for _, token := range strings.Fields(header)[1:] {
		eq := strings.IndexByte(token, '=')
		if eq < 0 {
			return nil, &MetadataError{Token: token}
		}
		metadata[token[:eq]] = token[eq+1:]
	}
	return metadata, nil
}

// field returns the positional field with the given semantic name, or
// a FieldError if the line is too short.
func field(kind string, fields []string, index int, name string) (string, error) {
	if index >= len(fields) {
		return "", &FieldError{Kind: kind, Field: name}
	}
	return fields[index], nil
}

func numericField(kind string, fields []string, index int, name string) (int64, error) {
	s, err := field(kind, fields, index, name)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &FieldError{Kind: kind, Field: name, Value: s}
	}
	return value, nil
}

func strandField(kind string, fields []string, index int) (Strand, error) {
	s, err := field(kind, fields, index, "strand")
	if err != nil {
		return 0, err
	}
	switch s {
	case "+":
		return Positive, nil
	case "-":
		return Negative, nil
	default:
		return 0, &FieldError{Kind: kind, Field: "strand", Value: s}
	}
}

func alignedStatusField(kind string, fields []string, index int, name string) (AlignedStatus, error) {
	s, err := field(kind, fields, index, name)
	if err != nil {
		return 0, err
	}
	switch s {
	case "C":
		return StatusContiguous, nil
	case "I":
		return StatusInsertion, nil
	case "N":
		return StatusFirstInSequence, nil
	case "n":
		return StatusFirstInSequenceBridged, nil
	case "M":
		return StatusMissingData, nil
	case "T":
		return StatusAlreadyUsed, nil
	default:
		return 0, &FieldError{Kind: kind, Field: name, Value: s}
	}
}

func unalignedStatusField(kind string, fields []string, index int) (UnalignedStatus, error) {
	s, err := field(kind, fields, index, "status")
	if err != nil {
		return 0, err
	}
	switch s {
	case "C":
		return GapDeletion, nil
	case "I":
		return GapInsertion, nil
	case "M":
		return GapMissingData, nil
	case "n":
		return GapNewSequence, nil
	case "T":
		return GapAlreadyUsed, nil
	default:
		return 0, &FieldError{Kind: kind, Field: "status", Value: s}
	}
}

// addAlignedEntry appends the entry for an "s" line:
// s seq start alignedLength strand sequenceSize alignment
func addAlignedEntry(block *Block, fields []string) error {
	seq, err := field("s", fields, 1, "seq")
	if err != nil {
		return err
	}
	start, err := numericField("s", fields, 2, "start")
	if err != nil {
		return err
	}
	alignedLength, err := numericField("s", fields, 3, "aligned length")
	if err != nil {
		return err
	}
	strand, err := strandField("s", fields, 4)
	if err != nil {
		return err
	}
	sequenceSize, err := numericField("s", fields, 5, "sequence size")
	if err != nil {
		return err
	}
	alignment, err := field("s", fields, 6, "alignment")
	if err != nil {
		return err
	}
	block.Entries = append(block.Entries, &AlignedEntry{
		Alignment:     []byte(alignment),
		Seq:           seq,
		Start:         start,
		AlignedLength: alignedLength,
		SequenceSize:  sequenceSize,
		Strand:        strand,
	})
	return nil
}

// attachContext handles an "i" line:
// i seq leftStatus leftCount rightStatus rightCount
// The context attaches to the most recently appended entry, which must
// be an aligned entry for the same sequence.
func attachContext(block *Block, fields []string) error {
	seq, err := field("i", fields, 1, "seq")
	if err != nil {
		return err
	}
	leftStatus, err := alignedStatusField("i", fields, 2, "left status")
	if err != nil {
		return err
	}
	leftCount, err := numericField("i", fields, 3, "left count")
	if err != nil {
		return err
	}
	rightStatus, err := alignedStatusField("i", fields, 4, "right status")
	if err != nil {
		return err
	}
	rightCount, err := numericField("i", fields, 5, "right count")
	if err != nil {
		return err
	}
	if len(block.Entries) == 0 {
		return &UnexpectedLineError{Line: strings.Join(fields, " "), Reason: "i line cannot be first in a block"}
	}
	last, ok := block.Entries[len(block.Entries)-1].(*AlignedEntry)
	if !ok || last.Seq != seq {
		return &UnexpectedLineError{Line: strings.Join(fields, " "), Reason: "i line must follow the s line for the same sequence"}
	}
	last.Context = &Context{
		LeftStatus:  leftStatus,
		LeftCount:   leftCount,
		RightStatus: rightStatus,
		RightCount:  rightCount,
	}
	return nil
}

// addUnalignedEntry appends the entry for an "e" line:
// e seq start size strand sequenceSize status
func addUnalignedEntry(block *Block, fields []string) error {
	seq, err := field("e", fields, 1, "seq")
	if err != nil {
		return err
	}
	start, err := numericField("e", fields, 2, "start")
	if err != nil {
		return err
	}
	size, err := numericField("e", fields, 3, "size")
	if err != nil {
		return err
	}
	strand, err := strandField("e", fields, 4)
	if err != nil {
		return err
	}
	sequenceSize, err := numericField("e", fields, 5, "sequence size")
	if err != nil {
		return err
	}
	status, err := unalignedStatusField("e", fields, 6)
	if err != nil {
		return err
	}
	block.Entries = append(block.Entries, &UnalignedEntry{
		Seq:          seq,
		Start:        start,
		Size:         size,
		Strand:       strand,
		SequenceSize: sequenceSize,
		Status:       status,
	})
	return nil
}
