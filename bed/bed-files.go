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

package bed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/exascience/pargo/pipeline"

	"github.com/compgen/mafkit/internal"
	"github.com/compgen/mafkit/utils"
)

// maxFields is the largest accepted number of BED fields. Everything
// beyond the mandatory three is ignored; BED12+ input is rejected.
const maxFields = 9

func parseLine(line string) (*Region, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields) > maxFields {
		return nil, fmt.Errorf("BED12 input not supported: line with %v fields %q", len(fields), line)
	}
	if len(fields) < 3 {
		return nil, fmt.Errorf("incomplete BED line %q", line)
	}
	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid start position in BED line %q", line)
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid end position in BED line %q", line)
	}
	return &Region{Chrom: utils.Intern(fields[0]), Start: start, End: end}, nil
}

// ParseBedReader parses BED3 region input from a reader: one
// whitespace-separated "chrom start end" triple per line, blank lines
// ignored. Lines are parsed in parallel; regions are collected in
// input order and sorted by start per chromosome.
func ParseBedReader(input io.Reader) (*Bed, error) {
	bed := NewBed()
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(input))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		lines := data.([]string)
		regions := make([]*Region, 0, len(lines))
		for _, line := range lines {
			region, err := parseLine(line)
			if err != nil {
				p.SetErr(err)
				return regions
			}
			if region != nil {
				regions = append(regions, region)
			}
		}
		return regions
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for _, region := range data.([]*Region) {
			bed.AddRegion(region)
		}
		return data
	})))
	p.Run()
	if err := p.Err(); err != nil {
		return nil, err
	}
	bed.sortRegions()
	return bed, nil
}

// ParseBed parses a BED file. See
// https://genome.ucsc.edu/FAQ/FAQformat.html#format1
func ParseBed(filename string) (*Bed, error) {
	file := internal.FileOpen(filename)
	defer internal.Close(file)
	return ParseBedReader(bufio.NewReader(file))
}
