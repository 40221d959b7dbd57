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

package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/compgen/mafkit/bed"
	"github.com/compgen/mafkit/filter"
	"github.com/compgen/mafkit/internal"
	"github.com/compgen/mafkit/maf"
	"github.com/compgen/mafkit/ranges"
)

// FilterHelp is the help string for this command.
const FilterHelp = "\nfilter parameters:\n" +
	"mafkit filter maf-file bed-file\n" +
	"[--output file]\n" +
	"[--log-path path]\n"

// Filter implements the mafkit filter command, which restricts every
// block to the columns whose reference position falls within the BED
// regions.
func Filter() error {
	var (
		output, logPath string
	)

	var flags flag.FlagSet

	flags.StringVar(&output, "output", "", "output file for the filtered MAF")
	flags.StringVar(&logPath, "log-path", "", "directory for the log file")

	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, FilterHelp)
		os.Exit(1)
	}

	input := getFilename(os.Args[2], FilterHelp)
	bedFile := getFilename(os.Args[3], FilterHelp)

	parseFlags(flags, 4, FilterHelp)

	setLogOutput(logPath)

	regions, err := bed.ParseBed(bedFile)
	if err != nil {
		return err
	}
	index := ranges.FromBed(regions)

	inFile, in := openInput(input)
	defer internal.Close(inFile)

	outFile, out := createOutput(output)

	if err := forEachItem(in, func(item maf.Item) error {
		block, ok := item.(*maf.Block)
		if !ok {
			return maf.WriteItem(out, item)
		}
		filtered, err := filter.FilterBlock(block, index)
		if err != nil {
			return err
		}
		for _, b := range filtered {
			if err := maf.WriteItem(out, b); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return closeOutput(outFile, out)
}
