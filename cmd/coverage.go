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
	"github.com/compgen/mafkit/coverage"
	"github.com/compgen/mafkit/internal"
	"github.com/compgen/mafkit/maf"
	"github.com/compgen/mafkit/ranges"
)

// CoverageHelp is the help string for this command.
const CoverageHelp = "\ncoverage parameters:\n" +
	"mafkit coverage maf-file reference-genome\n" +
	"[--bed bed-file]\n" +
	"[--output file]\n" +
	"[--log-path path]\n"

// Coverage implements the mafkit coverage command.
func Coverage() error {
	var (
		bedFile, output, logPath string
	)

	var flags flag.FlagSet

	flags.StringVar(&bedFile, "bed", "", "restrict coverage counting to the regions in this BED file")
	flags.StringVar(&output, "output", "", "output file for the coverage table")
	flags.StringVar(&logPath, "log-path", "", "directory for the log file")

	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, CoverageHelp)
		os.Exit(1)
	}

	input := getFilename(os.Args[2], CoverageHelp)
	refGenome := getFilename(os.Args[3], CoverageHelp)

	parseFlags(flags, 4, CoverageHelp)

	setLogOutput(logPath)

	var index *ranges.Index
	if bedFile != "" {
		regions, err := bed.ParseBed(bedFile)
		if err != nil {
			return err
		}
		index = ranges.FromBed(regions)
	}

	inFile, in := openInput(input)
	defer internal.Close(inFile)

	acc := coverage.NewAccumulator(refGenome, index)
	if err := forEachItem(in, func(item maf.Item) error {
		if block, ok := item.(*maf.Block); ok {
			acc.AddBlock(block)
		}
		return nil
	}); err != nil {
		return err
	}

	outFile, out := createOutput(output)
	if err := acc.Report(out); err != nil {
		return err
	}
	return closeOutput(outFile, out)
}
