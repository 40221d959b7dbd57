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

	"github.com/compgen/mafkit/dups"
	"github.com/compgen/mafkit/internal"
	"github.com/compgen/mafkit/maf"
)

// DupBlocksHelp is the help string for this command.
const DupBlocksHelp = "\ndup-blocks parameters:\n" +
	"mafkit dup-blocks maf-file\n" +
	"[--output file]\n" +
	"[--log-path path]\n"

// DupBlocks implements the mafkit dup-blocks command, which passes
// through only the blocks in which some genome has more than one
// aligned entry.
func DupBlocks() error {
	var (
		output, logPath string
	)

	var flags flag.FlagSet

	flags.StringVar(&output, "output", "", "output file for the selected blocks")
	flags.StringVar(&logPath, "log-path", "", "directory for the log file")

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, DupBlocksHelp)
		os.Exit(1)
	}

	input := getFilename(os.Args[2], DupBlocksHelp)

	parseFlags(flags, 3, DupBlocksHelp)

	setLogOutput(logPath)

	inFile, in := openInput(input)
	defer internal.Close(inFile)

	outFile, out := createOutput(output)

	if err := forEachItem(in, func(item maf.Item) error {
		if block, ok := item.(*maf.Block); ok && !dups.HasDuplicates(block) {
			return nil
		}
		return maf.WriteItem(out, item)
	}); err != nil {
		return err
	}
	return closeOutput(outFile, out)
}
