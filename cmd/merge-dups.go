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
	"log"
	"os"

	"github.com/compgen/mafkit/dups"
	"github.com/compgen/mafkit/internal"
	"github.com/compgen/mafkit/maf"
)

// MergeDupsHelp is the help string for this command.
const MergeDupsHelp = "\nmerge-dups parameters:\n" +
	"mafkit merge-dups maf-file\n" +
	"--mode [unanimity | consensus | mask]\n" +
	"[--output file]\n" +
	"[--log-path path]\n"

// MergeDups implements the mafkit merge-dups command.
func MergeDups() error {
	var (
		mode, output, logPath string
	)

	var flags flag.FlagSet

	flags.StringVar(&mode, "mode", "", "how to resolve bases when merging duplicate entries")
	flags.StringVar(&output, "output", "", "output file for the merged MAF")
	flags.StringVar(&logPath, "log-path", "", "directory for the log file")

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, MergeDupsHelp)
		os.Exit(1)
	}

	input := getFilename(os.Args[2], MergeDupsHelp)

	parseFlags(flags, 3, MergeDupsHelp)

	var consensusMode dups.Mode
	switch mode {
	case "unanimity":
		consensusMode = dups.Unanimity
	case "consensus":
		consensusMode = dups.Consensus
	case "mask":
		consensusMode = dups.Mask
	default:
		log.Printf("Error: Invalid merge mode %v.\n", mode)
		fmt.Fprint(os.Stderr, MergeDupsHelp)
		os.Exit(1)
	}

	setLogOutput(logPath)

	inFile, in := openInput(input)
	defer internal.Close(inFile)

	outFile, out := createOutput(output)

	if err := forEachItem(in, func(item maf.Item) error {
		if block, ok := item.(*maf.Block); ok {
			item = dups.Merge(block, consensusMode)
		}
		return maf.WriteItem(out, item)
	}); err != nil {
		return err
	}
	return closeOutput(outFile, out)
}
