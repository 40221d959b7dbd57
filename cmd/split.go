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

	"github.com/compgen/mafkit/internal"
	"github.com/compgen/mafkit/maf"
	"github.com/compgen/mafkit/split"
)

// SplitHelp is the help string for this command.
const SplitHelp = "\nsplit parameters:\n" +
	"mafkit split maf-file /path/to/output/\n" +
	"[--max-length nr]\n" +
	"[--log-path path]\n"

// Split implements the mafkit split command, which distributes the
// blocks of a MAF file over multiple files, starting a new file
// whenever the reference chromosome changes or the accumulated aligned
// length exceeds the maximum.
func Split() error {
	var (
		maxLength int64
		logPath   string
	)

	var flags flag.FlagSet

	flags.Int64Var(&maxLength, "max-length", split.DefaultMaxLength, "maximum total aligned length per output file")
	flags.StringVar(&logPath, "log-path", "", "directory for the log file")

	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, SplitHelp)
		os.Exit(1)
	}

	input := getFilename(os.Args[2], SplitHelp)
	outputDir := getFilename(os.Args[3], SplitHelp)

	parseFlags(flags, 4, SplitHelp)

	setLogOutput(logPath)

	fullInput, err := internal.FullPathname(input)
	if err != nil {
		return err
	}
	fullOutputDir, err := internal.FullPathname(outputDir)
	if err != nil {
		return err
	}
	log.Println("Splitting", fullInput, "into", fullOutputDir)

	internal.MkdirAll(fullOutputDir, 0700)

	inFile, in := openInput(input)
	defer internal.Close(inFile)

	writer := split.NewWriter(fullOutputDir, maxLength)

	if err := forEachItem(in, func(item maf.Item) error {
		block, ok := item.(*maf.Block)
		if !ok {
			return nil
		}
		return writer.WriteBlock(block)
	}); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}
