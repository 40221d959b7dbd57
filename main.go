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

// mafkit is a toolkit for analyzing multiple alignment format (MAF)
// files produced by whole-genome aligners.
//
// Please see https://github.com/compgen/mafkit for a documentation of
// the tool, and below for the API documentation.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/compgen/mafkit/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: coverage, filter, split, merge-dups, dup-blocks")
	fmt.Fprint(os.Stderr, "\n", cmd.CoverageHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.FilterHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.SplitHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.MergeDupsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.DupBlocksHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "coverage":
		err = cmd.Coverage()
	case "filter":
		err = cmd.Filter()
	case "split":
		err = cmd.Split()
	case "merge-dups":
		err = cmd.MergeDups()
	case "dup-blocks":
		err = cmd.DupBlocks()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command:", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
