// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command nandsim runs programs on NAND-only CPU netlists.
//
//	nandsim synth -o cpu.json              write the reference CPU netlist
//	nandsim trace prog.bin -o prog.trace   compute the expected trace of a program
//	nandsim run cpu.json prog.bin --trace prog.trace
//	nandsim inspect cpu.json
//
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var logger = log.New(os.Stderr, "nandsim: ", 0)

var rootCmd = &cobra.Command{
	Use:   "nandsim",
	Short: "A gate level NAND netlist simulator",
	Long: `Nandsim loads a synthesized netlist made only of NAND gates and runs a
program on it, checking the execution trace and memory contents against
expected values.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Print(err)
		os.Exit(1)
	}
}
