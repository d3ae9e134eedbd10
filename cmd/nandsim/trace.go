// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"io"

	"github.com/db47h/nandsim"
	"github.com/db47h/nandsim/cpu"
	"github.com/db47h/nandsim/internal/expect"
	"github.com/spf13/cobra"
)

var traceOpts struct {
	out string
	max int
}

var traceCmd = &cobra.Command{
	Use:   "trace IMAGE",
	Short: "Compute the expected trace of a program on the reference CPU",
	Long: `Trace runs IMAGE on an instruction level model of the reference CPU and
writes one checkpoint per executed instruction, in the format accepted by
run --trace. The program must halt.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		words, err := nandsim.ReadImageFile(args[0])
		if err != nil {
			return err
		}
		mem := new(nandsim.Memory)
		if err = mem.LoadImage(words); err != nil {
			return err
		}
		tr, err := cpu.Trace(mem, traceOpts.max)
		if err != nil {
			return err
		}
		logger.Printf("%d instructions, run with --cycles %d", len(tr)+1, cpu.Cycles(len(tr)))
		return create(traceOpts.out, cmd.OutOrStdout(), func(w io.Writer) error {
			return expect.WriteTrace(w, tr)
		})
	},
}

func init() {
	f := traceCmd.Flags()
	f.StringVarP(&traceOpts.out, "output", "o", "", "output `file` (default stdout)")
	f.IntVar(&traceOpts.max, "max", 1<<20, "maximum number of instructions")
	rootCmd.AddCommand(traceCmd)
}
