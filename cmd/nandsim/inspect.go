// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bradleyjkemp/memviz"
	"github.com/db47h/nandsim"
	"github.com/db47h/nandsim/cpu"
	"github.com/spf13/cobra"
)

var inspectOpts struct {
	module string
	dot    string
}

var inspectCmd = &cobra.Command{
	Use:   "inspect NETLIST",
	Short: "Print netlist statistics and signals",
	Long: `Inspect loads a netlist and prints its gate and node counts, then every
signal with its width. It also reports whether the netlist exposes the
signals needed by run.

With --dot, the bound machine pins are written as a graphviz graph.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nl, err := loadNetlist(args[0], inspectOpts.module)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err = inspect(out, nl); err != nil {
			return err
		}
		var pins nandsim.Pins
		if err = nandsim.Bind(nl, &pins); err != nil {
			fmt.Fprintf(out, "not runnable: %v\n", err)
		} else {
			fmt.Fprintf(out, "runnable: %d registers\n", len(pins.Registers))
		}
		if inspectOpts.dot == "" {
			return nil
		}
		return create(inspectOpts.dot, out, func(w io.Writer) error {
			memviz.Map(w, &pins)
			return nil
		})
	},
}

func init() {
	f := inspectCmd.Flags()
	f.StringVarP(&inspectOpts.module, "module", "m", cpu.Module, "netlist module `name`")
	f.StringVar(&inspectOpts.dot, "dot", "", "write the bound pins as a graphviz `file`")
	rootCmd.AddCommand(inspectCmd)
}

func inspect(w io.Writer, nl *nandsim.Netlist) error {
	fmt.Fprintf(w, "module %s: %d gates, %d nodes\n", nl.Module, len(nl.Gates), nl.Size())
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	for _, n := range nl.Names() {
		fmt.Fprintf(tw, "\t%s\t%d\n", n, len(nl.Signals[n]))
	}
	return tw.Flush()
}
