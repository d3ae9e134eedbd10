// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"io"
	"os"

	"github.com/db47h/nandsim/cpu"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var synthOut string

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Write the reference CPU netlist",
	Long: `Synth builds the reference 16 bits CPU from NAND gates and writes its
netlist in yosys JSON format, module "cpu".
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return create(synthOut, cmd.OutOrStdout(), func(w io.Writer) error {
			return cpu.Build().WriteJSON(w)
		})
	},
}

func init() {
	synthCmd.Flags().StringVarP(&synthOut, "output", "o", "", "output `file` (default stdout)")
	rootCmd.AddCommand(synthCmd)
}

// create calls f with the named file, or with stdout if name is empty.
func create(name string, stdout io.Writer, f func(w io.Writer) error) (err error) {
	if name == "" || name == "-" {
		return f(stdout)
	}
	w, err := os.Create(name)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.WithStack(cerr)
		}
	}()
	return f(w)
}
