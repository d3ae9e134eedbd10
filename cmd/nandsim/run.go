// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/db47h/nandsim"
	"github.com/db47h/nandsim/cpu"
	"github.com/db47h/nandsim/internal/expect"
	"github.com/db47h/nandsim/internal/statsview"
	"github.com/db47h/nandsim/internal/wavwriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// builtin is the netlist argument selecting the reference CPU.
const builtin = "builtin"

var runOpts struct {
	module    string
	cycles    int
	maxSweeps int
	boundary  uint64
	trace     string
	mem       string
	verbose   bool
	dump      string
	wav       string
	wavSignal string
	statsview bool
}

var runCmd = &cobra.Command{
	Use:   "run NETLIST IMAGE",
	Short: "Run a program image on a netlist",
	Long: `Run loads a netlist in yosys JSON format and runs the program IMAGE on it
(little endian 16 bits words loaded at address 0). Use "builtin" as NETLIST
to run the reference CPU.

The run stops when the circuit asserts halted or the cycle budget is
exhausted. With --trace and --expect-mem, the execution trace and final
memory contents are checked and any difference is an error.
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0], args[1])
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runOpts.module, "module", "m", cpu.Module, "netlist module `name`")
	f.IntVarP(&runOpts.cycles, "cycles", "c", 1000, "cycle budget")
	f.IntVar(&runOpts.maxSweeps, "max-sweeps", nandsim.DefaultMaxSweeps, "maximum number of sweeps per settlement")
	f.Uint64Var(&runOpts.boundary, "boundary", 0, "value of the state signal at instruction boundaries")
	f.StringVarP(&runOpts.trace, "trace", "t", "", "expected trace `file`")
	f.StringVar(&runOpts.mem, "expect-mem", "", "expected memory `file`")
	f.BoolVarP(&runOpts.verbose, "verbose", "v", false, "print a trace of execution")
	f.StringVar(&runOpts.dump, "dump", "", "dump memory after the run, `BASE:SIZE`")
	f.StringVar(&runOpts.wav, "wav", "", "record a signal to a WAV `file`")
	f.StringVar(&runOpts.wavSignal, "wav-signal", "clock", "signal `name` recorded with --wav")
	f.BoolVar(&runOpts.statsview, "statsview", false, "launch the runtime statistics server")
	rootCmd.AddCommand(runCmd)
}

func loadNetlist(name, module string) (*nandsim.Netlist, error) {
	if name == builtin {
		return cpu.New()
	}
	return nandsim.LoadFile(name, module)
}

func parseDump(s string) (base uint16, size int, err error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return 0, 0, errors.Errorf("invalid dump range %q, expected BASE:SIZE", s)
	}
	b, err := strconv.ParseUint(s[:i], 0, 16)
	if err != nil {
		return 0, 0, errors.Wrap(err, "dump base")
	}
	n, err := strconv.ParseUint(s[i+1:], 0, 32)
	if err != nil {
		return 0, 0, errors.Wrap(err, "dump size")
	}
	if n > nandsim.MemSize {
		n = nandsim.MemSize
	}
	return uint16(b), int(n), nil
}

func run(netlist, image string) (err error) {
	o := &runOpts
	if o.statsview {
		if !statsview.Available() {
			return errors.New("--statsview: rebuild with -tags statsview")
		}
		statsview.Launch(os.Stderr)
	}

	var dumpBase uint16
	var dumpSize int
	if o.dump != "" {
		if dumpBase, dumpSize, err = parseDump(o.dump); err != nil {
			return err
		}
	}

	nl, err := loadNetlist(netlist, o.module)
	if err != nil {
		return err
	}
	words, err := nandsim.ReadImageFile(image)
	if err != nil {
		return err
	}
	mem := new(nandsim.Memory)
	if err = mem.LoadImage(words); err != nil {
		return err
	}

	cfg := nandsim.Config{
		Cycles:    o.cycles,
		Boundary:  o.boundary,
		MaxSweeps: o.maxSweeps,
		Log:       logger,
		Verbose:   o.verbose,
	}
	if o.trace != "" {
		if cfg.Trace, err = expect.ReadTraceFile(o.trace); err != nil {
			return err
		}
	}
	if o.mem != "" {
		if cfg.Memory, err = expect.ReadMemoryFile(o.mem); err != nil {
			return err
		}
	}

	var m *nandsim.Machine
	var probes []func(nandsim.Sample)
	var wavErr error
	if o.wav != "" {
		var sig []nandsim.Node
		if sig, err = nl.Signal(o.wavSignal); err != nil {
			return err
		}
		var ww *wavwriter.WavWriter
		if ww, err = wavwriter.New(o.wav); err != nil {
			return err
		}
		defer func() {
			if cerr := ww.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		probes = append(probes, wavProbe(func() *nandsim.State { return m.State() }, sig, ww, &wavErr))
	}
	live := !o.verbose && term.IsTerminal(int(os.Stderr.Fd()))
	if live {
		probes = append(probes, progress())
	}
	if len(probes) > 0 {
		cfg.Probe = func(s nandsim.Sample) {
			for _, p := range probes {
				p(s)
			}
		}
	}

	if m, err = nandsim.NewMachine(nl, mem, cfg); err != nil {
		return err
	}
	start := time.Now()
	res, err := m.Run()
	if err == nil && wavErr != nil {
		err = errors.Wrap(wavErr, "--wav")
	}
	if live {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
	if res == nil {
		return err
	}
	logger.Printf("%d cycles in %v, halted: %v, checkpoints: %d, flags: %d", res.Cycles, time.Since(start), res.Halted, res.Checkpoints, res.Flags)
	logger.Printf("PC: %d Registers: %v", res.PC, res.Registers)
	if o.verbose {
		logger.Printf("%d gates, %d ticks, %d sweeps, %d updates", m.Circuit().Size(), res.Ticks, res.Sweeps, res.Updates)
	}
	if dumpSize > 0 {
		if derr := mem.Dump(os.Stdout, dumpBase, dumpSize); derr != nil && err == nil {
			err = derr
		}
	}
	return err
}

// wavProbe returns a probe that records the value of sig. The first read
// error is stored in errp and stops recording.
//
func wavProbe(state func() *nandsim.State, sig []nandsim.Node, ww *wavwriter.WavWriter, errp *error) func(nandsim.Sample) {
	return func(nandsim.Sample) {
		if *errp != nil {
			return
		}
		v, err := state().Get(sig)
		if err != nil {
			*errp = err
			return
		}
		ww.Add(v, len(sig))
	}
}

// progress returns a probe that updates a status line on the terminal.
func progress() func(nandsim.Sample) {
	last := time.Now()
	return func(s nandsim.Sample) {
		if now := time.Now(); now.Sub(last) > 100*time.Millisecond {
			last = now
			fmt.Fprintf(os.Stderr, "\rcycle %d PC %d", s.Cycle, s.PC)
		}
	}
}
