package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/nandsim"
	"github.com/db47h/nandsim/cpu"
	"github.com/db47h/nandsim/internal/wavwriter"
	"github.com/pkg/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseDump(t *testing.T) {
	td := []struct {
		in   string
		base uint16
		size int
		err  bool
	}{
		{"0x80:16", 0x80, 16, false},
		{"0:0x20000", 0, 1 << 16, false},
		{"128", 0, 0, true},
		{"0x10000:1", 0, 0, true},
		{"0:x", 0, 0, true},
	}
	for _, d := range td {
		base, size, err := parseDump(d.in)
		if d.err {
			if err == nil {
				t.Errorf("%q: expected error", d.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", d.in, err)
			continue
		}
		if base != d.base || size != d.size {
			t.Errorf("%q: expected %#x:%d, got %#x:%d", d.in, d.base, d.size, base, size)
		}
	}
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	netlist := filepath.Join(dir, "cpu.json")
	image := filepath.Join(dir, "prog.bin")
	trace := filepath.Join(dir, "prog.trace")

	prog := []uint16{
		cpu.LoadI(0, 3),
		cpu.LoadI(1, 0x40),
		cpu.LoadI(2, 1),
		// loop:
		cpu.Store(1, 0),
		cpu.Sub(0, 2),
		cpu.AddI(1, 2),
		cpu.Bnz(0, 6),
		cpu.Halt(),
	}
	b := make([]byte, 2*len(prog))
	for i, w := range prog {
		binary.LittleEndian.PutUint16(b[2*i:], w)
	}
	if err := os.WriteFile(image, b, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "synth", "-o", netlist); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "trace", image, "-o", trace); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "run", netlist, image, "--trace", trace, "--cycles", "200"); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "inspect", "builtin")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"module cpu:", "program_counter", "registers[3]", "runnable: 4 registers"} {
		if !strings.Contains(out, s) {
			t.Errorf("inspect output lacks %q:\n%s", s, out)
		}
	}
}

func TestWavProbe(t *testing.T) {
	ww, err := wavwriter.New(filepath.Join(t.TempDir(), "x.wav"))
	if err != nil {
		t.Fatal(err)
	}
	s := nandsim.NewState(4)
	state := func() *nandsim.State { return s }

	var perr error
	p := wavProbe(state, []nandsim.Node{nandsim.True, 2}, ww, &perr)
	p(nandsim.Sample{})
	if perr != nil || ww.Len() != 1 {
		t.Fatalf("expected one sample, got %d, err %v", ww.Len(), perr)
	}

	p = wavProbe(state, []nandsim.Node{100}, ww, &perr)
	p(nandsim.Sample{})
	p(nandsim.Sample{})
	if _, ok := errors.Cause(perr).(*nandsim.IndexError); !ok {
		t.Fatalf("expected IndexError, got %v", perr)
	}
	if ww.Len() != 1 {
		t.Fatalf("expected no sample recorded after error, got %d", ww.Len())
	}
}
