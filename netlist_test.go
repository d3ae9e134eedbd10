package nandsim_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

// a 1 bit inverter with a constant tie-off and a named bus
const invJSON = `{
  "creator": "Yosys 0.9",
  "modules": {
    "inv": {
      "ports": {},
      "cells": {
        "$abc$42$auto$1": {
          "hide_name": 1,
          "type": "$_NAND_",
          "connections": { "A": [ 2 ], "B": [ "1" ], "Y": [ 3 ] }
        },
        "$abc$42$auto$0": {
          "type": "NAND",
          "connections": { "A": [ 3 ], "B": [ 3 ], "Y": [ 4 ] }
        }
      },
      "netnames": {
        "in": { "bits": [ 2 ] },
        "out": { "bits": [ 3 ] },
        "both": { "bits": [ 3, 4, "0", "1" ] }
      }
    }
  }
}`

func TestLoad(t *testing.T) {
	nl, err := nandsim.Load(strings.NewReader(invJSON), "inv")
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	// declaration order, not name order
	want := []nandsim.Gate{{A: 2, B: nandsim.True, Y: 3}, {A: 3, B: 3, Y: 4}}
	if len(nl.Gates) != len(want) {
		t.Fatalf("expected %d gates, got %d", len(want), len(nl.Gates))
	}
	for i := range want {
		if nl.Gates[i] != want[i] {
			t.Fatalf("gate %d: expected %v, got %v", i, want[i], nl.Gates[i])
		}
	}
	if nl.Size() != 5 {
		t.Fatalf("expected size 5, got %d", nl.Size())
	}
	both, err := nl.Bus("both", 4)
	if err != nil {
		t.Fatal(err)
	}
	if both[2] != nandsim.False || both[3] != nandsim.True {
		t.Fatalf("bad constants: %v", both)
	}
	if names := nl.Names(); strings.Join(names, ",") != "both,in,out" {
		t.Fatalf("bad names: %v", names)
	}

	c := nandsim.NewCircuit(nl, 0)
	in, _ := nl.Bit("in")
	out, _ := nl.Bit("out")
	c.State().SetBit(in, true)
	if err = c.Tick(); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.State().Bit(out); v {
		t.Fatal("expected out = false")
	}
}

func TestLoad_errors(t *testing.T) {
	td := []struct {
		name   string
		json   string
		module string
		msg    string
	}{
		{"syntax", `{"modules": `, "m", ""},
		{"module", `{"modules": {"a": {"cells": {}, "netnames": {}}}}`, "m", "module not found"},
		{"cells", `{"modules": {"m": {"netnames": {}}}}`, "m", "missing cells"},
		{"netnames", `{"modules": {"m": {"cells": {}}}}`, "m", "missing netnames"},
		{"type", `{"modules": {"m": {"cells": {"c": {"type": "$_AND_", "connections": {"A": [2], "B": [3], "Y": [4]}}}, "netnames": {}}}}`, "m", "unsupported type"},
		{"connection", `{"modules": {"m": {"cells": {"c": {"type": "NAND", "connections": {"A": [2], "Y": [4]}}}, "netnames": {}}}}`, "m", "missing connection B"},
		{"constant", `{"modules": {"m": {"cells": {"c": {"type": "NAND", "connections": {"A": [2], "B": ["x"], "Y": [4]}}}, "netnames": {}}}}`, "m", ""},
		{"node0", `{"modules": {"m": {"cells": {"c": {"type": "NAND", "connections": {"A": [0], "B": [2], "Y": [4]}}}, "netnames": {}}}}`, "m", ""},
		{"drive_constant", `{"modules": {"m": {"cells": {"c": {"type": "NAND", "connections": {"A": [2], "B": [2], "Y": ["1"]}}}, "netnames": {}}}}`, "m", "constant"},
		{"two_drivers", `{"modules": {"m": {"cells": {
			"c0": {"type": "NAND", "connections": {"A": [2], "B": [2], "Y": [4]}},
			"c1": {"type": "NAND", "connections": {"A": [3], "B": [3], "Y": [4]}}}, "netnames": {}}}}`, "m", "driven by gates 0 and 1"},
		{"empty_signal", `{"modules": {"m": {"cells": {}, "netnames": {"x": {"bits": []}}}}}`, "m", "no bits"},
	}
	for _, d := range td {
		d := d
		t.Run(d.name, func(t *testing.T) {
			_, err := nandsim.Load(strings.NewReader(d.json), d.module)
			if err == nil {
				t.Fatal("expected error")
			}
			if _, ok := errors.Cause(err).(*nandsim.FormatError); !ok {
				t.Fatalf("expected FormatError, got %T: %v", errors.Cause(err), err)
			}
			if !strings.Contains(err.Error(), d.msg) {
				t.Fatalf("expected error containing %q, got %v", d.msg, err)
			}
		})
	}
}

func TestNetlist_width(t *testing.T) {
	nl, err := nandsim.Load(strings.NewReader(invJSON), "inv")
	if err != nil {
		t.Fatal(err)
	}
	_, err = nl.Bit("both")
	e, ok := errors.Cause(err).(*nandsim.WidthError)
	if !ok {
		t.Fatalf("expected WidthError, got %v", err)
	}
	if e.Signal != "both" || e.Want != 1 || e.Got != 4 {
		t.Fatalf("bad error: %v", e)
	}
	_, err = nl.Signal("missing")
	if _, ok := errors.Cause(err).(*nandsim.FormatError); !ok {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestNetlist_WriteJSON(t *testing.T) {
	gates := make([]nandsim.Gate, 12)
	for i := range gates {
		// chain of inverters, in reverse order
		n := nandsim.Node(len(gates) - i + 1)
		gates[i] = nandsim.Gate{A: n, B: n, Y: n + 1}
	}
	src, err := nandsim.NewNetlist("chain", gates, map[string][]nandsim.Node{
		"in":  {2},
		"out": {nandsim.Node(len(gates) + 2)},
		"k":   {nandsim.True, nandsim.False},
	})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err = src.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	dst, err := nandsim.Load(&buf, "chain")
	if err != nil {
		t.Fatal(err)
	}
	for i := range gates {
		if dst.Gates[i] != gates[i] {
			t.Fatalf("gate %d: expected %v, got %v", i, gates[i], dst.Gates[i])
		}
	}
	if k, _ := dst.Bus("k", 2); k[0] != nandsim.True || k[1] != nandsim.False {
		t.Fatalf("bad constants %v", k)
	}
}
