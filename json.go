// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Cell types accepted by Load. Yosys emits $_NAND_ for its internal gate
// library, custom liberty mappings usually name the cell NAND.
//
var nandTypes = map[string]bool{
	"NAND":    true,
	"$_NAND_": true,
}

// bit is a netlist bit reference: a node id or a "0"/"1" constant.
type bit Node

func (b *bit) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "0":
			*b = bit(False)
		case "1":
			*b = bit(True)
		default:
			return errors.Errorf("unsupported constant %q", s)
		}
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return errors.Errorf("invalid bit %s", data)
	}
	if n < int64(cstCount) {
		return errors.Errorf("node id %d collides with constant", n)
	}
	*b = bit(n)
	return nil
}

func (b bit) MarshalJSON() ([]byte, error) {
	if Node(b) < cstCount {
		return []byte(`"` + strconv.Itoa(int(b)) + `"`), nil
	}
	return []byte(strconv.Itoa(int(b))), nil
}

type jsonCell struct {
	Name        string           `json:"-"`
	Type        string           `json:"type"`
	Connections map[string][]bit `json:"connections"`
}

// cellList decodes a JSON object into a slice, keeping declaration order.
type cellList []jsonCell

func (l *cellList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := t.(json.Delim); !ok || d != '{' {
		return errors.New("cells is not an object")
	}
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		c := jsonCell{Name: t.(string)}
		if err = dec.Decode(&c); err != nil {
			return errors.Wrapf(err, "cell %s", c.Name)
		}
		*l = append(*l, c)
	}
	if *l == nil {
		*l = cellList{}
	}
	return nil
}

type jsonNet struct {
	Bits []bit `json:"bits"`
}

type jsonModule struct {
	Cells    cellList            `json:"cells"`
	Netnames map[string]*jsonNet `json:"netnames"`
}

type jsonDesign struct {
	Creator string                 `json:"creator,omitempty"`
	Modules map[string]*jsonModule `json:"modules"`
}

// LoadFile loads a netlist from the named file. See Load.
//
func LoadFile(name string, module string) (*Netlist, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "load netlist")
	}
	defer f.Close()
	return Load(f, module)
}

// Load reads a synthesized netlist in yosys JSON format and returns the named
// module. Only NAND cells are supported. Cells are kept in declaration order.
//
func Load(r io.Reader, module string) (*Netlist, error) {
	var d jsonDesign
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.WithStack(&FormatError{module, err.Error()})
	}
	m := d.Modules[module]
	if m == nil {
		return nil, errors.WithStack(&FormatError{module, "module not found"})
	}
	if m.Cells == nil {
		return nil, errors.WithStack(&FormatError{module, "missing cells"})
	}
	if m.Netnames == nil {
		return nil, errors.WithStack(&FormatError{module, "missing netnames"})
	}

	gates := make([]Gate, 0, len(m.Cells))
	for _, c := range m.Cells {
		if !nandTypes[c.Type] {
			return nil, errors.WithStack(&FormatError{module, fmt.Sprintf("cell %s: unsupported type %q", c.Name, c.Type)})
		}
		var g Gate
		for _, p := range [...]struct {
			name string
			n    *Node
		}{{"A", &g.A}, {"B", &g.B}, {"Y", &g.Y}} {
			bits := c.Connections[p.name]
			if len(bits) == 0 {
				return nil, errors.WithStack(&FormatError{module, fmt.Sprintf("cell %s: missing connection %s", c.Name, p.name)})
			}
			*p.n = Node(bits[0])
		}
		gates = append(gates, g)
	}

	signals := make(map[string][]Node, len(m.Netnames))
	for name, net := range m.Netnames {
		if net == nil || len(net.Bits) == 0 {
			return nil, errors.WithStack(&FormatError{module, "signal " + strconv.Quote(name) + " has no bits"})
		}
		bits := make([]Node, len(net.Bits))
		for i, b := range net.Bits {
			bits[i] = Node(b)
		}
		signals[name] = bits
	}

	nl, err := NewNetlist(module, gates, signals)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return nl, nil
}

// WriteJSON writes the netlist in the format read by Load. Cells are named so
// that sorting them by name preserves the gate order.
//
func (n *Netlist) WriteJSON(w io.Writer) error {
	digits := len(strconv.Itoa(len(n.Gates)))
	cells := make(map[string]jsonCell, len(n.Gates))
	for i, g := range n.Gates {
		cells[fmt.Sprintf("$nand$%0*d", digits, i)] = jsonCell{
			Type: "NAND",
			Connections: map[string][]bit{
				"A": {bit(g.A)},
				"B": {bit(g.B)},
				"Y": {bit(g.Y)},
			},
		}
	}
	nets := make(map[string]jsonNet, len(n.Signals))
	for name, bits := range n.Signals {
		jb := make([]bit, len(bits))
		for i, b := range bits {
			jb[i] = bit(b)
		}
		nets[name] = jsonNet{jb}
	}
	out := struct {
		Creator string                 `json:"creator"`
		Modules map[string]interface{} `json:"modules"`
	}{
		Creator: "nandsim",
		Modules: map[string]interface{}{
			n.Module: struct {
				Cells    map[string]jsonCell `json:"cells"`
				Netnames map[string]jsonNet  `json:"netnames"`
			}{cells, nets},
		},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "write netlist")
}
