// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	nodeType = reflect.TypeOf(Node(0))
	busType  = reflect.TypeOf([]Node(nil))
	bankType = reflect.TypeOf([][]Node(nil))
)

// Bind resolves the netlist signals named in the field tags of the struct
// pointed to by v.
//
// The field tag must be `nand:"name"` or `nand:"name,width"`. Supported field
// types are:
//
//	Node     single bit signal. The signal must be exactly 1 bit wide.
//	[]Node   bus. If width is given, the signal must have exactly width bits.
//	[][]Node bank of buses named name[0], name[1], ... At least name[0] must
//	         exist. If width is given, it applies to every bus in the bank.
//
// Fields without a nand tag are ignored.
//
func Bind(nl *Netlist, v interface{}) error {
	pv := reflect.ValueOf(v)
	if pv.Kind() != reflect.Ptr || pv.Elem().Kind() != reflect.Struct {
		panic(errors.Errorf("Bind: unsupported type %T", v))
	}
	e := pv.Elem()
	typ := e.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("nand")
		if !ok {
			continue
		}
		name, width := tag, -1
		if c := strings.IndexByte(tag, ','); c >= 0 {
			w, err := strconv.Atoi(tag[c+1:])
			if err != nil || w <= 0 {
				panic(errors.Errorf("invalid width in tag %q for field %q", tag, f.Name))
			}
			name, width = tag[:c], w
		}
		fv := e.Field(i)
		switch f.Type {
		case nodeType:
			n, err := nl.Bit(name)
			if err != nil {
				return err
			}
			fv.SetInt(int64(n))
		case busType:
			bits, err := bindBus(nl, name, width)
			if err != nil {
				return err
			}
			fv.Set(reflect.ValueOf(bits))
		case bankType:
			var bank [][]Node
			for j := 0; ; j++ {
				n := BusName(name, j)
				if _, ok := nl.Signals[n]; !ok {
					if j == 0 {
						return errors.WithStack(&FormatError{nl.Module, "missing signal " + strconv.Quote(n)})
					}
					break
				}
				bits, err := bindBus(nl, n, width)
				if err != nil {
					return err
				}
				bank = append(bank, bits)
			}
			fv.Set(reflect.ValueOf(bank))
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", f.Type, f.Name, typ.Name()))
		}
	}
	return nil
}

func bindBus(nl *Netlist, name string, width int) ([]Node, error) {
	if width < 0 {
		return nl.Signal(name)
	}
	return nl.Bus(name, width)
}

// BusName returns the name of the i-th element of an array signal, as
// written by synthesis tools: "name[i]".
//
func BusName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// Pins is the set of signals driven and sampled by a Machine.
//
type Pins struct {
	Clock       Node     `nand:"clock"`
	Reset       Node     `nand:"reset"`
	WriteEnable Node     `nand:"write_enable"`
	Halted      Node     `nand:"halted"`
	Flag        Node     `nand:"flag"`
	State       []Node   `nand:"state"`
	PC          []Node   `nand:"program_counter"`
	Addr        []Node   `nand:"addr,16"`
	In          []Node   `nand:"inp_val,16"`
	Out         []Node   `nand:"out_val,16"`
	Registers   [][]Node `nand:"registers"`
}
