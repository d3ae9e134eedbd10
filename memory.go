// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
)

// MemSize is the size of the memory attached to a circuit.
//
const MemSize = 1 << 16

// Memory is a byte addressed memory device. 16 bits words are stored little
// endian. Word accesses at 0xFFFF wrap around to address 0 for the high byte.
//
type Memory [MemSize]byte

// Word returns the 16 bits word at addr.
//
func (m *Memory) Word(addr uint16) uint16 {
	return uint16(m[addr]) | uint16(m[addr+1])<<8
}

// SetWord stores v at addr.
//
func (m *Memory) SetWord(addr uint16, v uint16) {
	m[addr] = byte(v)
	m[addr+1] = byte(v >> 8)
}

// LoadImage copies a program image to memory, starting at address 0.
//
func (m *Memory) LoadImage(words []uint16) error {
	if len(words) > MemSize/2 {
		return errors.Errorf("program image too large: %d words", len(words))
	}
	for i, w := range words {
		m.SetWord(uint16(i*2), w)
	}
	return nil
}

// ReadImage reads a program image: a sequence of little endian 16 bits words
// as written by the assembler.
//
func ReadImage(r io.Reader) ([]uint16, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read image")
	}
	if len(b)%2 != 0 {
		return nil, errors.Errorf("image size %d is not a multiple of 2", len(b))
	}
	words := make([]uint16, len(b)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return words, nil
}

// ReadImageFile reads a program image from the named file.
//
func ReadImageFile(name string) ([]uint16, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "read image")
	}
	defer f.Close()
	return ReadImage(f)
}

// MemoryCheck is an expected memory byte.
//
type MemoryCheck struct {
	Addr  uint16
	Value byte
}

// Check compares memory against the expected values and returns a
// *MemoryError for the first mismatch.
//
func (m *Memory) Check(want []MemoryCheck) error {
	for _, c := range want {
		if got := m[c.Addr]; got != c.Value {
			return errors.WithStack(&MemoryError{c.Addr, c.Value, got})
		}
	}
	return nil
}

// Dump writes a hex dump of size bytes starting at base.
//
func (m *Memory) Dump(w io.Writer, base uint16, size int) error {
	for i := 0; i < size; i++ {
		addr := base + uint16(i)
		var err error
		switch {
		case i%16 == 0:
			if i > 0 {
				if _, err = io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(w, "%04x: %02x", addr, m[addr])
		default:
			_, err = fmt.Fprintf(w, " %02x", m[addr])
		}
		if err != nil {
			return err
		}
	}
	if size > 0 {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
