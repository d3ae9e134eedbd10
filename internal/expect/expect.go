// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package expect reads and writes expected trace and memory files.
//
// A trace file has one checkpoint per line: the program counter, a colon,
// then the value of every register:
//
//	; pc: r0 r1 r2 r3
//	2: 10 0 0 0
//	4: 10 5 0 0
//
// A memory file lists bytes starting at a given address:
//
//	0x80 = 0x00 0x00 0x01 0x00
//
// Numbers are decimal or prefixed with 0x, 0o or 0b. Comments start with ';'
// or '#' and run to the end of the line.
//
package expect

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

// SyntaxError reports a malformed line.
//
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.File == "" {
		return "line " + strconv.Itoa(e.Line) + ": " + e.Msg
	}
	return e.File + ":" + strconv.Itoa(e.Line) + ": " + e.Msg
}

type scanner struct {
	s    *bufio.Scanner
	file string
	line int
}

// next returns the next non-empty line with comments stripped.
func (s *scanner) next() (string, bool) {
	for s.s.Scan() {
		s.line++
		l := s.s.Text()
		if i := strings.IndexAny(l, ";#"); i >= 0 {
			l = l[:i]
		}
		if l = strings.TrimSpace(l); l != "" {
			return l, true
		}
	}
	return "", false
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return errors.WithStack(&SyntaxError{s.file, s.line, fmt.Sprintf(format, args...)})
}

func (s *scanner) number(tok string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(tok, 0, bits)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, s.errorf("%s out of range for %d bits", tok, bits)
		}
		return 0, s.errorf("invalid number %q", tok)
	}
	return v, nil
}

func (s *scanner) err() error {
	if err := s.s.Err(); err != nil {
		return errors.Wrap(err, s.file)
	}
	return nil
}

// ReadTrace reads a trace file. name is only used in error messages.
//
func ReadTrace(r io.Reader, name string) ([]nandsim.Checkpoint, error) {
	s := &scanner{s: bufio.NewScanner(r), file: name}
	var tr []nandsim.Checkpoint
	for {
		l, ok := s.next()
		if !ok {
			break
		}
		c := strings.IndexByte(l, ':')
		if c < 0 {
			return nil, s.errorf("missing ':' after program counter")
		}
		pc, err := s.number(strings.TrimSpace(l[:c]), 64)
		if err != nil {
			return nil, err
		}
		regs := strings.Fields(l[c+1:])
		if len(regs) == 0 {
			return nil, s.errorf("no register values")
		}
		if len(tr) > 0 && len(regs) != len(tr[0].Registers) {
			return nil, s.errorf("expected %d register values, got %d", len(tr[0].Registers), len(regs))
		}
		cp := nandsim.Checkpoint{PC: pc, Registers: make([]uint64, len(regs))}
		for i, tok := range regs {
			if cp.Registers[i], err = s.number(tok, 64); err != nil {
				return nil, err
			}
		}
		tr = append(tr, cp)
	}
	return tr, s.err()
}

// ReadMemory reads a memory file. name is only used in error messages.
//
func ReadMemory(r io.Reader, name string) ([]nandsim.MemoryCheck, error) {
	s := &scanner{s: bufio.NewScanner(r), file: name}
	var mem []nandsim.MemoryCheck
	for {
		l, ok := s.next()
		if !ok {
			break
		}
		e := strings.IndexByte(l, '=')
		if e < 0 {
			return nil, s.errorf("missing '=' after address")
		}
		addr, err := s.number(strings.TrimSpace(l[:e]), 16)
		if err != nil {
			return nil, err
		}
		vals := strings.Fields(l[e+1:])
		if len(vals) == 0 {
			return nil, s.errorf("no byte values")
		}
		if int(addr)+len(vals) > nandsim.MemSize {
			return nil, s.errorf("%d bytes at %#04x overflow memory", len(vals), addr)
		}
		for i, tok := range vals {
			v, err := s.number(tok, 8)
			if err != nil {
				return nil, err
			}
			mem = append(mem, nandsim.MemoryCheck{Addr: uint16(int(addr) + i), Value: byte(v)})
		}
	}
	return mem, s.err()
}

func readFile(name string, f func(r io.Reader) error) error {
	r, err := os.Open(name)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()
	return f(r)
}

// ReadTraceFile reads the named trace file.
//
func ReadTraceFile(name string) (tr []nandsim.Checkpoint, err error) {
	err = readFile(name, func(r io.Reader) (err error) {
		tr, err = ReadTrace(r, name)
		return
	})
	return
}

// ReadMemoryFile reads the named memory file.
//
func ReadMemoryFile(name string) (mem []nandsim.MemoryCheck, err error) {
	err = readFile(name, func(r io.Reader) (err error) {
		mem, err = ReadMemory(r, name)
		return
	})
	return
}

// WriteTrace writes a trace in the format read by ReadTrace.
//
func WriteTrace(w io.Writer, tr []nandsim.Checkpoint) error {
	bw := bufio.NewWriter(w)
	if len(tr) > 0 {
		fmt.Fprint(bw, "; pc:")
		for i := range tr[0].Registers {
			fmt.Fprintf(bw, " r%d", i)
		}
		bw.WriteByte('\n')
	}
	for _, cp := range tr {
		fmt.Fprintf(bw, "%d:", cp.PC)
		for _, r := range cp.Registers {
			fmt.Fprintf(bw, " %d", r)
		}
		bw.WriteByte('\n')
	}
	return errors.WithStack(bw.Flush())
}
