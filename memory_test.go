package nandsim_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

func TestMemory_word(t *testing.T) {
	var m nandsim.Memory
	m.SetWord(0x10, 0xBEEF)
	if m[0x10] != 0xEF || m[0x11] != 0xBE {
		t.Fatalf("not little endian: %#02x %#02x", m[0x10], m[0x11])
	}
	if w := m.Word(0x10); w != 0xBEEF {
		t.Fatalf("expected 0xBEEF, got %#04x", w)
	}

	// wraps at the top of memory
	m.SetWord(0xFFFF, 0x1234)
	if m[0xFFFF] != 0x34 || m[0] != 0x12 {
		t.Fatalf("no wrap around: %#02x %#02x", m[0xFFFF], m[0])
	}
	if w := m.Word(0xFFFF); w != 0x1234 {
		t.Fatalf("expected 0x1234, got %#04x", w)
	}
}

func TestReadImage(t *testing.T) {
	words, err := nandsim.ReadImage(bytes.NewReader([]byte{0x08, 0x0A, 0x18, 0x05}))
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 || words[0] != 0x0A08 || words[1] != 0x0518 {
		t.Fatalf("bad image: %#04x", words)
	}
	var m nandsim.Memory
	if err = m.LoadImage(words); err != nil {
		t.Fatal(err)
	}
	if m[2] != 0x18 || m.Word(0) != 0x0A08 {
		t.Fatal("bad memory contents")
	}

	if _, err = nandsim.ReadImage(bytes.NewReader([]byte{1, 2, 3})); err == nil {
		t.Fatal("expected error on odd length")
	}
	if err = m.LoadImage(make([]uint16, nandsim.MemSize/2+1)); err == nil {
		t.Fatal("expected error on oversized image")
	}
}

func TestMemory_check(t *testing.T) {
	var m nandsim.Memory
	m[0x80] = 1
	if err := m.Check([]nandsim.MemoryCheck{{Addr: 0x80, Value: 1}, {Addr: 0x81, Value: 0}}); err != nil {
		t.Fatal(err)
	}
	err := m.Check([]nandsim.MemoryCheck{{Addr: 0x80, Value: 1}, {Addr: 0x81, Value: 7}})
	e, ok := errors.Cause(err).(*nandsim.MemoryError)
	if !ok {
		t.Fatalf("expected MemoryError, got %v", err)
	}
	if e.Addr != 0x81 || e.Want != 7 || e.Got != 0 {
		t.Fatalf("bad error: %v", e)
	}
}

func TestMemory_dump(t *testing.T) {
	var m nandsim.Memory
	for i := 0; i < 20; i++ {
		m[0x100+i] = byte(i)
	}
	var b strings.Builder
	if err := m.Dump(&b, 0x100, 20); err != nil {
		t.Fatal(err)
	}
	want := "0100: 00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f\n0110: 10 11 12 13\n"
	if b.String() != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, b.String())
	}
}
