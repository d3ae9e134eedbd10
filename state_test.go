package nandsim_test

import (
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func TestState_nand(t *testing.T) {
	s := nandsim.NewState(5)
	const a, b, y = 2, 3, 4
	for _, d := range []struct {
		a, b, y bool
	}{
		{false, false, true},
		{false, true, true},
		{true, false, true},
		{true, true, false},
	} {
		s.SetBit(a, d.a)
		s.SetBit(b, d.b)
		s.Nand(a, b, y)
		if v, err := s.Bit(y); err != nil || v != d.y {
			t.Fatalf("nand(%v, %v) = %v, got %v (%v)", d.a, d.b, d.y, v, err)
		}
	}
}

func TestState_updates(t *testing.T) {
	s := nandsim.NewState(3)
	s.Nand(nandsim.False, nandsim.False, 2)
	s.Nand(nandsim.False, nandsim.False, 2)
	if u := s.Updates(); u != 1 {
		t.Fatalf("expected 1 update, got %d", u)
	}
	s.ResetUpdates()
	s.Nand(nandsim.True, nandsim.True, 2)
	if u, tot := s.Updates(), s.TotalUpdates(); u != 1 || tot != 2 {
		t.Fatalf("expected 1/2 updates, got %d/%d", u, tot)
	}
}

func TestState_constants(t *testing.T) {
	s := nandsim.NewState(0)
	if s.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", s.Len())
	}
	s = nandsim.NewState(64)
	s.Scramble(rand.New(rand.NewSource(1)))
	v, err := s.Get([]nandsim.Node{nandsim.False, nandsim.True})
	if err != nil {
		t.Fatal(err)
	}
	if v != 2 {
		t.Fatalf("constants changed: %b", v)
	}
}

func TestState_roundTrip(t *testing.T) {
	s := nandsim.NewState(2 + 64)
	bus := make([]nandsim.Node, 64)
	for i := range bus {
		bus[i] = nandsim.Node(i + 2)
	}
	for _, w := range []int{1, 8, 16, 33, 64} {
		b := bus[:w]
		mask := ^uint64(0) >> uint(64-w)
		f := func(v uint64) bool {
			if err := s.Set(b, v); err != nil {
				t.Fatal(err)
			}
			got, err := s.Get(b)
			return err == nil && got == v&mask
		}
		if err := quick.Check(f, nil); err != nil {
			t.Fatalf("width %d: %v", w, err)
		}
	}
	if err := s.SetByte(bus[8:16], 0xa5); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get(bus[8:16]); v != 0xa5 {
		t.Fatalf("SetByte: expected 0xa5, got %#x", v)
	}
}

func TestState_flip(t *testing.T) {
	s := nandsim.NewState(3)
	for _, want := range []bool{true, false, true} {
		if err := s.Flip(2); err != nil {
			t.Fatal(err)
		}
		if v, _ := s.Bit(2); v != want {
			t.Fatalf("expected %v after flip, got %v", want, v)
		}
	}
}

func TestState_indexError(t *testing.T) {
	s := nandsim.NewState(4)
	_, err := s.Get([]nandsim.Node{2, 4})
	if e, ok := errors.Cause(err).(*nandsim.IndexError); !ok || e.Node != 4 || e.Size != 4 {
		t.Fatalf("expected IndexError for node 4, got %v", err)
	}
	if err = s.Set([]nandsim.Node{-1}, 1); err == nil {
		t.Fatal("expected error for negative node")
	}
	if err = s.Flip(10); err == nil {
		t.Fatal("expected error on Flip")
	}
}

func TestState_setPanics(t *testing.T) {
	s := nandsim.NewState(16)
	for name, f := range map[string]func(){
		"empty":    func() { s.Set(nil, 0) },
		"wide":     func() { s.Set(make([]nandsim.Node, 65), 0) },
		"SetByte7": func() { s.SetByte(make([]nandsim.Node, 7), 0) },
	} {
		f := f
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			f()
		})
	}
}
