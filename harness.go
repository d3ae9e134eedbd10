// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"io/ioutil"
	"log"

	"github.com/pkg/errors"
)

// Checkpoint is one entry of an expected execution trace.
//
type Checkpoint struct {
	PC        uint64
	Registers []uint64
}

// Config configures a Machine.
//
type Config struct {
	Cycles    int           // cycle budget. One cycle is one clock half-period.
	Trace     []Checkpoint  // expected trace, may be nil
	Memory    []MemoryCheck // expected memory contents after the run, may be nil
	Boundary  uint64        // value of the state signal at instruction boundaries
	MaxSweeps int           // settlement bound, DefaultMaxSweeps if <= 0

	// Log receives diagnostic output. If nil, output is discarded.
	Log *log.Logger
	// Verbose enables the per cycle trace and memory write logs.
	Verbose bool

	OnFlag func(Sample) // called when the flag signal is asserted
	Probe  func(Sample) // called after every cycle
}

// Sample holds the values of the machine outputs after one cycle.
//
type Sample struct {
	Cycle       int
	Clock       bool
	State       uint64
	PC          uint64
	Addr        uint16
	Out         uint16
	Registers   []uint64
	WriteEnable bool
	Halted      bool
	Flag        bool
}

// Result is the outcome of a run.
//
type Result struct {
	Cycles      int  // cycles run
	Halted      bool // the circuit asserted halted
	Checkpoints int  // instruction boundaries reached, warm-up excluded
	Flags       int  // cycles with the flag signal asserted
	PC          uint64
	Registers   []uint64
	Ticks       uint64
	Sweeps      uint64
	Updates     uint64
}

// Machine drives a CPU netlist attached to a Memory.
//
type Machine struct {
	c      *Circuit
	pins   Pins
	mem    *Memory
	cfg    Config
	log    *log.Logger
	cycle  int
	bounds int // instruction boundaries seen since reset, warm-up included
	last   Sample
}

// NewMachine binds the netlist pins and checks the expected trace against the
// register bank. Any error is reported before the circuit runs.
//
func NewMachine(nl *Netlist, mem *Memory, cfg Config) (*Machine, error) {
	m := &Machine{
		mem: mem,
		cfg: cfg,
		log: cfg.Log,
	}
	if err := Bind(nl, &m.pins); err != nil {
		return nil, err
	}
	for _, s := range []struct {
		name string
		bits []Node
	}{
		{"state", m.pins.State},
		{"program_counter", m.pins.PC},
	} {
		if len(s.bits) > 64 {
			return nil, errors.WithStack(&WidthError{s.name, 64, len(s.bits)})
		}
	}
	for i, r := range m.pins.Registers {
		if len(r) > 64 {
			return nil, errors.WithStack(&WidthError{BusName("registers", i), 64, len(r)})
		}
	}
	for i, cp := range cfg.Trace {
		if len(cp.Registers) != len(m.pins.Registers) {
			return nil, errors.Errorf("checkpoint %d: expected %d registers, circuit has %d", i, len(cp.Registers), len(m.pins.Registers))
		}
	}
	if m.log == nil {
		m.log = log.New(ioutil.Discard, "", 0)
	}
	if m.mem == nil {
		m.mem = new(Memory)
	}
	m.c = NewCircuit(nl, cfg.MaxSweeps)
	return m, nil
}

// Pins returns the bound machine pins.
//
func (m *Machine) Pins() Pins { return m.pins }

// State returns the circuit state.
//
func (m *Machine) State() *State { return m.c.State() }

// Circuit returns the underlying circuit.
//
func (m *Machine) Circuit() *Circuit { return m.c }

// Memory returns the memory attached to the machine.
//
func (m *Machine) Memory() *Memory { return m.mem }

// Reset pulses the reset line. The circuit reaches the same state whatever
// the initial node values.
//
func (m *Machine) Reset() error {
	m.cycle = 0
	m.bounds = 0
	m.last = Sample{}
	s := m.c.State()
	if err := m.c.Tick(); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if err := s.Flip(m.pins.Reset); err != nil {
			return err
		}
		if err := m.c.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) sample() (smp Sample, err error) {
	s := m.c.State()
	p := &m.pins
	smp.Cycle = m.cycle
	if smp.Clock, err = s.Bit(p.Clock); err != nil {
		return
	}
	if smp.State, err = s.Get(p.State); err != nil {
		return
	}
	if smp.PC, err = s.Get(p.PC); err != nil {
		return
	}
	smp.Registers = make([]uint64, len(p.Registers))
	for i, r := range p.Registers {
		if smp.Registers[i], err = s.Get(r); err != nil {
			return
		}
	}
	var v uint64
	if v, err = s.Get(p.Addr); err != nil {
		return
	}
	smp.Addr = uint16(v)
	if v, err = s.Get(p.Out); err != nil {
		return
	}
	smp.Out = uint16(v)
	if smp.WriteEnable, err = s.Bit(p.WriteEnable); err != nil {
		return
	}
	if smp.Halted, err = s.Bit(p.Halted); err != nil {
		return
	}
	smp.Flag, err = s.Bit(p.Flag)
	return
}

func (m *Machine) checkpoint(smp *Sample) error {
	m.bounds++
	// the first boundary after reset is pipeline warm-up.
	i := m.bounds - 2
	if i < 0 || i >= len(m.cfg.Trace) {
		return nil
	}
	cp := &m.cfg.Trace[i]
	if smp.PC != cp.PC {
		return errors.WithStack(&CheckpointError{Index: i, PC: smp.PC, Register: -1, Want: cp.PC, Got: smp.PC})
	}
	for r, want := range cp.Registers {
		if got := smp.Registers[r]; got != want {
			return errors.WithStack(&CheckpointError{Index: i, PC: smp.PC, Register: r, Want: want, Got: got})
		}
	}
	return nil
}

// Step runs one clock half-period: it toggles the clock, settles the
// circuit, checks the expected trace at instruction boundaries, then services
// memory writes and drives the memory output onto the input bus.
//
// Step does not stop on halted; callers check the returned Sample.
//
func (m *Machine) Step() (Sample, error) {
	s := m.c.State()
	p := &m.pins
	m.cycle++
	if err := s.Flip(p.Clock); err != nil {
		return Sample{}, err
	}
	if err := m.c.Tick(); err != nil {
		return Sample{}, errors.Wrapf(err, "cycle %d", m.cycle)
	}
	smp, err := m.sample()
	if err != nil {
		return smp, err
	}
	if m.cfg.Verbose && smp.Clock {
		m.log.Printf("PC: %-3d State: %-4b Out: %-5d Registers: %v", smp.PC, smp.State, smp.Out, smp.Registers)
	}
	if smp.State == m.cfg.Boundary && !smp.Clock {
		if err = m.checkpoint(&smp); err != nil {
			return smp, err
		}
	}
	if smp.WriteEnable {
		m.mem.SetWord(smp.Addr, smp.Out)
		if m.cfg.Verbose {
			m.log.Printf("mem[%#04x] <- %d", smp.Addr, smp.Out)
		}
	}
	// memory output is always live on the input bus.
	v, err := s.Get(p.Addr)
	if err != nil {
		return smp, err
	}
	addr := uint16(v)
	if err = s.SetByte(p.In[:8], m.mem[addr]); err != nil {
		return smp, err
	}
	if err = s.SetByte(p.In[8:], m.mem[addr+1]); err != nil {
		return smp, err
	}
	m.last = smp
	return smp, nil
}

// Run resets the machine and runs it until the cycle budget is exhausted or
// the circuit asserts halted. It then verifies the trace length and the
// expected memory contents.
//
// Errors during simulation return a nil Result. Verification errors return
// both the Result and the error.
//
func (m *Machine) Run() (*Result, error) {
	if err := m.Reset(); err != nil {
		return nil, err
	}
	var halted bool
	flags := 0
	for m.cycle < m.cfg.Cycles {
		smp, err := m.Step()
		if err != nil {
			return nil, err
		}
		if m.cfg.Probe != nil {
			m.cfg.Probe(smp)
		}
		if smp.Halted {
			halted = true
			break
		}
		if smp.Flag {
			flags++
			if m.cfg.Verbose {
				m.log.Printf("flag at PC %d, cycle %d", smp.PC, smp.Cycle)
			}
			if m.cfg.OnFlag != nil {
				m.cfg.OnFlag(smp)
			}
		}
	}
	res := m.result()
	res.Halted = halted
	res.Flags = flags
	return res, m.Verify()
}

func (m *Machine) result() *Result {
	checkpoints := m.bounds - 1
	if checkpoints < 0 {
		checkpoints = 0
	}
	s := m.c.State()
	return &Result{
		Cycles:      m.cycle,
		Checkpoints: checkpoints,
		PC:          m.last.PC,
		Registers:   m.last.Registers,
		Ticks:       m.c.Ticks(),
		Sweeps:      m.c.Sweeps(),
		Updates:     s.TotalUpdates(),
	}
}

// Verify checks that the whole expected trace was consumed and that memory
// matches the expected contents.
//
func (m *Machine) Verify() error {
	reached := m.bounds - 1
	if reached < 0 {
		reached = 0
	}
	if n := len(m.cfg.Trace); reached < n {
		return errors.WithStack(&CheckpointError{Index: reached, Register: -1, Want: uint64(n), Short: true})
	}
	return m.mem.Check(m.cfg.Memory)
}

// Run runs the netlist on mem with the given configuration. See Machine.Run.
//
func Run(nl *Netlist, mem *Memory, cfg Config) (*Result, error) {
	m, err := NewMachine(nl, mem, cfg)
	if err != nil {
		return nil, err
	}
	return m.Run()
}
