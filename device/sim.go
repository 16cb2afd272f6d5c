// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package device

import (
	"github.com/db47h/latchbench"
	"github.com/db47h/latchbench/hwlib"
	"github.com/db47h/latchbench/hwsim"
	"github.com/pkg/errors"
)

// DefaultSPC is the default number of simulation steps per clock cycle.
const DefaultSPC = 8

// Sim runs a simulated cell in a hwsim circuit. It implements
// latchbench.Device.
type Sim struct {
	c   *hwsim.Circuit
	in  int64
	rst bool
	out int64

	workers    int
	spc        uint
	behavioral bool
	faults     map[uint]uint8
}

var _ latchbench.Device = (*Sim)(nil)

// Option configures a Sim.
type Option func(s *Sim)

// Workers sets the number of goroutines used to run the circuit. See
// hwsim.NewCircuit.
func Workers(n int) Option { return func(s *Sim) { s.workers = n } }

// StepsPerCycle sets the number of simulation steps per clock cycle.
func StepsPerCycle(n uint) Option { return func(s *Sim) { s.spc = n } }

// Behavioral makes the Sim use the behavioral model of the cell instead of
// the gate-level one.
func Behavioral() Option { return func(s *Sim) { s.behavioral = true } }

// WithFault makes the simulated device XOR its output with mask when read
// after exactly n clock cycles, reset cycles included.
func WithFault(n uint, mask uint8) Option {
	return func(s *Sim) {
		if s.faults == nil {
			s.faults = make(map[uint]uint8)
		}
		s.faults[n] ^= mask
	}
}

// New returns a new simulated device for the given variant. Callers must call
// Close once done with it.
func New(v latchbench.Variant, opts ...Option) (*Sim, error) {
	s := &Sim{spc: DefaultSPC}
	for _, o := range opts {
		o(s)
	}

	var cell hwsim.NewPartFn
	if s.behavioral {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		cell = Model(v).NewPart
	} else {
		var err error
		if cell, err = Cell(v); err != nil {
			return nil, err
		}
	}

	c, err := hwsim.NewCircuit(s.workers, s.spc,
		hwlib.InputN(3, func() int64 { return s.in })("out[0..2]=ui_in[0..2]"),
		hwlib.Input(func() bool { return !s.rst })("out=rst_n"),
		cell("in[0..2]=ui_in[0..2], rst_n=rst_n, out[0..1]=uo_out[0..1]"),
		hwlib.OutputN(2, func(v int64) { s.out = v })("in[0..1]=uo_out[0..1]"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build circuit")
	}
	s.c = c
	return s, nil
}

// SetReset implements latchbench.Device.
func (s *Sim) SetReset(active bool) { s.rst = active }

// SetInput implements latchbench.Device.
func (s *Sim) SetInput(in uint8) { s.in = int64(in & 7) }

// Cycle implements latchbench.Device.
func (s *Sim) Cycle() { s.c.TickTock() }

// Output implements latchbench.Device.
func (s *Sim) Output() uint8 {
	return uint8(s.out) ^ s.faults[s.c.Cycles()]
}

// Cycles returns the number of clock cycles run so far.
func (s *Sim) Cycles() uint { return s.c.Cycles() }

// Close releases the resources of the underlying circuit.
func (s *Sim) Close() { s.c.Dispose() }
