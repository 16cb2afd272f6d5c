// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// A Component is a mounted part instance. It is called once per simulation
// step and must only read pins with Get and write pins with Set.
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. MountFn's should query
// the socket for assigned pin numbers and return closures around
// these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name:    "Not",
//		Inputs:  []string{"in"},
//		Outputs: []string{"out"},
//		Mount: func(s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func(c *Circuit) { c.Set(out, !c.Get(in)) },
//			}
//		}}
type MountFn func(s *Socket) []Component

// A PartSpec is a part's blueprint: its name, its pin interface and how to
// mount it in a circuit.
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Buses are expanded to individual pins: a 3 bits input
	// bus "in" is listed as "in[0]", "in[1]", "in[2]". See ParseIOSpec.
	Inputs []string
	// Output pin names, same format as Inputs.
	Outputs []string
	// Mount function (see MountFn).
	Mount MountFn
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
// It panics if the connection string cannot be parsed.
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := ParseConnections(connections)
	if err != nil {
		panic(errors.Wrap(err, p.Name))
	}
	return Part{p, conns}
}

// A NewPartFn is a function that takes a connection configuration and returns a
// new Part. See ParseConnections for the syntax of the connection configuration
// string.
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a host
// chip.
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a convenience wrapper for []Part.
type Parts []Part

// Circuit is a runnable circuit simulation.
type Circuit struct {
	s0    []bool // wire states frame #0
	s1    []bool // wire states frame #1
	cs    []Component
	count int  // wire count
	spc   uint // steps per clock cycle, a power of two
	step  uint

	wc []chan struct{}
	wg sync.WaitGroup
}

// NewCircuit builds a new circuit based on the given parts.
//
// workers is the number of goroutines used to update the state of the Circuit
// each step of the simulation. If less or equal to 0, the value of GOMAXPROCS
// will be used.
//
// stepsPerCycle is the number of simulation steps per clock cycle. It is
// rounded up to the next power of two, with a minimum of 2, and must exceed
// the longest gate delay between two clocked parts for their inputs to settle.
//
// Callers must make sure to call Dispose() once the circuit is no longer needed
// in order to release allocated resources.
func NewCircuit(workers int, stepsPerCycle uint, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	spc := uint(2)
	for spc < stepsPerCycle {
		spc <<= 1
	}

	// new circuit with room for constant value pins.
	cc := &Circuit{count: cstCount, spc: spc}
	wrap, err := Chip("CIRCUIT", "", "", parts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chip wrapper")
	}
	cs := wrap("").Mount(newSocket(cc))
	cs = append(cs, updClock)
	cc.cs = cs
	cc.s0 = make([]bool, cc.count)
	cc.s1 = make([]bool, cc.count)
	cc.s0[cstTrue], cc.s1[cstTrue] = true, true
	cc.s0[cstClk] = true

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	size := (len(cs) + workers - 1) / workers
	for len(cs) > 0 {
		if size > len(cs) {
			size = len(cs)
		}
		wc := make(chan struct{}, 1)
		cc.wc = append(cc.wc, wc)
		go worker(cc, cs[:size], wc)
		cs = cs[size:]
	}

	return cc, nil
}

// updClock drives the Clk pin: high during the first half of a cycle, low
// during the second half.
func updClock(c *Circuit) {
	if c.s0[cstFalse] || !c.s0[cstTrue] {
		panic("true or false constants have been overwritten")
	}
	next := (c.step + 1) & (c.spc - 1)
	c.s1[cstClk] = next < c.spc/2
}

// Dispose releases all resources allocated for a circuit and stops
// worker goroutines.
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
	c.wc = nil
}

func worker(c *Circuit, cs []Component, wc <-chan struct{}) {
	for range wc {
		for _, f := range cs {
			f(c)
		}
		c.wg.Done()
	}
	c.wg.Done()
}

// allocPin allocates a pin and returns its number.
func (c *Circuit) allocPin() int {
	n := c.count
	c.count++
	return n
}

// Steps returns the value of the step counter.
func (c *Circuit) Steps() uint {
	return c.step
}

// SPC returns the number of steps per clock cycle.
func (c *Circuit) SPC() uint {
	return c.spc
}

// Cycles returns the number of complete clock cycles simulated so far.
func (c *Circuit) Cycles() uint {
	return c.step / c.spc
}

// AtTick returns true if the current step is at the beginning of a clock cycle
// (raising edge of Clk).
func (c *Circuit) AtTick() bool {
	return c.step&(c.spc-1) == 0
}

// AtTock returns true if the current step is at the beginning of the second
// half of a clock cycle (falling edge of Clk).
func (c *Circuit) AtTock() bool {
	return c.step&(c.spc-1) == c.spc/2
}

// Get returns the state of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
func (c *Circuit) Get(n int) bool {
	return c.s0[n]
}

// Set sets the state s of pin n for the next step. The value of n should be
// obtained in a MountFn by a call to one of the Socket methods.
func (c *Circuit) Set(n int, s bool) {
	c.s1[n] = s
}

// Step advances the simulation by one step.
func (c *Circuit) Step() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		wc <- struct{}{}
	}
	c.wg.Wait()
	c.step++
	c.s0, c.s1 = c.s1, c.s0
}

// Tick runs the simulation until the beginning of the next half clock cycle.
func (c *Circuit) Tick() {
	for c.Get(cstClk) {
		c.Step()
	}
}

// Tock runs the simulation until the beginning of the next clock cycle.
// Once Tock returns, the output of clocked components should have stabilized.
func (c *Circuit) Tock() {
	for !c.Get(cstClk) {
		c.Step()
	}
}

// TickTock runs the simulation for a whole clock cycle.
func (c *Circuit) TickTock() {
	c.Tick()
	c.Tock()
}

// Size returns the component count in the circuit.
func (c *Circuit) Size() int { return len(c.cs) }
