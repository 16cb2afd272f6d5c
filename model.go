// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package latchbench

// Word is a 2 bits value: the contents of both latches, latch k in bit k.
type Word uint8

// sentinel is the initial head and pipe value: "not yet written".
const sentinel Word = 3

// Model is the reference model of the device. It tracks the value most
// recently written to each latch (the head) and a delay pipe that holds the
// head values not yet visible at the output.
//
// The pipe is a shift register of 2*latency bits: the bottom 2 bits are the
// output due on the current cycle, new head values enter at the top.
type Model struct {
	latency uint
	head    Word
	pipe    uint64
	mask    uint64
}

// NewModel returns a new reference model for a device with the given
// latency in cycles. The head starts at 3 and the pipe is filled with ones,
// so the first latency cycles expect 3. It panics if latency is not in the
// range [1, 32]; see Variant.Validate.
func NewModel(latency int) *Model {
	if latency < 1 || latency > maxLatency {
		panic("latency out of range")
	}
	m := &Model{
		latency: uint(latency),
		head:    sentinel,
		mask:    1<<(2*uint(latency)) - 1,
	}
	m.pipe = m.mask
	return m
}

// Advance applies one cycle's write and returns the output expected from the
// device on that cycle.
//
// Latches whose bit is set in the effective enable mask take the value of
// wdata, the others keep their value. The expected output is read from the
// pipe before the new head is shifted in: a write becomes visible latency
// cycles later.
func (m *Model) Advance(effective Mask, wdata Bit) Word {
	en := Word(effective & 3)
	data := Word(wdata&1) * 3
	m.head = m.head&^en | en&data

	exp := Word(m.pipe & 3)
	m.pipe = (m.pipe>>2 | uint64(m.head)<<(2*(m.latency-1))) & m.mask
	return exp
}

// Expected returns the output due on the next call to Advance.
func (m *Model) Expected() Word { return Word(m.pipe & 3) }

// Head returns the most recently written value of both latches.
func (m *Model) Head() Word { return m.head }

// Latency returns the model latency in cycles.
func (m *Model) Latency() int { return int(m.latency) }
