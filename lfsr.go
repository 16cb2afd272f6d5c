// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package latchbench

import "github.com/pkg/errors"

// Bit is a single data bit, 0 or 1.
type Bit = uint8

// DefaultSeed is the LFSR seed used by DefaultConfig.
const DefaultSeed = 1

const (
	lfsrBits = 7
	lfsrMask = 1<<lfsrBits - 1
	// LFSRPeriod is the period of the 7 bits LFSR.
	LFSRPeriod = lfsrMask
)

// LFSR is a maximal length 7 bits linear-feedback shift register. It
// generates the data bits written to the device.
//
// Each step shifts the state left by one bit; the bit shifted in is the XOR
// of bits 0 and 6 of the previous state. The sequence of states has period
// 127 and never reaches zero.
type LFSR struct {
	seed  uint8
	state uint8
}

// NewLFSR returns a new LFSR initialized with the given seed. Only the low 7
// bits of seed are used and they must not all be zero.
func NewLFSR(seed uint8) (*LFSR, error) {
	seed &= lfsrMask
	if seed == 0 {
		return nil, errors.New("LFSR seed must be non-zero")
	}
	return &LFSR{seed: seed, state: seed}, nil
}

// Next returns the low bit of the current state then advances the register by
// one step.
func (l *LFSR) Next() Bit {
	s := l.state
	fb := (s ^ s>>6) & 1
	l.state = (s<<1)&lfsrMask | fb
	return s & 1
}

// State returns the current state of the register.
func (l *LFSR) State() uint8 { return l.state }

// Seed returns the seed the register was created with.
func (l *LFSR) Seed() uint8 { return l.seed }

// Reset restarts the sequence from the seed.
func (l *LFSR) Reset() { l.state = l.seed }
