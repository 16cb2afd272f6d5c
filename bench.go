// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package latchbench

import (
	"github.com/pkg/errors"
)

// Device is the device under test together with its clock and reset driver.
//
// Calls are strictly sequential: SetReset and SetInput set the input pins
// for the next cycle, Cycle advances the clock by exactly one cycle and
// Output returns the device output observed after that cycle.
type Device interface {
	// SetReset drives the reset line. The line is active low on the device,
	// active == true pulls it low.
	SetReset(active bool)
	// SetInput sets the 3 bits input port: bit 0 is the write data, bits 1-2
	// the write enables of latch 0 and 1.
	SetInput(in uint8)
	// Cycle advances the device by one clock cycle.
	Cycle()
	// Output returns the 2 bits output port.
	Output() uint8
}

// Report summarizes a successful run.
type Report struct {
	Variant Variant
	Cycles  int // cycles run after reset
	Checked int // outputs checked
}

// Reset holds the device in reset for cfg.ResetCycles cycles with its input
// port at cfg.ResetInput, then releases reset and clears the input port.
func Reset(dev Device, cfg Config) {
	dev.SetReset(true)
	dev.SetInput(cfg.ResetInput)
	for i := 0; i < cfg.ResetCycles; i++ {
		dev.Cycle()
	}
	dev.SetReset(false)
	dev.SetInput(0)
}

// Run resets the device then checks its output on every one of cfg.Cycles
// cycles against the reference model. It stops at the first mismatch and
// returns it; errors.Cause returns the *MismatchError.
func Run(dev Device, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	st, err := NewStimulus(cfg.Variant, cfg.Seed)
	if err != nil {
		return Report{}, err
	}
	log := cfg.Log.WithValues("variant", cfg.Variant.Name)

	Reset(dev, cfg)

	var o Oracle
	for i := 0; i < cfg.Cycles; i++ {
		s := st.Next()
		dev.SetInput(s.Input)
		dev.Cycle()
		out := Word(dev.Output() & 3)
		log.V(1).Info("cycle", "cycle", s.Cycle, "we", s.Enable, "wdata", s.WData,
			"in", s.Input, "out", out, "expected", s.Expected)
		if err := o.Check(s.Cycle, s.Input, out, s.Expected); err != nil {
			log.Error(err, "output mismatch")
			return Report{Variant: cfg.Variant, Cycles: i + 1, Checked: o.Checked()},
				errors.Wrap(err, cfg.Variant.Name)
		}
	}
	log.Info("pass", "cycles", cfg.Cycles, "checked", o.Checked())
	return Report{Variant: cfg.Variant, Cycles: cfg.Cycles, Checked: o.Checked()}, nil
}

// ProbeSample is one step of a probe run.
type ProbeSample struct {
	Input  uint8
	Output uint8
}

// Probe resets the device then runs a fixed write and read-back pattern,
// recording the output after each cycle without checking it: for each of 4
// data values alternating 0 and 1, 5 cycles where both latches are enabled
// on the third cycle only. It is a debugging aid for bringing up a device;
// the values are logged at V(0). The configuration is validated as for Run;
// only its reset parameters, variant name and logger are used.
func Probe(dev Device, cfg Config) ([]ProbeSample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	Reset(dev, cfg)
	log := cfg.Log.WithValues("variant", cfg.Variant.Name)
	out := make([]ProbeSample, 0, 4*5)
	for i := 0; i < 4; i++ {
		wdata := Bit(i & 1)
		for j := 0; j < 5; j++ {
			var en Mask
			if j == 2 {
				en = 3
			}
			in := Encode(wdata, en)
			dev.SetInput(in)
			dev.Cycle()
			s := ProbeSample{Input: in, Output: dev.Output()}
			log.Info("probe", "in", s.Input, "out", s.Output)
			out = append(out, s)
		}
	}
	return out, nil
}
