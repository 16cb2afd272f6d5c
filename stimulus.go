// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package latchbench

// Sample is the stimulus and expected response for one cycle.
type Sample struct {
	Cycle     int
	Enable    Mask  // raw enable mask sent to the device
	Effective Mask  // enable mask applied by the reference model
	WData     Bit   // write data
	Input     uint8 // encoded device input
	Expected  Word  // output the device must present after this cycle
	Head      Word  // latch contents after this cycle's write
}

// Stimulus generates the per-cycle stimulus for one run and predicts the
// device response. A Stimulus is a pure function of its configuration: two
// instances built with the same variant and seed generate the same samples.
type Stimulus struct {
	lfsr  *LFSR
	sched Scheduler
	model *Model
	cycle int
}

// NewStimulus returns a new Stimulus for the given variant and LFSR seed.
func NewStimulus(v Variant, seed uint8) (*Stimulus, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	l, err := NewLFSR(seed)
	if err != nil {
		return nil, err
	}
	return &Stimulus{
		lfsr:  l,
		sched: Scheduler{ActiveLowEnable: v.ActiveLowEnable},
		model: NewModel(v.Latency),
	}, nil
}

// Next returns the sample for the next cycle.
func (s *Stimulus) Next() Sample {
	sm := Sample{Cycle: s.cycle}
	sm.Enable = s.sched.Enable(s.cycle)
	sm.Effective = s.sched.Effective(sm.Enable)
	sm.WData = s.lfsr.Next()
	sm.Input = Encode(sm.WData, sm.Enable)
	sm.Expected = s.model.Advance(sm.Effective, sm.WData)
	sm.Head = s.model.Head()
	s.cycle++
	return sm
}
