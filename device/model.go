// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package device

import (
	"github.com/db47h/latchbench"
	"github.com/db47h/latchbench/hwlib"
	"github.com/db47h/latchbench/hwsim"
)

// cellModel is the behavioral description of the cell.
type cellModel struct {
	In   [3]int `hw:"in"`
	RstN int    `hw:"in,rst_n"`
	Out  [2]int `hw:"out"`

	activeLow bool
	stages    []int64 // stages[0] holds the latches
	latency   int
}

func (m *cellModel) Update(c *hwsim.Circuit) {
	if m.stages == nil {
		m.stages = make([]int64, m.latency)
	}
	if c.AtTick() {
		copy(m.stages[1:], m.stages)
		in := hwlib.Int64(c, m.In[:])
		en := in >> 1
		if m.activeLow {
			en ^= 3
		}
		if !c.Get(m.RstN) {
			en = 3
		}
		data := (in & 1) * 3
		m.stages[0] = m.stages[0]&^en | en&data
	}
	hwlib.SetInt64(c, m.Out[:], m.stages[m.latency-1])
}

// Model returns a behavioral model of the cell for the given variant. It
// has the same pins and cycle behavior as the part returned by Cell. Model
// panics if the variant is invalid.
func Model(v latchbench.Variant) *hwsim.PartSpec {
	if err := v.Validate(); err != nil {
		panic(err)
	}
	sp := hwsim.MakePart(&cellModel{activeLow: v.ActiveLowEnable, latency: v.Latency})
	sp.Name = "LatchCellModel_" + v.Name
	return sp
}
