// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package latchbench

// Mask is a 2 bits write enable mask, bit k for latch k.
type Mask uint8

// Scheduler decides which latch is written each cycle.
type Scheduler struct {
	// ActiveLowEnable is set for devices whose write enables are asserted
	// low. The mask sent to the device is unchanged but the reference model
	// must apply its complement.
	ActiveLowEnable bool
}

// Enable returns the raw enable mask sent to the device on the given cycle:
// latch 0 on even cycles, latch 1 on odd cycles.
func (Scheduler) Enable(cycle int) Mask {
	return Mask(cycle&1) + 1
}

// Effective returns the enable mask actually seen by the latches of the
// device for the raw mask en.
func (s Scheduler) Effective(en Mask) Mask {
	if s.ActiveLowEnable {
		return en ^ 3
	}
	return en
}

// Encode returns the value of the device's 3 bits input port for the given
// write data and raw enable mask.
func Encode(wdata Bit, en Mask) uint8 {
	return wdata&1 | uint8(en&3)<<1
}
