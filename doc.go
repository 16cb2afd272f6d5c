// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package latchbench is a cycle-accurate verification harness for a 2-bit,
dual-latch storage cell with one write enable per latch and a fixed pipeline
latency between a write and its visible readout.

Each cycle the harness writes one pseudorandom data bit (from a 7-bit LFSR) to
one of the two latches, alternating latches every cycle. A reference model
predicts the 2-bit output the device must present, and the oracle aborts the
run at the first cycle where the device disagrees.

The device itself, the clock and the reset line are reached through the Device
interface. Package device provides a simulated cell built with package hwsim.

Two variants of the cell exist: POnly (a single P latch stage, 1 cycle of
latency, active-low write enables) and NP (an N latch followed by a P latch,
2 cycles of latency, active-high write enables). The default variant is a
build-time choice: POnly, or NP when built with the nplatch tag.
*/
package latchbench
