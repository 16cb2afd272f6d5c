// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package device provides simulated versions of the dual-latch cell, built
// with package hwsim, and an adapter driving them as a latchbench.Device.
//
// The cell has the following pins:
//
//	Inputs: in[3], rst_n
//	Outputs: out[2]
//
// in[0] is the write data, in[1] and in[2] the write enables of latch 0 and
// latch 1. On each raising clock edge, latch k loads in[0] if reset is active
// (rst_n low) or if its enable is asserted; enables are asserted low for
// variants with ActiveLowEnable. The latch contents go through Latency-1
// further register stages before reaching out[k].
package device

import (
	"strconv"

	"github.com/db47h/latchbench"
	"github.com/db47h/latchbench/hwlib"
	"github.com/db47h/latchbench/hwsim"
	"github.com/pkg/errors"
)

// Pin specifications of the cell.
const (
	Inputs  = "in[3], rst_n"
	Outputs = "out[2]"
)

// stage returns the wire name for register stage s of latch k. The last
// stage drives the output pin.
func stage(v latchbench.Variant, k, s int) string {
	if s == v.Latency-1 {
		return hwsim.BusPinName("out", k)
	}
	return "q" + strconv.Itoa(k) + "_" + strconv.Itoa(s)
}

// Cell returns the gate-level cell for the given variant.
func Cell(v latchbench.Variant) (hwsim.NewPartFn, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	pol := hwsim.False
	if v.ActiveLowEnable {
		pol = hwsim.True
	}
	parts := hwsim.Parts{hwlib.Not("in=rst_n, out=rst")}
	for k := 0; k < 2; k++ {
		ks := strconv.Itoa(k)
		q := stage(v, k, 0)
		parts = append(parts,
			hwlib.Xor("a=in["+strconv.Itoa(k+1)+"], b="+pol+", out=en"+ks),
			hwlib.Or("a=rst, b=en"+ks+", out=load"+ks),
			hwlib.Mux("a="+q+", b=in[0], sel=load"+ks+", out=d"+ks),
			hwlib.DFF("in=d"+ks+", out="+q),
		)
		for s := 1; s < v.Latency; s++ {
			parts = append(parts, hwlib.DFF("in="+stage(v, k, s-1)+", out="+stage(v, k, s)))
		}
	}
	c, err := hwsim.Chip("LatchCell_"+v.Name, Inputs, Outputs, parts...)
	if err != nil {
		return nil, errors.Wrap(err, "build cell")
	}
	return c, nil
}
