// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwsim is a naive cycle-stepped digital circuit simulator. It is the
clock and cycle-stepping collaborator of the latchbench harness: devices under
test are composed from parts (logic gates, muxers, flip-flops, etc.) into a
Circuit that is advanced one clock cycle at a time.

The API mimics a hardware description language. Parts are wired together
with connection strings:

	reg, err := hwsim.Chip("BitReg", "in, load", "out",
		hwlib.Mux("a=out, b=in, sel=load, out=d"),
		hwlib.DFF("in=d, out=out"),
	)

Pin states are double buffered: every component reads the state of the
previous step and writes the state of the next one, so each component adds
one step of propagation delay.
*/
package hwsim
