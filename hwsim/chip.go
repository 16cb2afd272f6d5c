// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"

	"github.com/pkg/errors"
)

type chip struct {
	PartSpec
	parts []Part
}

// mount mounts every sub-part in a sub-socket. Wires internal to the chip are
// allocated on first use, unconnected inputs are wired to False and
// unconnected outputs get a dangling pin.
func (c *chip) mount(s *Socket) []Component {
	var cs []Component
	for _, p := range c.parts {
		sub := newSocket(s.c)
		for _, conn := range p.Conns {
			sub.m[conn.PP] = s.PinOrNew(conn.CP)
		}
		for _, in := range p.Inputs {
			if _, ok := sub.m[in]; !ok {
				sub.m[in] = cstFalse
			}
		}
		for _, out := range p.Outputs {
			if _, ok := sub.m[out]; !ok {
				sub.m[out] = s.c.allocPin()
			}
		}
		cs = append(cs, p.Mount(sub)...)
	}
	return cs
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip. Both use the syntax of ParseIOSpec.
//
// An Xor gate could be created like this:
//
//	xor, err := hwsim.Chip("XOR", "a, b", "out",
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	)
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips:
//
//	xnor, err := hwsim.Chip("XNOR", "a, b", "out",
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	)
//
// Chip reports wiring errors: unknown part pins, wires with more than one
// driver, outputs driving chip inputs or constants, and wires that are read
// but never driven.
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := ParseIOSpec(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" inputs")
	}
	outs, err := ParseIOSpec(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" outputs")
	}
	wr, err := newWiring(ins, outs)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}

	for pnum, p := range parts {
		pname := p.Name + "#" + strconv.Itoa(pnum)
		isIn := make(map[string]bool, len(p.Inputs)+len(p.Outputs))
		for _, n := range p.Inputs {
			isIn[n] = true
		}
		for _, n := range p.Outputs {
			isIn[n] = false
		}
		seen := make(map[string]bool, len(p.Conns))
		for _, conn := range p.Conns {
			in, ok := isIn[conn.PP]
			if !ok {
				return nil, errors.Errorf("%s: invalid pin name %s for part %s", name, conn.PP, pname)
			}
			if seen[conn.PP] {
				return nil, errors.Errorf("%s: pin %s.%s connected more than once", name, pname, conn.PP)
			}
			seen[conn.PP] = true
			if in {
				wr.read(conn.CP, pname+"."+conn.PP)
				continue
			}
			if err = wr.drive(conn.CP, pname+"."+conn.PP); err != nil {
				return nil, errors.Wrap(err, name)
			}
		}
	}
	if err = wr.check(); err != nil {
		return nil, errors.Wrap(err, name)
	}

	c := &chip{
		PartSpec: PartSpec{
			Name:    name,
			Inputs:  ins,
			Outputs: outs,
		},
		parts: parts,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}
