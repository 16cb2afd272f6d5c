// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"

	"github.com/db47h/latchbench/internal/hdl"
	"github.com/pkg/errors"
)

// BusPinName returns the pin name for the n-th bit of the given bus.
//
//	BusPinName("in", 2) // "in[2]"
func BusPinName(bus string, n int) string {
	return bus + "[" + strconv.Itoa(n) + "]"
}

// ParseIOSpec parses a pin specification string and returns individual pin
// names, expanding bus declarations to individual pin names. For example:
//
//	ParseIOSpec("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
func ParseIOSpec(names string) ([]string, error) {
	var out []string
	p := &hdl.Parser{Input: names}
	for {
		v, err := p.Next(false)
		if err != nil {
			return nil, err
		}
		switch v := v.(type) {
		case nil:
			return out, nil
		case hdl.Pin:
			out = append(out, v.Name)
		case hdl.PinIndex:
			// in an i/o spec, the index is the bus size
			for i := 0; i < v.Index; i++ {
				out = append(out, BusPinName(v.Name, i))
			}
		case hdl.PinRange:
			return nil, errors.Errorf("in %q at pos %d: bus ranges not allowed in pin specifications", names, v.Pos+1)
		}
	}
}

// A Connection connects pin PP of a part to pin CP of its container.
type Connection struct {
	PP string
	CP string
}

// ParseConnections parses a connection string in the form "pp1=cp1, pp2=cp2"
// where pp is a pin name in a part and cp a pin name in its container.
//
// Pins can be indexed bus pins like "a[2]" or bus ranges like "a[0..3]". A
// range on the part side must be matched by a range of the same size or by a
// single pin on the container side; the latter connects every pin of the range
// to that single pin:
//
//	"a[0..2]=x[4..6], b[0..2]=false"
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	p := &hdl.Parser{Input: c}
	for {
		v, err := p.Next(true)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return conns, nil
		}
		a, ok := v.(hdl.PinAssignment)
		if !ok {
			return nil, errors.Errorf("in %q: expected pin assignment", c)
		}
		pps, err := expandPins(c, a.LHS)
		if err != nil {
			return nil, err
		}
		cps, err := expandPins(c, a.RHS)
		if err != nil {
			return nil, err
		}
		switch {
		case len(pps) == len(cps):
			for i := range pps {
				conns = append(conns, Connection{pps[i], cps[i]})
			}
		case len(cps) == 1:
			for _, pp := range pps {
				conns = append(conns, Connection{pp, cps[0]})
			}
		default:
			return nil, errors.Errorf("in %q: pin count mismatch in %s=%s", c, pinString(a.LHS), pinString(a.RHS))
		}
	}
}

func expandPins(in string, v interface{}) ([]string, error) {
	switch v := v.(type) {
	case hdl.Pin:
		return []string{v.Name}, nil
	case hdl.PinIndex:
		return []string{BusPinName(v.Name, v.Index)}, nil
	case hdl.PinRange:
		if v.End < v.Start {
			return nil, errors.Errorf("in %q at pos %d: invalid bus range %d..%d", in, v.Pos+1, v.Start, v.End)
		}
		out := make([]string, 0, v.End-v.Start+1)
		for i := v.Start; i <= v.End; i++ {
			out = append(out, BusPinName(v.Name, i))
		}
		return out, nil
	}
	panic("unexpected pin type")
}

func pinString(v interface{}) string {
	switch v := v.(type) {
	case hdl.Pin:
		return v.Name
	case hdl.PinIndex:
		return BusPinName(v.Name, v.Index)
	case hdl.PinRange:
		return v.Name + "[" + strconv.Itoa(v.Start) + ".." + strconv.Itoa(v.End) + "]"
	}
	return "?"
}
