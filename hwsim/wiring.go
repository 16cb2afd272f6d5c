// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"sort"

	"github.com/pkg/errors"
)

const (
	wireInternal = iota
	wireInput    // chip input
	wireOutput   // chip output
)

// a wire is a named signal within a chip. It has at most one driver.
type wire struct {
	typ     int
	driver  string // name of the part pin driving the wire
	readers []string
}

type wiring map[string]*wire

func newWiring(inputs, outputs []string) (wiring, error) {
	wr := make(wiring, len(inputs)+len(outputs))
	for _, n := range []string{False, True, Clk} {
		wr[n] = &wire{typ: wireInput, driver: n}
	}
	for _, n := range inputs {
		if wr[n] != nil {
			return nil, errors.New("duplicate or reserved input pin name " + n)
		}
		wr[n] = &wire{typ: wireInput, driver: n}
	}
	for _, n := range outputs {
		if wr[n] != nil {
			return nil, errors.New("duplicate or reserved output pin name " + n)
		}
		wr[n] = &wire{typ: wireOutput}
	}
	return wr, nil
}

func (wr wiring) get(name string) *wire {
	w := wr[name]
	if w == nil {
		w = &wire{}
		wr[name] = w
	}
	return w
}

// drive records part pin "by" as the driver of wire name.
func (wr wiring) drive(name, by string) error {
	w := wr.get(name)
	switch {
	case isConstant(name):
		return errors.New(by + ": output pin connected to constant " + name)
	case w.typ == wireInput:
		return errors.New(by + ": output pin connected to chip input " + name)
	case w.driver != "":
		return errors.New(by + ": wire " + name + " already driven by " + w.driver)
	}
	w.driver = by
	return nil
}

// read records part pin "by" as a reader of wire name.
func (wr wiring) read(name, by string) {
	w := wr.get(name)
	w.readers = append(w.readers, by)
}

// check makes sure that every wire that is read or exported has a driver.
// Wires driven but never read are allowed.
func (wr wiring) check() error {
	names := make([]string, 0, len(wr))
	for n := range wr {
		names = append(names, n)
	}
	// stable error messages
	sort.Strings(names)
	for _, n := range names {
		w := wr[n]
		if w.driver != "" {
			continue
		}
		if w.typ == wireOutput {
			return errors.New("chip output " + n + " not connected to any part output")
		}
		return errors.New("pin " + w.readers[0] + " connected to " + n + " which is not connected to any output")
	}
	return nil
}
