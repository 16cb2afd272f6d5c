// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
package hwtest

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/latchbench/hwlib"
	"github.com/db47h/latchbench/hwsim"
)

// conns returns a connection string wiring inputs to same name wires and
// outputs to wires named prefix+name.
func conns(in, out []string, prefix string) string {
	var b strings.Builder
	for _, n := range in {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n + "=" + n)
	}
	for _, n := range out {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n + "=" + prefix + n)
	}
	return b.String()
}

func sameNames(t *testing.T, what string, a, b []string) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("%s count mismatch: %d != %d", what, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("%s #%d: %q != %q", what, i, a[i], b[i])
		}
	}
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
// Inputs are set at the beginning of each clock cycle and outputs compared at
// its end: first with all inputs false, then all true, then 2^n random input
// sets where n is the number of inputs, capped at 12. The random seed is
// logged so that failures can be replayed.
func ComparePart(t *testing.T, spc uint, part1 hwsim.NewPartFn, part2 hwsim.NewPartFn) {
	t.Helper()

	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))
	t.Logf("random seed: %d", seed)

	ps1, ps2 := part1("").PartSpec, part2("").PartSpec
	sameNames(t, "input", ps1.Inputs, ps2.Inputs)
	sameNames(t, "output", ps1.Outputs, ps2.Outputs)

	inputs := make([]bool, len(ps1.Inputs))
	outputs := make([][2]bool, len(ps1.Outputs))

	parts := hwsim.Parts{
		part1(conns(ps1.Inputs, ps1.Outputs, "p1_")),
		part2(conns(ps2.Inputs, ps2.Outputs, "p2_")),
	}
	for i, n := range ps1.Inputs {
		i := i
		parts = append(parts, hwlib.Input(func() bool { return inputs[i] })("out="+n))
	}
	for i, n := range ps1.Outputs {
		i := i
		parts = append(parts,
			hwlib.Output(func(b bool) { outputs[i][0] = b })("in=p1_"+n),
			hwlib.Output(func(b bool) { outputs[i][1] = b })("in=p2_"+n))
	}

	c, err := hwsim.NewCircuit(0, spc, parts...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	check := func(iter int) {
		t.Helper()
		for o, out := range outputs {
			if out[0] == out[1] {
				continue
			}
			var b strings.Builder
			for i, n := range ps1.Inputs {
				if b.Len() > 0 {
					b.WriteString(", ")
				}
				b.WriteString(n + "=" + strconv.FormatBool(inputs[i]))
			}
			t.Fatalf("iteration %d, inputs %s:\n%s.%s = %v\n%s.%s = %v",
				iter, b.String(), ps1.Name, ps1.Outputs[o], out[0], ps2.Name, ps2.Outputs[o], out[1])
		}
	}

	iter := len(inputs)
	if iter > 12 {
		iter = 12
	}
	iter = 1 << uint(iter)

	start := time.Now()

	c.TickTock()
	check(-2)
	for i := range inputs {
		inputs[i] = true
	}
	c.TickTock()
	check(-1)
	for n := 0; n < iter; n++ {
		for i := range inputs {
			inputs[i] = rnd.Int63()&(1<<62) != 0
		}
		c.TickTock()
		check(n)
	}

	elapsed := time.Since(start)
	t.Logf("%d components. %d steps in %v. %d clock cycles => %.2f Hz",
		c.Size(), c.Steps(), elapsed, c.Cycles(), float64(c.Cycles())/elapsed.Seconds())
}
