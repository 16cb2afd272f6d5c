// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package latchbench

import (
	"strings"

	"github.com/pkg/errors"
)

const maxLatency = 32

// Variant describes a version of the device under test.
type Variant struct {
	Name string
	// Latency is the number of cycles between a write and its readout.
	Latency int
	// ActiveLowEnable is set if the device latches are written while their
	// enable input is low.
	ActiveLowEnable bool
}

// Known device variants.
var (
	// POnly is the single stage version built with P latches only.
	POnly = Variant{Name: "p-only", Latency: 1, ActiveLowEnable: true}
	// NP is the two stage version: an N latch followed by a P latch.
	NP = Variant{Name: "n-p", Latency: 2, ActiveLowEnable: false}
)

// Variants lists the known variants.
var Variants = []Variant{POnly, NP}

// DefaultVariant is the variant selected at build time.
var DefaultVariant = defaultVariant

// Validate checks that the variant's latency is in the range [1, 32].
func (v Variant) Validate() error {
	if v.Latency < 1 || v.Latency > maxLatency {
		return errors.Errorf("variant %s: latency %d out of range [1, %d]", v.Name, v.Latency, maxLatency)
	}
	return nil
}

func (v Variant) String() string { return v.Name }

// LookupVariant returns the known variant with the given name.
func LookupVariant(name string) (Variant, error) {
	for _, v := range Variants {
		if v.Name == name {
			return v, nil
		}
	}
	names := make([]string, len(Variants))
	for i, v := range Variants {
		names[i] = v.Name
	}
	return Variant{}, errors.Errorf("unknown variant %q, must be one of: %s", name, strings.Join(names, ", "))
}
