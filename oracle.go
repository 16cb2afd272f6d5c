// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package latchbench

import "fmt"

// MismatchError reports a device output that differs from the reference
// model's prediction.
type MismatchError struct {
	Cycle int   // cycle index, 0 is the first cycle after reset
	Input uint8 // device input applied on that cycle
	Got   Word
	Want  Word
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cycle %d: input %d: device output %d (%02b), expected %d (%02b)",
		e.Cycle, e.Input, e.Got, e.Got, e.Want, e.Want)
}

// Oracle compares device outputs with expected values. Comparison is exact.
type Oracle struct {
	checked int
}

// Check returns a *MismatchError if got != want.
func (o *Oracle) Check(cycle int, input uint8, got, want Word) error {
	if got != want {
		return &MismatchError{Cycle: cycle, Input: input, Got: got, Want: want}
	}
	o.checked++
	return nil
}

// Checked returns the number of successful checks.
func (o *Oracle) Checked() int { return o.checked }
