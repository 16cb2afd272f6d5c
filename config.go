// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package latchbench

import (
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// Default run parameters.
const (
	DefaultCycles      = 128 + 10
	DefaultResetCycles = 10
	DefaultResetInput  = 7
)

// Config holds the parameters of a run.
type Config struct {
	Variant     Variant
	Seed        uint8 // LFSR seed
	Cycles      int   // number of checked cycles after reset
	ResetCycles int   // number of cycles reset is held active
	ResetInput  uint8 // input port value while reset is active

	// Log receives the run trace: one V(1) line per cycle and a summary.
	// The zero value discards everything.
	Log logr.Logger
}

// DefaultConfig returns the configuration of the standard run for the build
// time default variant.
func DefaultConfig() Config {
	return Config{
		Variant:     DefaultVariant,
		Seed:        DefaultSeed,
		Cycles:      DefaultCycles,
		ResetCycles: DefaultResetCycles,
		ResetInput:  DefaultResetInput,
		Log:         logr.Discard(),
	}
}

// Validate checks the configuration. Run and Probe call it before touching
// the device.
func (c *Config) Validate() error {
	if err := c.Variant.Validate(); err != nil {
		return err
	}
	if c.Seed&lfsrMask == 0 {
		return errors.Errorf("LFSR seed %d has its low 7 bits clear", c.Seed)
	}
	if c.Cycles < 0 || c.ResetCycles < 0 {
		return errors.Errorf("negative cycle count (cycles %d, reset cycles %d)", c.Cycles, c.ResetCycles)
	}
	if c.ResetInput > 7 {
		return errors.Errorf("reset input %d does not fit in 3 bits", c.ResetInput)
	}
	return nil
}
