// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command latchbench runs the latch pair test bench against a simulated
// device.
//
// Usage:
//
//	latchbench [options]
//
// The exit status is 1 if the device output differs from the reference model
// or the device cannot be built, 2 on invalid arguments.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/pkg/errors"

	"github.com/db47h/latchbench"
	"github.com/db47h/latchbench/device"
)

// Exit codes.
const (
	exitOK       = 0
	exitMismatch = 1
	exitUsage    = 2
)

func newLogger(w io.Writer, v int) logr.Logger {
	l := log.New(w, "", 0)
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			l.Print(prefix, ": ", args)
			return
		}
		l.Print(args)
	}, funcr.Options{Verbosity: v})
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("latchbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		variant    = fs.String("variant", latchbench.DefaultVariant.Name, "device variant: p-only or n-p")
		cycles     = fs.Int("cycles", latchbench.DefaultCycles, "number of checked cycles after reset")
		seed       = fs.Uint("seed", latchbench.DefaultSeed, "LFSR seed (1-127)")
		workers    = fs.Int("workers", 1, "number of simulation workers, 0 for GOMAXPROCS")
		spc        = fs.Uint("spc", device.DefaultSPC, "simulation steps per clock cycle")
		behavioral = fs.Bool("behavioral", false, "simulate the behavioral model instead of the gate-level cell")
		probe      = fs.Bool("probe", false, "run the write/read-back probe pattern instead of the checked run")
		verbose    = fs.Int("v", 0, "log verbosity, 1 traces every cycle")
	)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}
	usage := func(err error) int {
		fmt.Fprintf(stderr, "latchbench: %v\n", err)
		fs.Usage()
		return exitUsage
	}
	if fs.NArg() > 0 {
		return usage(errors.Errorf("unexpected argument %q", fs.Arg(0)))
	}

	v, err := latchbench.LookupVariant(*variant)
	if err != nil {
		return usage(err)
	}
	if *seed < 1 || *seed > latchbench.LFSRPeriod {
		return usage(errors.Errorf("seed %d out of range [1, %d]", *seed, latchbench.LFSRPeriod))
	}

	cfg := latchbench.DefaultConfig()
	cfg.Variant = v
	cfg.Seed = uint8(*seed)
	cfg.Cycles = *cycles
	cfg.Log = newLogger(stderr, *verbose)
	if err = cfg.Validate(); err != nil {
		return usage(err)
	}

	opts := []device.Option{device.Workers(*workers), device.StepsPerCycle(*spc)}
	if *behavioral {
		opts = append(opts, device.Behavioral())
	}
	dev, err := device.New(v, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "latchbench: %v\n", errors.Wrap(err, "build device"))
		return exitMismatch
	}
	defer dev.Close()

	if *probe {
		samples, err := latchbench.Probe(dev, cfg)
		if err != nil {
			fmt.Fprintf(stderr, "latchbench: %v\n", err)
			return exitMismatch
		}
		for _, s := range samples {
			fmt.Fprintf(stdout, "in %03b out %02b\n", s.Input, s.Output)
		}
		return exitOK
	}

	r, err := latchbench.Run(dev, cfg)
	if err != nil {
		if _, ok := errors.Cause(err).(*latchbench.MismatchError); ok {
			fmt.Fprintf(stderr, "FAIL %v after %d cycles\n", err, r.Cycles)
		} else {
			fmt.Fprintf(stderr, "latchbench: %v\n", err)
		}
		return exitMismatch
	}
	fmt.Fprintf(stdout, "PASS %s: %d cycles, %d outputs checked\n", r.Variant, r.Cycles, r.Checked)
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
