package latchbench_test

import (
	"github.com/go-logr/logr/funcr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/db47h/latchbench"
)

// fakeDevice is a behavioral device built on the reference model. flip
// corrupts the output read after the given number of cycles.
type fakeDevice struct {
	v      latchbench.Variant
	m      *latchbench.Model
	rst    bool
	in     uint8
	out    uint8
	cycles int
	flip   map[int]uint8
}

func newFakeDevice(v latchbench.Variant) *fakeDevice {
	return &fakeDevice{v: v, m: latchbench.NewModel(v.Latency), flip: make(map[int]uint8)}
}

func (d *fakeDevice) SetReset(active bool) { d.rst = active }
func (d *fakeDevice) SetInput(in uint8)    { d.in = in & 7 }
func (d *fakeDevice) Output() uint8        { return d.out ^ d.flip[d.cycles] }

func (d *fakeDevice) Cycle() {
	d.cycles++
	if d.rst {
		d.m = latchbench.NewModel(d.v.Latency)
		d.out = 3
		return
	}
	en := latchbench.Mask(d.in >> 1)
	if d.v.ActiveLowEnable {
		en ^= 3
	}
	d.out = uint8(d.m.Advance(en, d.in&1))
}

func config(v latchbench.Variant) latchbench.Config {
	cfg := latchbench.DefaultConfig()
	cfg.Variant = v
	cfg.Log = GinkgoLogr
	return cfg
}

var _ = Describe("Run", func() {
	DescribeTable("should pass a matching device",
		func(v latchbench.Variant) {
			dev := newFakeDevice(v)
			r, err := latchbench.Run(dev, config(v))
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(Equal(latchbench.Report{Variant: v, Cycles: 138, Checked: 138}))
			Expect(dev.cycles).To(Equal(148))
			Expect(dev.rst).To(BeFalse())
		},
		Entry("p-only", latchbench.POnly),
		Entry("n-p", latchbench.NP),
	)

	It("should stop at the first mismatch", func() {
		dev := newFakeDevice(latchbench.NP)
		dev.flip[latchbench.DefaultResetCycles+21] = 2
		r, err := latchbench.Run(dev, config(latchbench.NP))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(HavePrefix("n-p: cycle 20:"))
		Expect(r.Cycles).To(Equal(21))
		Expect(r.Checked).To(Equal(20))
		Expect(dev.cycles).To(Equal(latchbench.DefaultResetCycles + 21))

		me, ok := errors.Cause(err).(*latchbench.MismatchError)
		Expect(ok).To(BeTrue())
		Expect(me.Cycle).To(Equal(20))
		Expect(me.Got ^ me.Want).To(Equal(latchbench.Word(2)))
	})

	It("should detect a device of the wrong variant", func() {
		dev := newFakeDevice(latchbench.NP)
		_, err := latchbench.Run(dev, config(latchbench.POnly))
		Expect(errors.Cause(err)).To(BeAssignableToTypeOf(&latchbench.MismatchError{}))
	})

	It("should reject invalid configurations before touching the device", func() {
		dev := newFakeDevice(latchbench.POnly)
		for _, mod := range []func(*latchbench.Config){
			func(c *latchbench.Config) { c.Cycles = -1 },
			func(c *latchbench.Config) { c.ResetCycles = -1 },
			func(c *latchbench.Config) { c.ResetInput = 8 },
			func(c *latchbench.Config) { c.Seed = 0 },
			func(c *latchbench.Config) { c.Variant = latchbench.Variant{Name: "zero"} },
		} {
			cfg := config(latchbench.POnly)
			mod(&cfg)
			_, err := latchbench.Run(dev, cfg)
			Expect(err).To(HaveOccurred())
		}
		Expect(dev.cycles).To(BeZero())
	})

	It("should log one V(1) line per cycle", func() {
		var lines []string
		sink := func(prefix, args string) { lines = append(lines, args) }

		cfg := config(latchbench.POnly)
		cfg.Log = funcr.New(sink, funcr.Options{Verbosity: 1})
		_, err := latchbench.Run(newFakeDevice(latchbench.POnly), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(HaveLen(latchbench.DefaultCycles + 1))
		Expect(lines[0]).To(ContainSubstring(`"cycle"=0`))
		Expect(lines[0]).To(ContainSubstring(`"expected"=3`))
		Expect(lines[len(lines)-1]).To(ContainSubstring(`"msg"="pass"`))

		lines = nil
		cfg.Log = funcr.New(sink, funcr.Options{})
		_, err = latchbench.Run(newFakeDevice(latchbench.POnly), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(lines).To(HaveLen(1))
	})
})

var _ = Describe("Reset", func() {
	It("should hold reset with the reset input then release it", func() {
		dev := newFakeDevice(latchbench.NP)
		latchbench.Reset(dev, config(latchbench.NP))
		Expect(dev.cycles).To(Equal(latchbench.DefaultResetCycles))
		Expect(dev.rst).To(BeFalse())
		Expect(dev.in).To(BeZero())
		Expect(dev.Output()).To(Equal(uint8(3)))
	})
})

var _ = Describe("Probe", func() {
	DescribeTable("should run the write and read-back pattern",
		func(v latchbench.Variant, want []uint8) {
			samples, err := latchbench.Probe(newFakeDevice(v), config(v))
			Expect(err).NotTo(HaveOccurred())
			Expect(samples).To(HaveLen(20))
			for i, s := range samples {
				wdata := uint8(i / 5 & 1)
				if i%5 == 2 {
					Expect(s.Input).To(Equal(wdata | 6))
				} else {
					Expect(s.Input).To(Equal(wdata))
				}
				Expect(s.Output).To(Equal(want[i]), "sample %d", i)
			}
		},
		Entry("p-only", latchbench.POnly,
			[]uint8{3, 0, 0, 0, 0, 0, 3, 3, 3, 3, 3, 0, 0, 0, 0, 0, 3, 3, 3, 3}),
		Entry("n-p", latchbench.NP,
			[]uint8{3, 3, 3, 3, 0, 0, 0, 0, 0, 3, 3, 3, 3, 3, 0, 0, 0, 0, 0, 3}),
	)
})

var _ = Describe("Probe configuration", func() {
	It("should reject invalid configurations before touching the device", func() {
		dev := newFakeDevice(latchbench.NP)
		for _, mod := range []func(*latchbench.Config){
			func(c *latchbench.Config) { c.ResetCycles = -1 },
			func(c *latchbench.Config) { c.ResetInput = 8 },
			func(c *latchbench.Config) { c.Variant = latchbench.Variant{Name: "zero"} },
		} {
			cfg := config(latchbench.NP)
			mod(&cfg)
			samples, err := latchbench.Probe(dev, cfg)
			Expect(err).To(HaveOccurred())
			Expect(samples).To(BeNil())
		}
		Expect(dev.cycles).To(BeZero())
	})
})
