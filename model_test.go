package latchbench_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/db47h/latchbench"
)

var _ = Describe("Scheduler", func() {
	It("should enable exactly one latch per cycle, alternating", func() {
		var s latchbench.Scheduler
		for i := 0; i < 16; i++ {
			en := s.Enable(i)
			Expect(en).To(Equal(latchbench.Mask(1 << uint(i&1))))
		}
	})

	It("should complement the enable mask for active low devices", func() {
		low := latchbench.Scheduler{ActiveLowEnable: true}
		high := latchbench.Scheduler{}
		for en := latchbench.Mask(0); en < 4; en++ {
			Expect(high.Effective(en)).To(Equal(en))
			Expect(low.Effective(en)).To(Equal(en ^ 3))
		}
	})

	It("should encode write data in bit 0 and the enables in bits 1-2", func() {
		Expect(latchbench.Encode(1, 0)).To(Equal(uint8(1)))
		Expect(latchbench.Encode(0, 1)).To(Equal(uint8(2)))
		Expect(latchbench.Encode(1, 2)).To(Equal(uint8(5)))
		Expect(latchbench.Encode(1, 3)).To(Equal(uint8(7)))
	})
})

var _ = Describe("Model", func() {
	It("should panic on an invalid latency", func() {
		Expect(func() { latchbench.NewModel(0) }).To(Panic())
		Expect(func() { latchbench.NewModel(33) }).To(Panic())
		Expect(func() { latchbench.NewModel(32) }).NotTo(Panic())
	})

	DescribeTable("sentinel and latency",
		func(latency int) {
			m := latchbench.NewModel(latency)
			Expect(m.Latency()).To(Equal(latency))
			Expect(m.Head()).To(Equal(latchbench.Word(3)))

			l, _ := latchbench.NewLFSR(latchbench.DefaultSeed)
			var s latchbench.Scheduler
			heads := make([]latchbench.Word, 0, 200)
			for i := 0; i < 200; i++ {
				exp := m.Advance(s.Enable(i), l.Next())
				if i < latency {
					Expect(exp).To(Equal(latchbench.Word(3)), "cycle %d", i)
				} else {
					Expect(exp).To(Equal(heads[i-latency]), "cycle %d", i)
				}
				heads = append(heads, m.Head())
			}
		},
		Entry("latency 1", 1),
		Entry("latency 2", 2),
		Entry("latency 5", 5),
		Entry("latency 32", 32),
	)

	It("should leave unselected latches untouched", func() {
		m := latchbench.NewModel(1)
		m.Advance(3, 0)
		Expect(m.Head()).To(Equal(latchbench.Word(0)))
		m.Advance(1, 1)
		Expect(m.Head()).To(Equal(latchbench.Word(1)))
		m.Advance(2, 0)
		Expect(m.Head()).To(Equal(latchbench.Word(1)))
		m.Advance(0, 0)
		Expect(m.Head()).To(Equal(latchbench.Word(1)))
		m.Advance(2, 1)
		Expect(m.Head()).To(Equal(latchbench.Word(3)))
	})

	It("should expose the next expected output", func() {
		m := latchbench.NewModel(2)
		m.Advance(3, 0)
		Expect(m.Expected()).To(Equal(latchbench.Word(3)))
		Expect(m.Advance(3, 0)).To(Equal(latchbench.Word(3)))
		Expect(m.Expected()).To(Equal(latchbench.Word(0)))
	})
})

var _ = Describe("Stimulus", func() {
	It("should reject invalid variants and seeds", func() {
		_, err := latchbench.NewStimulus(latchbench.Variant{Name: "x"}, 1)
		Expect(err).To(HaveOccurred())
		_, err = latchbench.NewStimulus(latchbench.POnly, 0)
		Expect(err).To(HaveOccurred())
	})

	It("should run the first p-only cycle as a literal walkthrough", func() {
		st, err := latchbench.NewStimulus(latchbench.POnly, 1)
		Expect(err).NotTo(HaveOccurred())
		s := st.Next()
		Expect(s).To(Equal(latchbench.Sample{
			Cycle:     0,
			Enable:    1,
			Effective: 2,
			WData:     1,
			Input:     3,
			Expected:  3,
			Head:      3,
		}))

		// same cycle, component by component
		l, _ := latchbench.NewLFSR(1)
		sched := latchbench.Scheduler{ActiveLowEnable: true}
		m := latchbench.NewModel(1)
		wdata := l.Next()
		Expect(wdata).To(Equal(latchbench.Bit(1)))
		Expect(l.State()).To(Equal(uint8(3)))
		Expect(m.Advance(sched.Effective(sched.Enable(0)), wdata)).To(Equal(latchbench.Word(3)))
		Expect(m.Head()).To(Equal(latchbench.Word(3)))
		Expect(m.Expected()).To(Equal(latchbench.Word(3)))

		// cycle 1 reads the head written on cycle 0
		s = st.Next()
		Expect(s.Enable).To(Equal(latchbench.Mask(2)))
		Expect(s.Effective).To(Equal(latchbench.Mask(1)))
		Expect(s.Expected).To(Equal(latchbench.Word(3)))
	})

	It("should be deterministic", func() {
		for _, v := range latchbench.Variants {
			a, _ := latchbench.NewStimulus(v, 0x2a)
			b, _ := latchbench.NewStimulus(v, 0x2a)
			for i := 0; i < 300; i++ {
				Expect(a.Next()).To(Equal(b.Next()))
			}
		}
	})

	It("should write zeros eventually", func() {
		st, _ := latchbench.NewStimulus(latchbench.NP, latchbench.DefaultSeed)
		seen := make(map[latchbench.Word]bool)
		for i := 0; i < latchbench.DefaultCycles; i++ {
			seen[st.Next().Expected] = true
		}
		Expect(seen).To(HaveLen(4))
	})
})

var _ = Describe("Variant", func() {
	It("should look up known variants by name", func() {
		v, err := latchbench.LookupVariant("p-only")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(latchbench.POnly))
		v, err = latchbench.LookupVariant("n-p")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(latchbench.NP))

		_, err = latchbench.LookupVariant("n-only")
		Expect(err).To(MatchError(ContainSubstring("p-only, n-p")))
	})

	It("should validate latency", func() {
		for _, v := range latchbench.Variants {
			Expect(v.Validate()).To(Succeed())
		}
		Expect(latchbench.Variant{Name: "slow", Latency: 33}.Validate()).NotTo(Succeed())
		Expect(latchbench.NP.String()).To(Equal("n-p"))
	})

	It("should use the build time default variant in DefaultConfig", func() {
		cfg := latchbench.DefaultConfig()
		Expect(cfg.Variant).To(Equal(latchbench.DefaultVariant))
		Expect(cfg.Seed).To(Equal(uint8(1)))
		Expect(cfg.Cycles).To(Equal(138))
		Expect(cfg.ResetCycles).To(Equal(10))
		Expect(cfg.ResetInput).To(Equal(uint8(7)))
		Expect(cfg.Validate()).To(Succeed())

		cfg.Seed = 128
		Expect(cfg.Validate()).NotTo(Succeed())
	})
})
