package latchbench_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/db47h/latchbench"
)

var _ = Describe("LFSR", func() {
	It("should reject a zero seed", func() {
		_, err := latchbench.NewLFSR(0)
		Expect(err).To(HaveOccurred())
		_, err = latchbench.NewLFSR(128)
		Expect(err).To(HaveOccurred())
	})

	It("should emit the low bit then shift in bit 0 XOR bit 6", func() {
		l, err := latchbench.NewLFSR(latchbench.DefaultSeed)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Next()).To(Equal(latchbench.Bit(1)))
		Expect(l.State()).To(Equal(uint8(3)))
		Expect(l.Next()).To(Equal(latchbench.Bit(1)))
		Expect(l.State()).To(Equal(uint8(7)))

		l, _ = latchbench.NewLFSR(0x40)
		Expect(l.Next()).To(Equal(latchbench.Bit(0)))
		Expect(l.State()).To(Equal(uint8(1)))

		l, _ = latchbench.NewLFSR(0x41)
		Expect(l.Next()).To(Equal(latchbench.Bit(1)))
		Expect(l.State()).To(Equal(uint8(2)))
	})

	It("should have period 127 and never reach zero", func() {
		l, _ := latchbench.NewLFSR(latchbench.DefaultSeed)
		seen := make(map[uint8]bool)
		for i := 0; i < latchbench.LFSRPeriod; i++ {
			s := l.State()
			Expect(s).NotTo(BeZero())
			Expect(s).To(BeNumerically("<", 128))
			Expect(seen).NotTo(HaveKey(s), "state %d repeated at step %d", s, i)
			seen[s] = true
			l.Next()
		}
		Expect(seen).To(HaveLen(127))
		Expect(l.State()).To(Equal(uint8(latchbench.DefaultSeed)))
	})

	It("should emit a bit sequence of period 127", func() {
		l, _ := latchbench.NewLFSR(5)
		bits := make([]latchbench.Bit, 3*latchbench.LFSRPeriod)
		for i := range bits {
			bits[i] = l.Next()
		}
		for i := 0; i < 2*latchbench.LFSRPeriod; i++ {
			Expect(bits[i+latchbench.LFSRPeriod]).To(Equal(bits[i]))
		}
		// 64 ones and 63 zeros per period
		ones := 0
		for _, b := range bits[:latchbench.LFSRPeriod] {
			ones += int(b)
		}
		Expect(ones).To(Equal(64))
	})

	It("should restart from the seed on Reset", func() {
		l, _ := latchbench.NewLFSR(0x55)
		first := make([]latchbench.Bit, 20)
		for i := range first {
			first[i] = l.Next()
		}
		l.Reset()
		Expect(l.State()).To(Equal(l.Seed()))
		for i := range first {
			Expect(l.Next()).To(Equal(first[i]))
		}
	})
})
