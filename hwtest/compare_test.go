package hwtest_test

import (
	"testing"

	hl "github.com/db47h/latchbench/hwlib"
	hw "github.com/db47h/latchbench/hwsim"
	"github.com/db47h/latchbench/hwtest"
)

func TestComparePart(t *testing.T) {
	or, err := hw.Chip("custom_or", "a,b", "out",
		hl.Nand("a=a, b=a, out=notA"),
		hl.Nand("a=b, b=b, out=notB"),
		hl.Nand("a=notA, b=notB, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 8, hl.Or, or)
}

func TestComparePart_clocked(t *testing.T) {
	reg, err := hw.Chip("BitReg", "in, load", "out",
		hl.Mux("a=out, b=in, sel=load, out=d"),
		hl.DFF("in=d, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	reg2, err := hw.Chip("BitReg2", "in, load", "out",
		hl.Not("in=load, out=hold"),
		hl.Mux("a=in, b=q, sel=hold, out=d"),
		hl.DFF("in=d, out=q"),
		hl.Or("a=q, b=false, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 8, reg, reg2)
}
