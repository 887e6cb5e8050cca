package spread

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
)

func init() {
	solver.RegisterHint(GetHints()...)
}

// GetHints returns all hint functions used by the package.
func GetHints() []solver.Hint {
	return []solver.Hint{sumEvenOddHint}
}

// sumEvenOddHint sums its inputs and splits the result into the dense
// values formed by its even-position and odd-position bits. Inputs are
// expected to be spread forms whose sum fits 32 bits.
func sumEvenOddHint(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(outputs) != 2 {
		return fmt.Errorf("output must be 2 elements")
	}
	if len(inputs) == 0 {
		return fmt.Errorf("input must not be empty")
	}
	sum := new(big.Int)
	for _, in := range inputs {
		sum.Add(sum, in)
	}
	if sum.BitLen() > 32 {
		return fmt.Errorf("sum of %d bits does not fit 32 bits", sum.BitLen())
	}
	even, odd := Deinterleave(uint32(sum.Uint64()))
	outputs[0].SetUint64(uint64(even))
	outputs[1].SetUint64(uint64(odd))
	return nil
}
