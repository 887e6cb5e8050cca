package ripemd160

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
)

func init() {
	solver.RegisterHint(GetHints()...)
}

// GetHints returns all hint functions used by the package.
func GetHints() []solver.Hint {
	return []solver.Hint{chunksHint}
}

// chunksHint cuts the last input into LSB-first chunks whose widths in bits
// are given by the preceding inputs. The value must fit the combined width.
func chunksHint(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) != len(outputs)+1 {
		return fmt.Errorf("input must be one width per output plus the value")
	}
	total := uint(0)
	for _, w := range inputs[:len(outputs)] {
		if !w.IsUint64() || w.Uint64() == 0 || w.Uint64() > 32 {
			return fmt.Errorf("invalid chunk width %s", w)
		}
		total += uint(w.Uint64())
	}
	v := inputs[len(inputs)-1]
	if uint(v.BitLen()) > total {
		return fmt.Errorf("value of %d bits does not fit %d-bit split", v.BitLen(), total)
	}
	one := big.NewInt(1)
	shift := uint(0)
	for i := range outputs {
		w := uint(inputs[i].Uint64())
		mask := new(big.Int).Sub(new(big.Int).Lsh(one, w), one)
		outputs[i].Rsh(v, shift).And(outputs[i], mask)
		shift += w
	}
	return nil
}

// chunksOf calls chunksHint in-circuit. The returned chunks come back
// unconstrained: the caller must range-check each one and assert the
// recomposition identity.
func chunksOf(api frontend.API, v frontend.Variable, widths ...int) []frontend.Variable {
	ins := make([]frontend.Variable, 0, len(widths)+1)
	for _, w := range widths {
		ins = append(ins, w)
	}
	ins = append(ins, v)
	res, err := api.Compiler().NewHint(chunksHint, len(widths), ins...)
	if err != nil {
		panic(fmt.Sprintf("chunks hint: %v", err))
	}
	return res
}
