package ripemd160

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/bits"

	"github.com/duguorong009/gnark-ripemd160/spread"
)

// compressor bundles the builder handle with the spread table pair shared
// by every gate of the compression function.
type compressor struct {
	api frontend.API
	t   *spread.T16
}

func newCompressor(api frontend.API) (*compressor, error) {
	t, err := spread.New(api)
	if err != nil {
		return nil, fmt.Errorf("new spread tables: %w", err)
	}
	// the widest sum identity carries a 2-bit carry above four 32-bit
	// operands and must not wrap in the field
	if api.Compiler().FieldBitLen() < 36 {
		return nil, errors.New("field too small for the word sum identities")
	}
	return &compressor{api: api, t: t}, nil
}

// pack recomposes a word from its 16-bit halves.
func (c *compressor) pack(w wordDense) frontend.Variable {
	return c.api.Add(w.lo, c.api.Mul(w.hi, 1<<16))
}

// splitWord proves v below 2^32 and returns it as two table-proven halves
// with their spread forms.
func (c *compressor) splitWord(v frontend.Variable) word {
	hs := chunksOf(c.api, v, 16, 16)
	w := word{lo: c.t.Limb(hs[0]), hi: c.t.Limb(hs[1])}
	c.api.AssertIsEqual(v, c.pack(w.dense()))
	return w
}

// rangeCheckShort bounds a value to nbBits for the narrow widths the
// rotation splits and sum carries produce.
func (c *compressor) rangeCheckShort(v frontend.Variable, nbBits int) {
	switch nbBits {
	case 1:
		c.api.AssertIsBoolean(v)
	case 2:
		c.api.AssertIsCrumb(v)
	case 3, 4:
		bits.ToBinary(c.api, v, bits.WithNbDigits(nbBits))
	default:
		panic(fmt.Sprintf("unexpected %d-bit range check", nbBits))
	}
}

// f1 proves x ^ y ^ z. The even bits of a three-operand spread sum hold the
// parity of each bit column.
func (c *compressor) f1(x, y, z word) wordDense {
	lo, _ := c.t.SumEvenOdd(x.lo.Spread, y.lo.Spread, z.lo.Spread)
	hi, _ := c.t.SumEvenOdd(x.hi.Spread, y.hi.Spread, z.hi.Spread)
	return wordDense{lo: lo.Dense, hi: hi.Dense}
}

// f2 proves (x & y) | (^x & z). The two AND parts come from the odd bits of
// two spread sums; no bit is set in both, so their field sum is the OR.
func (c *compressor) f2(x, y, z word) wordDense {
	_, pLo := c.t.SumEvenOdd(x.lo.Spread, y.lo.Spread)
	_, pHi := c.t.SumEvenOdd(x.hi.Spread, y.hi.Spread)
	_, qLo := c.t.SumEvenOdd(spread.Negate(c.api, x.lo.Spread), z.lo.Spread)
	_, qHi := c.t.SumEvenOdd(spread.Negate(c.api, x.hi.Spread), z.hi.Spread)
	return wordDense{
		lo: c.api.Add(pLo.Dense, qLo.Dense),
		hi: c.api.Add(pHi.Dense, qHi.Dense),
	}
}

// f3 proves (x | ^y) ^ z. OR is XOR plus AND on disjoint bits, so adding
// the even and odd spread parts of one sum yields the spread form of
// x | ^y directly; a second spread sum against z extracts the final XOR.
func (c *compressor) f3(x, y, z word) wordDense {
	orLoEven, orLoOdd := c.t.SumEvenOdd(x.lo.Spread, spread.Negate(c.api, y.lo.Spread))
	orHiEven, orHiOdd := c.t.SumEvenOdd(x.hi.Spread, spread.Negate(c.api, y.hi.Spread))
	lo, _ := c.t.SumEvenOdd(c.api.Add(orLoEven.Spread, orLoOdd.Spread), z.lo.Spread)
	hi, _ := c.t.SumEvenOdd(c.api.Add(orHiEven.Spread, orHiOdd.Spread), z.hi.Spread)
	return wordDense{lo: lo.Dense, hi: hi.Dense}
}

// rotateLeft proves w rotated left by s bits for the scheduled shifts 5
// through 15. The upper half is cut per rolChunkWidths; the wide chunk is
// bounded through its table tag, the narrow ones by bit checks. One
// identity rebinds the chunks to the upper half, a second one places every
// piece at its rotated position.
func (c *compressor) rotateLeft(w wordDense, s int) word {
	widths, ok := rolChunkWidths[s]
	if !ok {
		panic(fmt.Sprintf("unscheduled rotation by %d", s))
	}
	cs := chunksOf(c.api, w.hi, widths...)
	wide := wideChunk(widths)

	// the lower half lands at bit s without crossing the word boundary
	orig := frontend.Variable(0)
	rot := c.api.Mul(w.lo, uint64(1)<<uint(s))
	offset := 0
	for i, width := range widths {
		if i == wide {
			c.t.AssertTagAtMost(c.t.TagOf(cs[i]), width-8)
		} else {
			c.rangeCheckShort(cs[i], width)
		}
		orig = c.api.Add(orig, c.api.Mul(cs[i], uint64(1)<<uint(offset)))
		rot = c.api.Add(rot, c.api.Mul(cs[i], uint64(1)<<uint((16+offset+s)%32)))
		offset += width
	}
	c.api.AssertIsEqual(w.hi, orig)
	return c.splitWord(rot)
}

// addMod32 proves the 32-bit wraparound sum of the operands. carryBits must
// cover the operand count, n operands overflowing at most n-1 times; the
// recomposition identity then forces the carry to the exact overflow count.
func (c *compressor) addMod32(carryBits int, ws ...wordDense) word {
	if len(ws) < 2 {
		panic("at least two operands")
	}
	los := make([]frontend.Variable, len(ws))
	his := make([]frontend.Variable, len(ws))
	for i, w := range ws {
		los[i] = w.lo
		his[i] = w.hi
	}
	lo := c.api.Add(los[0], los[1], los[2:]...)
	hi := c.api.Add(his[0], his[1], his[2:]...)
	full := c.api.Add(lo, c.api.Mul(hi, 1<<16))

	parts := chunksOf(c.api, full, 16, 16, carryBits)
	out := word{lo: c.t.Limb(parts[0]), hi: c.t.Limb(parts[1])}
	c.rangeCheckShort(parts[2], carryBits)
	c.api.AssertIsEqual(full, c.api.Add(
		c.pack(out.dense()),
		c.api.Mul(parts[2], uint64(1)<<32),
	))
	return out
}
