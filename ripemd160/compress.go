package ripemd160

import (
	"github.com/consensys/gnark/frontend"

	"github.com/duguorong009/gnark-ripemd160/spread"
)

// wordDense is a 32-bit value held as two 16-bit halves, lo + hi*2^16.
type wordDense struct {
	lo, hi frontend.Variable
}

// word carries both encodings of a 32-bit value: table-proven dense halves
// together with their spread forms.
type word struct {
	lo, hi spread.Limb
}

func (w word) dense() wordDense {
	return wordDense{lo: w.lo.Dense, hi: w.hi.Dense}
}

// constWord encodes a compile-time constant in both forms. No constraints.
func constWord(v uint32) word {
	return word{
		lo: spread.Limb{
			Dense:  uint64(v & 0xffff),
			Spread: uint64(spread.Interleave(uint16(v))),
		},
		hi: spread.Limb{
			Dense:  uint64(v >> 16),
			Spread: uint64(spread.Interleave(uint16(v >> 16))),
		},
	}
}

// slot names one of the five chaining words.
type slot int

const (
	slotA slot = iota
	slotB
	slotC
	slotD
	slotE
)

// state is the five-word chaining state. B, C and D keep their spread
// forms for the boolean gates; A and E only ever enter sums, so the dense
// halves suffice for them.
type state struct {
	a wordDense
	b word
	c word
	d word
	e wordDense
}

// at returns the dense view of the given slot.
func (s state) at(i slot) wordDense {
	switch i {
	case slotA:
		return s.a
	case slotB:
		return s.b.dense()
	case slotC:
		return s.c.dense()
	case slotD:
		return s.d.dense()
	case slotE:
		return s.e
	default:
		panic("invalid state slot")
	}
}

func ivState() state {
	return state{
		a: constWord(iv[0]).dense(),
		b: constWord(iv[1]),
		c: constWord(iv[2]),
		d: constWord(iv[3]),
		e: constWord(iv[4]).dense(),
	}
}

// roundFunc tags the five boolean round functions. The left lane runs them
// in order f1 through f5 over the five phases, the right lane in reverse.
type roundFunc int

const (
	roundF1 roundFunc = iota
	roundF2
	roundF3
	roundF4
	roundF5
)

// eval computes the tagged round function on three state words. f4 and f5
// are the f2 and f3 gates with permuted operands:
//
//	f4(x, y, z) = (x & z) | (y & ^z) = f2(z, x, y)
//	f5(x, y, z) = x ^ (y | ^z)       = f3(y, z, x)
func (c *compressor) eval(f roundFunc, x, y, z word) wordDense {
	switch f {
	case roundF1:
		return c.f1(x, y, z)
	case roundF2:
		return c.f2(x, y, z)
	case roundF3:
		return c.f3(x, y, z)
	case roundF4:
		return c.f2(z, x, y)
	case roundF5:
		return c.f3(y, z, x)
	default:
		panic("invalid round function")
	}
}

// lane is one of the two parallel round schedules.
type lane struct {
	funcs  [5]roundFunc
	consts [5]uint32
	msgSel [80]int
	shifts [80]int
}

var leftLane = lane{
	funcs:  [5]roundFunc{roundF1, roundF2, roundF3, roundF4, roundF5},
	consts: kLeft,
	msgSel: msgSelLeft,
	shifts: rolLeft,
}

var rightLane = lane{
	funcs:  [5]roundFunc{roundF5, roundF4, roundF3, roundF2, roundF1},
	consts: kRight,
	msgSel: msgSelRight,
	shifts: rolRight,
}

// round applies one state transition,
//
//	T = rol_s(A + f(B, C, D) + X + K) + E
//	(A, B, C, D, E) <- (E, T, B, rol_10(C), D)
//
// with X the scheduled message word and K the phase constant.
func (c *compressor) round(st state, ln *lane, j int, block *[16]word) state {
	phase := j / 16
	f := c.eval(ln.funcs[phase], st.b, st.c, st.d)
	x := block[ln.msgSel[j]].dense()
	k := constWord(ln.consts[phase]).dense()
	sum := c.addMod32(2, st.a, f, x, k)
	t := c.addMod32(1, c.rotateLeft(sum.dense(), ln.shifts[j]).dense(), st.e)
	return state{
		a: st.e,
		b: t,
		c: st.b,
		d: c.rotateLeft(st.c.dense(), 10),
		e: st.d.dense(),
	}
}

// compressBlock runs the 80 dual-lane rounds over one 16-word block and
// folds both lane states back into the incoming state.
func (c *compressor) compressBlock(h state, block *[16]word) state {
	left, right := h, h
	for j := 0; j < 80; j++ {
		left = c.round(left, &leftLane, j, block)
		right = c.round(right, &rightLane, j, block)
	}
	var out [5]word
	for i, p := range combinePerm {
		out[i] = c.addMod32(2, h.at(slot(p[0])), left.at(slot(p[1])), right.at(slot(p[2])))
	}
	return state{a: out[0].dense(), b: out[1], c: out[2], d: out[3], e: out[4].dense()}
}
