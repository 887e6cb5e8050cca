// Package spread proves bitwise operations on 16-bit limbs through a
// bit-interleaved lookup table.
//
// A dense 16-bit value is re-encoded by inserting a zero bit between every
// data bit, doubling its width (the "spread" form). Field addition of
// spread forms keeps the bit columns separated: the even bit positions of a
// sum hold the carry-free combination of the operands and the odd positions
// hold the column carries. Splitting a sum back into its even and odd parts
// and proving both against a table of all 2^16 (dense, spread) pairs turns
// XOR, AND, OR and NOT over packed words into a few lookups and linear
// identities, with no per-bit decomposition. Every lookup doubles as a
// 16-bit range check on the dense value.
//
// A second table maps each dense value to a coarse bit-length tag, used to
// bound the uneven pieces that word rotations cut. [New] builds both tables
// once per builder and returns the shared instance.
package spread

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/lookup/logderivlookup"
)

type ctxKey struct{}

// kvstore is implemented by all gnark constraint builders. The framework
// keeps the interface internal, so it is matched structurally here to cache
// the table pair per builder.
type kvstore interface {
	SetKeyValue(key, value any)
	GetKeyValue(key any) any
}

// Limb is a 16-bit value carried in both encodings. Limbs returned by the
// methods of [T16] are table-proven: the dense value is below 2^16 and the
// spread value is its interleaved form.
type Limb struct {
	Dense  frontend.Variable
	Spread frontend.Variable
}

// T16 holds the pair of 2^16-row lookup tables, indexed by dense value: one
// returning the spread form, one returning the bit-length tag. It is
// immutable after [New] and safe to share between gadgets on the same
// builder.
type T16 struct {
	api     frontend.API
	spreads logderivlookup.Table
	tags    logderivlookup.Table
}

// New builds the spread and tag tables for the given builder, or returns
// the instance already built for it. The field must fit the 32-bit spread
// sum identities; callers layering wider identities on top check their own
// bound.
func New(api frontend.API) (*T16, error) {
	if kv, ok := api.(kvstore); ok {
		if t, ok := kv.GetKeyValue(ctxKey{}).(*T16); ok {
			return t, nil
		}
	}
	if api.Compiler().FieldBitLen() < 33 {
		return nil, errors.New("field too small for 32-bit spread sums")
	}
	t := &T16{
		api:     api,
		spreads: logderivlookup.New(api),
		tags:    logderivlookup.New(api),
	}
	for i := 0; i < 1<<16; i++ {
		t.spreads.Insert(uint64(Interleave(uint16(i))))
		t.tags.Insert(uint64(Tag(uint16(i))))
	}
	if kv, ok := api.(kvstore); ok {
		kv.SetKeyValue(ctxKey{}, t)
	}
	return t, nil
}

// Limb queries the spread table at dense, which both constrains dense to 16
// bits and returns its spread companion.
func (t *T16) Limb(dense frontend.Variable) Limb {
	return Limb{Dense: dense, Spread: t.spreads.Lookup(dense)[0]}
}

// LimbTagged is [T16.Limb] with the value's bit-length tag queried as well.
func (t *T16) LimbTagged(dense frontend.Variable) (Limb, frontend.Variable) {
	l := t.Limb(dense)
	return l, t.tags.Lookup(dense)[0]
}

// TagOf queries only the tag table. The query still constrains dense to 16
// bits; use it when the spread form is not needed.
func (t *T16) TagOf(dense frontend.Variable) frontend.Variable {
	return t.tags.Lookup(dense)[0]
}

// AssertTagAtMost constrains a tag to [0, bound], which bounds the tagged
// value below 2^(8+bound). tag must come from [T16.TagOf] or
// [T16.LimbTagged] so that it is a table value in [0, 8]; the product over
// the allowed roots is then a complete membership check.
func (t *T16) AssertTagAtMost(tag frontend.Variable, bound int) {
	if bound < 0 || bound > 7 {
		panic(fmt.Sprintf("tag bound %d out of range", bound))
	}
	prod := frontend.Variable(1)
	for i := 0; i <= bound; i++ {
		prod = t.api.Mul(prod, t.api.Sub(tag, i))
	}
	t.api.AssertIsEqual(prod, 0)
}

// SumEvenOdd adds spread operands in the field and splits the sum into its
// even-position and odd-position parts, both table-proven. The even part is
// the carry-free combination of the operands and the odd part holds the
// column carries. Operands must be valid spread values; up to three of them
// always sum below 2^32, so the identity does not wrap.
func (t *T16) SumEvenOdd(xs ...frontend.Variable) (even, odd Limb) {
	if len(xs) < 2 {
		panic("at least two operands")
	}
	res, err := t.api.Compiler().NewHint(sumEvenOddHint, 2, xs...)
	if err != nil {
		panic(fmt.Sprintf("sum hint: %v", err))
	}
	even = t.Limb(res[0])
	odd = t.Limb(res[1])
	// Even and odd positions partition the sum, so this decomposition is
	// unique once both parts are proven valid spread values.
	sum := t.api.Add(xs[0], xs[1], xs[2:]...)
	t.api.AssertIsEqual(sum, t.api.Add(even.Spread, t.api.Mul(odd.Spread, 2)))
	return even, odd
}

// Negate returns the spread form of the bitwise complement of s, which must
// be a valid spread value. Linear, no lookup.
func Negate(api frontend.API, s frontend.Variable) frontend.Variable {
	return api.Sub(MaskEven, s)
}
