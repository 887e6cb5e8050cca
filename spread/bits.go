package spread

import "math/bits"

// MaskEven is the spread form of 0xffff: a one at every even bit position.
// Subtracting a valid spread value from it yields the spread form of the
// bitwise complement.
const MaskEven = 0x55555555

// Interleave returns the spread form of a 16-bit value: a zero bit is
// interleaved between every data bit, so bit i of x lands at bit 2i of the
// result.
func Interleave(x uint16) uint32 {
	v := uint32(x)
	v = (v | v<<8) & 0x00ff00ff
	v = (v | v<<4) & 0x0f0f0f0f
	v = (v | v<<2) & 0x33333333
	v = (v | v<<1) & 0x55555555
	return v
}

// compact gathers the even-position bits of v into a dense 16-bit value,
// inverting [Interleave] on valid spread values.
func compact(v uint32) uint16 {
	v &= 0x55555555
	v = (v | v>>1) & 0x33333333
	v = (v | v>>2) & 0x0f0f0f0f
	v = (v | v>>4) & 0x00ff00ff
	v = (v | v>>8) & 0x0000ffff
	return uint16(v)
}

// Deinterleave splits v into the dense values formed by its even-position
// and odd-position bits. When v is a sum of spread operands the even part
// is the carry-free combination of each bit column and the odd part holds
// the column carries.
func Deinterleave(v uint32) (even, odd uint16) {
	return compact(v), compact(v >> 1)
}

// Tag classifies a 16-bit value by bit length: 0 for values below 2^8, then
// one step per extra bit, up to 8 for full 16-bit values. A value tagged t
// is below 2^(8+t).
func Tag(x uint16) uint8 {
	if l := bits.Len16(x); l > 8 {
		return uint8(l - 8)
	}
	return 0
}
