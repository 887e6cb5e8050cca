// Package ripemd160 computes the RIPEMD-160 digest in-circuit.
//
// The compression function is arithmetized with the spread technique: every
// 32-bit word lives as two 16-bit halves together with their bit-interleaved
// forms, so the boolean round functions reduce to lookups and linear
// identities instead of per-bit constraints (see the spread package).
// Rotations split the affected half into a few range-checked chunks and
// reassemble them at shifted positions; word additions carry an explicit
// bounded carry. 80 dual-lane rounds per 64-byte block follow the standard
// left and right schedules.
//
// [New] returns a [hash.BinaryFixedLengthHasher]. Input and output bytes are
// [uints.U8] values; RIPEMD-160 is little-endian throughout.
package ripemd160

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash"
	"github.com/consensys/gnark/std/math/bits"
	"github.com/consensys/gnark/std/math/bitslice"
	"github.com/consensys/gnark/std/math/cmp"
	"github.com/consensys/gnark/std/math/uints"
)

type digest struct {
	api  frontend.API
	uapi *uints.BinaryField[uints.U32]
	comp *compressor
	in   []uints.U8

	minimalLength int
}

// New initializes the RIPEMD-160 hasher. It builds the shared spread tables
// on first use for a builder.
func New(api frontend.API, opts ...hash.Option) (hash.BinaryFixedLengthHasher, error) {
	cfg := new(hash.HasherConfig)
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	uapi, err := uints.New[uints.U32](api)
	if err != nil {
		return nil, fmt.Errorf("new uapi: %w", err)
	}
	comp, err := newCompressor(api)
	if err != nil {
		return nil, fmt.Errorf("new compressor: %w", err)
	}
	return &digest{
		api:           api,
		uapi:          uapi,
		comp:          comp,
		minimalLength: cfg.MinimalLength,
	}, nil
}

func (d *digest) Write(data []uints.U8) {
	d.in = append(d.in, data...)
}

func (d *digest) padded(bytesLen int) []uints.U8 {
	zeroPadLen := 55 - bytesLen%64
	if zeroPadLen < 0 {
		zeroPadLen += 64
	}
	if cap(d.in) < len(d.in)+9+zeroPadLen {
		// grow the capacity so the appends below do not reallocate on every
		// call
		d.in = append(d.in, make([]uints.U8, 9+zeroPadLen)...)
		d.in = d.in[:len(d.in)-9-zeroPadLen]
	}
	buf := d.in
	buf = append(buf, uints.NewU8(0x80))
	buf = append(buf, uints.NewU8Array(make([]uint8, zeroPadLen))...)
	lenbuf := make([]uint8, 8)
	binary.LittleEndian.PutUint64(lenbuf, uint64(8*bytesLen))
	buf = append(buf, uints.NewU8Array(lenbuf)...)
	return buf
}

func (d *digest) Sum() []uints.U8 {
	running := ivState()
	padded := d.padded(len(d.in))
	var buf [64]uints.U8
	for i := 0; i < len(padded)/64; i++ {
		copy(buf[:], padded[i*64:(i+1)*64])
		block := d.scheduleBlock(&buf)
		running = d.comp.compressBlock(running, block)
	}
	var ret []uints.U8
	for i := slotA; i <= slotE; i++ {
		ret = append(ret, d.unpackWord(running.at(i))...)
	}
	return ret
}

// FixedLengthSum computes the digest of the first length bytes written,
// padding included. The padding position depends on the runtime length, so
// the 0x80 marker, the zero run and the bit-length field are laid over a
// constant-size buffer with selectors, and the digest is picked from the
// block the padding ends in.
func (d *digest) FixedLengthSum(length frontend.Variable) []uints.U8 {
	maxLen := len(d.in)
	comparator := cmp.NewBoundedComparator(d.api, big.NewInt(int64(maxLen+64+8)), false)
	if d.minimalLength > 0 {
		comparator.AssertIsLessEq(d.minimalLength, length)
	}

	data := make([]uints.U8, maxLen)
	copy(data, d.in)
	data = append(data, uints.NewU8Array(make([]uint8, 64+8))...)

	lenMod64 := d.mod64(length)
	lenMod64Less56 := comparator.IsLess(lenMod64, 56)

	paddingCount := d.api.Sub(64, lenMod64)
	paddingCount = d.api.Select(lenMod64Less56, paddingCount, d.api.Add(paddingCount, 64))

	totalLen := d.api.Add(length, paddingCount)
	last8BytesPos := d.api.Sub(totalLen, 8)

	var dataLenBytes [8]frontend.Variable
	d.littleEndianPutUint64(dataLenBytes[:], d.api.Mul(length, 8))

	for i := d.minimalLength; i <= maxLen; i++ {
		isPaddingStartPos := cmp.IsEqual(d.api, i, length)
		data[i].Val = d.api.Select(isPaddingStartPos, 0x80, data[i].Val)

		isPaddingPos := comparator.IsLess(length, i)
		data[i].Val = d.api.Select(isPaddingPos, 0, data[i].Val)
	}

	for i := d.minimalLength + 1; i < len(data); i++ {
		isLast8BytesPos := cmp.IsEqual(d.api, i, last8BytesPos)
		for j := 0; j < 8; j++ {
			if i+j < len(data) {
				data[i+j].Val = d.api.Select(isLast8BytesPos, dataLenBytes[j], data[i+j].Val)
			}
		}
	}

	running := ivState()
	var result [5]wordDense
	var buf [64]uints.U8

	for i := 0; i < len(data)/64; i++ {
		copy(buf[:], data[i*64:(i+1)*64])
		block := d.scheduleBlock(&buf)
		running = d.comp.compressBlock(running, block)

		if i < d.minimalLength/64 {
			continue
		} else if i == d.minimalLength/64 {
			for k := 0; k < 5; k++ {
				result[k] = running.at(slot(k))
			}
			continue
		}

		isInRange := comparator.IsLess(i*64, totalLen)
		for k := 0; k < 5; k++ {
			w := running.at(slot(k))
			result[k] = wordDense{
				lo: d.api.Select(isInRange, w.lo, result[k].lo),
				hi: d.api.Select(isInRange, w.hi, result[k].hi),
			}
		}
	}

	var ret []uints.U8
	for k := 0; k < 5; k++ {
		ret = append(ret, d.unpackWord(result[k])...)
	}
	return ret
}

func (d *digest) Reset() {
	d.in = nil
}

func (d *digest) Size() int {
	return 20
}

// scheduleBlock packs a 64-byte block into its 16 little-endian message
// words, each split into table-proven halves.
func (d *digest) scheduleBlock(buf *[64]uints.U8) *[16]word {
	var m [16]word
	for i := range m {
		v := d.uapi.ToValue(d.uapi.PackLSB(buf[4*i], buf[4*i+1], buf[4*i+2], buf[4*i+3]))
		m[i] = d.comp.splitWord(v)
	}
	return &m
}

// unpackWord rebinds a chaining word to its four little-endian bytes.
func (d *digest) unpackWord(w wordDense) []uints.U8 {
	return d.uapi.UnpackLSB(d.uapi.ValueOf(d.comp.pack(w)))
}

func (d *digest) mod64(v frontend.Variable) frontend.Variable {
	lower, _ := bitslice.Partition(d.api, v, 6, bitslice.WithNbDigits(64))
	return lower
}

func (d *digest) littleEndianPutUint64(b []frontend.Variable, x frontend.Variable) {
	bts := bits.ToBinary(d.api, x, bits.WithNbDigits(64))
	for i := 0; i < 8; i++ {
		b[i] = bits.FromBinary(d.api, bts[i*8:(i+1)*8])
	}
}
