package ripemd160

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

// Native mirrors of the five round functions.
func nf1(x, y, z uint32) uint32 { return x ^ y ^ z }
func nf2(x, y, z uint32) uint32 { return (x & y) | (^x & z) }
func nf3(x, y, z uint32) uint32 { return (x | ^y) ^ z }
func nf4(x, y, z uint32) uint32 { return (x & z) | (y & ^z) }
func nf5(x, y, z uint32) uint32 { return x ^ (y | ^z) }

// gateCircuit drives every gate of the compression function once: the five
// round functions, all scheduled rotations and the three word sum shapes.
type gateCircuit struct {
	X, Y, Z frontend.Variable

	WantF    [5]frontend.Variable
	WantRot  [11]frontend.Variable
	WantSum2 frontend.Variable
	WantSum3 frontend.Variable
	WantSum4 frontend.Variable
}

func (c *gateCircuit) Define(api frontend.API) error {
	comp, err := newCompressor(api)
	if err != nil {
		return err
	}
	x := comp.splitWord(c.X)
	y := comp.splitWord(c.Y)
	z := comp.splitWord(c.Z)

	for i, f := range [5]roundFunc{roundF1, roundF2, roundF3, roundF4, roundF5} {
		out := comp.eval(f, x, y, z)
		api.AssertIsEqual(comp.pack(out), c.WantF[i])
	}

	for s := 5; s <= 15; s++ {
		rot := comp.rotateLeft(x.dense(), s)
		api.AssertIsEqual(comp.pack(rot.dense()), c.WantRot[s-5])
	}

	k := constWord(kLeft[4]).dense()
	s2 := comp.addMod32(1, x.dense(), y.dense())
	s3 := comp.addMod32(2, x.dense(), y.dense(), z.dense())
	s4 := comp.addMod32(2, x.dense(), y.dense(), z.dense(), k)
	api.AssertIsEqual(comp.pack(s2.dense()), c.WantSum2)
	api.AssertIsEqual(comp.pack(s3.dense()), c.WantSum3)
	api.AssertIsEqual(comp.pack(s4.dense()), c.WantSum4)
	return nil
}

func gateWitness(x, y, z uint32) *gateCircuit {
	w := &gateCircuit{X: x, Y: y, Z: z}
	for i, f := range [5]func(x, y, z uint32) uint32{nf1, nf2, nf3, nf4, nf5} {
		w.WantF[i] = f(x, y, z)
	}
	for s := 5; s <= 15; s++ {
		w.WantRot[s-5] = bits.RotateLeft32(x, s)
	}
	w.WantSum2 = x + y
	w.WantSum3 = x + y + z
	w.WantSum4 = x + y + z + kLeft[4]
	return w
}

func TestGates(t *testing.T) {
	assert := test.NewAssert(t)
	inputs := [][3]uint32{
		{0x00000000, 0x00000000, 0x00000000},
		// all-ones operands drive every sum carry to its maximum
		{0xffffffff, 0xffffffff, 0xffffffff},
		{0x01234567, 0x89abcdef, 0xdeadbeef},
		{0x55555555, 0xaaaaaaaa, 0xffff0000},
		{0x80000000, 0x00000001, 0x7fffffff},
		{0x0000ffff, 0xffff0000, 0x00ff00ff},
		{0x6a09e667, 0xbb67ae85, 0x3c6ef372},
	}
	for _, in := range inputs {
		in := in
		assert.Run(func(assert *test.Assert) {
			assert.NoError(test.IsSolved(&gateCircuit{}, gateWitness(in[0], in[1], in[2]), ecc.BN254.ScalarField()))
		}, fmt.Sprintf("x=%#x", in[0]))
	}
}

func TestGatesRejectWrongRotation(t *testing.T) {
	w := gateWitness(0x01234567, 0x89abcdef, 0xdeadbeef)
	w.WantRot[0] = bits.RotateLeft32(0x01234567, 5) ^ 1
	require.Error(t, test.IsSolved(&gateCircuit{}, w, ecc.BN254.ScalarField()))
}

func TestRotationChunkPlan(t *testing.T) {
	for s := 5; s <= 15; s++ {
		widths, ok := rolChunkWidths[s]
		require.True(t, ok, "shift %d", s)
		total := 0
		for _, w := range widths {
			total += w
		}
		require.Equal(t, 16, total, "shift %d", s)
		wide := wideChunk(widths)
		require.GreaterOrEqual(t, widths[wide], 8, "shift %d", s)
		for i, w := range widths {
			if i != wide {
				require.LessOrEqual(t, w, 4, "shift %d chunk %d", s, i)
			}
		}
	}

	// repositioning the chunks must agree with a native rotation
	for s := 5; s <= 15; s++ {
		for _, v := range []uint32{
			0x00000000, 0x00000001, 0xffffffff, 0x12345678,
			0x80000001, 0xdeadbeef, 0x0000ffff, 0xffff0000, 0xa5a5a5a5,
		} {
			lo, hi := v&0xffff, v>>16
			rot := lo << uint(s)
			offset := 0
			for _, w := range rolChunkWidths[s] {
				chunk := (hi >> uint(offset)) & (uint32(1)<<uint(w) - 1)
				rot |= chunk << uint((16+offset+s)%32)
				offset += w
			}
			require.Equal(t, bits.RotateLeft32(v, s), rot, "shift %d value %#x", s, v)
		}
	}
}
