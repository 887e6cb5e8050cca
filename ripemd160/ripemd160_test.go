package ripemd160

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/test"
	xripemd "golang.org/x/crypto/ripemd160"
)

func nativeSum(data []byte) []byte {
	h := xripemd.New()
	h.Write(data)
	return h.Sum(nil)
}

type ripemd160Circuit struct {
	In       []uints.U8
	Expected [20]uints.U8
}

func (c *ripemd160Circuit) Define(api frontend.API) error {
	h, err := New(api)
	if err != nil {
		return err
	}
	uapi, err := uints.New[uints.U32](api)
	if err != nil {
		return err
	}
	h.Write(c.In)
	res := h.Sum()
	if len(res) != 20 {
		return fmt.Errorf("not 20 bytes")
	}
	for i := range c.Expected {
		uapi.ByteAssertEq(c.Expected[i], res[i])
	}
	return nil
}

func TestRIPEMD160(t *testing.T) {
	assert := test.NewAssert(t)
	vectors := []struct {
		in     string
		digest string
	}{
		{"", "9c1185a5c5e9fc54612808977ee8f548b2258d31"},
		{"abc", "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
		{"abcdefghijklmnopqrstuvwxyz", "f71c27109c692c1b56bbdceb5b9d2865b3708dbc"},
		{"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq", "12a053384a9c0c88e405a06c27dcf49ada62eb2b"},
	}
	for _, v := range vectors {
		v := v
		assert.Run(func(assert *test.Assert) {
			want, err := hex.DecodeString(v.digest)
			assert.NoError(err)
			assert.Equal(want, nativeSum([]byte(v.in)))

			witness := ripemd160Circuit{In: uints.NewU8Array([]byte(v.in))}
			copy(witness.Expected[:], uints.NewU8Array(want))
			assert.NoError(test.IsSolved(&ripemd160Circuit{In: make([]uints.U8, len(v.in))}, &witness, ecc.BN254.ScalarField()))
		}, fmt.Sprintf("len=%d", len(v.in)))
	}
}

func TestRIPEMD160Lengths(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping length sweep")
	}
	assert := test.NewAssert(t)
	bts := make([]byte, 130)
	_, err := rand.Reader.Read(bts)
	assert.NoError(err)

	// one-block and multi-block inputs around the padding boundaries
	for _, n := range []int{0, 1, 31, 32, 54, 55, 56, 57, 63, 64, 65, 119, 120, 128} {
		n := n
		assert.Run(func(assert *test.Assert) {
			witness := ripemd160Circuit{In: uints.NewU8Array(bts[:n])}
			copy(witness.Expected[:], uints.NewU8Array(nativeSum(bts[:n])))
			assert.NoError(test.IsSolved(&ripemd160Circuit{In: make([]uints.U8, n)}, &witness, ecc.BN254.ScalarField()))
		}, fmt.Sprintf("len=%d", n))
	}
}

func TestRIPEMD160WrongDigest(t *testing.T) {
	want := nativeSum([]byte("abc"))
	want[0] ^= 1
	witness := ripemd160Circuit{In: uints.NewU8Array([]byte("abc"))}
	copy(witness.Expected[:], uints.NewU8Array(want))
	err := test.IsSolved(&ripemd160Circuit{In: make([]uints.U8, 3)}, &witness, ecc.BN254.ScalarField())
	if err == nil {
		t.Fatal("expected error")
	}
}

type resetCircuit struct {
	First    []uints.U8
	Second   []uints.U8
	Expected [20]uints.U8
}

func (c *resetCircuit) Define(api frontend.API) error {
	h, err := New(api)
	if err != nil {
		return err
	}
	uapi, err := uints.New[uints.U32](api)
	if err != nil {
		return err
	}
	if h.Size() != 20 {
		return fmt.Errorf("unexpected digest size")
	}
	d := h.(*digest)
	d.Write(c.First)
	d.Reset()
	d.Write(c.Second)
	res := d.Sum()
	for i := range c.Expected {
		uapi.ByteAssertEq(c.Expected[i], res[i])
	}
	return nil
}

func TestReset(t *testing.T) {
	witness := resetCircuit{
		First:  uints.NewU8Array([]byte("discarded")),
		Second: uints.NewU8Array([]byte("abc")),
	}
	copy(witness.Expected[:], uints.NewU8Array(nativeSum([]byte("abc"))))
	circuit := &resetCircuit{First: make([]uints.U8, 9), Second: make([]uints.U8, 3)}
	if err := test.IsSolved(circuit, &witness, ecc.BN254.ScalarField()); err != nil {
		t.Fatal(err)
	}
}

type fixedLengthCircuit struct {
	In       []uints.U8
	Length   frontend.Variable
	Expected [20]uints.U8

	// minimal length of the input is the circuit parameter
	minimalLength int
}

func (c *fixedLengthCircuit) Define(api frontend.API) error {
	h, err := New(api, hash.WithMinimalLength(c.minimalLength))
	if err != nil {
		return err
	}
	uapi, err := uints.New[uints.U32](api)
	if err != nil {
		return err
	}
	h.Write(c.In)
	res := h.FixedLengthSum(c.Length)
	if len(res) != 20 {
		return fmt.Errorf("not 20 bytes")
	}
	for i := range c.Expected {
		uapi.ByteAssertEq(c.Expected[i], res[i])
	}
	return nil
}

func TestFixedLengthSum(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping fixed-length sweep")
	}
	assert := test.NewAssert(t)
	const maxLen = 120
	bts := make([]byte, maxLen)
	_, err := rand.Reader.Read(bts)
	assert.NoError(err)

	for _, lengthBound := range []int{0, 55, 56, 64} {
		circuit := &fixedLengthCircuit{In: make([]uints.U8, maxLen), minimalLength: lengthBound}
		for _, length := range []int{0, 1, 54, 55, 56, 63, 64, 65, 119, maxLen} {
			assert.Run(func(assert *test.Assert) {
				witness := &fixedLengthCircuit{
					In:     uints.NewU8Array(bts),
					Length: length,
				}
				copy(witness.Expected[:], uints.NewU8Array(nativeSum(bts[:length])))

				err := test.IsSolved(circuit, witness, ecc.BN254.ScalarField())
				if length >= lengthBound && err != nil {
					t.Fatal(err)
				} else if length < lengthBound && err == nil {
					t.Fatal("expected error")
				}
			}, fmt.Sprintf("bound=%d/length=%d", lengthBound, length))
		}
	}
}

func TestRIPEMD160Proof(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping proving round")
	}
	assert := test.NewAssert(t)
	in := []byte("abc")
	witness := ripemd160Circuit{In: uints.NewU8Array(in)}
	copy(witness.Expected[:], uints.NewU8Array(nativeSum(in)))
	invalid := ripemd160Circuit{In: uints.NewU8Array(in)}
	copy(invalid.Expected[:], uints.NewU8Array(nativeSum([]byte("abd"))))

	assert.CheckCircuit(&ripemd160Circuit{In: make([]uints.U8, len(in))},
		test.WithValidAssignment(&witness),
		test.WithInvalidAssignment(&invalid),
		test.WithCurves(ecc.BN254),
		test.WithBackends(backend.GROTH16),
	)
}
