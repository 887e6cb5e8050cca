package ripemd160

// iv is the initial chaining value, words A through E.
var iv = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}

// Per-phase round constants for the two lanes.
var (
	kLeft  = [5]uint32{0x00000000, 0x5a827999, 0x6ed9eba1, 0x8f1bbcdc, 0xa953fd4e}
	kRight = [5]uint32{0x50a28be6, 0x5c4dd124, 0x6d703ef3, 0x7a6d76e9, 0x00000000}
)

// Message word selection per round, sixteen rounds per phase.
var msgSelLeft = [80]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	7, 4, 13, 1, 10, 6, 15, 3, 12, 0, 9, 5, 2, 14, 11, 8,
	3, 10, 14, 4, 9, 15, 8, 1, 2, 7, 0, 6, 13, 11, 5, 12,
	1, 9, 11, 10, 0, 8, 12, 4, 13, 3, 7, 15, 14, 5, 6, 2,
	4, 0, 5, 9, 7, 12, 2, 10, 14, 1, 3, 8, 11, 6, 15, 13,
}

var msgSelRight = [80]int{
	5, 14, 7, 0, 9, 2, 11, 4, 13, 6, 15, 8, 1, 10, 3, 12,
	6, 11, 3, 7, 0, 13, 5, 10, 14, 15, 8, 12, 4, 9, 1, 2,
	15, 5, 1, 3, 7, 14, 6, 9, 11, 8, 12, 2, 10, 0, 4, 13,
	8, 6, 4, 1, 3, 11, 15, 0, 5, 12, 2, 13, 9, 7, 10, 14,
	12, 15, 10, 4, 1, 5, 8, 7, 6, 2, 13, 14, 0, 3, 9, 11,
}

// Rotation amounts per round. All scheduled shifts fall in [5, 15].
var rolLeft = [80]int{
	11, 14, 15, 12, 5, 8, 7, 9, 11, 13, 14, 15, 6, 7, 9, 8,
	7, 6, 8, 13, 11, 9, 7, 15, 7, 12, 15, 9, 11, 7, 13, 12,
	11, 13, 6, 7, 14, 9, 13, 15, 14, 8, 13, 6, 5, 12, 7, 5,
	11, 12, 14, 15, 14, 15, 9, 8, 9, 14, 5, 6, 8, 6, 5, 12,
	9, 15, 5, 11, 6, 8, 13, 12, 5, 12, 13, 14, 11, 8, 5, 6,
}

var rolRight = [80]int{
	8, 9, 9, 11, 13, 15, 15, 5, 7, 7, 8, 11, 14, 14, 12, 6,
	9, 13, 15, 7, 12, 8, 9, 11, 7, 7, 12, 7, 6, 15, 13, 11,
	9, 7, 15, 11, 8, 6, 6, 14, 12, 13, 5, 14, 13, 13, 7, 5,
	15, 5, 8, 11, 14, 14, 6, 14, 6, 9, 12, 9, 12, 5, 15, 8,
	8, 5, 12, 9, 12, 5, 14, 6, 8, 13, 6, 5, 15, 13, 11, 11,
}

// combinePerm drives the final mixing of the incoming state h with the two
// lane states l and r: out[i] = h[perm[0]] + l[perm[1]] + r[perm[2]], the
// indices rotating one step per output word.
var combinePerm = [5][3]int{
	{1, 2, 3},
	{2, 3, 4},
	{3, 4, 0},
	{4, 0, 1},
	{0, 1, 2},
}

// rolChunkWidths gives, per scheduled shift, the LSB-first chunk widths the
// upper half of a word is cut into before rotation. Each split totals 16
// bits and has exactly one chunk of 8 or more bits, which is bounded
// through the tag table; the rest are at most 4 bits wide.
var rolChunkWidths = map[int][]int{
	5:  {11, 2, 3},
	6:  {10, 3, 3},
	7:  {9, 3, 4},
	8:  {8, 4, 4},
	9:  {3, 4, 9},
	10: {3, 3, 10},
	11: {2, 3, 11},
	12: {2, 2, 12},
	13: {3, 13},
	14: {2, 14},
	15: {1, 15},
}

// wideChunk returns the index of the unique widest chunk in a split.
func wideChunk(widths []int) int {
	wide := 0
	for i, w := range widths {
		if w > widths[wide] {
			wide = i
		}
	}
	return wide
}
