package core

import "math/bits"

// This file implements the Argon2 compression function G. It is the
// BLAKE2b round function with the additions replaced by the BlaMka
// multiply-add (a + b + 2*lo32(a)*lo32(b)), applied first to the rows
// and then to the columns of the 8x8 matrix of 16-byte registers that
// makes up a 1024-byte block.
//
// The exact 32x32->64 multiply and the round ordering are a fixed
// numeric contract: any deviation still produces a "random looking"
// tag, just not the Argon2 one. The round structure is pinned by the
// RFC 9106 reference vectors in the package tests.

// fBlaMka is the modified addition used by every mixing step.
// The multiplication only sees the low 32 bits of each operand;
// the surrounding arithmetic wraps mod 2^64.
func fBlaMka(x, y uint64) uint64 {
	return x + y + 2*(x&0xFFFFFFFF)*(y&0xFFFFFFFF)
}

// mix is the quarter-round: the BLAKE2b G function with fBlaMka in
// place of plain addition.
func mix(a, b, c, d uint64) (uint64, uint64, uint64, uint64) {
	a = fBlaMka(a, b)
	d = bits.RotateLeft64(d^a, -32)
	c = fBlaMka(c, d)
	b = bits.RotateLeft64(b^c, -24)

	a = fBlaMka(a, b)
	d = bits.RotateLeft64(d^a, -16)
	c = fBlaMka(c, d)
	b = bits.RotateLeft64(b^c, -63)

	return a, b, c, d
}

// blamkaRound applies one full round (column step then diagonal step)
// to a group of 16 words.
func blamkaRound(
	t00, t01, t02, t03, t04, t05, t06, t07,
	t08, t09, t10, t11, t12, t13, t14, t15 *uint64,
) {
	*t00, *t04, *t08, *t12 = mix(*t00, *t04, *t08, *t12)
	*t01, *t05, *t09, *t13 = mix(*t01, *t05, *t09, *t13)
	*t02, *t06, *t10, *t14 = mix(*t02, *t06, *t10, *t14)
	*t03, *t07, *t11, *t15 = mix(*t03, *t07, *t11, *t15)

	*t00, *t05, *t10, *t15 = mix(*t00, *t05, *t10, *t15)
	*t01, *t06, *t11, *t12 = mix(*t01, *t06, *t11, *t12)
	*t02, *t07, *t08, *t13 = mix(*t02, *t07, *t08, *t13)
	*t03, *t04, *t09, *t14 = mix(*t03, *t04, *t09, *t14)
}

// fillBlock computes next = G(prev, ref), the compression step that
// produces every lattice position after the two seeded blocks.
//
// With withXOR set (passes after the first, version 1.3), the result
// is folded onto the existing content of next instead of replacing
// it; this is what makes repeated passes strengthen the mixing rather
// than merely repeat it.
//
// ref may alias next (the address generator compresses a block onto
// itself); the inputs are captured before the output is written.
func fillBlock(prev, ref, next *Block, withXOR bool) {
	var t Block
	for i := range t {
		t[i] = prev[i] ^ ref[i]
	}

	// Row step: each group of 16 consecutive words is one row.
	for i := 0; i < QWordsInBlock; i += 16 {
		blamkaRound(
			&t[i+0], &t[i+1], &t[i+2], &t[i+3],
			&t[i+4], &t[i+5], &t[i+6], &t[i+7],
			&t[i+8], &t[i+9], &t[i+10], &t[i+11],
			&t[i+12], &t[i+13], &t[i+14], &t[i+15],
		)
	}

	// Column step: columns are pairs of words strided 16 apart.
	for i := 0; i < QWordsInBlock/8; i += 2 {
		blamkaRound(
			&t[i], &t[i+1], &t[16+i], &t[16+i+1],
			&t[32+i], &t[32+i+1], &t[48+i], &t[48+i+1],
			&t[64+i], &t[64+i+1], &t[80+i], &t[80+i+1],
			&t[96+i], &t[96+i+1], &t[112+i], &t[112+i+1],
		)
	}

	if withXOR {
		for i := range t {
			next[i] ^= prev[i] ^ ref[i] ^ t[i]
		}
	} else {
		for i := range t {
			next[i] = prev[i] ^ ref[i] ^ t[i]
		}
	}
}
