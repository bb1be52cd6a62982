package core

import (
	"bytes"
	"encoding/binary"
	"testing"

	"golang.org/x/crypto/blake2b"
)

// TestBlake2bLong_ExactLengths verifies the output is exactly the
// requested length across the short, native, and chained regimes.
func TestBlake2bLong_ExactLengths(t *testing.T) {
	input := []byte("block expansion input")

	for _, outlen := range []uint32{1, 4, 31, 32, 63, 64, 65, 96, 128, 257, BlockSize, 4096} {
		out := Blake2bLong(input, outlen)
		if uint32(len(out)) != outlen {
			t.Errorf("Blake2bLong(_, %d) produced %d bytes", outlen, len(out))
		}
	}

	if out := Blake2bLong(input, 0); out != nil {
		t.Errorf("Blake2bLong(_, 0) = %v, want nil", out)
	}
}

// TestBlake2bLong_ShortMatchesBlake2b pins the <=64-byte case to a
// single keyless BLAKE2b call over the length-prefixed input.
func TestBlake2bLong_ShortMatchesBlake2b(t *testing.T) {
	input := []byte("some seed material")

	for _, outlen := range []uint32{16, 32, 64} {
		prefixed := make([]byte, 4+len(input))
		binary.LittleEndian.PutUint32(prefixed, outlen)
		copy(prefixed[4:], input)

		h, err := blake2b.New(int(outlen), nil)
		if err != nil {
			t.Fatalf("blake2b.New(%d): %v", outlen, err)
		}
		h.Write(prefixed)
		want := h.Sum(nil)

		if got := Blake2bLong(input, outlen); !bytes.Equal(got, want) {
			t.Errorf("Blake2bLong(_, %d) does not match direct blake2b", outlen)
		}
	}
}

// TestBlake2bLong_ChainStructure checks the long-output chaining:
// the first 32 bytes are the first half of V1 = Blake2b-512 of the
// prefixed input, and the next 32 come from V2 = Blake2b-512(V1).
func TestBlake2bLong_ChainStructure(t *testing.T) {
	input := []byte("chained expansion")
	const outlen = 200

	prefixed := make([]byte, 4+len(input))
	binary.LittleEndian.PutUint32(prefixed, outlen)
	copy(prefixed[4:], input)

	v1 := blake2b.Sum512(prefixed)
	v2 := blake2b.Sum512(v1[:])

	out := Blake2bLong(input, outlen)
	if !bytes.Equal(out[:32], v1[:32]) {
		t.Error("first chain link does not match Blake2b-512 of prefixed input")
	}
	if !bytes.Equal(out[32:64], v2[:32]) {
		t.Error("second chain link does not match Blake2b-512 of previous link")
	}
}

// TestBlake2bLong_LengthBindsOutput verifies the requested length is
// part of the hashed input, so prefixes of longer outputs never equal
// shorter outputs.
func TestBlake2bLong_LengthBindsOutput(t *testing.T) {
	input := []byte("input")
	short := Blake2bLong(input, 32)
	long := Blake2bLong(input, 64)

	if bytes.Equal(short, long[:32]) {
		t.Error("32-byte output is a prefix of the 64-byte output; length not bound")
	}
}

func TestBlake2bLong_Deterministic(t *testing.T) {
	input := []byte("same input")
	a := Blake2bLong(input, 512)
	b := Blake2bLong(input, 512)
	if !bytes.Equal(a, b) {
		t.Error("Blake2bLong is not deterministic")
	}
}
