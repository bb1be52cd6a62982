package core

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Blake2bLong is the variable-length hash H' from the Argon2
// specification. It expands (or truncates) BLAKE2b to an arbitrary
// output length and is used for lane seeding (1024-byte outputs) and
// final tag extraction (caller-chosen length).
//
// The requested length is prepended to the input as a 4-byte
// little-endian prefix for every output size. Outputs of at most 64
// bytes are a single BLAKE2b call; longer outputs chain 64-byte
// digests, emitting 32 bytes per link, with the final link sized to
// the remainder.
func Blake2bLong(input []byte, outlen uint32) []byte {
	if outlen == 0 {
		return nil
	}

	prefixed := make([]byte, 4+len(input))
	binary.LittleEndian.PutUint32(prefixed[0:4], outlen)
	copy(prefixed[4:], input)

	if outlen <= blake2b.Size {
		h, err := blake2b.New(int(outlen), nil)
		if err != nil {
			// Unreachable for 1 <= outlen <= 64.
			panic("argon2/core: blake2b.New: " + err.Error())
		}
		h.Write(prefixed)
		return h.Sum(nil)
	}

	output := make([]byte, outlen)

	v := blake2b.Sum512(prefixed)
	copied := copy(output, v[:32])

	for uint32(copied) < outlen {
		remaining := outlen - uint32(copied)
		if remaining > blake2b.Size {
			v = blake2b.Sum512(v[:])
			copied += copy(output[copied:], v[:32])
			continue
		}
		// Last link: digest size equals exactly what is left.
		h, err := blake2b.New(int(remaining), nil)
		if err != nil {
			panic("argon2/core: blake2b.New: " + err.Error())
		}
		h.Write(v[:])
		copied += copy(output[copied:], h.Sum(nil))
	}

	return output
}
