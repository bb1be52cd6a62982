package core

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// initialHash computes H0, the 64-byte digest that seeds the whole
// lattice. All cost parameters and all variable-length inputs are
// folded through BLAKE2b-512 in a fixed serialized order, each
// variable-length field prefixed by its 4-byte little-endian length:
//
//	H0 = Blake2b(lanes || tagLen || memoryKiB || passes || version ||
//	     variant || len(P) || P || len(S) || S || len(K) || K ||
//	     len(X) || X)
//
// The layout is load-bearing for interoperability; the reference
// vectors in the package tests pin it bit for bit. Note the memory
// cost is serialized as requested, before rounding to the lattice
// shape.
func initialHash(p *Params) [PrehashDigestLength]byte {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic("argon2/core: blake2b.New512: " + err.Error())
	}

	var buf [4]byte
	writeUint32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	writeField := func(data []byte) {
		writeUint32(uint32(len(data)))
		h.Write(data)
	}

	writeUint32(p.Lanes)
	writeUint32(p.TagLength)
	writeUint32(p.MemoryKiB)
	writeUint32(p.Passes)
	writeUint32(p.Version)
	writeUint32(uint32(p.Variant))
	writeField(p.Password)
	writeField(p.Salt)
	writeField(p.Secret)
	writeField(p.AssociatedData)

	var h0 [PrehashDigestLength]byte
	h.Sum(h0[:0])
	return h0
}

// fillFirstBlocks seeds block 0 and block 1 of every lane by
// expanding H0 with an 8-byte (block index, lane index) extension:
//
//	B[lane][0] = H'(H0 || 0 || lane, 1024)
//	B[lane][1] = H'(H0 || 1 || lane, 1024)
//
// Each lane depends only on (H0, lane), never on another lane's
// content, so seeding order across lanes is irrelevant.
func (in *Instance) fillFirstBlocks(h0 *[PrehashDigestLength]byte) {
	var seed [PrehashSeedLength]byte
	copy(seed[:], h0[:])

	for lane := uint32(0); lane < in.lanes; lane++ {
		binary.LittleEndian.PutUint32(seed[PrehashDigestLength+4:], lane)

		binary.LittleEndian.PutUint32(seed[PrehashDigestLength:], 0)
		in.block(lane, 0).LoadBytes(Blake2bLong(seed[:], BlockSize))

		binary.LittleEndian.PutUint32(seed[PrehashDigestLength:], 1)
		in.block(lane, 1).LoadBytes(Blake2bLong(seed[:], BlockSize))
	}
}
