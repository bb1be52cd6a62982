package core

import (
	"encoding/binary"
)

// Memory layout constants from the Argon2 specification (RFC 9106).
const (
	// BlockSize is the size of one memory block in bytes.
	BlockSize = 1024

	// QWordsInBlock is the number of 64-bit words in a block (1024 / 8).
	QWordsInBlock = 128
)

// Block is the atomic memory cell of the lattice: a fixed 1024-byte
// buffer interpreted as 128 little-endian 64-bit words. Blocks have
// pure value semantics; the only operations the engine needs are
// copy, XOR-in-place, zeroing, and (de)serialization at the seeding
// and finalization boundaries.
type Block [QWordsInBlock]uint64

// XOR folds other into b word by word.
func (b *Block) XOR(other *Block) {
	for i := range b {
		b[i] ^= other[i]
	}
}

// Copy overwrites b with the contents of src.
func (b *Block) Copy(src *Block) {
	*b = *src
}

// Zero overwrites every word of the block. Used when wiping the arena
// before it is handed back to the allocator.
func (b *Block) Zero() {
	for i := range b {
		b[i] = 0
	}
}

// LoadBytes fills the block from exactly BlockSize bytes of hash
// output. Callers always pass buffers produced by Blake2bLong with a
// fixed 1024-byte length; anything else is a programming fault.
func (b *Block) LoadBytes(data []byte) {
	if len(data) != BlockSize {
		panic("argon2/core: block seed must be exactly 1024 bytes")
	}
	for i := 0; i < QWordsInBlock; i++ {
		b[i] = binary.LittleEndian.Uint64(data[i*8 : (i+1)*8])
	}
}

// Bytes serializes the block as 128 little-endian uint64 values.
func (b *Block) Bytes() []byte {
	data := make([]byte, BlockSize)
	for i := 0; i < QWordsInBlock; i++ {
		binary.LittleEndian.PutUint64(data[i*8:(i+1)*8], b[i])
	}
	return data
}
