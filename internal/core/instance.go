// Package core implements the Argon2 memory-filling engine: the block
// lattice, the pass/slice/lane fill schedule, the skewed reference
// addressing for both the data-dependent and data-independent
// variants, and tag extraction. Parameter validation and the public
// API live in the parent package; this package assumes validated
// input.
package core

import "fmt"

const (
	// SyncPoints is the number of slices each lane is divided into
	// per pass. Slices stage cross-lane visibility: a segment may only
	// reference other lanes' blocks from slices that are already
	// complete for the current pass.
	SyncPoints = 4

	// AddressesInBlock is the number of pseudo-random reference
	// addresses one compression call yields in the data-independent
	// variant (128 uint64 values per 1024-byte block).
	AddressesInBlock = QWordsInBlock

	// PrehashDigestLength is the size of H0, the digest folding all
	// parameters and secrets.
	PrehashDigestLength = 64

	// PrehashSeedLength is H0 plus the 8-byte block/lane extension
	// used when seeding the first two blocks of each lane.
	PrehashSeedLength = PrehashDigestLength + 8

	// MinBlocksPerLane is the smallest viable lattice per lane:
	// two seeded blocks per slice.
	MinBlocksPerLane = 2 * SyncPoints
)

// Argon2 version tags. Version 0x13 folds later passes onto existing
// block content with XOR; version 0x10 overwrites.
const (
	Version10 = 0x10
	Version13 = 0x13
)

// Variant selects the reference-addressing scheme, chosen once at
// construction.
type Variant uint32

const (
	// Argon2d draws pseudo-random reference addresses from block
	// content (data-dependent, stronger against time-memory
	// trade-offs, leaks an address trace through cache timing).
	Argon2d Variant = 0

	// Argon2i draws them from a precomputed counter-seeded stream
	// (data-independent, side-channel safe).
	Argon2i Variant = 1
)

func (v Variant) String() string {
	switch v {
	case Argon2d:
		return "argon2d"
	case Argon2i:
		return "argon2i"
	default:
		return fmt.Sprintf("variant(%d)", uint32(v))
	}
}

// Allocator is the host-memory contract the arena is built on.
// Allocate returns blockCount blocks of backing storage or an error
// if the host cannot satisfy the request; that error is the only
// failure mode of the whole computation. Free returns the storage,
// and is called exactly once per successful Allocate.
type Allocator interface {
	Allocate(blockCount uint32) ([]Block, error)
	Free(blocks []Block)
}

// HeapAllocator is the default Allocator, backed by the Go heap.
// It never fails short of the runtime itself aborting.
type HeapAllocator struct{}

func (HeapAllocator) Allocate(blockCount uint32) ([]Block, error) {
	return make([]Block, blockCount), nil
}

func (HeapAllocator) Free(blocks []Block) {}

// Params carries the validated inputs of one computation.
type Params struct {
	Password       []byte
	Salt           []byte
	Secret         []byte
	AssociatedData []byte

	TagLength uint32
	Passes    uint32 // time cost
	MemoryKiB uint32 // memory cost, 1 KiB = 1 block
	Lanes     uint32 // parallelism (security parameter)
	Threads   uint32 // execution parallelism, capped at Lanes

	Version uint32
	Variant Variant

	// WipeMemory zeroes the arena before it is returned to the
	// allocator, so derived material does not linger on the heap.
	WipeMemory bool

	// Allocator overrides HeapAllocator when set.
	Allocator Allocator
}

// Instance owns the memory arena for the lifetime of one computation.
// The shape parameters are fixed at construction; only the block
// storage is mutated during filling.
type Instance struct {
	memory []Block

	passes        uint32
	memoryBlocks  uint32
	segmentLength uint32
	laneLength    uint32
	lanes         uint32
	threads       uint32

	version uint32
	variant Variant

	alloc Allocator
}

// newInstance derives the lattice shape from the cost parameters and
// allocates the arena. The requested memory is rounded down to a
// multiple of SyncPoints*lanes so every segment has equal length;
// validation upstream guarantees at least MinBlocksPerLane blocks per
// lane survive the rounding.
func newInstance(p *Params) (*Instance, error) {
	alloc := p.Allocator
	if alloc == nil {
		alloc = HeapAllocator{}
	}

	memoryBlocks := p.MemoryKiB / (SyncPoints * p.Lanes) * (SyncPoints * p.Lanes)
	laneLength := memoryBlocks / p.Lanes

	threads := p.Threads
	if threads > p.Lanes {
		threads = p.Lanes
	}

	in := &Instance{
		passes:        p.Passes,
		memoryBlocks:  memoryBlocks,
		segmentLength: laneLength / SyncPoints,
		laneLength:    laneLength,
		lanes:         p.Lanes,
		threads:       threads,
		version:       p.Version,
		variant:       p.Variant,
		alloc:         alloc,
	}

	mem, err := alloc.Allocate(memoryBlocks)
	if err != nil {
		return nil, fmt.Errorf("allocating %d blocks: %w", memoryBlocks, err)
	}
	if uint32(len(mem)) != memoryBlocks {
		alloc.Free(mem)
		return nil, fmt.Errorf("allocator returned %d blocks, requested %d", len(mem), memoryBlocks)
	}
	in.memory = mem
	return in, nil
}

// block returns the cell at the given absolute position of a lane.
func (in *Instance) block(lane, index uint32) *Block {
	return &in.memory[lane*in.laneLength+index]
}

// finalize XORs the last block of every lane into one accumulator and
// expands it to the requested tag length. This is the only point data
// leaves the lattice.
func (in *Instance) finalize(tagLength uint32) []byte {
	var acc Block
	acc.Copy(in.block(0, in.laneLength-1))
	for lane := uint32(1); lane < in.lanes; lane++ {
		acc.XOR(in.block(lane, in.laneLength-1))
	}
	tag := Blake2bLong(acc.Bytes(), tagLength)
	acc.Zero()
	return tag
}

// release hands the arena back to the allocator, wiping it first when
// requested. Safe to call more than once; only the first call acts.
// Must not run before every worker scheduled against the arena has
// completed.
func (in *Instance) release(wipe bool) {
	if in.memory == nil {
		return
	}
	if wipe {
		for i := range in.memory {
			in.memory[i].Zero()
		}
	}
	in.alloc.Free(in.memory)
	in.memory = nil
}

// Compute runs the full allocate -> seed -> fill -> finalize shape
// once and returns the tag. The only possible error is allocation
// failure; everything after allocation runs to completion.
func Compute(p Params) ([]byte, error) {
	h0 := initialHash(&p)

	in, err := newInstance(&p)
	if err != nil {
		return nil, err
	}

	in.fillFirstBlocks(&h0)
	in.fillMemoryBlocks()

	tag := in.finalize(p.TagLength)
	in.release(p.WipeMemory)
	return tag, nil
}
