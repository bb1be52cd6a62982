package core

// Position identifies the lattice cell currently being computed. One
// Position exists per segment-fill invocation, owned by the worker
// filling that segment; Index advances as the segment is filled.
type Position struct {
	Pass  uint32
	Lane  uint32
	Slice uint32
	Index uint32 // within the segment
}

// indexAlpha maps a 32-bit pseudo-random value to the in-lane index
// of the reference block, using the skewed distribution from the
// Argon2 specification.
//
// The eligible pool depends on where we are:
//
//   - pass 0, slice 0: only blocks already produced earlier in this
//     segment (no wraparound exists yet);
//   - pass 0, later slices: all finished slices of this pass, plus the
//     current segment's progress when referencing the same lane;
//   - later passes: the whole lane minus the current segment's
//     not-yet-written tail.
//
// Same-lane references exclude the immediate predecessor (it is
// always a compression input already); cross-lane references at
// segment start exclude the other lane's most recent block, which the
// barrier discipline has not yet made visible in the previous pass'
// terms.
//
// The pseudo-random value r is then skewed quadratically: the
// relative offset is pool-1 - (pool * (r*r >> 32) >> 32), which
// biases references toward recently written blocks and strengthens
// resistance to time-memory trade-offs relative to uniform sampling.
func (in *Instance) indexAlpha(pos *Position, rand uint32, sameLane bool) uint32 {
	var poolSize uint32
	switch {
	case pos.Pass == 0 && pos.Slice == 0:
		poolSize = pos.Index - 1
	case pos.Pass == 0:
		poolSize = pos.Slice * in.segmentLength
		if sameLane {
			poolSize += pos.Index - 1
		} else if pos.Index == 0 {
			poolSize--
		}
	default:
		poolSize = in.laneLength - in.segmentLength
		if sameLane {
			poolSize += pos.Index - 1
		} else if pos.Index == 0 {
			poolSize--
		}
	}
	if poolSize == 0 || poolSize >= in.laneLength {
		// Unreachable with validated parameters: the smallest lattice
		// (8 blocks per lane) still yields a pool of at least one.
		panic("argon2/core: reference pool size out of range")
	}

	// Skew transform, 32x32->64 multiply-high semantics. Fixed
	// numeric contract; see the reference-vector tests.
	rel := uint64(rand)
	rel = rel * rel >> 32
	rel = uint64(poolSize) - 1 - (uint64(poolSize)*rel >> 32)

	// On later passes the pool starts just past the current segment
	// and wraps around the lane; the last slice starts at zero.
	var start uint32
	if pos.Pass != 0 && pos.Slice != SyncPoints-1 {
		start = (pos.Slice + 1) * in.segmentLength
	}
	return (start + uint32(rel)) % in.laneLength
}

// addressGenerator produces the side-channel-safe pseudo-random
// stream for the data-independent variant. Addresses come from
// compressing a counter block that encodes (pass, lane, slice,
// memory, passes, variant, block counter) - never data - and the
// stream is refreshed every AddressesInBlock positions.
type addressGenerator struct {
	addresses Block
	input     Block
	zero      Block
}

func (in *Instance) newAddressGenerator(pos *Position) *addressGenerator {
	g := &addressGenerator{}
	g.input[0] = uint64(pos.Pass)
	g.input[1] = uint64(pos.Lane)
	g.input[2] = uint64(pos.Slice)
	g.input[3] = uint64(in.memoryBlocks)
	g.input[4] = uint64(in.passes)
	g.input[5] = uint64(in.variant)
	return g
}

// refresh advances the counter and regenerates the address block with
// a double application of the compression function.
func (g *addressGenerator) refresh() {
	g.input[6]++
	fillBlock(&g.zero, &g.input, &g.addresses, false)
	fillBlock(&g.zero, &g.addresses, &g.addresses, false)
}
