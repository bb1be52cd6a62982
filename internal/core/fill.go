package core

// fillSegment fills one (lane, slice) segment in strictly increasing
// index order. Later positions may reference earlier ones in the same
// segment, never the reverse.
//
// Per position: obtain a 64-bit pseudo-random value (previous block's
// first word for Argon2d, the counter-seeded stream for Argon2i),
// resolve the reference block through indexAlpha, then compress
// "previous block in lattice order" with the reference block into the
// current position. The first pass writes fresh blocks; later passes
// fold onto the existing content for version 1.3.
//
// The segment's write range is exclusively owned by this call, so
// concurrent fillSegment calls for different lanes of the same slice
// never write the same position. Cross-lane reads are safe because
// the scheduler's barrier keeps every referenced slice fully written.
func (in *Instance) fillSegment(pos Position) {
	var gen *addressGenerator
	if in.variant == Argon2i {
		gen = in.newAddressGenerator(&pos)
	}

	pos.Index = 0
	if pos.Pass == 0 && pos.Slice == 0 {
		// Blocks 0 and 1 were seeded from H0.
		pos.Index = 2
		if gen != nil {
			gen.refresh()
		}
	}

	curOffset := pos.Lane*in.laneLength + pos.Slice*in.segmentLength + pos.Index
	withXOR := in.version != Version10

	for ; pos.Index < in.segmentLength; pos.Index, curOffset = pos.Index+1, curOffset+1 {
		// Previous block in lattice order, wrapping at the lane start.
		prevOffset := curOffset - 1
		if curOffset%in.laneLength == 0 {
			prevOffset = curOffset + in.laneLength - 1
		}

		var rand uint64
		if gen != nil {
			if pos.Index%AddressesInBlock == 0 {
				gen.refresh()
			}
			rand = gen.addresses[pos.Index%AddressesInBlock]
		} else {
			rand = in.memory[prevOffset][0]
		}

		// The high half selects the reference lane; the first slice of
		// the first pass has no finished foreign slices to draw from.
		refLane := uint32(rand>>32) % in.lanes
		if pos.Pass == 0 && pos.Slice == 0 {
			refLane = pos.Lane
		}

		refIndex := in.indexAlpha(&pos, uint32(rand), refLane == pos.Lane)
		refOffset := refLane*in.laneLength + refIndex

		fillBlock(&in.memory[prevOffset], &in.memory[refOffset],
			&in.memory[curOffset], pos.Pass > 0 && withXOR)
	}
}
