package core

import (
	"encoding/binary"
	"testing"
)

func testParams(variant Variant, lanes, threads uint32) Params {
	return Params{
		Password:  []byte("password"),
		Salt:      []byte("somesalt16bytes!"),
		TagLength: 32,
		Passes:    2,
		MemoryKiB: 16 * lanes,
		Lanes:     lanes,
		Threads:   threads,
		Version:   Version13,
		Variant:   variant,
	}
}

// TestInitialHash_BindsEveryParameter flips each pre-hash input in
// turn and expects a different H0 every time.
func TestInitialHash_BindsEveryParameter(t *testing.T) {
	base := testParams(Argon2d, 2, 1)
	baseH0 := initialHash(&base)

	mutations := []struct {
		name   string
		mutate func(*Params)
	}{
		{"password", func(p *Params) { p.Password = []byte("Password") }},
		{"salt", func(p *Params) { p.Salt = []byte("somesalt16bytes?") }},
		{"secret", func(p *Params) { p.Secret = []byte("pepper") }},
		{"associated data", func(p *Params) { p.AssociatedData = []byte("ad") }},
		{"tag length", func(p *Params) { p.TagLength = 33 }},
		{"passes", func(p *Params) { p.Passes = 3 }},
		{"memory", func(p *Params) { p.MemoryKiB = 64 }},
		{"lanes", func(p *Params) { p.Lanes = 4 }},
		{"version", func(p *Params) { p.Version = Version10 }},
		{"variant", func(p *Params) { p.Variant = Argon2i }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams(Argon2d, 2, 1)
			tt.mutate(&p)
			if initialHash(&p) == baseH0 {
				t.Errorf("changing %s did not change H0", tt.name)
			}
		})
	}
}

// TestInitialHash_IgnoresThreads: thread count is execution-only and
// must not feed the pre-hash.
func TestInitialHash_IgnoresThreads(t *testing.T) {
	a := testParams(Argon2d, 4, 1)
	b := testParams(Argon2d, 4, 4)
	if initialHash(&a) != initialHash(&b) {
		t.Error("thread count changed H0")
	}
}

// TestFillFirstBlocks_LaneIndependence verifies each lane's two
// seeded blocks depend only on (H0, lane index): they must equal a
// direct expansion of the seed buffer, so seeding order across lanes
// is irrelevant.
func TestFillFirstBlocks_LaneIndependence(t *testing.T) {
	p := testParams(Argon2d, 4, 1)
	h0 := initialHash(&p)

	in, err := newInstance(&p)
	if err != nil {
		t.Fatalf("newInstance: %v", err)
	}
	defer in.release(false)
	in.fillFirstBlocks(&h0)

	for lane := uint32(0); lane < in.lanes; lane++ {
		for blockIdx := uint32(0); blockIdx < 2; blockIdx++ {
			var seed [PrehashSeedLength]byte
			copy(seed[:], h0[:])
			binary.LittleEndian.PutUint32(seed[PrehashDigestLength:], blockIdx)
			binary.LittleEndian.PutUint32(seed[PrehashDigestLength+4:], lane)

			var want Block
			want.LoadBytes(Blake2bLong(seed[:], BlockSize))

			if *in.block(lane, blockIdx) != want {
				t.Errorf("lane %d block %d does not match direct expansion of (H0, %d, %d)",
					lane, blockIdx, blockIdx, lane)
			}
		}
	}
}

// TestFillFirstBlocks_OrderIrrelevant seeds a second arena with the
// lane loop reversed and expects identical contents.
func TestFillFirstBlocks_OrderIrrelevant(t *testing.T) {
	p := testParams(Argon2d, 4, 1)
	h0 := initialHash(&p)

	forward, err := newInstance(&p)
	if err != nil {
		t.Fatalf("newInstance: %v", err)
	}
	defer forward.release(false)
	forward.fillFirstBlocks(&h0)

	reversed, err := newInstance(&p)
	if err != nil {
		t.Fatalf("newInstance: %v", err)
	}
	defer reversed.release(false)

	var seed [PrehashSeedLength]byte
	copy(seed[:], h0[:])
	for lane := int(reversed.lanes) - 1; lane >= 0; lane-- {
		binary.LittleEndian.PutUint32(seed[PrehashDigestLength+4:], uint32(lane))
		binary.LittleEndian.PutUint32(seed[PrehashDigestLength:], 1)
		reversed.block(uint32(lane), 1).LoadBytes(Blake2bLong(seed[:], BlockSize))
		binary.LittleEndian.PutUint32(seed[PrehashDigestLength:], 0)
		reversed.block(uint32(lane), 0).LoadBytes(Blake2bLong(seed[:], BlockSize))
	}

	for lane := uint32(0); lane < forward.lanes; lane++ {
		for blockIdx := uint32(0); blockIdx < 2; blockIdx++ {
			if *forward.block(lane, blockIdx) != *reversed.block(lane, blockIdx) {
				t.Errorf("lane %d block %d differs between seeding orders", lane, blockIdx)
			}
		}
	}
}
