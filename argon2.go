package argon2

import (
	"fmt"

	"github.com/opd-ai/go-argon2/internal/core"
)

// Algorithm version tags. Version13 (0x13, RFC 9106) folds later
// passes onto existing block content with XOR; Version10 (0x10, the
// original Argon2 1.0) overwrites. New code should use Version13.
const (
	Version10 = core.Version10
	Version13 = core.Version13

	// Version is the default version used when Context.Version is zero.
	Version = Version13
)

// Mode selects the reference-addressing variant.
type Mode uint32

const (
	// ModeArgon2d uses data-dependent addressing: fastest and most
	// resistant to time-memory trade-offs, but its memory access
	// pattern leaks through cache timing. Suited to proof-of-work and
	// other settings without side-channel exposure.
	ModeArgon2d Mode = Mode(core.Argon2d)

	// ModeArgon2i uses data-independent addressing, safe against
	// timing side channels. Suited to password hashing on shared
	// hardware.
	ModeArgon2i Mode = Mode(core.Argon2i)
)

func (m Mode) String() string {
	return core.Variant(m).String()
}

// Block is one 1024-byte memory cell of the lattice, exposed for
// custom Allocator implementations.
type Block = core.Block

// Allocator supplies and reclaims the arena's backing storage. The
// default allocator is the Go heap and never fails; a custom
// implementation may return an error from Allocate, which aborts the
// computation before any filling starts.
type Allocator = core.Allocator

// Context holds the inputs, cost parameters, and hooks for one
// derivation. Password and Salt are required; Secret and
// AssociatedData are optional keyed/contextual inputs that also feed
// the pre-hash.
type Context struct {
	Password       []byte
	Salt           []byte
	Secret         []byte
	AssociatedData []byte

	// TagLength is the derived key length in bytes, minimum 4.
	TagLength uint32

	// TimeCost is the number of passes over memory, minimum 1.
	TimeCost uint32

	// MemoryKiB is the memory cost in KiB (one 1024-byte block per
	// KiB), minimum 8 per lane. Rounded down to a multiple of
	// 4*Lanes.
	MemoryKiB uint32

	// Lanes is the parallelism degree of the lattice. A security
	// parameter: changing it changes the tag.
	Lanes uint32

	// Threads caps concurrent execution and is clamped to Lanes.
	// Unlike Lanes it never affects the tag. Zero means 1.
	Threads uint32

	// Version is Version10 or Version13; zero means Version13.
	Version uint32

	Mode Mode

	// WipeMemory zeroes the arena before releasing it.
	WipeMemory bool

	// ClearPassword and ClearSecret zero the respective input buffers
	// once the tag has been computed.
	ClearPassword bool
	ClearSecret   bool

	// Allocator overrides the heap-backed default.
	Allocator Allocator
}

// maxLanes mirrors the RFC 9106 limit of 2^24-1 lanes.
const maxLanes = 1<<24 - 1

func (ctx *Context) validate() error {
	if ctx.Password == nil {
		return ErrPasswordMissing
	}
	if len(ctx.Salt) < 8 {
		return ErrSaltTooShort
	}
	if ctx.TagLength < 4 {
		return ErrTagTooShort
	}
	if ctx.TimeCost < 1 {
		return ErrTimeTooSmall
	}
	if ctx.Lanes < 1 {
		return ErrLanesTooFew
	}
	if ctx.Lanes > maxLanes {
		return ErrLanesTooMany
	}
	if ctx.MemoryKiB < core.MinBlocksPerLane*ctx.Lanes {
		return fmt.Errorf("%w: need %d KiB for %d lanes",
			ErrMemoryTooSmall, core.MinBlocksPerLane*ctx.Lanes, ctx.Lanes)
	}
	switch ctx.Mode {
	case ModeArgon2d, ModeArgon2i:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMode, uint32(ctx.Mode))
	}
	switch ctx.Version {
	case 0, Version10, Version13:
	default:
		return fmt.Errorf("%w: %#x", ErrUnknownVersion, ctx.Version)
	}
	return nil
}

// Hash validates the context and runs the derivation, returning a tag
// of exactly ctx.TagLength bytes. The output is deterministic for
// fixed inputs and independent of Threads.
func Hash(ctx *Context) ([]byte, error) {
	if err := ctx.validate(); err != nil {
		return nil, err
	}

	version := ctx.Version
	if version == 0 {
		version = Version
	}
	threads := ctx.Threads
	if threads == 0 {
		threads = 1
	}

	tag, err := core.Compute(core.Params{
		Password:       ctx.Password,
		Salt:           ctx.Salt,
		Secret:         ctx.Secret,
		AssociatedData: ctx.AssociatedData,
		TagLength:      ctx.TagLength,
		Passes:         ctx.TimeCost,
		MemoryKiB:      ctx.MemoryKiB,
		Lanes:          ctx.Lanes,
		Threads:        threads,
		Version:        version,
		Variant:        core.Variant(ctx.Mode),
		WipeMemory:     ctx.WipeMemory,
		Allocator:      ctx.Allocator,
	})
	if err != nil {
		return nil, err
	}

	if ctx.ClearPassword {
		wipeBytes(ctx.Password)
	}
	if ctx.ClearSecret {
		wipeBytes(ctx.Secret)
	}
	return tag, nil
}

// Key derives a key with Argon2i, the variant safe against timing
// side channels. Threads defaults to lanes.
func Key(password, salt []byte, timeCost, memoryKiB, lanes, keyLen uint32) ([]byte, error) {
	return Hash(&Context{
		Password:  password,
		Salt:      salt,
		TagLength: keyLen,
		TimeCost:  timeCost,
		MemoryKiB: memoryKiB,
		Lanes:     lanes,
		Threads:   lanes,
		Mode:      ModeArgon2i,
	})
}

// DKey derives a key with Argon2d. Prefer Key unless the workload is
// free of side-channel exposure.
func DKey(password, salt []byte, timeCost, memoryKiB, lanes, keyLen uint32) ([]byte, error) {
	return Hash(&Context{
		Password:  password,
		Salt:      salt,
		TagLength: keyLen,
		TimeCost:  timeCost,
		MemoryKiB: memoryKiB,
		Lanes:     lanes,
		Threads:   lanes,
		Mode:      ModeArgon2d,
	})
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
