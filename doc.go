// Package argon2 provides a pure-Go implementation of the Argon2
// memory-hard key derivation function (RFC 9106), covering the
// data-dependent (Argon2d) and data-independent (Argon2i) variants
// with full multi-lane parallelism and both the 1.0 and 1.3 versions
// of the algorithm.
//
// Deriving a key requires both substantial sequential CPU time and
// substantial RAM, tunable independently, which defeats cheap
// GPU/ASIC time-memory trade-off attacks on password guessing.
//
// Example usage:
//
//	ctx := &argon2.Context{
//	    Password:  []byte("correct horse battery staple"),
//	    Salt:      salt, // 16 random bytes
//	    TagLength: 32,
//	    TimeCost:  3,
//	    MemoryKiB: 64 * 1024,
//	    Lanes:     4,
//	    Threads:   4,
//	    Mode:      argon2.ModeArgon2i,
//	}
//	key, err := argon2.Hash(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Lane count is a security parameter and changes the output; thread
// count only changes how the work is executed and never affects the
// tag.
//
// For the hybrid Argon2id variant, use golang.org/x/crypto/argon2.
package argon2
