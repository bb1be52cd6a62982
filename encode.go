package argon2

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
)

// PHC string support: "$argon2i$v=19$m=65536,t=3,p=4$<salt>$<tag>"
// with unpadded standard base64, the format emitted by the reference
// argon2 command-line tool and consumed by most password stores.

// HashEncoded derives a tag for the context and returns it as a PHC
// format string carrying the mode, version, cost parameters, and
// salt.
func HashEncoded(ctx *Context) (string, error) {
	tag, err := Hash(ctx)
	if err != nil {
		return "", err
	}
	version := ctx.Version
	if version == 0 {
		version = Version
	}
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		ctx.Mode, version, ctx.MemoryKiB, ctx.TimeCost, ctx.Lanes,
		base64.RawStdEncoding.EncodeToString(ctx.Salt),
		base64.RawStdEncoding.EncodeToString(tag)), nil
}

// HashPassword hashes a password with a fresh random salt and the
// given costs, returning the PHC string. The Argon2i variant is used.
func HashPassword(password []byte, timeCost, memoryKiB, lanes uint32) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaltGeneration, err)
	}
	return HashEncoded(&Context{
		Password:  password,
		Salt:      salt,
		TagLength: 32,
		TimeCost:  timeCost,
		MemoryKiB: memoryKiB,
		Lanes:     lanes,
		Threads:   lanes,
		Mode:      ModeArgon2i,
	})
}

// VerifyEncoded recomputes the tag for password under the parameters
// embedded in the PHC string and compares in constant time. A nil
// return means the password matches.
func VerifyEncoded(encoded string, password []byte) error {
	ctx, want, err := decodeEncoded(encoded)
	if err != nil {
		return err
	}
	ctx.Password = password

	got, err := Hash(ctx)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrVerifyMismatch
	}
	return nil
}

func decodeEncoded(encoded string) (*Context, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, nil, ErrInvalidEncoding
	}

	var mode Mode
	switch parts[1] {
	case "argon2d":
		mode = ModeArgon2d
	case "argon2i":
		mode = ModeArgon2i
	default:
		return nil, nil, fmt.Errorf("%w: mode %q", ErrInvalidEncoding, parts[1])
	}

	var version uint32
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, fmt.Errorf("%w: version field", ErrInvalidEncoding)
	}

	var memory, timeCost, lanes uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &lanes); err != nil {
		return nil, nil, fmt.Errorf("%w: cost field", ErrInvalidEncoding)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: salt: %v", ErrInvalidEncoding, err)
	}
	tag, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: tag: %v", ErrInvalidEncoding, err)
	}

	return &Context{
		Salt:      salt,
		TagLength: uint32(len(tag)),
		TimeCost:  timeCost,
		MemoryKiB: memory,
		Lanes:     lanes,
		Threads:   lanes,
		Version:   version,
		Mode:      mode,
	}, tag, nil
}
