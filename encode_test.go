package argon2

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEncoded_Format(t *testing.T) {
	ctx := rfcContext(ModeArgon2i)
	encoded, err := HashEncoded(ctx)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2i$v=19$m=32,t=3,p=4$"), "got %q", encoded)
	assert.Len(t, strings.Split(encoded, "$"), 6)
}

func TestVerifyEncoded_RoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeArgon2d, ModeArgon2i} {
		ctx := rfcContext(mode)
		encoded, err := HashEncoded(ctx)
		require.NoError(t, err)

		// The secret and associated data are not part of the encoded
		// form; verification here covers the password-and-salt case.
		ctx2 := rfcContext(mode)
		ctx2.Secret = nil
		ctx2.AssociatedData = nil
		encoded2, err := HashEncoded(ctx2)
		require.NoError(t, err)

		assert.NoError(t, VerifyEncoded(encoded2, ctx2.Password))
		assert.ErrorIs(t, VerifyEncoded(encoded2, []byte("wrong password")), ErrVerifyMismatch)

		// A hash carrying secret/AD cannot verify from the string alone.
		assert.ErrorIs(t, VerifyEncoded(encoded, ctx.Password), ErrVerifyMismatch)
	}
}

func TestHashPassword_FreshSalt(t *testing.T) {
	a, err := HashPassword([]byte("hunter22"), 1, 64, 2)
	require.NoError(t, err)
	b, err := HashPassword([]byte("hunter22"), 1, 64, 2)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "salts must be random per call")
	assert.NoError(t, VerifyEncoded(a, []byte("hunter22")))
	assert.NoError(t, VerifyEncoded(b, []byte("hunter22")))
	assert.ErrorIs(t, VerifyEncoded(a, []byte("hunter23")), ErrVerifyMismatch)
}

func TestVerifyEncoded_Malformed(t *testing.T) {
	cases := []string{
		"",
		"not a phc string",
		"$argon2id$v=19$m=32,t=3,p=4$c2FsdHNhbHQ$AAAA",      // unsupported mode
		"$argon2i$v=19$m=32,t=3$c2FsdHNhbHQ$AAAA",           // missing p
		"$argon2i$version=19$m=32,t=3,p=4$c2FsdHNhbHQ$AAAA", // bad version field
		"$argon2i$v=19$m=32,t=3,p=4$!!!$AAAA",               // bad salt encoding
		"$argon2i$v=19$m=32,t=3,p=4$c2FsdHNhbHQ$!!!",        // bad tag encoding
		"$argon2i$v=19$m=32,t=3,p=4$c2FsdHNhbHQ",            // missing tag
	}
	for _, encoded := range cases {
		assert.ErrorIs(t, VerifyEncoded(encoded, []byte("pw")), ErrInvalidEncoding, "input %q", encoded)
	}
}

// TestVerifyEncoded_RevalidatesCosts: decoded parameters still go
// through validation, so a tampered string cannot force a degenerate
// computation.
func TestVerifyEncoded_RevalidatesCosts(t *testing.T) {
	err := VerifyEncoded("$argon2i$v=19$m=0,t=0,p=0$c2FsdHNhbHQ$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", []byte("pw"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrVerifyMismatch)
}
