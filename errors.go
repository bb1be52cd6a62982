package argon2

import "errors"

// Parameter validation errors, returned before any memory is
// allocated.
var (
	ErrPasswordMissing = errors.New("argon2: password must not be nil")
	ErrSaltTooShort    = errors.New("argon2: salt must be at least 8 bytes")
	ErrTagTooShort     = errors.New("argon2: tag length must be at least 4 bytes")
	ErrTimeTooSmall    = errors.New("argon2: time cost must be at least 1")
	ErrLanesTooFew     = errors.New("argon2: lane count must be at least 1")
	ErrLanesTooMany    = errors.New("argon2: lane count must be at most 16777215")
	ErrMemoryTooSmall  = errors.New("argon2: memory cost must be at least 8 blocks per lane")
	ErrUnknownMode     = errors.New("argon2: unknown mode")
	ErrUnknownVersion  = errors.New("argon2: unknown version")
)

// Encoded-hash errors.
var (
	ErrInvalidEncoding = errors.New("argon2: malformed encoded hash")
	ErrVerifyMismatch  = errors.New("argon2: password does not match encoded hash")
	ErrSaltGeneration  = errors.New("argon2: failed to generate random salt")
)
