// Copyright (c) 2026 Freshlist. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/freshlist/freshlist/internal/platform/apperr"
)

// Argon2id cost parameters. Memory-hard hashing is the only defense against
// offline brute-force if the account table is ever exfiltrated, so a fast
// general-purpose hash is not an option here.
const (
	argonMemory  uint32 = 64 * 1024 // KiB
	argonTime    uint32 = 1
	argonThreads uint8  = 4
	argonSaltLen        = 16
	argonKeyLen  uint32 = 32
)

// ErrMalformedHash indicates a stored password hash that cannot be parsed.
// It signals data corruption, never a wrong password.
var ErrMalformedHash = errors.New("sec: malformed password hash")

// HashPassword hashes a plain-text password using argon2id.
//
// Every call generates a fresh random salt, so hashing the same password
// twice yields two different strings. The result is a self-describing PHC
// string embedding the algorithm, its cost parameters, and the salt:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>
func HashPassword(plainTextPassword string) (string, error) {
	if plainTextPassword == "" {
		return "", apperr.ValidationError("Password must not be empty")
	}

	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(plainTextPassword), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return encoded, nil
}

// VerifyPassword compares a plain-text password against a stored PHC hash.
//
// The salt and cost parameters are recovered from the hash string itself, and
// the comparison is constant-time to avoid leaking partial-match information.
//
// A non-matching password returns (false, nil). An error is returned only
// when the stored hash is structurally corrupt; that error surfaces as a
// generic internal failure, never as "wrong password".
func VerifyPassword(plainTextPassword, encodedHash string) (bool, error) {
	memory, timeCost, threads, salt, digest, err := decodeHash(encodedHash)
	if err != nil {
		return false, apperr.Integrity(err)
	}

	candidate := argon2.IDKey([]byte(plainTextPassword), salt, timeCost, memory, threads, uint32(len(digest)))

	return subtle.ConstantTimeCompare(candidate, digest) == 1, nil
}

// decodeHash parses a PHC-formatted argon2id string back into its parameters.
func decodeHash(encodedHash string) (memory, timeCost uint32, threads uint8, salt, digest []byte, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	digest, err = base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	return memory, timeCost, threads, salt, digest, nil
}
