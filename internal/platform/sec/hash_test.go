// Copyright (c) 2026 Freshlist. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshlist/freshlist/internal/platform/apperr"
	"github.com/freshlist/freshlist/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that a hashed password verifies against
its own plain text and rejects everything else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	match, err := sec.VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = sec.VerifyPassword("correct horse battery stapl", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

/*
TestHashPassword_SaltUniqueness verifies that hashing the same password twice
produces two different strings which both still verify.
*/
func TestHashPassword_SaltUniqueness(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		match, err := sec.VerifyPassword("same-password", hash)
		require.NoError(t, err)
		assert.True(t, match)
	}
}

/*
TestHashPassword_Empty verifies the empty password is rejected up front.
*/
func TestHashPassword_Empty(t *testing.T) {
	_, err := sec.HashPassword("")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestVerifyPassword_MalformedHash verifies that corrupt stored hashes surface
as an integrity error, not a false "wrong password".
*/
func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not_phc", "plainly-not-a-hash"},
		{"wrong_algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0"},
		{"bad_params", "$argon2id$v=19$nonsense$c2FsdA$ZGlnZXN0"},
		{"bad_base64", "$argon2id$v=19$m=65536,t=1,p=4$!!!$ZGlnZXN0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.VerifyPassword("anything", tt.hash)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "INTERNAL_ERROR", ae.Code)
		})
	}
}
