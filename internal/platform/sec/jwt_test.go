// Copyright (c) 2026 Freshlist. All rights reserved.

package sec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService builds a TokenService with a pinned clock.
func newTestService(t *testing.T, lifetimeDays int, clock time.Time) *TokenService {
	t.Helper()

	service, err := NewTokenService("unit-test-secret", lifetimeDays, "freshlist.app")
	require.NoError(t, err)
	service.now = func() time.Time { return clock }
	return service
}

/*
TestNewTokenService_ConfigErrors verifies that a blank secret or non-positive
lifetime fails at construction time.
*/
func TestNewTokenService_ConfigErrors(t *testing.T) {
	_, err := NewTokenService("", 7, "freshlist.app")
	assert.Error(t, err)

	_, err = NewTokenService("   ", 7, "freshlist.app")
	assert.Error(t, err)

	_, err = NewTokenService("secret", 0, "freshlist.app")
	assert.Error(t, err)

	_, err = NewTokenService("secret", -3, "freshlist.app")
	assert.Error(t, err)
}

/*
TestTokenService_RoundTrip verifies that an issued token verifies and carries
the identity it was issued for.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(t, 7, issuedAt)

	token, err := service.IssueToken("user-123", "ana")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "freshlist.app", claims.Issuer)
}

/*
TestTokenService_Expiry verifies tokens live exactly their configured
lifetime: valid just before the deadline, rejected just after.
*/
func TestTokenService_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 7 * 24 * time.Hour

	service := newTestService(t, 7, issuedAt)
	token, err := service.IssueToken("user-123", "ana")
	require.NoError(t, err)

	// Just inside the lifetime.
	service.now = func() time.Time { return issuedAt.Add(lifetime - time.Minute) }
	_, err = service.VerifyToken(token)
	assert.NoError(t, err)

	// Just past the lifetime.
	service.now = func() time.Time { return issuedAt.Add(lifetime + time.Minute) }
	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_TamperedToken verifies that modifying any token segment
kills the signature.
*/
func TestTokenService_TamperedToken(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(t, 7, clock)

	token, err := service.IssueToken("user-123", "ana")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip a character in the payload segment.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = service.VerifyToken(tampered)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret verifies a token signed under one secret never
verifies under another.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(t, 7, clock)

	token, err := service.IssueToken("user-123", "ana")
	require.NoError(t, err)

	other, err := NewTokenService("a-different-secret", 7, "freshlist.app")
	require.NoError(t, err)
	other.now = func() time.Time { return clock }

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsGarbage verifies structurally invalid strings never
verify.
*/
func TestTokenService_RejectsGarbage(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(t, 7, clock)

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := service.VerifyToken(input)
		assert.Error(t, err, "input %q", input)
	}
}
