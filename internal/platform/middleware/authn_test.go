// Copyright (c) 2026 Freshlist. All rights reserved.

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshlist/freshlist/internal/platform/ctxutil"
	"github.com/freshlist/freshlist/internal/platform/middleware"
	"github.com/freshlist/freshlist/internal/platform/sec"
)

// stubVerifier accepts exactly one token string and fails everything else.
type stubVerifier struct {
	validToken string
	claims     *sec.AuthClaims
	err        error
}

func (s *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == s.validToken {
		return s.claims, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	return nil, errors.New("sec: invalid token")
}

// protectedEcho builds an Authenticate+RequireAuth chain around a handler
// that reports the authenticated user ID.
func protectedEcho(verifier middleware.TokenVerifier) http.Handler {
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(claims.UserID))
	})
	return middleware.Authenticate(verifier)(middleware.RequireAuth(inner))
}

/*
TestAuthenticate_ValidToken verifies that a valid bearer token reaches the
handler with its claims attached.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	verifier := &stubVerifier{
		validToken: "good-token",
		claims:     &sec.AuthClaims{UserID: "user-123", Username: "ana"},
	}

	request := httptest.NewRequest(http.MethodGet, "/lists", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()

	protectedEcho(verifier).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-123", recorder.Body.String())
}

/*
TestAuthenticate_UniformRejection verifies every gate failure mode produces
the same status code and response body.
*/
func TestAuthenticate_UniformRejection(t *testing.T) {
	verifier := &stubVerifier{
		validToken: "good-token",
		claims:     &sec.AuthClaims{UserID: "user-123"},
	}

	tests := []struct {
		name   string
		header string
		err    error
	}{
		{"missing_header", "", nil},
		{"wrong_scheme", "Basic good-token", nil},
		{"no_scheme", "good-token", nil},
		{"invalid_token", "Bearer bad-token", nil},
		{"expired_token", "Bearer bad-token", jwt.ErrTokenExpired},
	}

	var referenceBody string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier.err = tt.err

			request := httptest.NewRequest(http.MethodGet, "/lists", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			protectedEcho(verifier).ServeHTTP(recorder, request)

			require.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "Authentication required")

			// Every rejection must be byte-identical to the first one seen.
			if referenceBody == "" {
				referenceBody = recorder.Body.String()
			} else {
				assert.Equal(t, referenceBody, recorder.Body.String())
			}
		})
	}
}

/*
TestAuthenticate_AnonymousPassThrough verifies a request with no credentials
still reaches routes outside the protected scope.
*/
func TestAuthenticate_AnonymousPassThrough(t *testing.T) {
	verifier := &stubVerifier{}

	public := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Nil(t, ctxutil.GetAuthUser(request.Context()))
		writer.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
	recorder := httptest.NewRecorder()

	middleware.Authenticate(verifier)(public).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
