// Copyright (c) 2026 Freshlist. All rights reserved.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freshlist/freshlist/internal/platform/apperr"
	"github.com/freshlist/freshlist/internal/platform/constants"
	"github.com/freshlist/freshlist/internal/platform/ctxutil"
	"github.com/freshlist/freshlist/internal/platform/respond"
	"github.com/freshlist/freshlist/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the gate from the [sec.TokenService]
// implementation, allowing mocks to be injected during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// authRejection is the single response body for every gate failure.
//
// A missing header, a malformed token, a bad signature, a rejected algorithm,
// and an expired claim are indistinguishable from the outside: responding
// differently per failure would hand probing clients an oracle. The specific
// reason is logged server-side only.
var authRejection = apperr.Unauthorized("Authentication required")

// Authenticate extracts and verifies the bearer token from the Authorization
// header. This is the identity-enforcement point for the whole API.
//
// # Flow
//
//  1. No Authorization header: the request proceeds as anonymous. Routes in
//     the protected scope are then stopped by [RequireAuth]; public routes
//     (sign-up, sign-in, health) stay reachable, otherwise nobody could ever
//     obtain a first token.
//  2. A present but unusable header (bad scheme, malformed token, invalid or
//     mis-algorithm signature, expired claims) terminates the request with
//     the uniform rejection.
//  3. On success the decoded [*sec.AuthClaims] are attached to the request
//     context under a typed key for downstream ownership scoping.
//
// Each evaluation is independent: the gate holds no cross-request state.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Scheme Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				logGateFailure(request, "malformed_authorization_header", nil)
				respond.Error(writer, request, authRejection)
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				// Expired tokens are worth telling apart from tampered ones in
				// the logs. The client sees no difference.
				reason := "token_invalid"
				if errors.Is(err, jwt.ErrTokenExpired) {
					reason = "token_expired"
				}
				logGateFailure(request, reason, err)
				respond.Error(writer, request, authRejection)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It defines the
// protected scope: everything it wraps needs a valid bearer token.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			logGateFailure(request, "missing_credentials", nil)
			respond.Error(writer, request, authRejection)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// logGateFailure records the internal reason for a gate rejection.
func logGateFailure(request *http.Request, reason string, err error) {
	logger := ctxutil.GetLogger(request.Context())
	attrs := []any{
		slog.String("reason", reason),
		slog.String("path", request.URL.Path),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	logger.WarnContext(request.Context(), "auth_gate_rejected", attrs...)
}
