// Copyright (c) 2026 Freshlist. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, JWT
// signing) from the domain logic. It acts as an Infrastructure service
// injected into the Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a session token.
//
// # Why custom claims?
//
// By embedding the UserID and Username directly inside the token, the
// request gate can reconstruct the active user context WITHOUT querying the
// database on every single API request. The claims are immutable once
// signed; the token itself is the only record of the session.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the token payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// TokenService handles generation and verification of session tokens using HS256.
//
// Issuance is stateless: no record of an issued token is kept server-side,
// which trades individual revocation for horizontal scalability. A token dies
// when its expiry elapses or its signature fails to verify, never earlier.
type TokenService struct {
	secret   []byte
	issuer   string
	lifetime time.Duration

	// now is swapped out in tests to pin the clock.
	now func() time.Time
}

// NewTokenService creates a new TokenService from the injected configuration.
//
// A blank secret or non-positive lifetime is a configuration error: callers
// must treat it as fatal at startup rather than handle it per request.
func NewTokenService(secret string, lifetimeDays int, issuer string) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("sec: signing secret must not be blank")
	}

	if lifetimeDays <= 0 {
		return nil, fmt.Errorf("sec: token lifetime must be positive, got %d days", lifetimeDays)
	}

	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		lifetime: time.Duration(lifetimeDays) * 24 * time.Hour,
		now:      time.Now,
	}, nil
}

// IssueToken creates a new signed session token for a verified identity.
func (service *TokenService) IssueToken(userID, username string) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.lifetime)),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a session token string.
//
// The signing method is pinned to HS256: a token whose header claims any
// other algorithm (including "none") is rejected before its signature is
// even considered, making algorithm-confusion structurally impossible.
// Expiry is checked against the service clock as part of claim validation.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(service.now),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}

// Lifetime returns the configured token time-to-live.
func (service *TokenService) Lifetime() time.Duration {
	return service.lifetime
}
