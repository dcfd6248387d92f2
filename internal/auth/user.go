// Copyright (c) 2026 Freshlist. All rights reserved.

/*
Package auth implements the authentication core: account registration,
credential verification, and session token issuance.

# Architecture

  - Service: Orchestrates the sign-up and sign-in flows.
  - Repositories: Abstracted interfaces for Postgres (accounts) and Redis
    (sign-in throttle).
  - Security: argon2id password hashing and HMAC-signed session tokens,
    both provided by the platform sec package.

Everything downstream of this package trusts the identity the request gate
derives from the tokens issued here, so the rules in this package are the
ones protecting every user's data.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered account.
//
// The password never exists here in plain text: it is hashed at the
// transport boundary of the sign-up flow and only the opaque hash string
// crosses into persistence.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
}

// # Field Identifiers

// Field names for validation and response mapping in the authentication domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldToken    = "token"
)
