// Copyright (c) 2026 Freshlist. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// SignInMaxAttempts is how many failed sign-ins a single client may make
	// against one username before being throttled.
	SignInMaxAttempts = 10

	// SignInAttemptWindow is how long the failed-attempt counter lives.
	// Successful sign-in clears it early.
	SignInAttemptWindow = 15 * time.Minute

	// UsernameMinLen and UsernameMaxLen bound the account name.
	UsernameMinLen = 3
	UsernameMaxLen = 32

	// PasswordMinLen is the minimum accepted password length.
	PasswordMinLen = 8
)
