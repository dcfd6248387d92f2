// Copyright (c) 2026 Freshlist. All rights reserved.

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername returns the account with the given unique username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new user account.
	//
	// Uniqueness of username and email is owned by the store. Any failure,
	// constraint violation included, surfaces as a generic storage error:
	// the sign-up flow must not be able to tell which field collided.
	Create(ctx context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(ctx context.Context, userID, newHash string) error
}

// # Sign-in Throttle

// ThrottleRepository tracks failed sign-in attempts per client/username pair.
//
// The counter is volatile: it expires on its own, and losing it only
// relaxes throttling, never correctness.
type ThrottleRepository interface {
	// Attempts returns the current failed-attempt count for the key.
	Attempts(ctx context.Context, key string) (int64, error)

	// RecordFailure increments the counter, starting the expiry window on
	// the first failure, and returns the new count.
	RecordFailure(ctx context.Context, key string) (int64, error)

	// Clear removes the counter after a successful sign-in.
	Clear(ctx context.Context, key string) error
}
