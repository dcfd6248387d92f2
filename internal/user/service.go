// Copyright (c) 2026 Freshlist. All rights reserved.

/*
Package user implements self-service account management for the signed-in
user: reading the own profile and rotating the password.

It deliberately reuses the auth domain's [auth.User] entity and repository
rather than defining a parallel account model.
*/
package user

import (
	"context"

	"github.com/freshlist/freshlist/internal/auth"
	"github.com/freshlist/freshlist/internal/platform/apperr"
	"github.com/freshlist/freshlist/internal/platform/sec"
)

// AccountDirectory is the slice of the auth store this service needs.
type AccountDirectory interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
	UpdatePassword(ctx context.Context, userID, newHash string) error
}

// Service orchestrates profile reads and password changes.
type Service struct {
	accounts AccountDirectory
}

// NewService constructs a user [Service].
func NewService(accounts AccountDirectory) *Service {
	return &Service{accounts: accounts}
}

// Current returns the signed-in user's profile.
func (service *Service) Current(ctx context.Context, userID string) (*auth.User, error) {
	return service.accounts.FindByID(ctx, userID)
}

// ChangePasswordInput carries a password rotation request.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// ChangePassword verifies the current password and stores a fresh hash of
// the new one.
//
// A wrong current password gets the same generic rejection as a failed
// sign-in.
func (service *Service) ChangePassword(ctx context.Context, userID string, input ChangePasswordInput) error {
	account, err := service.accounts.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	match, err := sec.VerifyPassword(input.OldPassword, account.PasswordHash)
	if err != nil {
		return err
	}
	if !match {
		return apperr.Unauthorized("Wrong credentials")
	}

	newHash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return service.accounts.UpdatePassword(ctx, userID, newHash)
}
