// Copyright (c) 2026 Freshlist. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/freshlist/freshlist/internal/platform/apperr"
	"github.com/freshlist/freshlist/internal/platform/ctxutil"
	"github.com/freshlist/freshlist/internal/platform/sec"
	"github.com/freshlist/freshlist/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer defines the contract for generating session tokens.
type TokenIssuer interface {
	// IssueToken creates a signed session token for the given identity.
	IssueToken(userID, username string) (string, error)
}

// Service implements the sign-up and sign-in use cases.
//
// # Review Process
//
// This service is critical for security. Any change to hashing, registration,
// or sign-in logic needs a second pair of eyes.
type Service struct {
	users    UserRepository
	throttle ThrottleRepository
	tokens   TokenIssuer
}

// NewService constructs an authentication [Service] with its dependencies.
func NewService(users UserRepository, throttle ThrottleRepository, tokens TokenIssuer) *Service {
	return &Service{
		users:    users,
		throttle: throttle,
		tokens:   tokens,
	}
}

// # Registration Flow

// SignUpInput holds the data required to enroll a new account.
type SignUpInput struct {
	Username string
	Email    string
	Password string
}

// SignUp hashes the password, persists a new account, and issues its first
// session token.
//
// Any store failure, a duplicate username or email included, maps to one
// generic internal error: the flow does not reveal which field collided.
//
// The account insert commits independently of token issuance. If the process
// dies between the two, the account exists with no token; the user recovers
// by signing in.
func (service *Service) SignUp(ctx context.Context, input SignUpInput) (string, error) {

	// Hash before touching the store so the plaintext never travels further.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	user := &User{
		ID:           uuidv7.New(),
		Username:     canonicalUsername(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hashedPassword,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_sign_up_failed: %w", err))
	}

	token, err := service.tokens.IssueToken(user.ID, user.Username)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_token_issue_failed: %w", err))
	}

	return token, nil
}

// # Authentication Flow

// SignInInput defines credentials for an authentication attempt.
type SignInInput struct {
	Username  string
	Password  string
	IPAddress string
}

// SignIn validates credentials and issues a session token.
//
// An unknown username and a wrong password produce byte-identical responses
// to prevent account enumeration. Password verification always completes
// before any token work begins.
func (service *Service) SignIn(ctx context.Context, input SignInInput) (string, error) {
	username := canonicalUsername(input.Username)
	throttleKey := input.IPAddress + ":" + username

	// Throttle before doing any credential work. A throttle-store outage
	// fails open: sign-in availability wins over lockout bookkeeping.
	attempts, err := service.throttle.Attempts(ctx, throttleKey)
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("signin_throttle_unavailable", slog.Any("error", err))
	} else if attempts >= SignInMaxAttempts {
		return "", apperr.RateLimited(int(SignInAttemptWindow.Seconds()))
	}

	user, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		// Unknown username. Same rejection as a wrong password.
		service.noteFailure(ctx, throttleKey)
		return "", apperr.Unauthorized("Wrong credentials")
	}

	match, err := sec.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		// Corrupt stored hash. This is an internal fault, not a credential
		// mismatch, and must never read as "wrong password".
		return "", err
	}

	if !match {
		service.noteFailure(ctx, throttleKey)
		return "", apperr.Unauthorized("Wrong credentials")
	}

	if err := service.throttle.Clear(ctx, throttleKey); err != nil {
		ctxutil.GetLogger(ctx).Warn("signin_throttle_clear_failed", slog.Any("error", err))
	}

	token, err := service.tokens.IssueToken(user.ID, user.Username)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth_service_token_issue_failed: %w", err))
	}

	return token, nil
}

// noteFailure bumps the failed-attempt counter, ignoring throttle-store
// outages (fail open).
func (service *Service) noteFailure(ctx context.Context, key string) {
	if _, err := service.throttle.RecordFailure(ctx, key); err != nil {
		ctxutil.GetLogger(ctx).Warn("signin_throttle_record_failed", slog.Any("error", err))
	}
}

// canonicalUsername trims and NFC-normalizes a username so that visually
// identical names map to one stored byte sequence.
func canonicalUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}
