// Copyright (c) 2026 Freshlist. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshlist/freshlist/internal/auth"
	"github.com/freshlist/freshlist/internal/platform/apperr"
	"github.com/freshlist/freshlist/internal/platform/sec"
)

// # Test Fakes

// fakeUserRepository is an in-memory UserRepository keyed by username.
type fakeUserRepository struct {
	users     map[string]*auth.User
	createErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.users[user.Username]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	for _, user := range f.users {
		if user.ID == userID {
			user.PasswordHash = newHash
			return nil
		}
	}
	return apperr.NotFound("User")
}

// fakeThrottleRepository is an in-memory ThrottleRepository.
type fakeThrottleRepository struct {
	counts map[string]int64
	err    error
}

func newFakeThrottleRepository() *fakeThrottleRepository {
	return &fakeThrottleRepository{counts: make(map[string]int64)}
}

func (f *fakeThrottleRepository) Attempts(_ context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[key], nil
}

func (f *fakeThrottleRepository) RecordFailure(_ context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeThrottleRepository) Clear(_ context.Context, key string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.counts, key)
	return nil
}

// fakeTokenIssuer returns a deterministic token embedding the identity.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) IssueToken(userID, username string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID + "-" + username, nil
}

func newService() (*auth.Service, *fakeUserRepository, *fakeThrottleRepository) {
	users := newFakeUserRepository()
	throttle := newFakeThrottleRepository()
	service := auth.NewService(users, throttle, &fakeTokenIssuer{})
	return service, users, throttle
}

// # Sign-Up

/*
TestService_SignUp verifies registration stores a verifiable hash and issues
a token.
*/
func TestService_SignUp(t *testing.T) {
	service, users, _ := newService()

	token, err := service.SignUp(context.Background(), auth.SignUpInput{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	stored, err := users.FindByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "ana@example.com", stored.Email)

	// The plaintext never reaches storage; only its argon2id hash does.
	assert.NotContains(t, stored.PasswordHash, "hunter2hunter2")
	match, err := sec.VerifyPassword("hunter2hunter2", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, match)
}

/*
TestService_SignUp_NormalizesUsername verifies surrounding whitespace is
stripped before storage so sign-in with the clean name succeeds.
*/
func TestService_SignUp_NormalizesUsername(t *testing.T) {
	service, users, _ := newService()

	_, err := service.SignUp(context.Background(), auth.SignUpInput{
		Username: "  ana  ",
		Email:    "ana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = users.FindByUsername(context.Background(), "ana")
	assert.NoError(t, err)
}

/*
TestService_SignUp_DuplicateIsOpaque verifies a duplicate username surfaces
as a generic internal error, with no hint about which field collided.
*/
func TestService_SignUp_DuplicateIsOpaque(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	input := auth.SignUpInput{Username: "ana", Email: "ana@example.com", Password: "hunter2hunter2"}
	_, err := service.SignUp(ctx, input)
	require.NoError(t, err)

	_, err = service.SignUp(ctx, input)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.NotContains(t, ae.Message, "username")
	assert.NotContains(t, ae.Message, "duplicate")
}

/*
TestService_SignUp_EmptyPassword verifies the hasher's rejection propagates.
*/
func TestService_SignUp_EmptyPassword(t *testing.T) {
	service, _, _ := newService()

	_, err := service.SignUp(context.Background(), auth.SignUpInput{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

// # Sign-In

func signUpAna(t *testing.T, service *auth.Service) {
	t.Helper()
	_, err := service.SignUp(context.Background(), auth.SignUpInput{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
}

/*
TestService_SignIn verifies correct credentials yield a token and reset the
failure counter.
*/
func TestService_SignIn(t *testing.T) {
	service, _, throttle := newService()
	signUpAna(t, service)

	// A stale failure from earlier must be wiped by the success.
	throttle.counts["10.0.0.1:ana"] = 3

	token, err := service.SignIn(context.Background(), auth.SignInInput{
		Username:  "ana",
		Password:  "hunter2hunter2",
		IPAddress: "10.0.0.1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Zero(t, throttle.counts["10.0.0.1:ana"])
}

/*
TestService_SignIn_GenericRejection verifies an unknown username and a wrong
password are indistinguishable to the caller.
*/
func TestService_SignIn_GenericRejection(t *testing.T) {
	service, _, _ := newService()
	signUpAna(t, service)

	_, unknownUserErr := service.SignIn(context.Background(), auth.SignInInput{
		Username: "nobody", Password: "hunter2hunter2", IPAddress: "10.0.0.1",
	})
	require.Error(t, unknownUserErr)

	_, wrongPasswordErr := service.SignIn(context.Background(), auth.SignInInput{
		Username: "ana", Password: "wrong-password", IPAddress: "10.0.0.1",
	})
	require.Error(t, wrongPasswordErr)

	unknownAE := apperr.As(unknownUserErr)
	wrongAE := apperr.As(wrongPasswordErr)
	require.NotNil(t, unknownAE)
	require.NotNil(t, wrongAE)

	assert.Equal(t, unknownAE.Code, wrongAE.Code)
	assert.Equal(t, unknownAE.Message, wrongAE.Message)
	assert.Equal(t, unknownAE.HTTPStatus, wrongAE.HTTPStatus)
	assert.Equal(t, "UNAUTHORIZED", wrongAE.Code)
}

/*
TestService_SignIn_Throttle verifies repeated failures from one client lock
the username/IP pair out.
*/
func TestService_SignIn_Throttle(t *testing.T) {
	service, _, throttle := newService()
	signUpAna(t, service)
	ctx := context.Background()

	for i := 0; i < auth.SignInMaxAttempts; i++ {
		_, err := service.SignIn(ctx, auth.SignInInput{
			Username: "ana", Password: "wrong-password", IPAddress: "10.0.0.1",
		})
		require.Error(t, err)
	}
	assert.EqualValues(t, auth.SignInMaxAttempts, throttle.counts["10.0.0.1:ana"])

	// Even the correct password is refused while throttled.
	_, err := service.SignIn(ctx, auth.SignInInput{
		Username: "ana", Password: "hunter2hunter2", IPAddress: "10.0.0.1",
	})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RATE_LIMITED", ae.Code)

	// A different client IP is unaffected.
	token, err := service.SignIn(ctx, auth.SignInInput{
		Username: "ana", Password: "hunter2hunter2", IPAddress: "10.0.0.2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

/*
TestService_SignIn_ThrottleFailOpen verifies a throttle-store outage does not
take sign-in down with it.
*/
func TestService_SignIn_ThrottleFailOpen(t *testing.T) {
	service, _, throttle := newService()
	signUpAna(t, service)

	throttle.err = errors.New("redis: connection refused")

	token, err := service.SignIn(context.Background(), auth.SignInInput{
		Username: "ana", Password: "hunter2hunter2", IPAddress: "10.0.0.1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

/*
TestService_SignIn_CorruptHash verifies a corrupt stored hash surfaces as an
internal fault, never as "wrong credentials".
*/
func TestService_SignIn_CorruptHash(t *testing.T) {
	service, users, _ := newService()
	signUpAna(t, service)

	users.users["ana"].PasswordHash = "not-a-phc-string"

	_, err := service.SignIn(context.Background(), auth.SignInInput{
		Username: "ana", Password: "hunter2hunter2", IPAddress: "10.0.0.1",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
}
