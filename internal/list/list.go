// Copyright (c) 2026 Freshlist. All rights reserved.

/*
Package list implements the pantry list domain.

A list groups cards (tracked products) under one shelf-life policy. The
BestBefore field is the list's default warning horizon in days, used by
clients to flag cards approaching expiry.

# Ownership

Every list belongs to exactly one account. All queries are scoped by the
owner's user ID, so one user can never read or mutate another user's lists.
*/
package list

import (
	"context"
	"time"
)

// List represents a named group of tracked products.
type List struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	BestBefore int       `json:"best_before"` // Warning horizon in days.
	UserID     string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle      = "title"
	FieldBestBefore = "best_before"
)

// Repository defines the data access contract for the list domain.
//
// # Architecture
//
// The interface lives here because the service layer is its consumer; the
// Postgres implementation lives alongside in store_postgres.go.
type Repository interface {
	// ListByUser returns every list owned by the user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*List, error)

	// FindByID returns the list with the given ID if the user owns it.
	//
	// It returns apperr.NotFound both when the list is absent and when it
	// belongs to someone else.
	FindByID(ctx context.Context, userID, id string) (*List, error)

	// Create persists a new list. The caller sets the ID.
	Create(ctx context.Context, list *List) error

	// Update persists changes to the list's mutable fields, scoped to the
	// owning user.
	Update(ctx context.Context, list *List) error

	// Delete removes the list and, via the schema's cascade, its cards.
	Delete(ctx context.Context, userID, id string) error
}
