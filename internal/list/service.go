// Copyright (c) 2026 Freshlist. All rights reserved.

package list

import (
	"context"
	"strings"

	"github.com/freshlist/freshlist/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for pantry lists.
type Service struct {
	lists Repository
}

// NewService constructs a list [Service].
func NewService(lists Repository) *Service {
	return &Service{lists: lists}
}

// ListForUser returns all lists owned by the user.
func (service *Service) ListForUser(ctx context.Context, userID string) ([]*List, error) {
	return service.lists.ListByUser(ctx, userID)
}

// Get returns one list owned by the user.
func (service *Service) Get(ctx context.Context, userID, id string) (*List, error) {
	return service.lists.FindByID(ctx, userID, id)
}

// CreateInput defines the fields accepted when creating a list.
type CreateInput struct {
	Title      string
	BestBefore int
}

// Create persists a new list for the user and returns it.
func (service *Service) Create(ctx context.Context, userID string, input CreateInput) (*List, error) {
	item := &List{
		ID:         uuidv7.New(),
		Title:      strings.TrimSpace(input.Title),
		BestBefore: input.BestBefore,
		UserID:     userID,
	}

	if err := service.lists.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateInput defines the mutable fields of a list.
type UpdateInput struct {
	Title      string
	BestBefore int
}

// Update replaces the list's mutable fields and returns the updated list.
func (service *Service) Update(ctx context.Context, userID, id string, input UpdateInput) (*List, error) {
	item, err := service.lists.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	item.Title = strings.TrimSpace(input.Title)
	item.BestBefore = input.BestBefore

	if err := service.lists.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes the list and its cards.
func (service *Service) Delete(ctx context.Context, userID, id string) error {
	return service.lists.Delete(ctx, userID, id)
}
