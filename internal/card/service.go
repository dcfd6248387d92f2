// Copyright (c) 2026 Freshlist. All rights reserved.

package card

import (
	"context"
	"strings"

	"github.com/freshlist/freshlist/internal/list"
	"github.com/freshlist/freshlist/pkg/pagination"
	"github.com/freshlist/freshlist/pkg/uuidv7"
)

// # Service Layer

// ListResolver is the slice of the list domain the card service needs:
// confirming that a target list exists and belongs to the user.
type ListResolver interface {
	Get(ctx context.Context, userID, id string) (*list.List, error)
}

// Service orchestrates business logic for product cards.
type Service struct {
	cards Repository
	lists ListResolver
}

// NewService constructs a card [Service].
func NewService(cards Repository, lists ListResolver) *Service {
	return &Service{cards: cards, lists: lists}
}

// ListForUser returns one page of the user's cards, soonest expiry first,
// optionally narrowed to a single list.
func (service *Service) ListForUser(ctx context.Context, userID, listID string, params pagination.Params) ([]*Card, pagination.Meta, error) {
	cards, total, err := service.cards.ListByUser(ctx, userID, listID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return cards, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Get returns one card owned by the user.
func (service *Service) Get(ctx context.Context, userID, id string) (*Card, error) {
	return service.cards.FindByID(ctx, userID, id)
}

// Input defines the fields accepted when creating or replacing a card.
type Input struct {
	Title     string
	ExpDate   ExpDate
	LeftCount float64
	Units     string
	ListID    string
}

// Create persists a new card for the user and returns it.
//
// The target list must belong to the same user; a foreign or missing list
// surfaces as the list's not-found error.
func (service *Service) Create(ctx context.Context, userID string, input Input) (*Card, error) {
	if _, err := service.lists.Get(ctx, userID, input.ListID); err != nil {
		return nil, err
	}

	item := &Card{
		ID:        uuidv7.New(),
		Title:     strings.TrimSpace(input.Title),
		ExpDate:   input.ExpDate,
		LeftCount: input.LeftCount,
		Units:     strings.TrimSpace(input.Units),
		ListID:    input.ListID,
		UserID:    userID,
	}

	if err := service.cards.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Update replaces the card's mutable fields and returns the updated card.
//
// Moving a card to another list re-checks ownership of the target list.
func (service *Service) Update(ctx context.Context, userID, id string, input Input) (*Card, error) {
	item, err := service.cards.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.ListID != item.ListID {
		if _, err := service.lists.Get(ctx, userID, input.ListID); err != nil {
			return nil, err
		}
	}

	item.Title = strings.TrimSpace(input.Title)
	item.ExpDate = input.ExpDate
	item.LeftCount = input.LeftCount
	item.Units = strings.TrimSpace(input.Units)
	item.ListID = input.ListID

	if err := service.cards.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes the card.
func (service *Service) Delete(ctx context.Context, userID, id string) error {
	return service.cards.Delete(ctx, userID, id)
}
