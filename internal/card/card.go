// Copyright (c) 2026 Freshlist. All rights reserved.

/*
Package card implements tracked product entries.

A card records one product inside a list: what it is, how much is left, and
when it expires. Cards are the unit clients sort and filter when deciding
what to consume next.

# Ownership

Cards carry both a list ID and the owner's user ID. Queries filter on the
user ID directly so a card can never leak across accounts even if a list ID
is guessed.
*/
package card

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ExpDateLayout is the wire format for expiry timestamps.
const ExpDateLayout = "2006-01-02 15:04:05"

// ExpDate is a timestamp that marshals using [ExpDateLayout] instead of
// RFC 3339.
type ExpDate time.Time

// MarshalJSON renders the timestamp in the wire layout.
func (d ExpDate) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Time(d).Format(ExpDateLayout))), nil
}

// UnmarshalJSON parses the wire layout.
func (d *ExpDate) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(ExpDateLayout, raw)
	if err != nil {
		return fmt.Errorf("exp_date_parse_failed: %w", err)
	}
	*d = ExpDate(parsed)
	return nil
}

// Time returns the underlying [time.Time].
func (d ExpDate) Time() time.Time {
	return time.Time(d)
}

// Card represents one tracked product inside a list.
type Card struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ExpDate   ExpDate   `json:"exp_date"`
	LeftCount float64   `json:"left_count"` // Remaining quantity in Units.
	Units     string    `json:"units"`      // Free-form unit label ("g", "pcs", "ml").
	ListID    string    `json:"list_id"`
	UserID    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle     = "title"
	FieldExpDate   = "exp_date"
	FieldLeftCount = "left_count"
	FieldUnits     = "units"
	FieldListID    = "list_id"
)

// Repository defines the data access contract for the card domain.
type Repository interface {
	// ListByUser returns one page of the user's cards ordered by expiry
	// date ascending, soonest-to-expire first, plus the total count.
	//
	// listID narrows the result to one list when non-empty.
	ListByUser(ctx context.Context, userID, listID string, limit, offset int) ([]*Card, int, error)

	// FindByID returns the card with the given ID if the user owns it.
	FindByID(ctx context.Context, userID, id string) (*Card, error)

	// Create persists a new card. The caller sets the ID.
	Create(ctx context.Context, card *Card) error

	// Update persists changes to the card's mutable fields, scoped to the
	// owning user.
	Update(ctx context.Context, card *Card) error

	// Delete removes the card.
	Delete(ctx context.Context, userID, id string) error
}
