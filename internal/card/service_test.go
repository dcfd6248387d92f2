// Copyright (c) 2026 Freshlist. All rights reserved.

package card_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshlist/freshlist/internal/card"
	"github.com/freshlist/freshlist/internal/list"
	"github.com/freshlist/freshlist/internal/platform/apperr"
	"github.com/freshlist/freshlist/pkg/pagination"
)

// # Test Fakes

// fakeCardRepository is an in-memory card store keyed by card ID.
type fakeCardRepository struct {
	cards map[string]*card.Card
}

func newFakeCardRepository() *fakeCardRepository {
	return &fakeCardRepository{cards: make(map[string]*card.Card)}
}

func (f *fakeCardRepository) ListByUser(_ context.Context, userID, listID string, limit, offset int) ([]*card.Card, int, error) {
	matches := make([]*card.Card, 0)
	for _, item := range f.cards {
		if item.UserID != userID {
			continue
		}
		if listID != "" && item.ListID != listID {
			continue
		}
		matches = append(matches, item)
	}

	total := len(matches)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matches[offset:end], total, nil
}

func (f *fakeCardRepository) FindByID(_ context.Context, userID, id string) (*card.Card, error) {
	item, ok := f.cards[id]
	if !ok || item.UserID != userID {
		return nil, apperr.NotFound("Card")
	}
	return item, nil
}

func (f *fakeCardRepository) Create(_ context.Context, item *card.Card) error {
	f.cards[item.ID] = item
	return nil
}

func (f *fakeCardRepository) Update(_ context.Context, item *card.Card) error {
	existing, ok := f.cards[item.ID]
	if !ok || existing.UserID != item.UserID {
		return apperr.NotFound("Card")
	}
	f.cards[item.ID] = item
	return nil
}

func (f *fakeCardRepository) Delete(_ context.Context, userID, id string) error {
	item, ok := f.cards[id]
	if !ok || item.UserID != userID {
		return apperr.NotFound("Card")
	}
	delete(f.cards, id)
	return nil
}

// fakeListResolver owns a fixed set of (userID, listID) pairs.
type fakeListResolver struct {
	owned map[string]string // listID -> userID
}

func (f *fakeListResolver) Get(_ context.Context, userID, id string) (*list.List, error) {
	if owner, ok := f.owned[id]; ok && owner == userID {
		return &list.List{ID: id, UserID: userID}, nil
	}
	return nil, apperr.NotFound("List")
}

func newCardService() (*card.Service, *fakeCardRepository, *fakeListResolver) {
	cards := newFakeCardRepository()
	lists := &fakeListResolver{owned: map[string]string{"list-1": "user-1", "list-2": "user-2"}}
	return card.NewService(cards, lists), cards, lists
}

func expiry(t *testing.T) card.ExpDate {
	t.Helper()
	parsed, err := time.Parse(card.ExpDateLayout, "2026-03-01 18:30:00")
	require.NoError(t, err)
	return card.ExpDate(parsed)
}

// # Service Tests

/*
TestService_Create verifies a card lands in the user's own list.
*/
func TestService_Create(t *testing.T) {
	service, _, _ := newCardService()

	item, err := service.Create(context.Background(), "user-1", card.Input{
		Title:     "Milk",
		ExpDate:   expiry(t),
		LeftCount: 1.5,
		Units:     "l",
		ListID:    "list-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "user-1", item.UserID)
	assert.Equal(t, "Milk", item.Title)
}

/*
TestService_Create_ForeignList verifies a card cannot be created under a
list the user does not own.
*/
func TestService_Create_ForeignList(t *testing.T) {
	service, cards, _ := newCardService()

	_, err := service.Create(context.Background(), "user-1", card.Input{
		Title:   "Milk",
		ExpDate: expiry(t),
		ListID:  "list-2", // belongs to user-2
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Empty(t, cards.cards)
}

/*
TestService_CrossUserIsolation verifies one user can never read or delete
another user's card even with a known ID.
*/
func TestService_CrossUserIsolation(t *testing.T) {
	service, _, _ := newCardService()
	ctx := context.Background()

	item, err := service.Create(ctx, "user-1", card.Input{
		Title: "Milk", ExpDate: expiry(t), ListID: "list-1",
	})
	require.NoError(t, err)

	_, err = service.Get(ctx, "user-2", item.ID)
	assert.Error(t, err)

	err = service.Delete(ctx, "user-2", item.ID)
	assert.Error(t, err)

	// Still reachable by the owner.
	_, err = service.Get(ctx, "user-1", item.ID)
	assert.NoError(t, err)
}

/*
TestService_ListForUser verifies pagination metadata matches the full count
while the page itself is clipped.
*/
func TestService_ListForUser(t *testing.T) {
	service, _, _ := newCardService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := service.Create(ctx, "user-1", card.Input{
			Title: "Item", ExpDate: expiry(t), ListID: "list-1",
		})
		require.NoError(t, err)
	}

	page, meta, err := service.ListForUser(ctx, "user-1", "", pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}

/*
TestService_Update_MoveToForeignList verifies a card cannot be moved into
another user's list.
*/
func TestService_Update_MoveToForeignList(t *testing.T) {
	service, _, _ := newCardService()
	ctx := context.Background()

	item, err := service.Create(ctx, "user-1", card.Input{
		Title: "Milk", ExpDate: expiry(t), ListID: "list-1",
	})
	require.NoError(t, err)

	_, err = service.Update(ctx, "user-1", item.ID, card.Input{
		Title: "Milk", ExpDate: expiry(t), ListID: "list-2",
	})
	require.Error(t, err)
}

// # Wire Format

/*
TestExpDate_WireFormat verifies the expiry timestamp round-trips through its
space-separated layout rather than RFC 3339.
*/
func TestExpDate_WireFormat(t *testing.T) {
	encoded, err := json.Marshal(expiry(t))
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01 18:30:00"`, string(encoded))

	var decoded card.ExpDate
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, expiry(t).Time().Equal(decoded.Time()))

	assert.Error(t, json.Unmarshal([]byte(`"2026-03-01T18:30:00Z"`), &decoded))
}
