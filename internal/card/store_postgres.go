// Copyright (c) 2026 Freshlist. All rights reserved.

package card

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freshlist/freshlist/internal/platform/apperr"
	"github.com/freshlist/freshlist/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByUser returns one page of the user's cards, soonest expiry first.
func (repository *PostgresRepository) ListByUser(ctx context.Context, userID, listID string, limit, offset int) ([]*Card, int, error) {
	// The optional list filter keeps one query shape; $2 = '' disables it.
	const query = `
		SELECT id, title, expdate, leftcount, units, listid, userid,
		       createdat, updatedat, COUNT(*) OVER() AS total
		FROM card
		WHERE userid = $1 AND ($2 = '' OR listid = $2::uuid)
		ORDER BY expdate ASC, id ASC
		LIMIT $3 OFFSET $4`

	rows, err := repository.pool.Query(ctx, query, userID, listID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_card_repo_list_failed")
	}
	defer rows.Close()

	cards := make([]*Card, 0)
	total := 0
	for rows.Next() {
		item := &Card{}
		var expiry time.Time
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&expiry,
			&item.LeftCount,
			&item.Units,
			&item.ListID,
			&item.UserID,
			&item.CreatedAt,
			&item.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_card_repo_scan_failed")
		}
		item.ExpDate = ExpDate(expiry)
		cards = append(cards, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_card_repo_rows_failed")
	}

	return cards, total, nil
}

// FindByID returns the card with the given ID if the user owns it.
func (repository *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*Card, error) {
	const query = `
		SELECT id, title, expdate, leftcount, units, listid, userid,
		       createdat, updatedat
		FROM card
		WHERE id = $1 AND userid = $2`

	item := &Card{}
	var expiry time.Time
	err := repository.pool.QueryRow(ctx, query, id, userID).Scan(
		&item.ID,
		&item.Title,
		&expiry,
		&item.LeftCount,
		&item.Units,
		&item.ListID,
		&item.UserID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Card")
		}
		return nil, dberr.Wrap(err, "postgres_card_repo_find_by_id_failed")
	}

	item.ExpDate = ExpDate(expiry)
	return item, nil
}

// Create persists a new card row.
func (repository *PostgresRepository) Create(ctx context.Context, card *Card) error {
	const query = `
		INSERT INTO card (id, title, expdate, leftcount, units, listid, userid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

	now := time.Now()
	card.CreatedAt = now
	card.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		card.ID,
		card.Title,
		card.ExpDate.Time(),
		card.LeftCount,
		card.Units,
		card.ListID,
		card.UserID,
		now,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_card_repo_create_failed")
	}

	return nil
}

// Update persists the card's mutable fields, scoped to the owning user.
func (repository *PostgresRepository) Update(ctx context.Context, card *Card) error {
	const query = `
		UPDATE card
		SET title = $3, expdate = $4, leftcount = $5, units = $6, listid = $7, updatedat = $8
		WHERE id = $1 AND userid = $2`

	card.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		card.ID,
		card.UserID,
		card.Title,
		card.ExpDate.Time(),
		card.LeftCount,
		card.Units,
		card.ListID,
		card.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_card_repo_update_failed")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Card")
	}

	return nil
}

// Delete removes the card row.
func (repository *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM card WHERE id = $1 AND userid = $2`

	tag, err := repository.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "postgres_card_repo_delete_failed")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Card")
	}

	return nil
}
