// Copyright (c) 2026 Freshlist. All rights reserved.

package list

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

// ListByUser returns every list owned by the user, newest first.
func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*List, error) {
	const query = `
		SELECT id, title, bestbefore, userid, createdat, updatedat
		FROM list
		WHERE userid = $1
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_list_repo_list_failed")
	}
	defer rows.Close()

	lists := make([]*List, 0)
	for rows.Next() {
		item := &List{}
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.BestBefore,
			&item.UserID,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "postgres_list_repo_scan_failed")
		}
		lists = append(lists, item)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_list_repo_rows_failed")
	}

	return lists, nil
}

// FindByID returns the list with the given ID if the user owns it.
func (repository *PostgresRepository) FindByID(ctx context.Context, userID, id string) (*List, error) {
	const query = `
		SELECT id, title, bestbefore, userid, createdat, updatedat
		FROM list
		WHERE id = $1 AND userid = $2`

	item := &List{}
	err := repository.pool.QueryRow(ctx, query, id, userID).Scan(
		&item.ID,
		&item.Title,
		&item.BestBefore,
		&item.UserID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("List")
		}
		return nil, dberr.Wrap(err, "postgres_list_repo_find_by_id_failed")
	}

	return item, nil
}

// Create persists a new list row.
func (repository *PostgresRepository) Create(ctx context.Context, list *List) error {
	const query = `
		INSERT INTO list (id, title, bestbefore, userid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $5)`

	now := time.Now()
	list.CreatedAt = now
	list.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		list.ID,
		list.Title,
		list.BestBefore,
		list.UserID,
		now,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_list_repo_create_failed")
	}

	return nil
}

// Update persists the list's mutable fields, scoped to the owning user.
func (repository *PostgresRepository) Update(ctx context.Context, list *List) error {
	const query = `
		UPDATE list
		SET title = $3, bestbefore = $4, updatedat = $5
		WHERE id = $1 AND userid = $2`

	list.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		list.ID,
		list.UserID,
		list.Title,
		list.BestBefore,
		list.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_list_repo_update_failed")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("List")
	}

	return nil
}

// Delete removes the list row. Cards under it go with it via ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM list WHERE id = $1 AND userid = $2`

	tag, err := repository.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "postgres_list_repo_delete_failed")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("List")
	}

	return nil
}
