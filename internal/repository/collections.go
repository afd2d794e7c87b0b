// Package repository provides PostgreSQL persistence for users, collections,
// cards, feedback, profiles and auth tokens.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
)

const collectionColumns = `id, title, description, user_id, created_at, updated_at`

// PostgresCollectionRepository stores collections in PostgreSQL.
type PostgresCollectionRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresCollectionRepository creates a new PostgresCollectionRepository.
func NewPostgresCollectionRepository(db *sql.DB) *PostgresCollectionRepository {
	return &PostgresCollectionRepository{DB: db}
}

// ListCollections returns every collection owned by userID in insertion order.
func (r *PostgresCollectionRepository) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+collectionColumns+` FROM collections WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListCollections: %w", err)
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCollections: %w", err)
	}
	return collections, nil
}

// CreateCollection inserts c unless its owner already holds limit collections,
// in which case common.ErrCollectionLimit is returned. The owner's user row is
// locked for the duration of the transaction so concurrent inserts cannot
// overshoot the limit.
func (r *PostgresCollectionRepository) CreateCollection(ctx context.Context, c models.Collection, limit int) (*models.Collection, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, c.UserID); err != nil {
		return nil, fmt.Errorf("lock owner: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM collections WHERE user_id = $1`, c.UserID).Scan(&count); err != nil {
		return nil, fmt.Errorf("count collections: %w", err)
	}
	if count >= limit {
		return nil, common.ErrCollectionLimit
	}

	created, err := scanCollection(tx.QueryRowContext(ctx, `
		INSERT INTO collections (title, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING `+collectionColumns,
		c.Title, c.Description, c.UserID))
	if err != nil {
		return nil, fmt.Errorf("insert collection: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

// DeleteCollection removes the collection (and, by cascade, its cards) and
// returns the deleted rows. An unknown or foreign id yields an empty slice.
func (r *PostgresCollectionRepository) DeleteCollection(ctx context.Context, userID string, id int64) ([]models.Collection, error) {
	rows, err := r.DB.QueryContext(ctx, `
		DELETE FROM collections WHERE id = $1 AND user_id = $2
		RETURNING `+collectionColumns,
		id, userID)
	if err != nil {
		return nil, fmt.Errorf("DeleteCollection: %w", err)
	}
	defer rows.Close()

	deleted := []models.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		deleted = append(deleted, *c)
	}
	return deleted, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCollection(s rowScanner) (*models.Collection, error) {
	var c models.Collection
	if err := s.Scan(&c.ID, &c.Title, &c.Description, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return &c, nil
}
