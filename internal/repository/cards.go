package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/models"
	"github.com/lib/pq"
)

const cardColumns = `id, collection_id, content, explanation, user_id, created_at, updated_at`

// PostgresCardRepository stores cards in PostgreSQL.
type PostgresCardRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresCardRepository creates a new PostgresCardRepository.
func NewPostgresCardRepository(db *sql.DB) *PostgresCardRepository {
	return &PostgresCardRepository{DB: db}
}

// ListCards returns the cards of one collection owned by userID.
func (r *PostgresCardRepository) ListCards(ctx context.Context, userID string, collectionID int64) ([]models.Card, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+cardColumns+` FROM cards WHERE collection_id = $1 AND user_id = $2 ORDER BY id
	`, collectionID, userID)
	if err != nil {
		return nil, fmt.Errorf("ListCards: %w", err)
	}
	return collectCards(rows)
}

// CreateCard inserts card into its collection. The parent collection must
// exist and belong to card.UserID (common.ErrNotFound otherwise) and must
// hold fewer than limit cards (common.ErrCardLimit otherwise).
func (r *PostgresCardRepository) CreateCard(ctx context.Context, card models.Card, limit int) (*models.Card, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var owner string
	err = tx.QueryRowContext(ctx, `
		SELECT user_id FROM collections WHERE id = $1 FOR UPDATE
	`, card.CollectionID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock collection: %w", err)
	}
	if owner != card.UserID {
		return nil, common.ErrNotFound
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE collection_id = $1`, card.CollectionID).Scan(&count); err != nil {
		return nil, fmt.Errorf("count cards: %w", err)
	}
	if count >= limit {
		return nil, common.ErrCardLimit
	}

	created, err := scanCard(tx.QueryRowContext(ctx, `
		INSERT INTO cards (collection_id, content, explanation, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+cardColumns,
		card.CollectionID, card.Content, card.Explanation, card.UserID))
	if err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

// UpdateCard replaces content and explanation and returns the updated rows.
func (r *PostgresCardRepository) UpdateCard(ctx context.Context, userID string, id int64, content, explanation string) ([]models.Card, error) {
	rows, err := r.DB.QueryContext(ctx, `
		UPDATE cards SET content = $1, explanation = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4
		RETURNING `+cardColumns,
		content, explanation, id, userID)
	if err != nil {
		return nil, fmt.Errorf("UpdateCard: %w", err)
	}
	return collectCards(rows)
}

// DeleteCards removes the cards with the given ids and returns the deleted rows.
func (r *PostgresCardRepository) DeleteCards(ctx context.Context, userID string, ids []int64) ([]models.Card, error) {
	rows, err := r.DB.QueryContext(ctx, `
		DELETE FROM cards WHERE user_id = $1 AND id = ANY($2)
		RETURNING `+cardColumns,
		userID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("DeleteCards: %w", err)
	}
	return collectCards(rows)
}

func collectCards(rows *sql.Rows) ([]models.Card, error) {
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return cards, nil
}

func scanCard(s rowScanner) (*models.Card, error) {
	var c models.Card
	if err := s.Scan(&c.ID, &c.CollectionID, &c.Content, &c.Explanation, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return &c, nil
}
