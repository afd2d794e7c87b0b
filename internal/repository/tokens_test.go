package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/VocabDeck/internal/common"
)

func setupTokenMock(t *testing.T) (*PostgresTokenRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	return NewPostgresTokenRepository(db), mock, func() { db.Close() }
}

func TestRevokeAndCheck(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	exp := time.Now().Add(time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO revoked_tokens (jti, expires_at) VALUES ($1, $2) ON CONFLICT DO NOTHING`)).
		WithArgs("jti-1", exp).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1)`)).
		WithArgs("jti-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if err := repo.RevokeToken(context.Background(), "jti-1", exp); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	revoked, err := repo.IsRevoked(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Error("expected token to be revoked")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestIsRevoked_Error(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("j").WillReturnError(errors.New("query failed"))

	if _, err := repo.IsRevoked(context.Background(), "j"); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestConsumeReset(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	exp := time.Now().Add(time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM password_resets WHERE token = $1 RETURNING user_id, expires_at`)).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at"}).AddRow("u1", exp))

	userID, gotExp, err := repo.ConsumeReset(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "u1" || !gotExp.Equal(exp) {
		t.Errorf("got (%q, %v)", userID, gotExp)
	}
}

func TestConsumeReset_Unknown(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	mock.ExpectQuery(`DELETE FROM password_resets`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	if _, _, err := repo.ConsumeReset(context.Background(), "nope"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateReset(t *testing.T) {
	repo, mock, cleanup := setupTokenMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO password_resets (token, user_id, expires_at) VALUES ($1, $2, $3)`)).
		WithArgs("tok", "u1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CreateReset(context.Background(), "tok", "u1", time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
