// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

func TestConsumeRefreshToken_Success(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()
	repo := &refreshTokenRepository{db: db, logger: logger.Nop()}

	userID := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(`DELETE FROM refresh_tokens WHERE token_hash = \$1 AND expires_at > \$2 RETURNING user_id`).
		WithArgs("hash", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(userID.String()))

	token, err := repo.ConsumeRefreshToken(context.Background(), "hash", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.UserID != userID || token.TokenHash != "hash" {
		t.Errorf("unexpected token: %+v", token)
	}
}

func TestConsumeRefreshToken_NotFound(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()
	repo := &refreshTokenRepository{db: db, logger: logger.Nop()}

	mock.ExpectQuery("DELETE FROM refresh_tokens").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.ConsumeRefreshToken(context.Background(), "hash", time.Now())
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestDeleteExpiredRefreshTokens_ReturnsCount(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()
	repo := &refreshTokenRepository{db: db, logger: logger.Nop()}

	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE expires_at <= \$1`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpiredRefreshTokens(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 deleted rows, got %d", n)
	}
}

func TestSaveResetToken_Upsert(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()
	repo := &passwordResetRepository{db: db, logger: logger.Nop()}

	mock.ExpectExec(`INSERT INTO password_reset_tokens (.+) ON CONFLICT \(user_id\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveResetToken(context.Background(), models.PasswordResetToken{
		UserID:    uuid.New(),
		TokenHash: "hash",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResetPassword_Success(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()
	repo := &passwordResetRepository{db: db, logger: logger.Nop()}

	userID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE password_reset_tokens SET used_at = \$1 WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET updated_at = \$1, password_hash = \$2 WHERE id = \$3`).
		WithArgs(sqlmock.AnyArg(), "new-hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE user_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := repo.ResetPassword(context.Background(), userID, "hash", "new-hash", time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestResetPassword_TokenNotConsumedRollsBack(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()
	repo := &passwordResetRepository{db: db, logger: logger.Nop()}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE password_reset_tokens").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ResetPassword(context.Background(), uuid.New(), "hash", "new-hash", time.Now())
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestResetPassword_BeginFails(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()
	repo := &passwordResetRepository{db: db, logger: logger.Nop()}

	mock.ExpectBegin().WillReturnError(pgError(pgerrcode.CannotConnectNow))

	err := repo.ResetPassword(context.Background(), uuid.New(), "hash", "new-hash", time.Now())
	if !errors.Is(err, ErrBeginningTransaction) || !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected unavailable begin error, got %v", err)
	}
}

func TestWithTx_PanicRollsBack(t *testing.T) {
	db, mock, conn := newMockDB(t)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic to be rethrown")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	}()

	_ = db.WithTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		panic("boom")
	})
}
