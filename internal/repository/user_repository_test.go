package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-service/internal/domain"
)

const testUserID = "3f2b8c1e-8d4a-4e0b-9a57-2f1f0c9d6a11"

var columns = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

func setupRepository(t *testing.T) (UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return NewUserRepository(mock), mock
}

func TestUserRepository_List(t *testing.T) {
	repo, mock := setupRepository(t)
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	rows := pgxmock.NewRows(columns).
		AddRow(testUserID, "John", "john@example.com", "hash-1", ts, ts).
		AddRow("9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", "Jane", "jane@example.com", "hash-2", ts, ts)
	mock.ExpectQuery(`(?s)SELECT .+FROM users ORDER BY created_at, id`).WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, testUserID, users[0].ID)
	assert.Equal(t, "jane@example.com", users[1].Email)
	assert.Equal(t, ts, users[1].CreatedAt)
}

func TestUserRepository_ListEmpty(t *testing.T) {
	repo, mock := setupRepository(t)
	mock.ExpectQuery(`(?s)SELECT .+FROM users`).WillReturnRows(pgxmock.NewRows(columns))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mock := setupRepository(t)
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`(?s)SELECT .+FROM users WHERE id=\$1`).
		WithArgs(testUserID).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(testUserID, "John", "john@example.com", "hash", ts, ts))

	user, err := repo.GetByID(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, "John", user.Name)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery(`(?s)SELECT .+FROM users WHERE id=\$1`).
		WithArgs(testUserID).
		WillReturnRows(pgxmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), testUserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_GetByIDDBError(t *testing.T) {
	repo, mock := setupRepository(t)

	mock.ExpectQuery(`(?s)SELECT .+FROM users WHERE id=\$1`).
		WithArgs(testUserID).
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByID(context.Background(), testUserID)
	assert.EqualError(t, err, "db down")
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := setupRepository(t)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	user := domain.NewUser("John", "john@example.com", "hash", now)

	mock.ExpectQuery(`(?s)INSERT INTO users \(name, email, password_hash, created_at, updated_at\).+RETURNING id, created_at, updated_at`).
		WithArgs("John", "john@example.com", "hash", now, now).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(testUserID, now, now))

	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, testUserID, user.ID)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo, mock := setupRepository(t)
	now := time.Now()
	user := domain.NewUser("John", "john@example.com", "hash", now)

	mock.ExpectQuery(`(?s)INSERT INTO users`).
		WithArgs("John", "john@example.com", "hash", now, now).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Empty(t, user.ID)
}

func TestUserRepository_Update(t *testing.T) {
	repo, mock := setupRepository(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	now := created.Add(time.Hour)

	name := "Johnny"
	upd := domain.NewUserUpdate(now)
	upd.Name = &name

	mock.ExpectQuery(`(?s)UPDATE users SET.+name=COALESCE\(\$1, name\).+WHERE id=\$5.+RETURNING`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), now, testUserID).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(testUserID, "Johnny", "john@example.com", "hash", created, now))

	user, err := repo.Update(context.Background(), testUserID, upd)
	require.NoError(t, err)
	assert.Equal(t, "Johnny", user.Name)
	assert.Equal(t, created, user.CreatedAt)
	assert.Equal(t, now, user.UpdatedAt)
}

func TestUserRepository_UpdateErrors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		rows    *pgxmock.Rows
		wantErr error
	}{
		{name: "missing row", rows: pgxmock.NewRows(columns), wantErr: ErrNotFound},
		{name: "email taken", dbErr: &pgconn.PgError{Code: "23505"}, wantErr: ErrDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupRepository(t)
			email := "taken@example.com"
			upd := domain.NewUserUpdate(time.Now())
			upd.Email = &email

			exp := mock.ExpectQuery(`(?s)UPDATE users SET`).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), testUserID)
			if tt.rows != nil {
				exp.WillReturnRows(tt.rows)
			} else {
				exp.WillReturnError(tt.dbErr)
			}

			_, err := repo.Update(context.Background(), testUserID, upd)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserRepository_Delete(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		repo, mock := setupRepository(t)
		mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
			WithArgs(testUserID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.DeleteByID(context.Background(), testUserID))
	})

	t.Run("by id missing", func(t *testing.T) {
		repo, mock := setupRepository(t)
		mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
			WithArgs(testUserID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.DeleteByID(context.Background(), testUserID), ErrNotFound)
	})

	t.Run("by email", func(t *testing.T) {
		repo, mock := setupRepository(t)
		mock.ExpectExec(`DELETE FROM users WHERE email=\$1`).
			WithArgs("john@example.com").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.DeleteByEmail(context.Background(), "john@example.com"))
	})

	t.Run("by email db error", func(t *testing.T) {
		repo, mock := setupRepository(t)
		mock.ExpectExec(`DELETE FROM users WHERE email=\$1`).
			WithArgs("john@example.com").
			WillReturnError(errors.New("conn closed"))

		assert.EqualError(t, repo.DeleteByEmail(context.Background(), "john@example.com"), "conn closed")
	})
}
