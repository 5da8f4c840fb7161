package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/user-service/internal/domain"
)

const uniqueViolation = "23505"

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write collides with the email unique constraint.
	ErrDuplicateEmail = errors.New("email already exists")
)

// DBTX is the subset of pgx used by the repositories. *pgxpool.Pool,
// pgx.Tx and pgxmock pools all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository defines persistence access for users.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id string, update *domain.UserUpdate) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByEmail(ctx context.Context, email string) error
}

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, created_at, updated_at`

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM users WHERE id=$1`

	var user domain.User
	if err := scanUser(r.db.QueryRow(ctx, query, id), &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapWriteError(err)
}

func (r *userRepository) Update(ctx context.Context, id string, update *domain.UserUpdate) (*domain.User, error) {
	const query = `
        UPDATE users SET
            name=COALESCE($1, name),
            email=COALESCE($2, email),
            password_hash=COALESCE($3, password_hash),
            updated_at=$4
        WHERE id=$5
        RETURNING ` + userColumns

	var user domain.User
	err := scanUser(r.db.QueryRow(ctx, query,
		update.Name,
		update.Email,
		update.PasswordHash,
		update.UpdatedAt,
		id,
	), &user)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &user, nil
}

func (r *userRepository) DeleteByID(ctx context.Context, id string) error {
	return r.deleteWhere(ctx, `DELETE FROM users WHERE id=$1`, id)
}

func (r *userRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.deleteWhere(ctx, `DELETE FROM users WHERE email=$1`, email)
}

func (r *userRepository) deleteWhere(ctx context.Context, query string, arg string) error {
	cmd, err := r.db.Exec(ctx, query, arg)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}
