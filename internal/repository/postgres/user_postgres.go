package postgres

import (
	"context"
	"database/sql"

	"rxvault/internal/model"
	"rxvault/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (email, password_hash, user_details)
		VALUES ($1, $2, $3)
		RETURNING user_id, email, password_hash, user_details, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q, u.Email, u.PasswordHash, u.UserDetails)
	var out model.User
	if err := row.Scan(
		&out.ID,
		&out.Email,
		&out.PasswordHash,
		&out.UserDetails,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single user by id.
func (r *UserPostgres) FindByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
		SELECT user_id, email, password_hash, user_details, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.UserDetails,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes a user by id. The prescriptions foreign key cascades, so
// dependent rows disappear with the user.
func (r *UserPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
