package repository

import (
	"context"

	"rxvault/internal/model"
)

// UserRepository is the administrative maintenance surface for the users
// table. It is not exposed over HTTP; deleting a user cascades to that
// user's prescriptions at the database level.
type UserRepository interface {
	// Create inserts a new user and returns the stored record.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by id, or sql.ErrNoRows if absent.
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// Delete removes a user by id. Dependent prescription rows are removed
	// by the ON DELETE CASCADE constraint.
	Delete(ctx context.Context, id int64) error
}
