package postgres

import (
	"context"
	"database/sql"

	"rxvault/internal/model"
	"rxvault/internal/repository"
)

// PrescriptionPostgres is a PostgreSQL implementation of
// repository.PrescriptionRepository using database/sql with parameterized
// queries.
type PrescriptionPostgres struct {
	db *sql.DB
}

// NewPrescriptionPostgres creates a new PrescriptionPostgres repository.
func NewPrescriptionPostgres(db *sql.DB) *PrescriptionPostgres {
	return &PrescriptionPostgres{db: db}
}

var _ repository.PrescriptionRepository = (*PrescriptionPostgres)(nil)

// Create inserts a new prescription row and returns the stored record.
func (r *PrescriptionPostgres) Create(ctx context.Context, p *model.Prescription) (*model.Prescription, error) {
	const q = `
		INSERT INTO prescriptions (user_id, clinic_name, filename, description, date, file_link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING prescription_id, user_id, clinic_name, filename, description, date, file_link
	`
	row := r.db.QueryRowContext(ctx, q,
		p.UserID,
		p.ClinicName,
		p.Filename,
		p.Description,
		p.Date,
		p.FileLink,
	)
	var out model.Prescription
	if err := row.Scan(
		&out.ID,
		&out.UserID,
		&out.ClinicName,
		&out.Filename,
		&out.Description,
		&out.Date,
		&out.FileLink,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByUser returns all prescriptions for a user. Unknown users simply
// match no rows and yield an empty slice.
func (r *PrescriptionPostgres) ListByUser(ctx context.Context, userID int64) ([]model.Prescription, error) {
	const q = `
		SELECT prescription_id, user_id, clinic_name, filename, description, date, file_link
		FROM prescriptions
		WHERE user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Prescription, 0)
	for rows.Next() {
		var p model.Prescription
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.ClinicName,
			&p.Filename,
			&p.Description,
			&p.Date,
			&p.FileLink,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
