package repository

import (
	"context"

	"rxvault/internal/model"
)

// PrescriptionRepository defines data access for prescription metadata.
// No business logic here, strictly persistence operations.
//
// Prescriptions have no update or single-row delete operations: rows are
// created by the upload workflow and removed only by the user cascade.
type PrescriptionRepository interface {
	// Create inserts a new prescription row and returns the stored record,
	// including the database-assigned id.
	Create(ctx context.Context, p *model.Prescription) (*model.Prescription, error)

	// ListByUser returns every prescription owned by the given user, in
	// database-default order. It returns an empty slice, not an error, when
	// the user has no rows or does not exist.
	ListByUser(ctx context.Context, userID int64) ([]model.Prescription, error)
}
