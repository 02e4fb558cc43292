package mocks

import (
	"context"

	"rxvault/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockPrescriptionRepository struct {
	mock.Mock
}

func (m *MockPrescriptionRepository) Create(ctx context.Context, p *model.Prescription) (*model.Prescription, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) ListByUser(ctx context.Context, userID int64) ([]model.Prescription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Prescription), args.Error(1)
}
