package mocks

import (
	"context"

	"rxvault/internal/model"
	"rxvault/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockPrescriptionService struct {
	mock.Mock
}

func (m *MockPrescriptionService) Upload(ctx context.Context, in service.UploadInput) (*model.Prescription, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Prescription), args.Error(1)
}

func (m *MockPrescriptionService) ListByUser(ctx context.Context, userID string) ([]model.Prescription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Prescription), args.Error(1)
}
