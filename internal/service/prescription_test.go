package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"rxvault/internal/model"
	repoMocks "rxvault/internal/repository/mocks"
	"rxvault/internal/storage"
	storeMocks "rxvault/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testLinkTTL = time.Hour

func validInput(r io.Reader) UploadInput {
	return UploadInput{
		UserID:      "7",
		ClinicName:  "City Clinic",
		Description: "Annual checkup",
		Date:        "2024-03-15",
		Filename:    "report.pdf",
		Reader:      r,
		Size:        11,
		ContentType: "application/pdf",
	}
}

func TestPrescriptionService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		mutate     func(in *UploadInput)
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockPrescriptionRepository, r io.Reader)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockPrescriptionRepository, r io.Reader) {
				mStore.On("Put", ctx, "report.pdf", r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "report.pdf"},
				}).Return(storage.ObjectInfo{Key: "report.pdf", Size: 11}, nil)
				mStore.On("PresignGet", ctx, "report.pdf", testLinkTTL).
					Return("https://storage.example.com/storage-container/report.pdf?token", nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Prescription) bool {
					return p.UserID == 7 &&
						p.Filename == "report.pdf" &&
						p.Date.String() == "2024-03-15" &&
						strings.Contains(p.FileLink, "storage-container/report.pdf?")
				})).Return(&model.Prescription{ID: 1, UserID: 7}, nil)
			},
		},
		{
			name:    "validation - nil reader",
			mutate:  func(in *UploadInput) { in.Reader = nil },
			wantErr: ErrFileRequired,
		},
		{
			name:    "validation - empty filename",
			mutate:  func(in *UploadInput) { in.Filename = "" },
			wantErr: ErrFileRequired,
		},
		{
			name:    "validation - missing user_id",
			mutate:  func(in *UploadInput) { in.UserID = "" },
			wantErr: ErrUserIDRequired,
		},
		{
			name:    "validation - non-numeric user_id",
			mutate:  func(in *UploadInput) { in.UserID = "abc" },
			wantErr: ErrInvalidUserID,
		},
		{
			name:    "validation - malformed date",
			mutate:  func(in *UploadInput) { in.Date = "15-03-2024" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "validation - empty date",
			mutate:  func(in *UploadInput) { in.Date = "" },
			wantErr: ErrInvalidDate,
		},
		{
			name: "storage put error",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockPrescriptionRepository, r io.Reader) {
				mStore.On("Put", ctx, "report.pdf", r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("bucket unreachable"))
			},
			wantErr:    ErrStorage,
			wantErrMsg: "bucket unreachable",
		},
		{
			name: "presign error",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockPrescriptionRepository, r io.Reader) {
				mStore.On("Put", ctx, "report.pdf", r, mock.Anything).
					Return(storage.ObjectInfo{Key: "report.pdf"}, nil)
				mStore.On("PresignGet", ctx, "report.pdf", testLinkTTL).
					Return("", errors.New("sign fail"))
			},
			wantErr:    ErrStorage,
			wantErrMsg: "presign link",
		},
		{
			name: "insert error with successful rollback",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockPrescriptionRepository, r io.Reader) {
				mStore.On("Put", ctx, "report.pdf", r, mock.Anything).
					Return(storage.ObjectInfo{Key: "report.pdf"}, nil)
				mStore.On("PresignGet", ctx, "report.pdf", testLinkTTL).
					Return("https://link", nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, "report.pdf").Return(nil)
			},
			wantErr:    ErrPersistence,
			wantErrMsg: "db fail",
		},
		{
			name: "insert error with failed rollback",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockPrescriptionRepository, r io.Reader) {
				mStore.On("Put", ctx, "report.pdf", r, mock.Anything).
					Return(storage.ObjectInfo{Key: "report.pdf"}, nil)
				mStore.On("PresignGet", ctx, "report.pdf", testLinkTTL).
					Return("https://link", nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, "report.pdf").Return(errors.New("delete fail"))
			},
			wantErr:    ErrPersistence,
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockPrescriptionRepository)
			svc := NewPrescriptionService(mStore, mRepo, testLinkTTL)

			r := strings.NewReader("hello world")
			in := validInput(r)
			if tt.mutate != nil {
				tt.mutate(&in)
			}
			if tt.setupMocks != nil {
				tt.setupMocks(mStore, mRepo, r)
			}

			p, err := svc.Upload(ctx, in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantErrMsg != "" {
					assert.Contains(t, err.Error(), tt.wantErrMsg)
				}
				assert.Nil(t, p)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, p)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

// A malformed date must fail before the object storage write happens.
func TestPrescriptionService_Upload_ParseBeforeSideEffect(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockPrescriptionRepository)
	svc := NewPrescriptionService(mStore, mRepo, testLinkTTL)

	in := validInput(strings.NewReader("x"))
	in.Date = "March 15, 2024"

	_, err := svc.Upload(context.Background(), in)

	assert.ErrorIs(t, err, ErrInvalidDate)
	mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Two uploads carrying the same filename target the same object key, so the
// second write replaces the first object's content while both rows persist.
func TestPrescriptionService_Upload_SameFilenameReusesKey(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockPrescriptionRepository)
	svc := NewPrescriptionService(mStore, mRepo, testLinkTTL)

	mStore.On("Put", ctx, "report.pdf", mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{Key: "report.pdf"}, nil).Twice()
	mStore.On("PresignGet", ctx, "report.pdf", testLinkTTL).
		Return("https://storage.example.com/storage-container/report.pdf?token", nil).Twice()
	mRepo.On("Create", ctx, mock.Anything).
		Return(&model.Prescription{ID: 1}, nil).Once()
	mRepo.On("Create", ctx, mock.Anything).
		Return(&model.Prescription{ID: 2}, nil).Once()

	first, err := svc.Upload(ctx, validInput(strings.NewReader("first")))
	require.NoError(t, err)
	second, err := svc.Upload(ctx, validInput(strings.NewReader("second")))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	mStore.AssertExpectations(t)
	mRepo.AssertExpectations(t)
}

func TestPrescriptionService_ListByUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     string
		setupMocks func(mRepo *repoMocks.MockPrescriptionRepository)
		wantErr    error
		wantLen    int
	}{
		{
			name:   "happy path",
			userID: "7",
			setupMocks: func(mRepo *repoMocks.MockPrescriptionRepository) {
				mRepo.On("ListByUser", ctx, int64(7)).Return([]model.Prescription{
					{ID: 1, UserID: 7}, {ID: 2, UserID: 7},
				}, nil)
			},
			wantLen: 2,
		},
		{
			name:   "no rows yields empty slice",
			userID: "42",
			setupMocks: func(mRepo *repoMocks.MockPrescriptionRepository) {
				mRepo.On("ListByUser", ctx, int64(42)).Return([]model.Prescription{}, nil)
			},
			wantLen: 0,
		},
		{
			name:    "non-numeric id yields empty slice without a query",
			userID:  "nobody",
			wantLen: 0,
		},
		{
			name:   "repository error",
			userID: "7",
			setupMocks: func(mRepo *repoMocks.MockPrescriptionRepository) {
				mRepo.On("ListByUser", ctx, int64(7)).Return(nil, errors.New("db fail"))
			},
			wantErr: ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockPrescriptionRepository)
			svc := NewPrescriptionService(nil, mRepo, testLinkTTL)

			if tt.setupMocks != nil {
				tt.setupMocks(mRepo)
			}

			items, err := svc.ListByUser(ctx, tt.userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Len(t, items, tt.wantLen)
			}
			mRepo.AssertExpectations(t)
		})
	}
}
