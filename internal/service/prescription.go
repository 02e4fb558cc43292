package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"rxvault/internal/model"
	"rxvault/internal/repository"
	"rxvault/internal/storage"
)

// Validation sentinels. These fire before any side effect and map to 4xx
// responses; ErrStorage and ErrPersistence tag backend failures so handlers
// can tell the two apart without inspecting error text.
var (
	ErrUserIDRequired = errors.New("user_id is required")
	ErrInvalidUserID  = errors.New("user_id must be numeric")
	ErrFileRequired   = errors.New("file is required")
	ErrInvalidDate    = errors.New("date must be in YYYY-MM-DD format")

	ErrStorage     = errors.New("storage backend failure")
	ErrPersistence = errors.New("persistence backend failure")
)

// UploadInput carries everything the upload workflow needs: the four scalar
// form fields plus the file payload.
type UploadInput struct {
	UserID      string
	ClinicName  string
	Description string
	Date        string
	Filename    string
	Reader      io.Reader
	Size        int64
	ContentType string
}

// PrescriptionService defines the prescription use cases.
type PrescriptionService interface {
	// Upload stores the file in object storage, mints a time-limited
	// download link, and persists the metadata row. If the insert fails
	// after a successful upload, the stored object is deleted again so no
	// orphan is left behind.
	Upload(ctx context.Context, in UploadInput) (*model.Prescription, error)

	// ListByUser returns all prescriptions owned by the given user id.
	// Unknown or non-numeric ids match no rows and yield an empty slice.
	ListByUser(ctx context.Context, userID string) ([]model.Prescription, error)
}

type prescriptionService struct {
	store   storage.Storage
	repo    repository.PrescriptionRepository
	linkTTL time.Duration
}

// NewPrescriptionService constructs a PrescriptionService. linkTTL is the
// validity window of the presigned download links.
func NewPrescriptionService(store storage.Storage, repo repository.PrescriptionRepository, linkTTL time.Duration) PrescriptionService {
	return &prescriptionService{store: store, repo: repo, linkTTL: linkTTL}
}

func (s *prescriptionService) Upload(ctx context.Context, in UploadInput) (*model.Prescription, error) {
	if in.Reader == nil || in.Filename == "" {
		return nil, ErrFileRequired
	}
	if in.UserID == "" {
		return nil, ErrUserIDRequired
	}
	userID, err := strconv.ParseInt(in.UserID, 10, 64)
	if err != nil {
		return nil, ErrInvalidUserID
	}
	// Parse before touching storage so a malformed date never leaves a
	// stray object behind.
	date, err := model.ParseDate(in.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// The original filename doubles as the object key, so a second upload
	// with the same name replaces the stored content while both metadata
	// rows survive. See DESIGN.md for the keying decision.
	key := in.Filename

	if _, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	}); err != nil {
		return nil, fmt.Errorf("%w: put object: %w", ErrStorage, err)
	}

	link, err := s.store.PresignGet(ctx, key, s.linkTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: presign link: %w", ErrStorage, err)
	}

	p := &model.Prescription{
		UserID:      userID,
		ClinicName:  in.ClinicName,
		Filename:    in.Filename,
		Description: in.Description,
		Date:        date,
		FileLink:    link,
	}
	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		// Compensate: remove the just-uploaded object so the failed insert
		// does not orphan it in the bucket.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("%w: %v; rollback delete failed: %v", ErrPersistence, err, delErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return stored, nil
}

func (s *prescriptionService) ListByUser(ctx context.Context, userID string) ([]model.Prescription, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		// An id that cannot match the numeric column matches no rows.
		return []model.Prescription{}, nil
	}
	items, err := s.repo.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return items, nil
}
