package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kaifateg/RelateHub/internal/domain/rules"
	pgrepo "github.com/Kaifateg/RelateHub/internal/repo/postgres"
)

const signedURLTTL = 5 * time.Minute

var (
	ErrValidation         = errors.New("validation error")
	ErrUnsupportedContent = errors.New("unsupported photo content type")
	ErrPhotoTooLarge      = errors.New("photo exceeds the size limit")
	ErrPhotoLimitReached  = errors.New("photo limit reached")
	ErrNotFound           = errors.New("photo not found")
)

type PhotoStore interface {
	Create(ctx context.Context, userID int64, objectKey, contentType string, sizeBytes int64, maxPhotos int) (pgrepo.PhotoRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]pgrepo.PhotoRecord, error)
	SetMain(ctx context.Context, userID, photoID int64) (pgrepo.PhotoRecord, error)
	Delete(ctx context.Context, userID, photoID int64) (pgrepo.PhotoRecord, error)
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutPhoto(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Photo struct {
	ID          int64
	ContentType string
	SizeBytes   int64
	IsMain      bool
	URL         string
	UploadedAt  time.Time
}

type Service struct {
	store   PhotoStore
	storage ObjectStorage
	now     func() time.Time
}

func NewService(store PhotoStore, storage ObjectStorage) *Service {
	return &Service{
		store:   store,
		storage: storage,
		now:     time.Now,
	}
}

// Upload validates and stores one photo. Content type and size are checked
// before anything touches the object store; the per-user cap and the
// first-photo-becomes-main rule are enforced by the record write, so a
// rejected record also removes the freshly written object.
func (s *Service) Upload(ctx context.Context, userID int64, fileName, contentType string, body io.Reader, size int64) (Photo, error) {
	if userID <= 0 || body == nil || size <= 0 {
		return Photo{}, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return Photo{}, fmt.Errorf("gallery dependencies are not configured")
	}

	contentType = strings.TrimSpace(strings.ToLower(contentType))
	if !rules.AllowedPhotoContentType(contentType) {
		return Photo{}, ErrUnsupportedContent
	}
	if !rules.AllowedPhotoSize(size) {
		return Photo{}, ErrPhotoTooLarge
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Photo{}, fmt.Errorf("ensure bucket: %w", err)
	}

	objectKey := buildPhotoObjectKey(userID, fileName)
	if err := s.storage.PutPhoto(ctx, objectKey, body, size, contentType); err != nil {
		return Photo{}, fmt.Errorf("put object: %w", err)
	}

	record, err := s.store.Create(ctx, userID, objectKey, contentType, size, rules.MaxPhotosPerUser)
	if err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		if errors.Is(err, pgrepo.ErrPhotoLimitReached) {
			return Photo{}, ErrPhotoLimitReached
		}
		return Photo{}, fmt.Errorf("create photo record: %w", err)
	}

	return s.toPhoto(ctx, record)
}

func (s *Service) List(ctx context.Context, userID int64) ([]Photo, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return nil, fmt.Errorf("gallery dependencies are not configured")
	}

	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list photo records: %w", err)
	}

	photos := make([]Photo, 0, len(records))
	for _, rec := range records {
		photo, err := s.toPhoto(ctx, rec)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

func (s *Service) SetMain(ctx context.Context, userID, photoID int64) (Photo, error) {
	if userID <= 0 || photoID <= 0 {
		return Photo{}, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return Photo{}, fmt.Errorf("gallery dependencies are not configured")
	}

	record, err := s.store.SetMain(ctx, userID, photoID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPhotoNotFound) {
			return Photo{}, ErrNotFound
		}
		return Photo{}, fmt.Errorf("set main photo: %w", err)
	}
	return s.toPhoto(ctx, record)
}

func (s *Service) Delete(ctx context.Context, userID, photoID int64) error {
	if userID <= 0 || photoID <= 0 {
		return ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return fmt.Errorf("gallery dependencies are not configured")
	}

	record, err := s.store.Delete(ctx, userID, photoID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPhotoNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete photo record: %w", err)
	}

	if err := s.storage.Delete(ctx, record.ObjectKey); err != nil {
		return fmt.Errorf("delete photo object: %w", err)
	}
	return nil
}

func (s *Service) toPhoto(ctx context.Context, rec pgrepo.PhotoRecord) (Photo, error) {
	url, err := s.storage.PresignGet(ctx, rec.ObjectKey, signedURLTTL)
	if err != nil {
		return Photo{}, fmt.Errorf("presign photo url: %w", err)
	}

	return Photo{
		ID:          rec.ID,
		ContentType: rec.ContentType,
		SizeBytes:   rec.SizeBytes,
		IsMain:      rec.IsMain,
		URL:         url,
		UploadedAt:  rec.UploadedAt,
	}, nil
}

func buildPhotoObjectKey(userID int64, fileName string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("users/%d/photos/%s%s", userID, uuid.NewString(), ext)
}
