package upload

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playgrid/playgrid-api/internal/pkg/storage"
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Service issues presigned upload URLs and tracks the resulting objects
type Service struct {
	repo       Repository
	store      storage.Storage
	presignTTL time.Duration
}

// NewService creates upload service
func NewService(repo Repository, store storage.Storage, presignTTL time.Duration) *Service {
	return &Service{repo: repo, store: store, presignTTL: presignTTL}
}

// Presign mints a short-lived PUT URL for an image and records the
// pending object under the caller's account.
func (s *Service) Presign(ctx context.Context, ownerID uuid.UUID, req *PresignRequest) (*Upload, *storage.PresignedUpload, error) {
	ext, ok := allowedTypes[strings.ToLower(req.ContentType)]
	if !ok {
		return nil, nil, ErrUnsupportedType
	}
	if s.store == nil {
		return nil, nil, ErrPresignUnavailable
	}

	id := uuid.New()
	base := strings.TrimSuffix(path.Base(req.FileName), path.Ext(req.FileName))
	if base == "" || base == "." {
		base = "upload"
	}
	key := fmt.Sprintf("uploads/%s/%s_%s%s", ownerID, base, id.String()[:8], ext)

	presigned, err := s.store.PresignPut(ctx, key, req.ContentType, s.presignTTL)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to presign upload")
		return nil, nil, err
	}

	u := &Upload{
		ID:          id,
		OwnerID:     ownerID,
		Key:         key,
		ContentType: req.ContentType,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, nil, err
	}
	return u, presigned, nil
}

// GetByID returns upload metadata
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Upload, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUploadNotFound
	}
	return u, nil
}

// Delete removes the tracked row and the object itself
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID, role string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUploadNotFound
	}
	if u.OwnerID != userID && role != "admin" {
		return ErrNotUploadOwner
	}

	if s.store != nil {
		if err := s.store.Delete(ctx, u.Key); err != nil {
			log.Warn().Err(err).Str("key", u.Key).Msg("failed to delete object, removing row anyway")
		}
	}
	return s.repo.Delete(ctx, id)
}

// PublicURL resolves the object's public address
func (s *Service) PublicURL(key string) string {
	if s.store == nil {
		return ""
	}
	return s.store.PublicURL(key)
}
