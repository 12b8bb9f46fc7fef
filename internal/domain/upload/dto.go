package upload

import (
	"time"

	"github.com/google/uuid"
)

// PresignRequest for POST /files/presign
type PresignRequest struct {
	FileName    string `json:"file_name" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required"`
}

// PresignResponse carries the one-shot upload URL
type PresignResponse struct {
	ID        uuid.UUID `json:"id"`
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	PublicURL string    `json:"public_url"`
	ExpiresAt string    `json:"expires_at"`
}

// UploadResponse for GET /files/{id}
type UploadResponse struct {
	ID          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	PublicURL   string    `json:"public_url"`
	CreatedAt   string    `json:"created_at"`
}

// UploadResponseFromEntity converts entity to response
func UploadResponseFromEntity(u *Upload, publicURL string) *UploadResponse {
	return &UploadResponse{
		ID:          u.ID,
		Key:         u.Key,
		ContentType: u.ContentType,
		PublicURL:   publicURL,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
