package upload

import (
	"time"

	"github.com/google/uuid"
)

// Upload tracks an object a user was given a presigned URL for.
// The bytes themselves go straight to the bucket.
type Upload struct {
	ID          uuid.UUID `db:"id"`
	OwnerID     uuid.UUID `db:"owner_id"`
	Key         string    `db:"key"`
	ContentType string    `db:"content_type"`
	CreatedAt   time.Time `db:"created_at"`
}
