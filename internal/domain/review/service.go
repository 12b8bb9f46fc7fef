package review

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/booking"
	"github.com/playgrid/playgrid-api/internal/domain/facility"
)

// Service handles review business logic
type Service struct {
	repo         Repository
	facilityRepo facility.Repository
	bookingRepo  booking.Repository
}

// NewService creates review service
func NewService(repo Repository, facilityRepo facility.Repository, bookingRepo booking.Repository) *Service {
	return &Service{repo: repo, facilityRepo: facilityRepo, bookingRepo: bookingRepo}
}

// Create adds a review. Only customers with a completed booking at the
// facility may review it, once each.
func (s *Service) Create(ctx context.Context, facilityID, userID uuid.UUID, req *CreateReviewRequest) (*Review, error) {
	f, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if f == nil || !f.IsPublished {
		return nil, facility.ErrFacilityNotFound
	}

	stayed, err := s.bookingRepo.HasCompleted(ctx, userID, facilityID)
	if err != nil {
		return nil, err
	}
	if !stayed {
		return nil, ErrNoCompletedStay
	}

	now := time.Now()
	rv := &Review{
		ID:         uuid.New(),
		FacilityID: facilityID,
		UserID:     userID,
		Rating:     req.Rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Comment != "" {
		rv.Comment = sql.NullString{String: req.Comment, Valid: true}
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// Update edits the caller's own review
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, role string, req *UpdateReviewRequest) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, ErrReviewNotFound
	}
	if rv.UserID != userID && role != "admin" {
		return nil, ErrNotReviewAuthor
	}

	if req.Rating != nil {
		rv.Rating = *req.Rating
	}
	if req.Comment != nil {
		rv.Comment = sql.NullString{String: *req.Comment, Valid: *req.Comment != ""}
	}
	rv.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// Delete removes the caller's own review, or any review for admins
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID, role string) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rv == nil {
		return ErrReviewNotFound
	}
	if rv.UserID != userID && role != "admin" {
		return ErrNotReviewAuthor
	}
	return s.repo.Delete(ctx, id)
}

// ListByFacility lists a facility's reviews, newest first
func (s *Service) ListByFacility(ctx context.Context, facilityID uuid.UUID, page, limit int) ([]*Review, int, error) {
	return s.repo.ListByFacility(ctx, facilityID, page, limit)
}

// Summarize returns the average rating and star distribution
func (s *Service) Summarize(ctx context.Context, facilityID uuid.UUID) (*Summary, error) {
	f, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, facility.ErrFacilityNotFound
	}
	return s.repo.Summarize(ctx, facilityID)
}
