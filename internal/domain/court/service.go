package court

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/facility"
)

// Service handles court business logic
type Service struct {
	repo         Repository
	facilityRepo facility.Repository
}

// NewService creates court service
func NewService(repo Repository, facilityRepo facility.Repository) *Service {
	return &Service{repo: repo, facilityRepo: facilityRepo}
}

func (s *Service) ownedFacility(ctx context.Context, facilityID, userID uuid.UUID) (*facility.Facility, error) {
	f, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, facility.ErrFacilityNotFound
	}
	if !f.IsOwnedBy(userID) {
		return nil, ErrNotFacilityOwner
	}
	return f, nil
}

// Create adds a court to a facility owned by userID
func (s *Service) Create(ctx context.Context, facilityID, userID uuid.UUID, req *CreateCourtRequest) (*Court, error) {
	if _, err := s.ownedFacility(ctx, facilityID, userID); err != nil {
		return nil, err
	}

	if req.OpenHour >= req.CloseHour {
		return nil, ErrInvalidHours
	}

	now := time.Now()
	c := &Court{
		ID:           uuid.New(),
		FacilityID:   facilityID,
		Name:         req.Name,
		Sport:        Sport(req.Sport),
		Indoor:       req.Indoor,
		PricePerHour: req.PricePerHour,
		OpenHour:     req.OpenHour,
		CloseHour:    req.CloseHour,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Surface != "" {
		c.Surface = sql.NullString{String: req.Surface, Valid: true}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID returns a court by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourtNotFound
	}
	return c, nil
}

// Update modifies a court on a facility owned by userID
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *UpdateCourtRequest) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, ErrCourtNotFound
	}
	if _, err := s.ownedFacility(ctx, c.FacilityID, userID); err != nil {
		return nil, err
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Sport != "" {
		c.Sport = Sport(req.Sport)
	}
	if req.Surface != nil {
		c.Surface = sql.NullString{String: *req.Surface, Valid: *req.Surface != ""}
	}
	if req.Indoor != nil {
		c.Indoor = *req.Indoor
	}
	if req.PricePerHour != nil {
		c.PricePerHour = *req.PricePerHour
	}
	if req.OpenHour != nil {
		c.OpenHour = *req.OpenHour
	}
	if req.CloseHour != nil {
		c.CloseHour = *req.CloseHour
	}
	if c.OpenHour >= c.CloseHour {
		return nil, ErrInvalidHours
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a court on a facility owned by userID
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return ErrCourtNotFound
	}
	if _, err := s.ownedFacility(ctx, c.FacilityID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListByFacility lists courts of a facility
func (s *Service) ListByFacility(ctx context.Context, facilityID uuid.UUID, activeOnly bool) ([]*Court, error) {
	return s.repo.ListByFacility(ctx, facilityID, activeOnly)
}
