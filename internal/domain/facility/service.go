package facility

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playgrid/playgrid-api/internal/domain/user"
)

// Service handles facility business logic
type Service struct {
	repo     Repository
	userRepo user.Repository
}

// NewService creates facility service
func NewService(repo Repository, userRepo user.Repository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// Create creates a new facility for an owner account
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateFacilityRequest) (*Facility, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrOnlyOwnersAllowed
	}
	if !u.CanManageFacilities() {
		return nil, ErrOnlyOwnersAllowed
	}

	now := time.Now()
	f := &Facility{
		ID:          uuid.New(),
		OwnerID:     userID,
		Name:        req.Name,
		City:        req.City,
		Address:     req.Address,
		Amenities:   req.Amenities,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Description != "" {
		f.Description = sql.NullString{String: req.Description, Valid: true}
	}
	if req.Phone != "" {
		f.Phone = sql.NullString{String: req.Phone, Valid: true}
	}
	if req.CoverURL != "" {
		f.CoverURL = sql.NullString{String: req.CoverURL, Valid: true}
	}
	if req.IsPublished != nil {
		f.IsPublished = *req.IsPublished
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	log.Info().Str("facility_id", f.ID.String()).Str("owner_id", userID.String()).Msg("facility created")
	return f, nil
}

// GetByID returns a facility by ID; unpublished ones only for their owner
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*Facility, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFacilityNotFound
	}
	if !f.IsPublished && !f.IsOwnedBy(viewerID) {
		return nil, ErrFacilityNotFound
	}
	return f, nil
}

// Update updates a facility owned by userID
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *UpdateFacilityRequest) (*Facility, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil || f == nil {
		return nil, ErrFacilityNotFound
	}
	if !f.IsOwnedBy(userID) {
		return nil, ErrNotFacilityOwner
	}

	if req.Name != "" {
		f.Name = req.Name
	}
	if req.Description != nil {
		f.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	if req.City != "" {
		f.City = req.City
	}
	if req.Address != "" {
		f.Address = req.Address
	}
	if req.Amenities != nil {
		f.Amenities = req.Amenities
	}
	if req.Phone != nil {
		f.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}
	if req.CoverURL != nil {
		f.CoverURL = sql.NullString{String: *req.CoverURL, Valid: *req.CoverURL != ""}
	}
	if req.IsPublished != nil {
		f.IsPublished = *req.IsPublished
	}
	f.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a facility owned by userID
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil || f == nil {
		return ErrFacilityNotFound
	}
	if !f.IsOwnedBy(userID) {
		return ErrNotFacilityOwner
	}
	return s.repo.Delete(ctx, id)
}

// List returns facilities with filters
func (s *Service) List(ctx context.Context, filter *Filter, sortBy SortBy, pagination *Pagination) ([]*Facility, int, error) {
	return s.repo.List(ctx, filter, sortBy, pagination)
}

// ListMy returns all facilities (including unpublished) for an owner
func (s *Service) ListMy(ctx context.Context, ownerID uuid.UUID, pagination *Pagination) ([]*Facility, int, error) {
	filter := &Filter{OwnerID: &ownerID, IncludeUnpublished: true}
	return s.repo.List(ctx, filter, SortByNewest, pagination)
}
