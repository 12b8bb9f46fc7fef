package product

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/facility"
)

// Service handles product business logic
type Service struct {
	repo         Repository
	facilityRepo facility.Repository
}

// NewService creates product service
func NewService(repo Repository, facilityRepo facility.Repository) *Service {
	return &Service{repo: repo, facilityRepo: facilityRepo}
}

func (s *Service) requireOwnership(ctx context.Context, facilityID, userID uuid.UUID) error {
	f, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		return err
	}
	if f == nil {
		return facility.ErrFacilityNotFound
	}
	if !f.IsOwnedBy(userID) {
		return ErrNotFacilityOwner
	}
	return nil
}

// Create adds a product to a facility's rental inventory
func (s *Service) Create(ctx context.Context, facilityID, userID uuid.UUID, req *CreateProductRequest) (*Product, error) {
	if err := s.requireOwnership(ctx, facilityID, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Product{
		ID:           uuid.New(),
		FacilityID:   facilityID,
		Name:         req.Name,
		PricePerUnit: req.PricePerUnit,
		RentalUnit:   RentalUnit(req.RentalUnit),
		StockTotal:   req.StockTotal,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Description != "" {
		p.Description = sql.NullString{String: req.Description, Valid: true}
	}
	if req.Category != "" {
		p.Category = sql.NullString{String: req.Category, Valid: true}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID returns a product by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Update modifies a product owned by userID's facility
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *UpdateProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, ErrProductNotFound
	}
	if err := s.requireOwnership(ctx, p.FacilityID, userID); err != nil {
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != nil {
		p.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	if req.Category != nil {
		p.Category = sql.NullString{String: *req.Category, Valid: *req.Category != ""}
	}
	if req.PricePerUnit != nil {
		p.PricePerUnit = *req.PricePerUnit
	}
	if req.StockTotal != nil {
		p.StockTotal = *req.StockTotal
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product owned by userID's facility
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return ErrProductNotFound
	}
	if err := s.requireOwnership(ctx, p.FacilityID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListByFacility lists a facility's rental inventory
func (s *Service) ListByFacility(ctx context.Context, facilityID uuid.UUID, activeOnly bool) ([]*Product, error) {
	return s.repo.ListByFacility(ctx, facilityID, activeOnly)
}
