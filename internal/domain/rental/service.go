package rental

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playgrid/playgrid-api/internal/domain/booking"
	"github.com/playgrid/playgrid-api/internal/domain/facility"
	"github.com/playgrid/playgrid-api/internal/domain/product"
)

// Service handles rental business logic
type Service struct {
	repo         Repository
	productRepo  product.Repository
	facilityRepo facility.Repository
	bookingRepo  booking.Repository
}

// NewService creates rental service
func NewService(repo Repository, productRepo product.Repository, facilityRepo facility.Repository, bookingRepo booking.Repository) *Service {
	return &Service{
		repo:         repo,
		productRepo:  productRepo,
		facilityRepo: facilityRepo,
		bookingRepo:  bookingRepo,
	}
}

// Create reserves equipment for a period. The stock check and the insert
// run in one transaction so two customers cannot both take the last item.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateRentalRequest) (*Rental, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductInactive
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	startsAt = startsAt.UTC()
	endsAt = endsAt.UTC()

	if !startsAt.Before(endsAt) || startsAt.Before(time.Now().UTC()) {
		return nil, ErrInvalidTimeRange
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, ErrProductInactive
	}

	var bookingID uuid.NullUUID
	if req.BookingID != "" {
		bid, err := uuid.Parse(req.BookingID)
		if err != nil {
			return nil, booking.ErrBookingNotFound
		}
		b, err := s.bookingRepo.GetByID(ctx, bid)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, booking.ErrBookingNotFound
		}
		if !b.IsBookedBy(userID) {
			return nil, ErrNotRentalParty
		}
		bookingID = uuid.NullUUID{UUID: bid, Valid: true}
	}

	units := unitCount(p.RentalUnit, startsAt, endsAt)

	r := &Rental{
		ProductID:  productID,
		UserID:     userID,
		BookingID:  bookingID,
		Quantity:   req.Quantity,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		UnitCount:  units,
		TotalPrice: int64(req.Quantity) * int64(units) * p.PricePerUnit,
		Status:     StatusReserved,
	}

	if err := s.repo.CreateIfAvailable(ctx, r); err != nil {
		return nil, err
	}
	r.ProductName = p.Name
	r.FacilityID = p.FacilityID

	log.Info().
		Str("rental_id", r.ID.String()).
		Str("product_id", productID.String()).
		Int("quantity", r.Quantity).
		Msg("rental reserved")

	return r, nil
}

// unitCount converts a period into billable units, rounding up
func unitCount(unit product.RentalUnit, start, end time.Time) int {
	d := end.Sub(start)
	per := time.Hour
	if unit == product.UnitDay {
		per = 24 * time.Hour
	}
	units := int(d / per)
	if d%per != 0 {
		units++
	}
	if units < 1 {
		units = 1
	}
	return units
}

// GetByID returns a rental visible to the requester
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID, role string) (*Rental, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID == userID || role == "admin" {
		return r, nil
	}
	f, err := s.facilityRepo.GetByID(ctx, r.FacilityID)
	if err == nil && f != nil && f.IsOwnedBy(userID) {
		return r, nil
	}
	return nil, ErrNotRentalParty
}

// ListMy lists the requester's rentals
func (s *Service) ListMy(ctx context.Context, userID uuid.UUID, status Status) ([]*Rental, error) {
	return s.repo.List(ctx, Filter{UserID: userID, Status: status})
}

// ListByFacility lists rentals of a facility, owner only
func (s *Service) ListByFacility(ctx context.Context, facilityID, userID uuid.UUID, role string, status Status) ([]*Rental, error) {
	f, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, facility.ErrFacilityNotFound
	}
	if !f.IsOwnedBy(userID) && role != "admin" {
		return nil, ErrNotRentalParty
	}
	return s.repo.List(ctx, Filter{FacilityID: facilityID, Status: status})
}

// UpdateStatus applies a status transition. The renter may only cancel a
// reservation. Handing out (active) and taking back (returned) are for
// the facility owner.
func (s *Service) UpdateStatus(ctx context.Context, id, userID uuid.UUID, role string, next Status) (*Rental, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isRenter := r.UserID == userID
	isOwner := role == "admin"
	if !isOwner {
		f, err := s.facilityRepo.GetByID(ctx, r.FacilityID)
		if err == nil && f != nil && f.IsOwnedBy(userID) {
			isOwner = true
		}
	}

	if !isRenter && !isOwner {
		return nil, ErrNotRentalParty
	}
	if !r.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	if isRenter && !isOwner && next != StatusCancelled {
		return nil, ErrNotRentalParty
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	r.Status = next
	return r, nil
}
