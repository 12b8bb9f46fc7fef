package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playgrid/playgrid-api/internal/domain/court"
	"github.com/playgrid/playgrid-api/internal/domain/facility"
)

// EventPublisher receives booking lifecycle events for owner notifications
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event Event)
}

// Event describes a booking lifecycle change
type Event struct {
	Type       string    `json:"type"` // created, cancelled
	BookingID  uuid.UUID `json:"booking_id"`
	CourtID    uuid.UUID `json:"court_id"`
	FacilityID uuid.UUID `json:"facility_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	UserID     uuid.UUID `json:"user_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

// Service handles booking business logic
type Service struct {
	repo         Repository
	courtRepo    court.Repository
	facilityRepo facility.Repository
	events       EventPublisher
	cancelCutoff time.Duration
}

// NewService creates booking service
func NewService(repo Repository, courtRepo court.Repository, facilityRepo facility.Repository, events EventPublisher, cancelCutoff time.Duration) *Service {
	return &Service{
		repo:         repo,
		courtRepo:    courtRepo,
		facilityRepo: facilityRepo,
		events:       events,
		cancelCutoff: cancelCutoff,
	}
}

// Create validates the slot, prices it and inserts it atomically with the
// conflict check.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, courtID uuid.UUID, startsAt, endsAt time.Time, note string) (*Booking, error) {
	c, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.IsActive {
		return nil, ErrCourtInactive
	}

	if err := validateRange(startsAt, endsAt, time.Now()); err != nil {
		return nil, err
	}
	if !c.IsOpenDuring(startsAt, endsAt) {
		return nil, ErrOutsideOpenHours
	}

	now := time.Now()
	b := &Booking{
		ID:         uuid.New(),
		CourtID:    courtID,
		UserID:     userID,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Status:     StatusPending,
		TotalPrice: priceFor(c.PricePerHour, startsAt, endsAt),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if note != "" {
		b.Note = sql.NullString{String: note, Valid: true}
	}

	if err := s.repo.CreateIfFree(ctx, b); err != nil {
		return nil, err
	}

	b.CourtName = c.Name
	b.FacilityID = c.FacilityID

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("court_id", courtID.String()).
		Str("user_id", userID.String()).
		Int64("total_price", b.TotalPrice).
		Msg("booking created")

	s.publish(ctx, "created", b, c.FacilityID)
	return b, nil
}

// GetByID returns a booking visible to viewerID (booker or facility owner)
func (s *Service) GetByID(ctx context.Context, id, viewerID uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if !b.IsBookedBy(viewerID) {
		if owner, err := s.isFacilityOwner(ctx, b.FacilityID, viewerID); err != nil || !owner {
			return nil, ErrNotBookingParty
		}
	}
	return b, nil
}

// UpdateStatus applies a status transition on behalf of userID
func (s *Service) UpdateStatus(ctx context.Context, id, userID uuid.UUID, next Status) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	isBooker := b.IsBookedBy(userID)
	isOwner := false
	if !isBooker {
		isOwner, err = s.isFacilityOwner(ctx, b.FacilityID, userID)
		if err != nil {
			return nil, err
		}
	} else if b.FacilityID != uuid.Nil {
		// A booker can also own the facility they booked at.
		isOwner, _ = s.isFacilityOwner(ctx, b.FacilityID, userID)
	}
	if !isBooker && !isOwner {
		return nil, ErrNotBookingParty
	}

	if !b.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	switch next {
	case StatusConfirmed, StatusCompleted:
		if !isOwner {
			return nil, ErrNotBookingParty
		}
		if next == StatusCompleted && time.Now().Before(b.EndsAt) {
			return nil, ErrInvalidTransition
		}
	case StatusCancelled:
		// Bookers must cancel ahead of the cutoff; owners can always cancel.
		if !isOwner && time.Until(b.StartsAt) < s.cancelCutoff {
			return nil, ErrCancelTooLate
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	b.Status = next
	b.UpdatedAt = time.Now()

	if next == StatusCancelled {
		s.publish(ctx, "cancelled", b, b.FacilityID)
	}
	return b, nil
}

// ListMy returns bookings made by userID
func (s *Service) ListMy(ctx context.Context, userID uuid.UUID, status *Status, pagination *Pagination) ([]*Booking, int, error) {
	filter := &Filter{UserID: &userID, Status: status}
	return s.repo.List(ctx, filter, pagination)
}

// ListByFacility returns bookings at a facility owned by userID
func (s *Service) ListByFacility(ctx context.Context, facilityID, userID uuid.UUID, filter *Filter, pagination *Pagination) ([]*Booking, int, error) {
	owner, err := s.isFacilityOwner(ctx, facilityID, userID)
	if err != nil {
		return nil, 0, err
	}
	if !owner {
		return nil, 0, facility.ErrNotFacilityOwner
	}

	if filter == nil {
		filter = &Filter{}
	}
	filter.FacilityID = &facilityID
	return s.repo.List(ctx, filter, pagination)
}

// Availability returns booked intervals on a court for one day
func (s *Service) Availability(ctx context.Context, courtID uuid.UUID, day time.Time) (*AvailabilityResponse, error) {
	c, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, court.ErrCourtNotFound
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := s.repo.BookedIntervals(ctx, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResponse{
		CourtID: courtID,
		Date:    dayStart.Format("2006-01-02"),
		Booked:  booked,
	}, nil
}

func (s *Service) isFacilityOwner(ctx context.Context, facilityID, userID uuid.UUID) (bool, error) {
	if facilityID == uuid.Nil || userID == uuid.Nil {
		return false, nil
	}
	f, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		return false, err
	}
	return f != nil && f.IsOwnedBy(userID), nil
}

func (s *Service) publish(ctx context.Context, eventType string, b *Booking, facilityID uuid.UUID) {
	if s.events == nil {
		return
	}

	ownerID := uuid.Nil
	if f, err := s.facilityRepo.GetByID(ctx, facilityID); err == nil && f != nil {
		ownerID = f.OwnerID
	}

	s.events.PublishBookingEvent(ctx, Event{
		Type:       eventType,
		BookingID:  b.ID,
		CourtID:    b.CourtID,
		FacilityID: facilityID,
		OwnerID:    ownerID,
		UserID:     b.UserID,
		StartsAt:   b.StartsAt,
		EndsAt:     b.EndsAt,
	})
}

// validateRange checks booking slot shape: ordered, in the future and
// aligned to SlotStep boundaries.
func validateRange(start, end, now time.Time) error {
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	if start.Before(now) {
		return ErrInvalidTimeRange
	}
	if start.Minute()%30 != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		return ErrInvalidTimeRange
	}
	if end.Minute()%30 != 0 || end.Second() != 0 || end.Nanosecond() != 0 {
		return ErrInvalidTimeRange
	}
	if end.Sub(start) < SlotStep {
		return ErrInvalidTimeRange
	}
	return nil
}

// priceFor computes the total in minor units from an hourly rate
func priceFor(pricePerHour int64, start, end time.Time) int64 {
	minutes := int64(end.Sub(start) / time.Minute)
	return pricePerHour * minutes / 60
}
