package rental

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/booking"
	"github.com/playgrid/playgrid-api/internal/domain/facility"
	"github.com/playgrid/playgrid-api/internal/domain/product"
)

type fakeRentalRepo struct {
	rentals    map[uuid.UUID]*Rental
	createErr  error
	lastStatus Status
}

func newFakeRentalRepo() *fakeRentalRepo {
	return &fakeRentalRepo{rentals: map[uuid.UUID]*Rental{}}
}

func (f *fakeRentalRepo) CreateIfAvailable(ctx context.Context, r *Rental) error {
	if f.createErr != nil {
		return f.createErr
	}
	r.ID = uuid.New()
	f.rentals[r.ID] = r
	return nil
}

func (f *fakeRentalRepo) GetByID(ctx context.Context, id uuid.UUID) (*Rental, error) {
	r, ok := f.rentals[id]
	if !ok {
		return nil, ErrRentalNotFound
	}
	return r, nil
}

func (f *fakeRentalRepo) List(ctx context.Context, filter Filter) ([]*Rental, error) {
	return nil, nil
}

func (f *fakeRentalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	f.lastStatus = status
	if r, ok := f.rentals[id]; ok {
		r.Status = status
	}
	return nil
}

type fakeProductRepo struct {
	product *product.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *product.Product) error { return nil }
func (f *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	if f.product != nil && f.product.ID == id {
		return f.product, nil
	}
	return nil, nil
}
func (f *fakeProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *fakeProductRepo) ListByFacility(ctx context.Context, facilityID uuid.UUID, activeOnly bool) ([]*product.Product, error) {
	return nil, nil
}

type fakeFacilityRepo struct {
	facility *facility.Facility
}

func (f *fakeFacilityRepo) Create(ctx context.Context, fc *facility.Facility) error { return nil }
func (f *fakeFacilityRepo) GetByID(ctx context.Context, id uuid.UUID) (*facility.Facility, error) {
	if f.facility != nil && f.facility.ID == id {
		return f.facility, nil
	}
	return nil, nil
}
func (f *fakeFacilityRepo) Update(ctx context.Context, fc *facility.Facility) error { return nil }
func (f *fakeFacilityRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (f *fakeFacilityRepo) List(ctx context.Context, filter *facility.Filter, sortBy facility.SortBy, pagination *facility.Pagination) ([]*facility.Facility, int, error) {
	return nil, 0, nil
}

type fakeBookingRepo struct {
	booking *booking.Booking
}

func (f *fakeBookingRepo) CreateIfFree(ctx context.Context, b *booking.Booking) error { return nil }
func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	if f.booking != nil && f.booking.ID == id {
		return f.booking, nil
	}
	return nil, nil
}
func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	return nil
}
func (f *fakeBookingRepo) List(ctx context.Context, filter *booking.Filter, pagination *booking.Pagination) ([]*booking.Booking, int, error) {
	return nil, 0, nil
}
func (f *fakeBookingRepo) BookedIntervals(ctx context.Context, courtID uuid.UUID, dayStart, dayEnd time.Time) ([]booking.Interval, error) {
	return nil, nil
}
func (f *fakeBookingRepo) HasCompleted(ctx context.Context, userID, facilityID uuid.UUID) (bool, error) {
	return false, nil
}

func rentalFixture() (*Service, *fakeRentalRepo, *fakeProductRepo, *fakeFacilityRepo, *fakeBookingRepo) {
	f := &facility.Facility{ID: uuid.New(), OwnerID: uuid.New(), IsPublished: true}
	p := &product.Product{
		ID:           uuid.New(),
		FacilityID:   f.ID,
		Name:         "Racket",
		PricePerUnit: 500,
		RentalUnit:   product.UnitHour,
		StockTotal:   4,
		IsActive:     true,
	}
	repo := newFakeRentalRepo()
	productRepo := &fakeProductRepo{product: p}
	facilityRepo := &fakeFacilityRepo{facility: f}
	bookingRepo := &fakeBookingRepo{}
	svc := NewService(repo, productRepo, facilityRepo, bookingRepo)
	return svc, repo, productRepo, facilityRepo, bookingRepo
}

func futureRange(d time.Duration) (string, string) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	return start.Format(time.RFC3339), start.Add(d).Format(time.RFC3339)
}

func TestCreateRentalComputesTotal(t *testing.T) {
	svc, _, productRepo, _, _ := rentalFixture()
	start, end := futureRange(2 * time.Hour)

	r, err := svc.Create(context.Background(), uuid.New(), &CreateRentalRequest{
		ProductID: productRepo.product.ID.String(),
		Quantity:  3,
		StartsAt:  start,
		EndsAt:    end,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// 3 rackets, 2 hours, 500 per racket-hour
	if r.TotalPrice != 3000 {
		t.Fatalf("TotalPrice = %d, want 3000", r.TotalPrice)
	}
	if r.UnitCount != 2 {
		t.Fatalf("UnitCount = %d, want 2", r.UnitCount)
	}
	if r.Status != StatusReserved {
		t.Fatalf("Status = %s, want reserved", r.Status)
	}
}

func TestCreateRentalRoundsUpPartialUnits(t *testing.T) {
	svc, _, productRepo, _, _ := rentalFixture()
	start, end := futureRange(90 * time.Minute)

	r, err := svc.Create(context.Background(), uuid.New(), &CreateRentalRequest{
		ProductID: productRepo.product.ID.String(),
		Quantity:  1,
		StartsAt:  start,
		EndsAt:    end,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.UnitCount != 2 {
		t.Fatalf("UnitCount = %d, want 2 (90min billed as 2 hours)", r.UnitCount)
	}
}

func TestCreateRentalOutOfStock(t *testing.T) {
	svc, repo, productRepo, _, _ := rentalFixture()
	repo.createErr = ErrOutOfStock
	start, end := futureRange(time.Hour)

	_, err := svc.Create(context.Background(), uuid.New(), &CreateRentalRequest{
		ProductID: productRepo.product.ID.String(),
		Quantity:  4,
		StartsAt:  start,
		EndsAt:    end,
	})
	if err != ErrOutOfStock {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}
}

func TestCreateRentalInactiveProduct(t *testing.T) {
	svc, _, productRepo, _, _ := rentalFixture()
	productRepo.product.IsActive = false
	start, end := futureRange(time.Hour)

	_, err := svc.Create(context.Background(), uuid.New(), &CreateRentalRequest{
		ProductID: productRepo.product.ID.String(),
		Quantity:  1,
		StartsAt:  start,
		EndsAt:    end,
	})
	if err != ErrProductInactive {
		t.Fatalf("err = %v, want ErrProductInactive", err)
	}
}

func TestCreateRentalRejectsForeignBooking(t *testing.T) {
	svc, _, productRepo, _, bookingRepo := rentalFixture()
	bookingRepo.booking = &booking.Booking{ID: uuid.New(), UserID: uuid.New()}
	start, end := futureRange(time.Hour)

	_, err := svc.Create(context.Background(), uuid.New(), &CreateRentalRequest{
		ProductID: productRepo.product.ID.String(),
		BookingID: bookingRepo.booking.ID.String(),
		Quantity:  1,
		StartsAt:  start,
		EndsAt:    end,
	})
	if err != ErrNotRentalParty {
		t.Fatalf("err = %v, want ErrNotRentalParty", err)
	}
}

func TestUnitCountByDay(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		d    time.Duration
		want int
	}{
		{24 * time.Hour, 1},
		{36 * time.Hour, 2},
		{30 * time.Minute, 1},
	}
	for _, tc := range cases {
		if got := unitCount(product.UnitDay, start, start.Add(tc.d)); got != tc.want {
			t.Errorf("unitCount(day, %v) = %d, want %d", tc.d, got, tc.want)
		}
	}
}

func TestRenterCanOnlyCancel(t *testing.T) {
	svc, repo, _, facilityRepo, _ := rentalFixture()
	renterID := uuid.New()
	r := &Rental{
		ID:         uuid.New(),
		UserID:     renterID,
		FacilityID: facilityRepo.facility.ID,
		Status:     StatusReserved,
	}
	repo.rentals[r.ID] = r

	if _, err := svc.UpdateStatus(context.Background(), r.ID, renterID, "customer", StatusActive); err != ErrNotRentalParty {
		t.Fatalf("activate: err = %v, want ErrNotRentalParty", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), r.ID, renterID, "customer", StatusCancelled)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if updated.Status != StatusCancelled {
		t.Fatalf("Status = %s, want cancelled", updated.Status)
	}
}

func TestOwnerHandsOutAndTakesBack(t *testing.T) {
	svc, repo, _, facilityRepo, _ := rentalFixture()
	ownerID := facilityRepo.facility.OwnerID
	r := &Rental{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		FacilityID: facilityRepo.facility.ID,
		Status:     StatusReserved,
	}
	repo.rentals[r.ID] = r

	if _, err := svc.UpdateStatus(context.Background(), r.ID, ownerID, "owner", StatusActive); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), r.ID, ownerID, "owner", StatusReturned); err != nil {
		t.Fatalf("return: %v", err)
	}
	if r.Status != StatusReturned {
		t.Fatalf("Status = %s, want returned", r.Status)
	}

	// returned is terminal
	if _, err := svc.UpdateStatus(context.Background(), r.ID, ownerID, "owner", StatusActive); err != ErrInvalidTransition {
		t.Fatalf("reactivate: err = %v, want ErrInvalidTransition", err)
	}
}
