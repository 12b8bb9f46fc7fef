package review

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/booking"
	"github.com/playgrid/playgrid-api/internal/domain/facility"
)

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uuid.UUID]*Review{}}
}

func (f *fakeReviewRepo) Create(ctx context.Context, rv *Review) error {
	for _, existing := range f.reviews {
		if existing.FacilityID == rv.FacilityID && existing.UserID == rv.UserID {
			return ErrAlreadyReviewed
		}
	}
	f.reviews[rv.ID] = rv
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	return f.reviews[id], nil
}

func (f *fakeReviewRepo) GetByFacilityAndUser(ctx context.Context, facilityID, userID uuid.UUID) (*Review, error) {
	for _, rv := range f.reviews {
		if rv.FacilityID == facilityID && rv.UserID == userID {
			return rv, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, rv *Review) error {
	f.reviews[rv.ID] = rv
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) ListByFacility(ctx context.Context, facilityID uuid.UUID, page, limit int) ([]*Review, int, error) {
	return nil, 0, nil
}

func (f *fakeReviewRepo) Summarize(ctx context.Context, facilityID uuid.UUID) (*Summary, error) {
	return &Summary{}, nil
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
	completed map[uuid.UUID]bool // userID -> has a completed booking
}

func (f *fakeBookingRepo) CreateIfFree(ctx context.Context, b *booking.Booking) error { return nil }
func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
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
	return f.completed[userID], nil
}

func reviewFixture() (*Service, *fakeReviewRepo, *fakeFacilityRepo, *fakeBookingRepo) {
	f := &facility.Facility{ID: uuid.New(), OwnerID: uuid.New(), IsPublished: true}
	repo := newFakeReviewRepo()
	facilityRepo := &fakeFacilityRepo{facility: f}
	bookingRepo := &fakeBookingRepo{completed: map[uuid.UUID]bool{}}
	return NewService(repo, facilityRepo, bookingRepo), repo, facilityRepo, bookingRepo
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	svc, _, facilityRepo, _ := reviewFixture()

	_, err := svc.Create(context.Background(), facilityRepo.facility.ID, uuid.New(), &CreateReviewRequest{Rating: 5})
	if err != ErrNoCompletedStay {
		t.Fatalf("err = %v, want ErrNoCompletedStay", err)
	}
}

func TestCreateReviewOncePerFacility(t *testing.T) {
	svc, _, facilityRepo, bookingRepo := reviewFixture()
	userID := uuid.New()
	bookingRepo.completed[userID] = true
	ctx := context.Background()

	if _, err := svc.Create(ctx, facilityRepo.facility.ID, userID, &CreateReviewRequest{Rating: 4, Comment: "Great courts"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(ctx, facilityRepo.facility.ID, userID, &CreateReviewRequest{Rating: 5}); err != ErrAlreadyReviewed {
		t.Fatalf("second Create: err = %v, want ErrAlreadyReviewed", err)
	}
}

func TestCreateReviewUnpublishedFacility(t *testing.T) {
	svc, _, facilityRepo, bookingRepo := reviewFixture()
	facilityRepo.facility.IsPublished = false
	userID := uuid.New()
	bookingRepo.completed[userID] = true

	_, err := svc.Create(context.Background(), facilityRepo.facility.ID, userID, &CreateReviewRequest{Rating: 3})
	if err != facility.ErrFacilityNotFound {
		t.Fatalf("err = %v, want ErrFacilityNotFound", err)
	}
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	svc, repo, facilityRepo, bookingRepo := reviewFixture()
	authorID := uuid.New()
	bookingRepo.completed[authorID] = true
	ctx := context.Background()

	rv, err := svc.Create(ctx, facilityRepo.facility.ID, authorID, &CreateReviewRequest{Rating: 2, Comment: "meh"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, rv.ID, uuid.New(), "customer", &UpdateReviewRequest{}); err != ErrNotReviewAuthor {
		t.Fatalf("stranger update: err = %v, want ErrNotReviewAuthor", err)
	}

	newRating := 4
	updated, err := svc.Update(ctx, rv.ID, authorID, "customer", &UpdateReviewRequest{Rating: &newRating})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Rating != 4 {
		t.Fatalf("Rating = %d, want 4", updated.Rating)
	}

	if repo.reviews[rv.ID].Rating != 4 {
		t.Fatal("update not persisted")
	}
}

func TestAdminCanDeleteAnyReview(t *testing.T) {
	svc, repo, facilityRepo, bookingRepo := reviewFixture()
	authorID := uuid.New()
	bookingRepo.completed[authorID] = true
	ctx := context.Background()

	rv, err := svc.Create(ctx, facilityRepo.facility.ID, authorID, &CreateReviewRequest{Rating: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, rv.ID, uuid.New(), "customer"); err != ErrNotReviewAuthor {
		t.Fatalf("stranger delete: err = %v, want ErrNotReviewAuthor", err)
	}
	if err := svc.Delete(ctx, rv.ID, uuid.New(), "admin"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(repo.reviews) != 0 {
		t.Fatal("review not deleted")
	}
}
