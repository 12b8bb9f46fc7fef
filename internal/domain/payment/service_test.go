package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/playgrid/playgrid-api/internal/domain/booking"
	"github.com/playgrid/playgrid-api/internal/domain/rental"
)

type fakePaymentRepo struct {
	payments map[uuid.UUID]*Payment
	settled  []Status
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[uuid.UUID]*Payment{}}
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *Payment) error {
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return f.payments[id], nil
}

func (f *fakePaymentRepo) GetByProviderRef(ctx context.Context, ref string) (*Payment, error) {
	for _, p := range f.payments {
		if p.ProviderRef == ref {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Payment, error) {
	return nil, nil
}

func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if p, ok := f.payments[id]; ok {
		p.Status = status
	}
	return nil
}

func (f *fakePaymentRepo) Settle(ctx context.Context, p *Payment, status Status) error {
	f.settled = append(f.settled, status)
	if stored, ok := f.payments[p.ID]; ok {
		stored.Status = status
	}
	return nil
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

type fakeRentalRepo struct {
	rental *rental.Rental
}

func (f *fakeRentalRepo) CreateIfAvailable(ctx context.Context, r *rental.Rental) error {
	return nil
}
func (f *fakeRentalRepo) GetByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	if f.rental != nil && f.rental.ID == id {
		return f.rental, nil
	}
	return nil, rental.ErrRentalNotFound
}
func (f *fakeRentalRepo) List(ctx context.Context, filter rental.Filter) ([]*rental.Rental, error) {
	return nil, nil
}
func (f *fakeRentalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status rental.Status) error {
	return nil
}

const testSecret = "webhook-test-secret"

func paymentFixture() (*Service, *fakePaymentRepo, *fakeBookingRepo, *fakeRentalRepo) {
	repo := newFakePaymentRepo()
	bookingRepo := &fakeBookingRepo{}
	rentalRepo := &fakeRentalRepo{}
	return NewService(repo, bookingRepo, rentalRepo, testSecret), repo, bookingRepo, rentalRepo
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreatePaymentTakesAmountFromBooking(t *testing.T) {
	svc, _, bookingRepo, _ := paymentFixture()
	userID := uuid.New()
	bookingRepo.booking = &booking.Booking{ID: uuid.New(), UserID: userID, TotalPrice: 4800}

	p, err := svc.Create(context.Background(), userID, &CreatePaymentRequest{BookingID: bookingRepo.booking.ID.String()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Amount != 4800 {
		t.Fatalf("Amount = %d, want 4800 (from booking)", p.Amount)
	}
	if p.Status != StatusPending {
		t.Fatalf("Status = %s, want pending", p.Status)
	}
	if p.ProviderRef == "" {
		t.Fatal("expected a provider reference")
	}
	if p.Provider != ProviderMock {
		t.Fatalf("Provider = %s, want %s by default", p.Provider, ProviderMock)
	}
}

func TestCreatePaymentRejectsForeignBooking(t *testing.T) {
	svc, _, bookingRepo, _ := paymentFixture()
	bookingRepo.booking = &booking.Booking{ID: uuid.New(), UserID: uuid.New(), TotalPrice: 100}

	_, err := svc.Create(context.Background(), uuid.New(), &CreatePaymentRequest{BookingID: bookingRepo.booking.ID.String()})
	if err != ErrNotPaymentParty {
		t.Fatalf("err = %v, want ErrNotPaymentParty", err)
	}
}

func TestCreatePaymentNeedsExactlyOneReference(t *testing.T) {
	svc, _, _, _ := paymentFixture()
	ctx := context.Background()

	if _, err := svc.Create(ctx, uuid.New(), &CreatePaymentRequest{}); err != ErrMissingReference {
		t.Fatalf("neither: err = %v, want ErrMissingReference", err)
	}
	if _, err := svc.Create(ctx, uuid.New(), &CreatePaymentRequest{
		BookingID: uuid.New().String(),
		RentalID:  uuid.New().String(),
	}); err != ErrMissingReference {
		t.Fatalf("both: err = %v, want ErrMissingReference", err)
	}
}

func TestVerifySignature(t *testing.T) {
	svc, _, _, _ := paymentFixture()
	body := []byte(`{"provider_ref":"mock_abc","status":"succeeded"}`)

	if !svc.VerifySignature(body, sign(body)) {
		t.Fatal("valid signature rejected")
	}
	if svc.VerifySignature(body, sign([]byte("tampered"))) {
		t.Fatal("invalid signature accepted")
	}
	if svc.VerifySignature(body, "") {
		t.Fatal("empty signature accepted")
	}
}

func TestWebhookSettlesOnce(t *testing.T) {
	svc, repo, bookingRepo, _ := paymentFixture()
	userID := uuid.New()
	bookingRepo.booking = &booking.Booking{ID: uuid.New(), UserID: userID, TotalPrice: 1000}

	p, err := svc.Create(context.Background(), userID, &CreatePaymentRequest{BookingID: bookingRepo.booking.ID.String()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	event := &WebhookEvent{ProviderRef: p.ProviderRef, Status: "succeeded"}
	if err := svc.HandleWebhook(context.Background(), event); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
	if repo.payments[p.ID].Status != StatusPaid {
		t.Fatalf("Status = %s, want paid", repo.payments[p.ID].Status)
	}

	// Replayed events are ignored.
	if err := svc.HandleWebhook(context.Background(), event); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(repo.settled) != 1 {
		t.Fatalf("Settle called %d times, want 1", len(repo.settled))
	}
}

func TestWebhookUnknownRef(t *testing.T) {
	svc, _, _, _ := paymentFixture()

	err := svc.HandleWebhook(context.Background(), &WebhookEvent{ProviderRef: "mock_missing", Status: "succeeded"})
	if err != ErrPaymentNotFound {
		t.Fatalf("err = %v, want ErrPaymentNotFound", err)
	}
}

func TestRefundOnlyPaid(t *testing.T) {
	svc, repo, bookingRepo, _ := paymentFixture()
	userID := uuid.New()
	bookingRepo.booking = &booking.Booking{ID: uuid.New(), UserID: userID, TotalPrice: 1000}

	p, err := svc.Create(context.Background(), userID, &CreatePaymentRequest{BookingID: bookingRepo.booking.ID.String()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Refund(context.Background(), p.ID); err != ErrNotRefundable {
		t.Fatalf("pending refund: err = %v, want ErrNotRefundable", err)
	}

	repo.payments[p.ID].Status = StatusPaid
	refunded, err := svc.Refund(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if refunded.Status != StatusRefunded {
		t.Fatalf("Status = %s, want refunded", refunded.Status)
	}
}
