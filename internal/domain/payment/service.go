package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playgrid/playgrid-api/internal/domain/booking"
	"github.com/playgrid/playgrid-api/internal/domain/rental"
)

// Service handles payment business logic. The provider is mocked: a
// provider_ref is minted locally and settlement arrives via webhook.
type Service struct {
	repo          Repository
	bookingRepo   booking.Repository
	rentalRepo    rental.Repository
	webhookSecret string
}

// NewService creates payment service
func NewService(repo Repository, bookingRepo booking.Repository, rentalRepo rental.Repository, webhookSecret string) *Service {
	return &Service{
		repo:          repo,
		bookingRepo:   bookingRepo,
		rentalRepo:    rentalRepo,
		webhookSecret: webhookSecret,
	}
}

// Create opens a pending payment for a booking or rental. The amount is
// read from the referenced record.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreatePaymentRequest) (*Payment, error) {
	if (req.BookingID == "") == (req.RentalID == "") {
		return nil, ErrMissingReference
	}

	provider := ProviderMock
	if req.Provider != "" {
		provider = req.Provider
	}

	p := &Payment{
		ID:          uuid.New(),
		UserID:      userID,
		Currency:    "eur",
		Status:      StatusPending,
		Provider:    provider,
		ProviderRef: "mock_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
	}

	switch {
	case req.BookingID != "":
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
			return nil, ErrNotPaymentParty
		}
		p.BookingID = uuid.NullUUID{UUID: bid, Valid: true}
		p.Amount = b.TotalPrice

	case req.RentalID != "":
		rid, err := uuid.Parse(req.RentalID)
		if err != nil {
			return nil, rental.ErrRentalNotFound
		}
		rt, err := s.rentalRepo.GetByID(ctx, rid)
		if err != nil {
			return nil, err
		}
		if rt.UserID != userID {
			return nil, ErrNotPaymentParty
		}
		p.RentalID = uuid.NullUUID{UUID: rid, Valid: true}
		p.Amount = rt.TotalPrice
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// WebhookEnabled reports whether provider callbacks are configured.
// Without a shared secret anyone could compute valid signatures.
func (s *Service) WebhookEnabled() bool {
	return s.webhookSecret != ""
}

// VerifySignature checks the webhook body against its HMAC-SHA256 header
func (s *Service) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleWebhook settles a pending payment from a provider event.
// Settled payments ignore repeat events so the webhook stays idempotent.
func (s *Service) HandleWebhook(ctx context.Context, event *WebhookEvent) error {
	p, err := s.repo.GetByProviderRef(ctx, event.ProviderRef)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPaymentNotFound
	}
	if p.IsSettled() {
		log.Debug().Str("provider_ref", event.ProviderRef).Msg("ignoring webhook for settled payment")
		return nil
	}

	status := StatusFailed
	if event.Status == "succeeded" {
		status = StatusPaid
	}

	if err := s.repo.Settle(ctx, p, status); err != nil {
		return err
	}

	log.Info().
		Str("payment_id", p.ID.String()).
		Str("status", string(status)).
		Int64("amount", p.Amount).
		Msg("payment settled")
	return nil
}

// GetByID returns a payment visible to the requester
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID, role string) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if p.UserID != userID && role != "admin" {
		return nil, ErrNotPaymentParty
	}
	return p, nil
}

// ListMy lists the requester's payments
func (s *Service) ListMy(ctx context.Context, userID uuid.UUID) ([]*Payment, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Refund marks a paid payment refunded, admin only
func (s *Service) Refund(ctx context.Context, id uuid.UUID) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if p.Status != StatusPaid {
		return nil, ErrNotRefundable
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusRefunded); err != nil {
		return nil, err
	}
	p.Status = StatusRefunded

	log.Info().Str("payment_id", p.ID.String()).Int64("amount", p.Amount).Msg("payment refunded")
	return p, nil
}
