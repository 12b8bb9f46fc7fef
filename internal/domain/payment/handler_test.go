package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookRefusedWithoutSecret(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := NewService(repo, &fakeBookingRepo{}, &fakeRentalRepo{}, "")
	h := NewHandler(svc)

	body := []byte(`{"provider_ref":"mock_abc","status":"succeeded"}`)

	// An empty-key HMAC is computable by anyone; it must not get through.
	mac := hmac.New(sha256.New, []byte(""))
	mac.Write(body)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(body))
	req.Header.Set("X-Payment-Signature", hex.EncodeToString(mac.Sum(nil)))
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if len(repo.settled) != 0 {
		t.Fatal("settlement ran on an unconfigured webhook")
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	repo := newFakePaymentRepo()
	svc := NewService(repo, &fakeBookingRepo{}, &fakeRentalRepo{}, testSecret)
	h := NewHandler(svc)

	body := []byte(`{"provider_ref":"mock_abc","status":"succeeded"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(body))
	req.Header.Set("X-Payment-Signature", "deadbeef")
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
