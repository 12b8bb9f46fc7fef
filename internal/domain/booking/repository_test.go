package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func testBooking() *Booking {
	now := time.Now()
	return &Booking{
		ID:         uuid.New(),
		CourtID:    uuid.New(),
		UserID:     uuid.New(),
		StartsAt:   now.Add(24 * time.Hour),
		EndsAt:     now.Add(25 * time.Hour),
		Status:     StatusPending,
		TotalPrice: 2400,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestCreateIfFreeInsertsWhenSlotOpen(t *testing.T) {
	repo, mock := newMockRepo(t)
	b := testBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM courts WHERE id = \\$1 FOR UPDATE").
		WithArgs(b.CourtID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(b.CourtID.String()))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(b.CourtID, b.StartsAt, b.EndsAt).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.CreateIfFree(context.Background(), b); err != nil {
		t.Fatalf("CreateIfFree: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateIfFreeRejectsOverlap(t *testing.T) {
	repo, mock := newMockRepo(t)
	b := testBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM courts WHERE id = \\$1 FOR UPDATE").
		WithArgs(b.CourtID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(b.CourtID.String()))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(b.CourtID, b.StartsAt, b.EndsAt).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	if err := repo.CreateIfFree(context.Background(), b); err != ErrTimeSlotTaken {
		t.Fatalf("err = %v, want ErrTimeSlotTaken", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateIfFreeUnknownCourt(t *testing.T) {
	repo, mock := newMockRepo(t)
	b := testBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM courts WHERE id = \\$1 FOR UPDATE").
		WithArgs(b.CourtID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	if err := repo.CreateIfFree(context.Background(), b); err != ErrCourtInactive {
		t.Fatalf("err = %v, want ErrCourtInactive", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
