package review

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

func TestCreateRecomputesAggregateInSameTx(t *testing.T) {
	repo, mock := newMockRepo(t)
	rv := &Review{
		ID:         uuid.New(),
		FacilityID: uuid.New(),
		UserID:     uuid.New(),
		Rating:     4,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reviews").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE facilities").
		WithArgs(rv.FacilityID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), rv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteRecomputesAggregateInSameTx(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	facilityID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM reviews WHERE id = \\$1 RETURNING facility_id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"facility_id"}).AddRow(facilityID.String()))
	mock.ExpectExec("UPDATE facilities").
		WithArgs(facilityID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteMissingReview(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM reviews WHERE id = \\$1 RETURNING facility_id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"facility_id"}))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), id); err != ErrReviewNotFound {
		t.Fatalf("err = %v, want ErrReviewNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
