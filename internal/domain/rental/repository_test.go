package rental

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

func testRental(quantity int) *Rental {
	now := time.Now()
	return &Rental{
		ProductID: uuid.New(),
		UserID:    uuid.New(),
		Quantity:  quantity,
		StartsAt:  now.Add(24 * time.Hour),
		EndsAt:    now.Add(26 * time.Hour),
		UnitCount: 2,
		Status:    StatusReserved,
	}
}

func TestCreateIfAvailableCountsOverlappingStock(t *testing.T) {
	repo, mock := newMockRepo(t)
	r := testRental(2)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT stock_total FROM products WHERE id = \\$1 AND is_active = true FOR UPDATE").
		WithArgs(r.ProductID).
		WillReturnRows(sqlmock.NewRows([]string{"stock_total"}).AddRow(5))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity\\), 0\\)").
		WithArgs(r.ProductID, r.StartsAt, r.EndsAt).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
	mock.ExpectQuery("INSERT INTO rentals").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(uuid.New().String(), time.Now(), time.Now()))
	mock.ExpectCommit()

	// stock 5 read under the row lock, 3 reserved elsewhere, 2 requested: fits exactly
	if err := repo.CreateIfAvailable(context.Background(), r); err != nil {
		t.Fatalf("CreateIfAvailable: %v", err)
	}
	if r.ID == uuid.Nil {
		t.Fatal("ID not populated from insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateIfAvailableOutOfStock(t *testing.T) {
	repo, mock := newMockRepo(t)
	r := testRental(3)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT stock_total FROM products WHERE id = \\$1 AND is_active = true FOR UPDATE").
		WithArgs(r.ProductID).
		WillReturnRows(sqlmock.NewRows([]string{"stock_total"}).AddRow(5))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity\\), 0\\)").
		WithArgs(r.ProductID, r.StartsAt, r.EndsAt).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
	mock.ExpectRollback()

	if err := repo.CreateIfAvailable(context.Background(), r); err != ErrOutOfStock {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateIfAvailableUsesLockedStockValue(t *testing.T) {
	repo, mock := newMockRepo(t)
	r := testRental(2)

	// The owner lowered stock_total to 3 before the lock was taken; the
	// reduced value must win over whatever the caller read earlier.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT stock_total FROM products WHERE id = \\$1 AND is_active = true FOR UPDATE").
		WithArgs(r.ProductID).
		WillReturnRows(sqlmock.NewRows([]string{"stock_total"}).AddRow(3))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity\\), 0\\)").
		WithArgs(r.ProductID, r.StartsAt, r.EndsAt).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(2))
	mock.ExpectRollback()

	if err := repo.CreateIfAvailable(context.Background(), r); err != ErrOutOfStock {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateIfAvailableInactiveProduct(t *testing.T) {
	repo, mock := newMockRepo(t)
	r := testRental(1)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT stock_total FROM products WHERE id = \\$1 AND is_active = true FOR UPDATE").
		WithArgs(r.ProductID).
		WillReturnRows(sqlmock.NewRows([]string{"stock_total"}))
	mock.ExpectRollback()

	if err := repo.CreateIfAvailable(context.Background(), r); err != ErrProductInactive {
		t.Fatalf("err = %v, want ErrProductInactive", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
