package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"pharmacy_inventory/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var medicineCols = []string{"id", "name", "manufacturer", "expiry_date", "quantity", "price", "added_by"}

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMedicineMock(t *testing.T) (*MedicineSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("mock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewMedicineSQLite(db), mock
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{in: "parace", want: "%parace%"},
		{in: "PARACE", want: "%PARACE%"},
		{in: "Émoxin", want: "%Émoxin%"},
		{in: "50%", want: `%50\%%`},
		{in: "a_b", want: `%a\_b%`},
		{in: `c:\x`, want: `%c:\\x%`},
	}
	for _, c := range cases {
		if got := containsPattern(c.in); got != c.want {
			t.Fatalf("containsPattern(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestMedicineList_NoSearch_OrderedByID(t *testing.T) {
	t.Parallel()
	repo, mock := newMedicineMock(t)

	rows := sqlmock.NewRows(medicineCols).
		AddRow(1, "Paracetamol", "Cipla", "2026-10-17", 100, 10.5, 1).
		AddRow(2, "Aspirin", "Bayer", "2027-10-17", 50, 25.0, 1)

	mock.ExpectQuery(regexp.QuoteMeta(selectMedicinesSQL + orderByIDClause)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if !got[0].ExpiryDate.Equal(date(2026, 10, 17)) {
		t.Fatalf("expiry not parsed: %v", got[0].ExpiryDate)
	}
}

func TestMedicineList_WithSearch_LowercasesBothSidesInSQL(t *testing.T) {
	t.Parallel()
	repo, mock := newMedicineMock(t)

	rows := sqlmock.NewRows(medicineCols).
		AddRow(1, "Paracetamol", "Cipla", "2026-10-17", 100, 10.5, 1)

	mock.ExpectQuery(regexp.QuoteMeta(selectMedicinesSQL + nameContainsClause + orderByIDClause)).
		WithArgs("%Parace%").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), "Parace")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Paracetamol" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestMedicineList_QueryAndScanErrors(t *testing.T) {
	t.Parallel()

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMedicineMock(t)
		mock.ExpectQuery("SELECT id, name").WillReturnError(errors.New("down"))
		if _, err := repo.List(ctx(t), ""); err == nil || !contains(err.Error(), "down") {
			t.Fatalf("expected wrapped error, got %v", err)
		}
	})

	t.Run("malformed expiry", func(t *testing.T) {
		repo, mock := newMedicineMock(t)
		rows := sqlmock.NewRows(medicineCols).
			AddRow(9, "X", "Y", "31/12/2026", 1, 1.0, 1)
		mock.ExpectQuery("SELECT id, name").WillReturnRows(rows)
		if _, err := repo.List(ctx(t), ""); err == nil || !contains(err.Error(), "malformed expiry_date") {
			t.Fatalf("expected malformed expiry error, got %v", err)
		}
	})
}

func TestMedicineGet(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMedicineMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectMedicineByIDSQL)).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(medicineCols).
				AddRow(3, "Ibuprofen", "Dr. Reddy's", "2024-01-01", 20, 15.75, 1))

		m, err := repo.Get(ctx(t), 3)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		want := models.Medicine{ID: 3, Name: "Ibuprofen", Manufacturer: "Dr. Reddy's", ExpiryDate: date(2024, 1, 1), Quantity: 20, Price: 15.75, AddedBy: 1}
		if m != want {
			t.Fatalf("got %+v; want %+v", m, want)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMedicineMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectMedicineByIDSQL)).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		if _, err := repo.Get(ctx(t), 404); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMedicineCreate(t *testing.T) {
	t.Parallel()
	repo, mock := newMedicineMock(t)

	mock.ExpectExec(regexp.QuoteMeta(insertMedicineSQL)).
		WithArgs("Aspirin", "Bayer", "2027-05-01", 50, 25.0, int64(7)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := repo.Create(ctx(t), models.Medicine{
		Name: "Aspirin", Manufacturer: "Bayer", ExpiryDate: date(2027, 5, 1),
		Quantity: 50, Price: 25.0, AddedBy: 7,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 11 {
		t.Fatalf("id = %d; want 11", id)
	}
}

func TestMedicineUpdate(t *testing.T) {
	t.Parallel()

	in := models.Medicine{ID: 5, Name: "N", Manufacturer: "M", ExpiryDate: date(2026, 1, 2), Quantity: 1, Price: 2}

	t.Run("hit returns stored record", func(t *testing.T) {
		repo, mock := newMedicineMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(updateMedicineSQL)).
			WithArgs("N", "M", "2026-01-02", 1, 2.0, int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"added_by"}).AddRow(9))

		got, err := repo.Update(ctx(t), in)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		want := in
		want.AddedBy = 9
		if got != want {
			t.Fatalf("got %+v; want %+v", got, want)
		}
	})

	t.Run("miss", func(t *testing.T) {
		repo, mock := newMedicineMock(t)
		mock.ExpectQuery("UPDATE medicine").WillReturnError(sql.ErrNoRows)

		if _, err := repo.Update(ctx(t), in); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newMedicineMock(t)
		mock.ExpectQuery("UPDATE medicine").WillReturnError(errors.New("locked"))

		_, err := repo.Update(ctx(t), in)
		if err == nil || errors.Is(err, ErrNotFound) || !contains(err.Error(), "update medicine 5") {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}

func TestMedicineDelete_RowsAffected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "hit", affected: 1},
		{name: "miss", affected: 0, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMedicineMock(t)
			mock.ExpectExec(regexp.QuoteMeta(deleteMedicineSQL)).
				WithArgs(int64(5)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			if err := repo.Delete(ctx(t), 5); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v; want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMedicineSummary(t *testing.T) {
	t.Parallel()
	repo, mock := newMedicineMock(t)

	mock.ExpectQuery("SELECT\\s+COUNT").
		WithArgs("2026-10-17").
		WillReturnRows(sqlmock.NewRows([]string{"c", "u", "e", "v"}).AddRow(3, 170, 1, 2615.0))

	s, err := repo.Summary(ctx(t), date(2026, 10, 17))
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.TotalItems != 3 || s.TotalUnits != 170 || s.ExpiredItems != 1 || s.StockValue != 2615.0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
