package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pharmacy_inventory/internal/models"
)

type MedicineSQLite struct {
	db *sql.DB
}

func NewMedicineSQLite(db *sql.DB) *MedicineSQLite { return &MedicineSQLite{db: db} }

var _ MedicineRepo = (*MedicineSQLite)(nil)

const (
	selectMedicinesSQL = `SELECT id, name, manufacturer, expiry_date, quantity, price, added_by FROM medicine`
	nameContainsClause = ` WHERE lower(name) LIKE lower(?) ESCAPE '\'`
	orderByIDClause    = ` ORDER BY id ASC`

	selectMedicineByIDSQL = selectMedicinesSQL + ` WHERE id = ?`

	insertMedicineSQL = `INSERT INTO medicine (name, manufacturer, expiry_date, quantity, price, added_by) VALUES (?, ?, ?, ?, ?, ?)`

	updateMedicineSQL = `
		UPDATE medicine
		SET name = ?, manufacturer = ?, expiry_date = ?, quantity = ?, price = ?
		WHERE id = ?
		RETURNING added_by
	`

	deleteMedicineSQL = `DELETE FROM medicine WHERE id = ?`

	summarySQL = `
		SELECT
			COUNT(*),
			COALESCE(SUM(quantity), 0),
			COALESCE(SUM(CASE WHEN expiry_date < ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(quantity * price), 0.0)
		FROM medicine
	`
)

// likeEscaper makes LIKE wildcards in a user term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern for substring search. Case folding
// happens in SQL so both sides go through the same lower().
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// List returns every medicine ordered by id, or only those whose name
// contains search (case-insensitive) when search is not empty.
func (r *MedicineSQLite) List(ctx context.Context, search string) ([]models.Medicine, error) {
	var args []any
	q := selectMedicinesSQL
	if search != "" {
		q += nameContainsClause
		args = append(args, containsPattern(search))
	}
	q += orderByIDClause

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()

	out := make([]models.Medicine, 0, 16)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medicines: %w", err)
	}
	return out, nil
}

// Get fetches one medicine, or ErrNotFound.
func (r *MedicineSQLite) Get(ctx context.Context, id int64) (models.Medicine, error) {
	m, err := scanMedicine(r.db.QueryRowContext(ctx, selectMedicineByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Medicine{}, ErrNotFound
		}
		return models.Medicine{}, err
	}
	return m, nil
}

// Create inserts m (ignoring m.ID) and returns the new id.
func (r *MedicineSQLite) Create(ctx context.Context, m models.Medicine) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertMedicineSQL,
		m.Name,
		m.Manufacturer,
		m.ExpiryString(),
		m.Quantity,
		m.Price,
		m.AddedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("insert medicine %q: %w", m.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for medicine %q: %w", m.Name, err)
	}
	return id, nil
}

// Update replaces every mutable field of the row m.ID and returns the
// stored record. added_by is kept; ErrNotFound if the row does not exist.
func (r *MedicineSQLite) Update(ctx context.Context, m models.Medicine) (models.Medicine, error) {
	err := r.db.QueryRowContext(ctx, updateMedicineSQL,
		m.Name,
		m.Manufacturer,
		m.ExpiryString(),
		m.Quantity,
		m.Price,
		m.ID,
	).Scan(&m.AddedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Medicine{}, ErrNotFound
		}
		return models.Medicine{}, fmt.Errorf("update medicine %d: %w", m.ID, err)
	}
	return m, nil
}

// Delete removes the row with id, or returns ErrNotFound.
func (r *MedicineSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteMedicineSQL, id)
	if err != nil {
		return fmt.Errorf("delete medicine %d: %w", id, err)
	}
	return expectOneRow(res, "delete medicine", id)
}

// Summary aggregates the table; rows expiring before today count as expired.
func (r *MedicineSQLite) Summary(ctx context.Context, today time.Time) (models.InventorySummary, error) {
	var s models.InventorySummary
	err := r.db.QueryRowContext(ctx, summarySQL, today.Format(models.DateLayout)).
		Scan(&s.TotalItems, &s.TotalUnits, &s.ExpiredItems, &s.StockValue)
	if err != nil {
		return models.InventorySummary{}, fmt.Errorf("summarize medicines: %w", err)
	}
	return s, nil
}

func expectOneRow(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: rows affected: %w", op, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMedicine(row interface{ Scan(dest ...any) error }) (models.Medicine, error) {
	var (
		m      models.Medicine
		expiry string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Manufacturer, &expiry, &m.Quantity, &m.Price, &m.AddedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Medicine{}, err
		}
		return models.Medicine{}, fmt.Errorf("scan medicine: %w", err)
	}
	d, err := time.Parse(models.DateLayout, expiry)
	if err != nil {
		return models.Medicine{}, fmt.Errorf("medicine %d: malformed expiry_date %q: %w", m.ID, expiry, err)
	}
	m.ExpiryDate = d
	return m, nil
}
