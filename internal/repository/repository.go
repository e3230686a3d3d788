package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pharmacy_inventory/internal/models"
)

var (
	// ErrNotFound is returned when a keyed lookup, update or delete matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a UNIQUE constraint.
	ErrDuplicate = errors.New("record already exists")
)

type Authorization interface {
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type MedicineRepo interface {
	List(ctx context.Context, search string) ([]models.Medicine, error)
	Get(ctx context.Context, id int64) (models.Medicine, error)
	Create(ctx context.Context, m models.Medicine) (int64, error)
	Update(ctx context.Context, m models.Medicine) (models.Medicine, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, today time.Time) (models.InventorySummary, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Repository struct {
	Auth      Authorization
	Medicines MedicineRepo
	Sessions  SessionRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:      NewUserRepository(db, nil),
		Medicines: NewMedicineSQLite(db),
		Sessions:  NewSessionSQLite(db),
	}
}
