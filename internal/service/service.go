package service

import (
	"context"
	"time"

	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/repository"
)

// Authorization registers accounts and checks credentials.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int64, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// Sessions owns the server-side session behind the client's cookie token.
type Sessions interface {
	New() *models.Session
	Token(s *models.Session) (string, error)
	Load(ctx context.Context, token string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Login(ctx context.Context, s *models.Session, u *models.User) error
	Logout(ctx context.Context, s *models.Session) error
	Purge(ctx context.Context) (int64, error)
}

// Inventory is the medicine catalogue.
type Inventory interface {
	List(ctx context.Context, search string) ([]models.Medicine, error)
	Get(ctx context.Context, id int64) (models.Medicine, error)
	Create(ctx context.Context, userID int64, in MedicineInput) (models.Medicine, error)
	Update(ctx context.Context, id int64, in MedicineInput) (models.Medicine, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context) (models.InventorySummary, error)
}

type Service struct {
	Authorization
	Sessions
	Inventory
}

// Options carries the settings services read from configuration.
type Options struct {
	SessionSecret []byte
	SessionTTL    time.Duration
	// Now overrides the wall clock; nil means time.Now.
	Now func() time.Time
}

func NewService(repos *repository.Repository, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		Authorization: NewAuthService(repos.Auth),
		Sessions:      NewSessionService(repos.Sessions, opts.SessionSecret, opts.SessionTTL, now),
		Inventory:     NewInventoryService(repos.Medicines, now),
	}
}
