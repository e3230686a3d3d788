package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/repository"
)

// MedicineInput is the raw form submission for add and edit.
type MedicineInput struct {
	Name         string `form:"name" json:"name"`
	Manufacturer string `form:"manufacturer" json:"manufacturer"`
	ExpiryDate   string `form:"expiry_date" json:"expiry_date"` // YYYY-MM-DD
	Quantity     string `form:"quantity" json:"quantity"`
	Price        string `form:"price" json:"price"`
}

// FromMedicine renders m back into form values, e.g. to prefill the edit page.
func FromMedicine(m models.Medicine) MedicineInput {
	return MedicineInput{
		Name:         m.Name,
		Manufacturer: m.Manufacturer,
		ExpiryDate:   m.ExpiryString(),
		Quantity:     strconv.Itoa(m.Quantity),
		Price:        strconv.FormatFloat(m.Price, 'f', 2, 64),
	}
}

// Parse validates the input field by field in form order and stops at the
// first failure.
func (in MedicineInput) Parse() (models.Medicine, error) {
	var m models.Medicine

	m.Name = strings.TrimSpace(in.Name)
	if m.Name == "" {
		return models.Medicine{}, newValidationError("name", KindRequired, "must not be empty")
	}
	m.Manufacturer = strings.TrimSpace(in.Manufacturer)
	if m.Manufacturer == "" {
		return models.Medicine{}, newValidationError("manufacturer", KindRequired, "must not be empty")
	}

	d, err := time.Parse(models.DateLayout, strings.TrimSpace(in.ExpiryDate))
	if err != nil {
		return models.Medicine{}, newValidationError("expiry date", KindBadDate, "use the YYYY-MM-DD format")
	}
	m.ExpiryDate = d

	q, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil {
		return models.Medicine{}, newValidationError("quantity", KindNotNumber, "must be a whole number")
	}
	if q < 0 {
		return models.Medicine{}, newValidationError("quantity", KindNegative, "must not be negative")
	}
	m.Quantity = q

	p, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return models.Medicine{}, newValidationError("price", KindNotNumber, "must be a number")
	}
	if p < 0 {
		return models.Medicine{}, newValidationError("price", KindNegative, "must not be negative")
	}
	m.Price = p

	return m, nil
}

type InventoryService struct {
	repo repository.MedicineRepo
	now  func() time.Time
}

func NewInventoryService(repo repository.MedicineRepo, now func() time.Time) *InventoryService {
	if now == nil {
		now = time.Now
	}
	return &InventoryService{repo: repo, now: now}
}

// List returns all medicines, or those whose name contains search
// case-insensitively. A blank search lists everything.
func (s *InventoryService) List(ctx context.Context, search string) ([]models.Medicine, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

func (s *InventoryService) Get(ctx context.Context, id int64) (models.Medicine, error) {
	m, err := s.repo.Get(ctx, id)
	return m, mapNotFound(err)
}

// Create stores a new medicine attributed to userID.
func (s *InventoryService) Create(ctx context.Context, userID int64, in MedicineInput) (models.Medicine, error) {
	if userID == 0 {
		return models.Medicine{}, ErrUnauthenticated
	}
	m, err := in.Parse()
	if err != nil {
		return models.Medicine{}, err
	}
	m.AddedBy = userID

	id, err := s.repo.Create(ctx, m)
	if err != nil {
		return models.Medicine{}, err
	}
	m.ID = id
	return m, nil
}

// Update overwrites every field of medicine id. added_by never changes.
func (s *InventoryService) Update(ctx context.Context, id int64, in MedicineInput) (models.Medicine, error) {
	m, err := in.Parse()
	if err != nil {
		return models.Medicine{}, err
	}
	m.ID = id

	stored, err := s.repo.Update(ctx, m)
	if err != nil {
		return models.Medicine{}, mapNotFound(err)
	}
	return stored, nil
}

func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	return mapNotFound(s.repo.Delete(ctx, id))
}

// Summary aggregates the inventory as of today.
func (s *InventoryService) Summary(ctx context.Context) (models.InventorySummary, error) {
	now := s.now()
	sum, err := s.repo.Summary(ctx, models.DateOf(now))
	if err != nil {
		return models.InventorySummary{}, err
	}
	sum.GeneratedAt = now.UTC()
	return sum, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
