package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pharmacy_inventory/internal/models"
)

const (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "password"
)

type sampleMedicine struct {
	name         string
	manufacturer string
	expiresIn    int // days from today, negative means already expired
	quantity     int
	price        float64
}

var sampleMedicines = []sampleMedicine{
	{name: "Paracetamol", manufacturer: "Cipla", expiresIn: 365, quantity: 100, price: 10.50},
	{name: "Aspirin", manufacturer: "Bayer", expiresIn: 730, quantity: 50, price: 25.00},
	{name: "Ibuprofen", manufacturer: "Dr. Reddy's", expiresIn: -30, quantity: 20, price: 15.75},
}

// SeedResult reports what Seed wrote.
type SeedResult struct {
	AdminID   int64
	Medicines []models.Medicine
}

// Seed creates the admin account and, only when that account is new, the
// sample medicines. An existing admin leaves the store untouched and
// returns a zero result.
func (s *Service) Seed(ctx context.Context, today time.Time) (SeedResult, error) {
	adminID, err := s.SignUp(ctx, SeedAdminUsername, SeedAdminPassword)
	if errors.Is(err, ErrDuplicateUsername) {
		return SeedResult{}, nil
	}
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed admin user: %w", err)
	}

	res := SeedResult{AdminID: adminID}
	day := models.DateOf(today)
	for _, sm := range sampleMedicines {
		m, err := s.Inventory.Create(ctx, adminID, MedicineInput{
			Name:         sm.name,
			Manufacturer: sm.manufacturer,
			ExpiryDate:   day.AddDate(0, 0, sm.expiresIn).Format(models.DateLayout),
			Quantity:     strconv.Itoa(sm.quantity),
			Price:        strconv.FormatFloat(sm.price, 'f', 2, 64),
		})
		if err != nil {
			return res, fmt.Errorf("seed medicine %q: %w", sm.name, err)
		}
		res.Medicines = append(res.Medicines, m)
	}
	return res, nil
}
