package models

import "time"

// DateLayout is the wire and storage format of Medicine.ExpiryDate.
const DateLayout = "2006-01-02"

// Medicine is a single inventory record.
type Medicine struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	ExpiryDate   time.Time `json:"expiry_date"` // calendar date, midnight UTC
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	AddedBy      int64     `json:"added_by"` // user id, provenance only
}

// IsExpired reports whether the expiry date is earlier than the calendar date of now.
func (m Medicine) IsExpired(now time.Time) bool {
	return m.ExpiryDate.Before(DateOf(now))
}

// ExpiryString formats the expiry date as YYYY-MM-DD.
func (m Medicine) ExpiryString() string {
	return m.ExpiryDate.Format(DateLayout)
}

// DateOf truncates t to midnight UTC of its own calendar day.
func DateOf(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// InventorySummary is an aggregate snapshot of the medicine table.
type InventorySummary struct {
	TotalItems   int       `json:"total_items"`
	TotalUnits   int       `json:"total_units"`
	ExpiredItems int       `json:"expired_items"`
	StockValue   float64   `json:"stock_value"` // sum of quantity * price
	GeneratedAt  time.Time `json:"generated_at"`
}
