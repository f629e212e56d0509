package models

import "time"

// Service is a bookable catalog entry. Price and duration are snapshotted
// onto line items at booking time, so editing a service never rewrites
// history.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:50" json:"category"`
	Active      bool    `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
