package models

import "time"

// WorkingHours is one attendance window on a weekday. A staff member may
// have several rows per weekday (split shifts).
type WorkingHours struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index:idx_wh_staff_weekday" json:"staff_id"`

	Weekday int `gorm:"index:idx_wh_staff_weekday" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"` // "HH:MM"
	EndTime   string `gorm:"size:5" json:"end_time"`   // "HH:MM"
	Active    bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Absence is a declared unavailability interval that overrides working
// hours, e.g. vacation or a medical appointment.
type Absence struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index" json:"staff_id"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Reason    string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
