package models

import "time"

// Staff (empleado) is a user who attends appointments. OfferedServices is
// the authoritative capability set: only those services may be booked with
// this staff member. Specialties is descriptive text for the storefront.
type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Specialties string `gorm:"size:255" json:"specialties"`
	Active      bool   `gorm:"not null" json:"active"`

	OfferedServices []Service `gorm:"many2many:staff_services;" json:"offered_services"`

	WorkingHours []WorkingHours `gorm:"foreignKey:StaffID" json:"working_hours"`
	Absences     []Absence      `gorm:"foreignKey:StaffID" json:"absences"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
