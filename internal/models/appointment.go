package models

import "time"

// Appointment (cita) is never hard-deleted; it only moves through statuses.
// The pair (staff, [start,end)) is exclusive among non-cancelled rows,
// guarded by a row lock at booking time and a database exclusion constraint.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint     `gorm:"index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	StaffID uint  `gorm:"index:idx_cita_staff_start" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	StartTime time.Time `gorm:"index:idx_cita_staff_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pendiente'" json:"status"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services"`
	Payment  *Payment             `gorm:"foreignKey:AppointmentID" json:"payment"`

	CalendarEventID string `gorm:"size:128" json:"calendar_event_id"`

	Notes          string     `gorm:"size:255" json:"notes"`
	ReminderSentAt *time.Time `json:"reminder_sent_at"`
	CancelledAt    *time.Time `json:"cancelled_at"`
	CompletedAt    *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService is one line item. Price is the service price at
// booking time, not a live join.
type AppointmentService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Quantity int     `gorm:"default:1" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"`
	Discount float64 `gorm:"default:0" json:"discount"`
	Notes    string  `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
