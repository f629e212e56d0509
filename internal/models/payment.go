package models

import "time"

const (
	PaymentPendiente   = "pendiente"
	PaymentParcial     = "parcial"
	PaymentPagado      = "pagado"
	PaymentReembolsado = "reembolsado"
)

// Payment is seeded in the booking transaction with the computed total and
// updated independently as the payment progresses.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`

	Total float64 `gorm:"not null" json:"total"`
	Tax   float64 `gorm:"default:0" json:"tax"`
	Tip   float64 `gorm:"default:0" json:"tip"`

	// Paid accumulates what has actually been received. It may not exceed
	// total + tax + tip without an explicit override.
	Paid float64 `gorm:"default:0" json:"paid"`

	Method string `gorm:"size:30;default:'efectivo'" json:"method"`
	Status string `gorm:"size:20;default:'pendiente'" json:"status"`

	// Reference is a uuid used as external reference toward the gateway.
	Reference     string `gorm:"size:64;uniqueIndex" json:"reference"`
	CheckoutID    string `gorm:"size:128" json:"checkout_id"`
	CheckoutURL   string `gorm:"size:512" json:"checkout_url"`
	InvoiceIssued bool   `gorm:"default:false" json:"invoice_issued"`

	PaidAt *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
