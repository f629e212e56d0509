package models

import "time"

// Notification is owned by its recipient; creation is a best-effort side
// effect of appointment lifecycle events and never blocks a booking.
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`

	Title    string `gorm:"size:100;not null" json:"title"`
	Body     string `gorm:"size:500" json:"body"`
	Category string `gorm:"size:30" json:"category"`
	DeepLink string `gorm:"size:255" json:"deep_link"`

	Read bool `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

// DeviceToken is a push target. Tokens reported unregistered by the push
// provider are pruned.
type DeviceToken struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   uint   `gorm:"index:idx_device_user_token,unique" json:"user_id"`
	Token    string `gorm:"size:512;index:idx_device_user_token,unique" json:"token"`
	Platform string `gorm:"size:20" json:"platform"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
