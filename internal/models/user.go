package models

import "time"

type Role string

const (
	RoleCliente       Role = "cliente"
	RoleEmpleado      Role = "empleado"
	RoleDueno         Role = "dueno"
	RoleAdministrador Role = "administrador"
)

// CanManageCitas reports whether the role may use the staff/admin
// appointment surface.
func (r Role) CanManageCitas() bool {
	return r == RoleEmpleado || r == RoleDueno || r == RoleAdministrador
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`
	Role  Role   `gorm:"size:20;default:'cliente'" json:"role"`

	// No default tag: gorm would omit a zero-valued Active from the
	// INSERT and the column default would flip false to true.
	Active bool `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
