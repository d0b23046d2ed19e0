package entity

import "time"

// Role es el conjunto cerrado de roles del sistema.
type Role string

// Roles válidos para User.
const (
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RolePurchaser   Role = "purchaser"
	RoleSalesperson Role = "salesperson"
	RoleWarehouse   Role = "warehouse"
)

// AllRoles lista los roles en orden estable (útil para validación y tests).
var AllRoles = []Role{RoleAdmin, RoleManager, RolePurchaser, RoleSalesperson, RoleWarehouse}

// IsValid indica si el rol pertenece al conjunto cerrado.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RolePurchaser, RoleSalesperson, RoleWarehouse:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User representa un usuario del sistema. El username es la clave única;
// el registro es inmutable salvo por una futura edición de perfil (fuera de alcance).
type User struct {
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	Email        string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
