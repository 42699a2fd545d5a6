package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del back office.
type User struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, user
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
