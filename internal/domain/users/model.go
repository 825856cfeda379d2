package users

import "time"

// Role define los roles de plataforma.
// @Enum guest, user, admin
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User representa una cuenta registrada.
// Email es la identidad única (siempre en lowercase); Role es el único
// atributo de autorización.
type User struct {
	ID    string
	Email string
	Name  string
	Image string
	Role  Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
