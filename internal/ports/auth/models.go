package auth

// Role define los roles soportados por la plataforma.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Claims representa la identidad extraída del token de sesión.
// Email es la identidad única. Role viaja en el token solo como hint;
// los checks de admin siempre releen el user desde la base.
type Claims struct {
	Email string
	Name  string
	Role  Role
}
