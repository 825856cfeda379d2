package pets

import "time"

// Status define el estado de publicación de una mascota.
// @Enum available, unavailable, adopted
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusAdopted     Status = "adopted"
)

// Pet representa una mascota publicada para adopción.
// Owner es el email del usuario que la publicó.
type Pet struct {
	ID    string
	Owner string

	Name     string
	Age      int
	Category string
	Location string
	Image    string

	ShortDescription string
	LongDescription  string

	Adopted bool
	Status  Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
